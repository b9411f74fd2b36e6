//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	hasPopcount = cpu.X86.HasPOPCNT
	if cpu.X86.HasPOPCNT {
		features = append(features, "popcnt")
	}
	if cpu.X86.HasBMI2 {
		features = append(features, "bmi2")
	}
	initCapabilities()
}
