//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	// CNT on the vector unit backs math/bits.OnesCount64.
	hasPopcount = cpu.ARM64.HasASIMD
	if cpu.ARM64.HasASIMD {
		features = append(features, "asimd")
	}
	initCapabilities()
}
