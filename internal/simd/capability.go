package simd

import (
	"os"
	"strings"
)

// Kernel identifies a family of kernel implementations.
type Kernel uint8

const (
	// Generic kernels process one byte per step. They are the reference.
	Generic Kernel = iota
	// Wide kernels process 64-bit words per step in pure Go.
	Wide
)

// String returns the string representation of a Kernel.
func (k Kernel) String() string {
	switch k {
	case Generic:
		return "generic"
	case Wide:
		return "wide"
	default:
		return "unknown"
	}
}

// ParseKernel parses a string into a Kernel value.
func ParseKernel(s string) (Kernel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "wide":
		return Wide, true
	default:
		return Generic, false
	}
}

// Package-level state, initialized once at package init.
var (
	activeKernel Kernel

	// hasOverride is true if UUBED_SIMD selected the kernel.
	hasOverride bool

	// hasPopcount is set by platform-specific init when the CPU counts
	// bits of a 64-bit word in one instruction.
	hasPopcount bool

	// features lists the detected CPU features relevant to the kernels.
	features []string
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	activeKernel = selectKernel(os.Getenv("UUBED_SIMD"))
	installKernels(activeKernel)
}

// selectKernel honors a valid override and otherwise picks the wide
// kernels when the CPU has a native popcount.
func selectKernel(override string) Kernel {
	hasOverride = false
	if override != "" {
		if k, ok := ParseKernel(override); ok {
			hasOverride = true
			return k
		}
	}
	if hasPopcount {
		return Wide
	}
	return Generic
}

// ActiveKernel returns the kernel family in use.
func ActiveKernel() Kernel {
	return activeKernel
}

// IsOverridden returns true if UUBED_SIMD selected the kernel.
func IsOverridden() bool {
	return hasOverride
}

// HasPopcount reports whether the CPU has a native 64-bit popcount.
func HasPopcount() bool {
	return hasPopcount
}

// Features returns the detected CPU features that influence kernel
// selection, e.g. "popcnt" or "asimd".
func Features() []string {
	return append([]string(nil), features...)
}
