//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func detect() Capability {
	if cpu.ARM64.HasASIMD {
		return NEON
	}
	return None
}
