// Package simd provides the vectorized byte matchers used by the engine:
// single-byte repeats, character-class repeats, literal scanning and
// memchr.
//
// Every matcher has a scalar reference and a vector path. The vector path
// processes the input in chunks as wide as the host's widest vector register
// (see Probe) and is taken only when a vector unit is present and the input
// is at least as long as the family's threshold. Both paths return identical
// results on every input.
//
// The vector paths are written in portable Go: a chunk is processed as
// 64-bit lanes with SWAR arithmetic, one bit per byte of the chunk ends up
// in a compare mask, and the first hit or mismatch is read with a
// trailing-zero count.
package simd

import (
	"fmt"
	"sync"
)

// Capability is the vector instruction set family available on the host.
type Capability uint8

const (
	// None means no usable vector unit; scalar paths only.
	None Capability = iota

	// SSE is x86-64 with SSE4.2 or SSSE3 (128-bit).
	SSE

	// AVX2 is x86-64 with AVX2 (256-bit).
	AVX2

	// AVX512 is x86-64 with AVX-512 F and BW (512-bit).
	AVX512

	// NEON is arm64 Advanced SIMD (128-bit).
	NEON
)

// String returns a human-readable representation of the Capability
func (c Capability) String() string {
	switch c {
	case None:
		return "none"
	case SSE:
		return "sse"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	case NEON:
		return "neon"
	default:
		return fmt.Sprintf("Capability(%d)", c)
	}
}

// Width returns the vector register width in bytes, 0 for None.
func (c Capability) Width() int {
	switch c {
	case SSE, NEON:
		return 16
	case AVX2:
		return 32
	case AVX512:
		return 64
	default:
		return 0
	}
}

var (
	probeOnce sync.Once
	probed    Capability
)

// Probe returns the host's vector capability. The hardware query runs once;
// later calls read the cached result. It never fails: unsupported targets
// report None.
func Probe() Capability {
	probeOnce.Do(func() {
		probed = detect()
	})
	return probed
}

// threshold returns the input length from which the vector path of a family
// is used at capability c. It is never below one vector width.
func threshold(c Capability, family int) int {
	return max(family, c.Width())
}
