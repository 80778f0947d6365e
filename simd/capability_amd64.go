//go:build amd64

package simd

import (
	asmcpu "github.com/segmentio/asm/cpu"
	"github.com/segmentio/asm/cpu/x86"
	"golang.org/x/sys/cpu"
)

// detect reports the widest usable x86-64 vector family. AVX2 is only
// reported when golang.org/x/sys/cpu and segmentio/asm/cpu agree on it.
func detect() Capability {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW:
		return AVX512
	case cpu.X86.HasAVX2 && asmcpu.X86.Has(x86.AVX2):
		return AVX2
	case cpu.X86.HasSSE42 || cpu.X86.HasSSSE3:
		return SSE
	default:
		return None
	}
}
