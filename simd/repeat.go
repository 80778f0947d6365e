package simd

// Vector engagement thresholds, in bytes of input. A vector path also needs
// at least one full vector width of input.
const (
	// RepeatThreshold is the minimum input for the vector RepeatByte.
	RepeatThreshold = 32

	// ClassThreshold is the minimum input for the vector RepeatClass.
	ClassThreshold = 16

	// LiteralScanThreshold is the minimum remaining input for the vector
	// LiteralScanner.
	LiteralScanThreshold = 16
)

// RepeatByte returns how many leading bytes of h equal b, counting at most
// limit bytes. A negative limit means no limit.
//
// Example:
//
//	n := simd.RepeatByte([]byte("aaab"), 'a', -1) // n == 3
func RepeatByte(h []byte, b byte, limit int) int {
	return repeatByteWith(Probe(), h, b, limit)
}

func repeatByteWith(c Capability, h []byte, b byte, limit int) int {
	h = clip(h, limit)
	if c.Width() == 0 || len(h) < threshold(c, RepeatThreshold) {
		return repeatByteScalar(h, b)
	}
	pattern := broadcast(b)
	return leadingRun(h, c.Width(), func(w uint64) uint64 {
		return eqLanes(w, pattern)
	})
}

func repeatByteScalar(h []byte, b byte) int {
	for i, c := range h {
		if c != b {
			return i
		}
	}
	return len(h)
}

// clip shortens h to limit bytes when limit is non-negative.
func clip(h []byte, limit int) []byte {
	if limit >= 0 && limit < len(h) {
		return h[:limit]
	}
	return h
}
