// Package conv provides checked integer conversions used when narrowing
// position counts and offsets into automaton state identifiers.
//
// Overflow indicates a programming error (a pattern that slipped past the
// compile-time size limits), so the helpers panic rather than return errors.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// compare as uint so the check is valid where int is 32 bits
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToUint8 converts n to uint8.
// Panics if n < 0 or n > math.MaxUint8.
func IntToUint8(n int) uint8 {
	if n < 0 || n > math.MaxUint8 {
		panic("integer overflow: int value out of uint8 range")
	}
	return uint8(n)
}
