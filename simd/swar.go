package simd

import (
	"encoding/binary"
	"math/bits"
)

// Lane constants: every byte of a 64-bit word is one lane. A lane mask
// marks a lane with its high bit (0x80) and leaves the other bits clear.
const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
	lo7 = 0x7f7f7f7f7f7f7f7f

	// maxWidth is the widest vector chunk, in bytes.
	maxWidth = 64
)

// broadcast replicates b into every lane.
func broadcast(b byte) uint64 {
	return uint64(b) * lo8
}

// eqLanes marks the lanes where x and y are equal. Unlike the classic
// (v-lo8)&^v&hi8 test it never marks a lane spuriously, so every lane of the
// result can be trusted, not just the lowest one.
func eqLanes(x, y uint64) uint64 {
	t := x ^ y
	return ^(((t & lo7) + lo7) | t) & hi8
}

// leLanes marks the lanes where x <= y as unsigned bytes.
//
// d holds, per lane, 0x80+(y&0x7f)-(x&0x7f) without borrows between lanes;
// its high bit says whether the low seven bits of y are at least those of x.
// Where the high bits of x and y differ, y's high bit decides.
func leLanes(x, y uint64) uint64 {
	d := (y | hi8) - (x &^ hi8)
	diff := x ^ y
	return (^diff&d | diff&y) & hi8
}

// movemask packs the high bit of every lane into the low 8 bits, lane i
// becoming bit i.
func movemask(lanes uint64) uint64 {
	return ((lanes & hi8) >> 7) * 0x0102040810204080 >> 56
}

// laneFunc maps an 8-byte word to its lane mask.
type laneFunc func(word uint64) uint64

// chunkMask applies f to every 8-byte word of chunk (len a multiple of 8)
// and returns one bit per byte, byte i of the chunk becoming bit i.
func chunkMask(chunk []byte, f laneFunc) uint64 {
	var m uint64
	for i := 0; i < len(chunk); i += 8 {
		m |= movemask(f(binary.LittleEndian.Uint64(chunk[i:]))) << uint(i)
	}
	return m
}

// loadChunk returns the width bytes of h starting at i. When fewer remain,
// they are copied into buf and the rest of the chunk is zero; n is the
// number of real bytes. Nothing past the end of h is read.
func loadChunk(h []byte, i, width int, buf *[maxWidth]byte) (chunk []byte, n int) {
	if i+width <= len(h) {
		return h[i : i+width], width
	}
	*buf = [maxWidth]byte{}
	n = copy(buf[:width], h[i:])
	return buf[:width], n
}

// lowBits returns a mask with the low n bits set.
func lowBits(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(n) - 1
}

// leadingRun returns how many leading bytes of h satisfy f, using
// width-byte chunks.
func leadingRun(h []byte, width int, f laneFunc) int {
	var buf [maxWidth]byte
	for i := 0; i < len(h); i += width {
		chunk, n := loadChunk(h, i, width, &buf)
		m := chunkMask(chunk, f) & lowBits(n)
		if run := bits.TrailingZeros64(^m); run < n {
			return i + run
		}
	}
	return len(h)
}
