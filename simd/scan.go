package simd

import (
	"bytes"
	"math/bits"
)

// LiteralScanner finds occurrences of a fixed byte string.
//
// The vector path broadcasts the literal's first byte and, for literals of
// two or more bytes, its rarest later byte; a position is a candidate when
// both compare equal at their offsets, and every candidate is verified with
// an exact comparison. Inputs shorter than LiteralScanThreshold are scanned
// with the scalar path.
//
// A LiteralScanner is immutable and safe for concurrent use.
type LiteralScanner struct {
	lit    []byte
	first  uint64
	rare   uint64
	rareAt int
}

// NewLiteralScanner creates a scanner for lit. The literal is copied.
//
// Example:
//
//	s := simd.NewLiteralScanner([]byte("ghi"))
//	pos := s.Find([]byte("def xxx ghi"), 0) // pos == 8
func NewLiteralScanner(lit []byte) *LiteralScanner {
	s := &LiteralScanner{lit: append([]byte(nil), lit...)}
	if len(lit) > 0 {
		rare, at := RarestByte(lit)
		s.first = broadcast(lit[0])
		s.rare = broadcast(rare)
		s.rareAt = at
	}
	return s
}

// Literal returns the scanned literal. It must not be modified.
func (s *LiteralScanner) Literal() []byte {
	return s.lit
}

// Len returns the literal length.
func (s *LiteralScanner) Len() int {
	return len(s.lit)
}

// Find returns the index of the first occurrence of the literal in h at or
// after start, or -1. An empty literal is found at start.
func (s *LiteralScanner) Find(h []byte, start int) int {
	return s.findWith(Probe(), h, start)
}

func (s *LiteralScanner) findWith(c Capability, h []byte, start int) int {
	if start < 0 {
		start = 0
	}
	if start > len(h) {
		return -1
	}
	if len(s.lit) == 0 {
		return start
	}
	if c.Width() == 0 || len(h)-start < threshold(c, LiteralScanThreshold) {
		return s.findScalar(h, start)
	}

	// Candidate starts are [start, end).
	end := len(h) - len(s.lit) + 1
	width := c.Width()
	var firstBuf, rareBuf [maxWidth]byte
	firstLanes := func(w uint64) uint64 { return eqLanes(w, s.first) }
	rareLanes := func(w uint64) uint64 { return eqLanes(w, s.rare) }
	for i := start; i < end; i += width {
		chunk, n := loadChunk(h, i, width, &firstBuf)
		cands := chunkMask(chunk, firstLanes) & lowBits(min(n, end-i))
		if cands == 0 {
			continue
		}
		if s.rareAt > 0 {
			rchunk, _ := loadChunk(h, i+s.rareAt, width, &rareBuf)
			cands &= chunkMask(rchunk, rareLanes)
		}
		for cands != 0 {
			p := i + bits.TrailingZeros64(cands)
			if bytes.Equal(h[p:p+len(s.lit)], s.lit) {
				return p
			}
			cands &= cands - 1
		}
	}
	return -1
}

func (s *LiteralScanner) findScalar(h []byte, start int) int {
	if i := bytes.Index(h[start:], s.lit); i >= 0 {
		return start + i
	}
	return -1
}

// Memchr returns the index of the first instance of needle in haystack, or
// -1 if needle is not present.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o') // pos == 4
func Memchr(haystack []byte, needle byte) int {
	return memchrWith(Probe(), haystack, needle)
}

func memchrWith(c Capability, haystack []byte, needle byte) int {
	if c.Width() == 0 || len(haystack) < threshold(c, LiteralScanThreshold) {
		return bytes.IndexByte(haystack, needle)
	}
	pattern := broadcast(needle)
	n := leadingRun(haystack, c.Width(), func(w uint64) uint64 {
		return ^eqLanes(w, pattern) & hi8
	})
	if n == len(haystack) {
		return -1
	}
	return n
}
