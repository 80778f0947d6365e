package simd

import (
	"fmt"
	"math/bits"

	"github.com/coregx/rematch/internal/byteset"
)

// ClassStrategy is the membership test a ClassMatcher uses on vector lanes.
type ClassStrategy uint8

const (
	// StrategyRange tests one contiguous range with two clamp compares.
	StrategyRange ClassStrategy = iota

	// StrategyEnum compares against each member, for classes of at most
	// maxEnumMembers bytes.
	StrategyEnum

	// StrategyRanges ORs clamp compares over at most maxRanges ranges.
	StrategyRanges

	// StrategyShufti looks up the low and high nibble of every byte in two
	// 16-entry tables and ANDs the results. Used when the class has at most
	// eight distinct high nibbles, one table bit each.
	StrategyShufti

	// StrategyBitmap tests every byte against the 256-bit membership set.
	StrategyBitmap
)

const (
	maxEnumMembers = 4
	maxRanges      = 3
	maxShuftiBits  = 8
)

// String returns a human-readable representation of the ClassStrategy
func (s ClassStrategy) String() string {
	switch s {
	case StrategyRange:
		return "range"
	case StrategyEnum:
		return "enum"
	case StrategyRanges:
		return "ranges"
	case StrategyShufti:
		return "shufti"
	case StrategyBitmap:
		return "bitmap"
	default:
		return fmt.Sprintf("ClassStrategy(%d)", s)
	}
}

// ClassMatcher tests bytes for membership in a fixed class. It is immutable
// and safe for concurrent use.
type ClassMatcher struct {
	set      byteset.Set
	strategy ClassStrategy

	// ranges as [lo, hi] lane broadcasts, for Range and Ranges.
	ranges [][2]uint64

	// member broadcasts, for Enum.
	members []uint64

	// nibble tables, for Shufti.
	loNibble [16]byte
	hiNibble [16]byte
}

// NewClassMatcher prepares a matcher for set, choosing the cheapest
// strategy that represents it exactly.
//
// Example:
//
//	m := simd.NewClassMatcher(byteset.Range('0', '9'))
//	// m.Strategy() == simd.StrategyRange
func NewClassMatcher(set byteset.Set) *ClassMatcher {
	m := &ClassMatcher{set: set}
	ranges := set.Ranges()
	switch {
	case len(ranges) == 1:
		m.strategy = StrategyRange
	case set.Len() <= maxEnumMembers:
		m.strategy = StrategyEnum
		for _, b := range set.Members() {
			m.members = append(m.members, broadcast(b))
		}
		return m
	case len(ranges) <= maxRanges:
		m.strategy = StrategyRanges
	case m.buildShufti():
		m.strategy = StrategyShufti
		return m
	default:
		m.strategy = StrategyBitmap
		return m
	}
	for _, r := range ranges {
		m.ranges = append(m.ranges, [2]uint64{broadcast(r[0]), broadcast(r[1])})
	}
	return m
}

// buildShufti assigns every distinct high nibble its own table bit. It
// reports false when the class needs more bits than a byte holds.
func (m *ClassMatcher) buildShufti() bool {
	var bucket [16]int
	next := 0
	for i := range bucket {
		bucket[i] = -1
	}
	for _, b := range m.set.Members() {
		hi := b >> 4
		if bucket[hi] < 0 {
			if next == maxShuftiBits {
				return false
			}
			bucket[hi] = next
			next++
		}
		bit := byte(1) << uint(bucket[hi])
		m.hiNibble[hi] |= bit
		m.loNibble[b&0x0f] |= bit
	}
	return true
}

// Strategy returns the membership strategy chosen for the class.
func (m *ClassMatcher) Strategy() ClassStrategy {
	return m.strategy
}

// Set returns the class members.
func (m *ClassMatcher) Set() byteset.Set {
	return m.set
}

// Contains reports whether b belongs to the class.
func (m *ClassMatcher) Contains(b byte) bool {
	return m.set.Contains(b)
}

// lanes marks the lanes of w that belong to the class.
func (m *ClassMatcher) lanes(w uint64) uint64 {
	switch m.strategy {
	case StrategyRange, StrategyRanges:
		var out uint64
		for _, r := range m.ranges {
			out |= leLanes(r[0], w) & leLanes(w, r[1])
		}
		return out
	case StrategyEnum:
		var out uint64
		for _, b := range m.members {
			out |= eqLanes(w, b)
		}
		return out
	case StrategyShufti:
		var out uint64
		for i := 0; i < 64; i += 8 {
			b := byte(w >> uint(i))
			if m.loNibble[b&0x0f]&m.hiNibble[b>>4] != 0 {
				out |= 0x80 << uint(i)
			}
		}
		return out
	default:
		var out uint64
		for i := 0; i < 64; i += 8 {
			if m.set.Contains(byte(w >> uint(i))) {
				out |= 0x80 << uint(i)
			}
		}
		return out
	}
}

// RepeatClass returns how many leading bytes of h belong to m's class,
// counting at most limit bytes. A negative limit means no limit.
//
// Example:
//
//	m := simd.NewClassMatcher(byteset.Range('0', '9'))
//	n := simd.RepeatClass([]byte("2024-01-01"), m, -1) // n == 4
func RepeatClass(h []byte, m *ClassMatcher, limit int) int {
	return repeatClassWith(Probe(), h, m, limit)
}

func repeatClassWith(c Capability, h []byte, m *ClassMatcher, limit int) int {
	h = clip(h, limit)
	if c.Width() == 0 || len(h) < threshold(c, ClassThreshold) {
		return repeatClassScalar(h, m)
	}
	return leadingRun(h, c.Width(), m.lanes)
}

func repeatClassScalar(h []byte, m *ClassMatcher) int {
	for i, b := range h {
		if !m.set.Contains(b) {
			return i
		}
	}
	return len(h)
}

// IndexClass returns the index of the first byte of h in m's class, or -1.
func IndexClass(h []byte, m *ClassMatcher) int {
	return indexClassWith(Probe(), h, m)
}

func indexClassWith(c Capability, h []byte, m *ClassMatcher) int {
	if c.Width() == 0 || len(h) < threshold(c, ClassThreshold) {
		for i, b := range h {
			if m.set.Contains(b) {
				return i
			}
		}
		return -1
	}
	var buf [maxWidth]byte
	width := c.Width()
	for i := 0; i < len(h); i += width {
		chunk, n := loadChunk(h, i, width, &buf)
		if hits := chunkMask(chunk, m.lanes) & lowBits(n); hits != 0 {
			return i + bits.TrailingZeros64(hits)
		}
	}
	return -1
}
