// Package byteset provides a 256-bit membership set over byte values.
//
// A Set is a plain value (four machine words) so it can be copied, compared
// with == and used as a map key. It is the symbol representation shared by
// automaton states, class matchers and literal analysis.
package byteset

import "math/bits"

// Set is a set of bytes. The zero value is the empty set.
type Set [4]uint64

// Of returns a set containing the given bytes.
func Of(bs ...byte) Set {
	var s Set
	for _, b := range bs {
		s.Add(b)
	}
	return s
}

// Range returns the set of bytes in [lo, hi]. It returns the empty set when
// lo > hi.
func Range(lo, hi byte) Set {
	var s Set
	s.AddRange(lo, hi)
	return s
}

// Full returns the set of all 256 byte values.
func Full() Set {
	return Set{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
}

// Add inserts b.
func (s *Set) Add(b byte) {
	s[b>>6] |= 1 << (b & 63)
}

// AddRange inserts every byte in [lo, hi].
func (s *Set) AddRange(lo, hi byte) {
	if lo > hi {
		return
	}
	for c := int(lo); c <= int(hi); c++ {
		s[c>>6] |= 1 << (uint(c) & 63)
	}
}

// Contains reports whether b is in the set.
func (s Set) Contains(b byte) bool {
	return s[b>>6]&(1<<(b&63)) != 0
}

// Len returns the number of bytes in the set.
func (s Set) Len() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) +
		bits.OnesCount64(s[2]) + bits.OnesCount64(s[3])
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return s[0]|s[1]|s[2]|s[3] == 0
}

// IsFull reports whether the set contains all 256 bytes.
func (s Set) IsFull() bool {
	return s[0]&s[1]&s[2]&s[3] == ^uint64(0)
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	return Set{s[0] | o[0], s[1] | o[1], s[2] | o[2], s[3] | o[3]}
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	return Set{s[0] & o[0], s[1] & o[1], s[2] & o[2], s[3] & o[3]}
}

// Complement returns the set of bytes not in s.
func (s Set) Complement() Set {
	return Set{^s[0], ^s[1], ^s[2], ^s[3]}
}

// Disjoint reports whether s and o share no member.
func (s Set) Disjoint(o Set) bool {
	return s.Intersect(o).IsEmpty()
}

// Members returns the bytes of the set in ascending order.
func (s Set) Members() []byte {
	out := make([]byte, 0, s.Len())
	for w := 0; w < 4; w++ {
		word := s[w]
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			out = append(out, byte(w<<6|tz))
			word &= word - 1
		}
	}
	return out
}

// Min returns the smallest member. ok is false for the empty set.
func (s Set) Min() (b byte, ok bool) {
	for w := 0; w < 4; w++ {
		if s[w] != 0 {
			return byte(w<<6 | bits.TrailingZeros64(s[w])), true
		}
	}
	return 0, false
}

// Ranges returns the members as maximal contiguous [lo, hi] pairs.
func (s Set) Ranges() [][2]byte {
	var out [][2]byte
	inRun := false
	var lo byte
	for c := 0; c < 256; c++ {
		in := s.Contains(byte(c))
		switch {
		case in && !inRun:
			lo, inRun = byte(c), true
		case !in && inRun:
			out = append(out, [2]byte{lo, byte(c - 1)})
			inRun = false
		}
	}
	if inRun {
		out = append(out, [2]byte{lo, 255})
	}
	return out
}
