package ast

import (
	"strings"

	"github.com/coregx/rematch/internal/byteset"
)

// Range is an inclusive byte range [Lo, Hi].
type Range struct {
	Lo, Hi byte
}

// Single returns the one-byte range [b, b].
func Single(b byte) Range {
	return Range{Lo: b, Hi: b}
}

// Class is a normalized set of bytes. Construction merges overlapping and
// adjacent ranges; the result is immutable.
type Class struct {
	set byteset.Set
}

// NewClass returns the class of bytes covered by ranges. Inverted ranges
// (Lo > Hi) contribute nothing.
func NewClass(ranges ...Range) *Class {
	c := &Class{}
	for _, r := range ranges {
		c.set.AddRange(r.Lo, r.Hi)
	}
	return c
}

// NegatedClass returns the class of bytes not covered by ranges.
func NegatedClass(ranges ...Range) *Class {
	c := NewClass(ranges...)
	c.set = c.set.Complement()
	return c
}

// ClassFromSet wraps a byte set.
func ClassFromSet(s byteset.Set) *Class {
	return &Class{set: s}
}

// Contains reports whether b is a member.
func (c *Class) Contains(b byte) bool {
	return c.set.Contains(b)
}

// Len returns the number of member bytes.
func (c *Class) Len() int {
	return c.set.Len()
}

// Members returns the member bytes in ascending order.
func (c *Class) Members() []byte {
	return c.set.Members()
}

// Ranges returns the members as maximal ascending ranges.
func (c *Class) Ranges() []Range {
	rs := c.set.Ranges()
	out := make([]Range, len(rs))
	for i, r := range rs {
		out[i] = Range{Lo: r[0], Hi: r[1]}
	}
	return out
}

// ByteSet returns the class as a byte set.
func (c *Class) ByteSet() byteset.Set {
	return c.set
}

// String renders the class in bracket syntax, negating when that is
// shorter.
func (c *Class) String() string {
	var b strings.Builder
	set := c.set
	b.WriteByte('[')
	if set.Len() > 128 {
		b.WriteByte('^')
		set = set.Complement()
	}
	for _, r := range set.Ranges() {
		writeClassByte(&b, r[0])
		if r[1] != r[0] {
			if r[1] > r[0]+1 {
				b.WriteByte('-')
			}
			writeClassByte(&b, r[1])
		}
	}
	b.WriteByte(']')
	s := b.String()
	if s == "[^]" {
		return `[\x00-\xff]`
	}
	if s == "[]" {
		return `[^\x00-\xff]`
	}
	return s
}

func writeClassByte(b *strings.Builder, c byte) {
	switch {
	case c == ']' || c == '\\' || c == '^' || c == '-' || c == '[':
		b.WriteByte('\\')
		b.WriteByte(c)
	case c >= 0x20 && c < 0x7f:
		b.WriteByte(c)
	default:
		writeHex(b, c)
	}
}
