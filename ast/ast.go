// Package ast defines the immutable pattern syntax tree consumed by the
// matching engine.
//
// A Node is a tagged union: Kind selects which payload fields are meaningful.
// Trees are built once, either with the constructors in this package or by
// lowering a regexp/syntax tree with FromSyntax, and are never mutated
// afterwards, so they can be shared freely between compiled matchers.
//
// The engine is byte oriented. Literal text is matched as its UTF-8
// encoding, while character classes and the any-character wildcard operate
// on single bytes; class ranges beyond 0xFF are clipped.
//
// Example:
//
//	// (foo|bar)suffix
//	n := ast.Seq(
//	    ast.Capture(1, ast.Alt(ast.Str("foo"), ast.Str("bar"))),
//	    ast.Str("suffix"),
//	)
package ast

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a Node.
type Kind uint8

const (
	// KindEmpty matches the empty string.
	KindEmpty Kind = iota

	// KindLiteral matches the single byte Node.Byte.
	KindLiteral

	// KindString matches the byte string Node.Bytes, one position per byte.
	KindString

	// KindAny matches any single byte.
	KindAny

	// KindClass matches one byte from Node.Class.
	KindClass

	// KindSequence matches Node.Subs in order.
	KindSequence

	// KindAlternation matches any one of Node.Subs (at least two).
	KindAlternation

	// KindRepeat matches Node.Subs[0] between Min and Max times.
	// Max is Unbounded for open-ended repetition.
	KindRepeat

	// KindCapture marks group Node.Index around Node.Subs[0]. It has no
	// effect on which inputs match.
	KindCapture
)

// Unbounded is the Max of a repetition with no upper limit.
const Unbounded = -1

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindLiteral:
		return "Literal"
	case KindString:
		return "String"
	case KindAny:
		return "Any"
	case KindClass:
		return "Class"
	case KindSequence:
		return "Sequence"
	case KindAlternation:
		return "Alternation"
	case KindRepeat:
		return "Repeat"
	case KindCapture:
		return "Capture"
	default:
		return "Unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is one vertex of a pattern tree.
type Node struct {
	Kind Kind

	// Byte is the matched byte of a KindLiteral node.
	Byte byte

	// Bytes is the matched text of a KindString node.
	Bytes []byte

	// Class is the byte set of a KindClass node.
	Class *Class

	// Subs holds the children of Sequence, Alternation, Repeat and Capture.
	Subs []*Node

	// Min and Max bound a KindRepeat node.
	Min, Max int

	// Index is the group number of a KindCapture node.
	Index int
}

// Empty returns a node matching the empty string.
func Empty() *Node {
	return &Node{Kind: KindEmpty}
}

// Lit returns a node matching the single byte b.
func Lit(b byte) *Node {
	return &Node{Kind: KindLiteral, Byte: b}
}

// Str returns a node matching s literally. A one-byte string becomes a
// Literal node and the empty string an Empty node.
func Str(s string) *Node {
	switch len(s) {
	case 0:
		return Empty()
	case 1:
		return Lit(s[0])
	}
	return &Node{Kind: KindString, Bytes: []byte(s)}
}

// Any returns a node matching any byte.
func Any() *Node {
	return &Node{Kind: KindAny}
}

// ClassOf returns a node matching one byte from the given ranges.
func ClassOf(ranges ...Range) *Node {
	return &Node{Kind: KindClass, Class: NewClass(ranges...)}
}

// ClassNode returns a node matching one byte from c.
func ClassNode(c *Class) *Node {
	return &Node{Kind: KindClass, Class: c}
}

// Seq returns the concatenation of subs. Zero subs give Empty and a single
// sub is returned unchanged.
func Seq(subs ...*Node) *Node {
	switch len(subs) {
	case 0:
		return Empty()
	case 1:
		return subs[0]
	}
	return &Node{Kind: KindSequence, Subs: subs}
}

// Alt returns the alternation of subs. A single sub is returned unchanged.
func Alt(subs ...*Node) *Node {
	switch len(subs) {
	case 0:
		return Empty()
	case 1:
		return subs[0]
	}
	return &Node{Kind: KindAlternation, Subs: subs}
}

// Repeat returns sub repeated between min and max times (max may be
// Unbounded).
func Repeat(min, max int, sub *Node) *Node {
	return &Node{Kind: KindRepeat, Min: min, Max: max, Subs: []*Node{sub}}
}

// Star returns sub*.
func Star(sub *Node) *Node { return Repeat(0, Unbounded, sub) }

// Plus returns sub+.
func Plus(sub *Node) *Node { return Repeat(1, Unbounded, sub) }

// Quest returns sub?.
func Quest(sub *Node) *Node { return Repeat(0, 1, sub) }

// Capture returns group index around sub.
func Capture(index int, sub *Node) *Node {
	return &Node{Kind: KindCapture, Index: index, Subs: []*Node{sub}}
}

// Sub returns the only child of a Repeat or Capture node.
func (n *Node) Sub() *Node {
	return n.Subs[0]
}

// Unwrap strips Capture wrappers.
func (n *Node) Unwrap() *Node {
	for n.Kind == KindCapture {
		n = n.Subs[0]
	}
	return n
}

// IsSingleByte reports whether n matches exactly one byte (Literal, Any or
// Class), looking through captures.
func (n *Node) IsSingleByte() bool {
	switch n.Unwrap().Kind {
	case KindLiteral, KindAny, KindClass:
		return true
	}
	return false
}

// Walk calls fn for n and, while fn returns true, for its descendants in
// pre-order.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, sub := range n.Subs {
		Walk(sub, fn)
	}
}

// Size returns the number of nodes in the tree rooted at n.
func Size(n *Node) int {
	count := 0
	Walk(n, func(*Node) bool {
		count++
		return true
	})
	return count
}

// HasCountedRepeat reports whether the tree contains a repetition other than
// ?, * and +.
func HasCountedRepeat(n *Node) bool {
	found := false
	Walk(n, func(m *Node) bool {
		if m.Kind == KindRepeat && !isSimpleRepeat(m.Min, m.Max) {
			found = true
		}
		return !found
	})
	return found
}

func isSimpleRepeat(min, max int) bool {
	return (min == 0 && max == 1) || (min <= 1 && max == Unbounded)
}

// String renders n in regexp syntax. Any is rendered as (?s:.).
func (n *Node) String() string {
	var b strings.Builder
	writeNode(&b, n, false)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, tight bool) {
	switch n.Kind {
	case KindEmpty:
		b.WriteString("(?:)")
	case KindLiteral:
		writeByte(b, n.Byte)
	case KindString:
		if tight {
			b.WriteString("(?:")
		}
		for _, c := range n.Bytes {
			writeByte(b, c)
		}
		if tight {
			b.WriteString(")")
		}
	case KindAny:
		b.WriteString("(?s:.)")
	case KindClass:
		b.WriteString(n.Class.String())
	case KindSequence:
		if tight {
			b.WriteString("(?:")
		}
		for _, sub := range n.Subs {
			writeNode(b, sub, sub.Kind == KindAlternation)
		}
		if tight {
			b.WriteString(")")
		}
	case KindAlternation:
		if tight {
			b.WriteString("(?:")
		}
		for i, sub := range n.Subs {
			if i > 0 {
				b.WriteByte('|')
			}
			writeNode(b, sub, false)
		}
		if tight {
			b.WriteString(")")
		}
	case KindRepeat:
		if tight {
			b.WriteString("(?:")
		}
		sub := n.Sub()
		writeNode(b, sub, sub.Kind != KindLiteral && sub.Kind != KindAny &&
			sub.Kind != KindClass && sub.Kind != KindCapture)
		writeRepeat(b, n.Min, n.Max)
		if tight {
			b.WriteString(")")
		}
	case KindCapture:
		b.WriteByte('(')
		writeNode(b, n.Sub(), false)
		b.WriteByte(')')
	}
}

func writeRepeat(b *strings.Builder, min, max int) {
	switch {
	case min == 0 && max == Unbounded:
		b.WriteByte('*')
	case min == 1 && max == Unbounded:
		b.WriteByte('+')
	case min == 0 && max == 1:
		b.WriteByte('?')
	case max == Unbounded:
		b.WriteString("{" + strconv.Itoa(min) + ",}")
	case min == max:
		b.WriteString("{" + strconv.Itoa(min) + "}")
	default:
		b.WriteString("{" + strconv.Itoa(min) + "," + strconv.Itoa(max) + "}")
	}
}

const metaChars = `\.+*?()|[]{}^$`

func writeByte(b *strings.Builder, c byte) {
	switch {
	case strings.IndexByte(metaChars, c) >= 0:
		b.WriteByte('\\')
		b.WriteByte(c)
	case c >= 0x20 && c < 0x7f:
		b.WriteByte(c)
	default:
		writeHex(b, c)
	}
}

func writeHex(b *strings.Builder, c byte) {
	const hex = "0123456789abcdef"
	b.WriteString(`\x`)
	b.WriteByte(hex[c>>4])
	b.WriteByte(hex[c&15])
}
