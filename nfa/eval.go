package nfa

import (
	"math/bits"

	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/internal/byteset"
)

// Evaluator is the reference matcher. It interprets the pattern tree
// directly: evaluating a node maps the set of offsets where it may start to
// the set of offsets where it may end. Counted repetitions are iterated
// exactly, so Evaluator is correct for every tree regardless of size, and
// every faster engine in this module is checked against it.
//
// Evaluator is immutable and safe for concurrent use; each call allocates
// its own offset sets.
type Evaluator struct {
	root       *ast.Node
	nullable   bool
	firstBytes byteset.Set
}

// NewEvaluator returns an evaluator for n.
func NewEvaluator(n *ast.Node) *Evaluator {
	a := Build(n)
	return &Evaluator{root: n, nullable: a.IsNullable(), firstBytes: a.FirstBytes()}
}

// Match reports whether the whole input matches.
func (e *Evaluator) Match(input []byte) bool {
	ends := e.endsFrom(input, 0)
	return ends.has(len(input))
}

// LongestAt returns the end of the longest match starting at start.
func (e *Evaluator) LongestAt(input []byte, start int) (end int, ok bool) {
	if start < 0 || start > len(input) {
		return -1, false
	}
	if start < len(input) && !e.nullable && !e.firstBytes.Contains(input[start]) {
		return -1, false
	}
	if start == len(input) && !e.nullable {
		return -1, false
	}
	end = e.endsFrom(input, start).max()
	return end, end >= 0
}

// Search returns the leftmost match, longest at that start.
func (e *Evaluator) Search(input []byte) (start, end int, ok bool) {
	return e.SearchRange(input, 0, len(input)+1)
}

// SearchRange is like Search but only considers starts in [from, limit).
func (e *Evaluator) SearchRange(input []byte, from, limit int) (start, end int, ok bool) {
	if limit > len(input)+1 {
		limit = len(input) + 1
	}
	for s := from; s < limit; s++ {
		if end, ok := e.LongestAt(input, s); ok {
			return s, end, true
		}
	}
	return -1, -1, false
}

func (e *Evaluator) endsFrom(input []byte, start int) offsetSet {
	s := newOffsetSet(len(input))
	s.add(start)
	return evalNode(e.root, input, s)
}

// evalNode returns the offsets where n can end given that it starts at any
// offset in from. from is not modified.
func evalNode(n *ast.Node, input []byte, from offsetSet) offsetSet {
	switch n.Kind {
	case ast.KindEmpty:
		return from
	case ast.KindLiteral:
		return from.step(input, func(c byte) bool { return c == n.Byte })
	case ast.KindAny:
		return from.step(input, func(byte) bool { return true })
	case ast.KindClass:
		set := n.Class.ByteSet()
		return from.step(input, set.Contains)
	case ast.KindString:
		cur := from
		for _, b := range n.Bytes {
			cur = cur.step(input, func(c byte) bool { return c == b })
			if cur.empty() {
				break
			}
		}
		return cur
	case ast.KindSequence:
		cur := from
		for _, sub := range n.Subs {
			cur = evalNode(sub, input, cur)
			if cur.empty() {
				break
			}
		}
		return cur
	case ast.KindAlternation:
		out := newOffsetSet(len(input))
		for _, sub := range n.Subs {
			out.or(evalNode(sub, input, from))
		}
		return out
	case ast.KindCapture:
		return evalNode(n.Sub(), input, from)
	case ast.KindRepeat:
		return evalRepeat(n, input, from)
	}
	return newOffsetSet(len(input))
}

func evalRepeat(n *ast.Node, input []byte, from offsetSet) offsetSet {
	sub := n.Sub()
	cur := from
	for i := 0; i < n.Min; i++ {
		cur = evalNode(sub, input, cur)
		if cur.empty() {
			return cur
		}
	}
	result := cur.clone()
	if n.Max == ast.Unbounded {
		// evaluation distributes over union, so only new offsets need
		// another iteration
		frontier := cur
		for {
			next := evalNode(sub, input, frontier).clone()
			next.andNot(result)
			if next.empty() {
				return result
			}
			result.or(next)
			frontier = next
		}
	}
	for i := n.Min; i < n.Max; i++ {
		cur = evalNode(sub, input, cur)
		if cur.empty() {
			break
		}
		result.or(cur)
	}
	return result
}

// offsetSet is a bitset over offsets 0..len(input).
type offsetSet []uint64

func newOffsetSet(inputLen int) offsetSet {
	return make(offsetSet, (inputLen+1+63)/64)
}

func (s offsetSet) add(i int) {
	s[i>>6] |= 1 << (uint(i) & 63)
}

func (s offsetSet) has(i int) bool {
	return s[i>>6]&(1<<(uint(i)&63)) != 0
}

func (s offsetSet) empty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

func (s offsetSet) clone() offsetSet {
	out := make(offsetSet, len(s))
	copy(out, s)
	return out
}

func (s offsetSet) or(o offsetSet) {
	for i := range s {
		s[i] |= o[i]
	}
}

func (s offsetSet) andNot(o offsetSet) {
	for i := range s {
		s[i] &^= o[i]
	}
}

// max returns the largest member, or -1.
func (s offsetSet) max() int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != 0 {
			return i<<6 + 63 - bits.LeadingZeros64(s[i])
		}
	}
	return -1
}

// step returns {i+1 : i in s, i < len(input), match(input[i])}.
func (s offsetSet) step(input []byte, match func(byte) bool) offsetSet {
	out := make(offsetSet, len(s))
	for w, word := range s {
		for word != 0 {
			i := w<<6 + bits.TrailingZeros64(word)
			word &= word - 1
			if i < len(input) && match(input[i]) {
				out.add(i + 1)
			}
		}
	}
	return out
}
