package ast

import "math"

// Unroll rewrites counted repetitions into concatenations of copies so the
// result only uses ?, * and +. A position automaton built from the result
// accepts exactly the language of n, whereas one built from n itself treats
// x{2,5} like x+.
//
//	x{3}   -> xxx
//	x{2,}  -> xx+
//	x{1,3} -> xx?x?
//
// Copies share child nodes; the tree is a DAG, which every consumer in this
// module walks per occurrence. ok is false, and nothing is built, when the
// rewritten tree would hold more than limit byte-matching leaves.
func Unroll(n *Node, limit int) (out *Node, ok bool) {
	if leafEstimate(n) > uint64(limit) {
		return nil, false
	}
	if !HasCountedRepeat(n) {
		return n, true
	}
	return unroll(n), true
}

func unroll(n *Node) *Node {
	switch n.Kind {
	case KindSequence, KindAlternation:
		subs := make([]*Node, len(n.Subs))
		for i, sub := range n.Subs {
			subs[i] = unroll(sub)
		}
		return &Node{Kind: n.Kind, Subs: subs}
	case KindCapture:
		return Capture(n.Index, unroll(n.Sub()))
	case KindRepeat:
		return unrollRepeat(n.Min, n.Max, unroll(n.Sub()))
	default:
		return n
	}
}

func unrollRepeat(min, max int, sub *Node) *Node {
	if isSimpleRepeat(min, max) {
		return Repeat(min, max, sub)
	}
	if max == 0 {
		return Empty()
	}
	if max == Unbounded {
		parts := make([]*Node, 0, min)
		for i := 0; i < min-1; i++ {
			parts = append(parts, sub)
		}
		return Seq(append(parts, Plus(sub))...)
	}
	parts := make([]*Node, 0, max)
	for i := 0; i < min; i++ {
		parts = append(parts, sub)
	}
	for i := min; i < max; i++ {
		parts = append(parts, Quest(sub))
	}
	return Seq(parts...)
}

// leafEstimate counts the byte positions of the unrolled tree, saturating
// at MaxUint64.
func leafEstimate(n *Node) uint64 {
	switch n.Kind {
	case KindLiteral, KindAny, KindClass:
		return 1
	case KindString:
		return uint64(len(n.Bytes))
	case KindSequence, KindAlternation:
		var total uint64
		for _, sub := range n.Subs {
			total = satAdd(total, leafEstimate(sub))
		}
		return total
	case KindCapture:
		return leafEstimate(n.Sub())
	case KindRepeat:
		copies := uint64(1)
		switch {
		case n.Max == 0:
			copies = 0
		case n.Max == Unbounded && n.Min > 1:
			copies = uint64(n.Min)
		case n.Max > 1:
			copies = uint64(n.Max)
		}
		return satMul(copies, leafEstimate(n.Sub()))
	default:
		return 0
	}
}

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func satMul(a, b uint64) uint64 {
	if a != 0 && b > math.MaxUint64/a {
		return math.MaxUint64
	}
	return a * b
}
