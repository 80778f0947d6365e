package meta

import (
	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/internal/byteset"
)

// MinAlternationBranches is the branch count from which a top-level
// alternation is run on the bit-parallel engine.
const MinAlternationBranches = 3

// Shape is the compile-time category of a pattern.
type Shape uint8

const (
	// ShapeOther covers every pattern without a dedicated engine.
	ShapeOther Shape = iota

	// ShapeRepetition is a sequence of single-symbol repetitions, single
	// symbols and strings that a greedy left-to-right scan matches exactly.
	ShapeRepetition

	// ShapeAlternation is a top-level alternation with at least
	// MinAlternationBranches branches.
	ShapeAlternation
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeOther:
		return "other"
	case ShapeRepetition:
		return "repetition"
	case ShapeAlternation:
		return "alternation"
	default:
		return "unknown"
	}
}

// Classify returns the shape of n.
//
// A pattern is a repetition when, looking through captures, it is a
// sequence of single-symbol repetitions, single symbols and strings holding
// at least one repetition, and the symbol set of every variable-length
// repetition is disjoint from the bytes that may follow it. Such a sequence
// has one way to match any input, so each repetition can take its longest
// run.
//
// Example:
//
//	meta.Classify(ast.MustParse(`[0-9]+\.[0-9]+`))     // ShapeRepetition
//	meta.Classify(ast.MustParse(`Tom|Sawyer|Huck|Finn`)) // ShapeAlternation
//	meta.Classify(ast.MustParse(`a+a`))                 // ShapeOther
func Classify(n *ast.Node) Shape {
	if _, ok := planRunSeq(n); ok {
		return ShapeRepetition
	}
	if root := n.Unwrap(); root.Kind == ast.KindAlternation && len(root.Subs) >= MinAlternationBranches {
		return ShapeAlternation
	}
	return ShapeOther
}

// flattenSequence appends the elements of n, looking through captures and
// nested sequences.
func flattenSequence(n *ast.Node, out []*ast.Node) []*ast.Node {
	n = n.Unwrap()
	if n.Kind != ast.KindSequence {
		return append(out, n)
	}
	for _, sub := range n.Subs {
		out = flattenSequence(sub, out)
	}
	return out
}

// symbolSet returns the bytes a single-byte node matches.
func symbolSet(n *ast.Node) byteset.Set {
	n = n.Unwrap()
	switch n.Kind {
	case ast.KindLiteral:
		return byteset.Of(n.Byte)
	case ast.KindClass:
		return n.Class.ByteSet()
	default:
		return byteset.Full()
	}
}

// hasLeadingWildcard reports whether the pattern starts with an unbounded
// repetition of (nearly) any byte, like `.*foo`. Such patterns have a match
// start for every offset before a literal hit, so lookback is not used.
func hasLeadingWildcard(n *ast.Node) bool {
	elems := flattenSequence(n, nil)
	if len(elems) == 0 {
		return false
	}
	first := elems[0]
	if first.Kind != ast.KindRepeat || first.Max != ast.Unbounded || !first.Sub().IsSingleByte() {
		return false
	}
	set := symbolSet(first.Sub())
	return set.Len() >= wildcardMinBytes
}

// wildcardMinBytes is the class size from which a repeated class counts as
// a wildcard; 255 admits `.` without the s flag.
const wildcardMinBytes = 255
