package literal

import (
	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/internal/byteset"
)

// ExpandClass enumerates the members of c when it has at most
// MaxCharClassExpansion of them, so that [0-3] can be treated like 0|1|2|3
// during extraction. Larger classes are not expandable and stay opaque.
//
// Example:
//
//	members, ok := literal.ExpandClass(ast.NewClass(ast.Range{Lo: '0', Hi: '3'}))
//	// members == []byte("0123"), ok == true
func ExpandClass(c *ast.Class) (members []byte, ok bool) {
	return expandSet(c.ByteSet())
}

// Expand is ExpandClass for a node. Literal nodes expand to themselves;
// other kinds are not expandable.
func Expand(n *ast.Node) (members []byte, ok bool) {
	n = n.Unwrap()
	switch n.Kind {
	case ast.KindLiteral:
		return []byte{n.Byte}, true
	case ast.KindClass:
		return ExpandClass(n.Class)
	}
	return nil, false
}

func expandSet(s byteset.Set) ([]byte, bool) {
	if n := s.Len(); n == 0 || n > MaxCharClassExpansion {
		return nil, false
	}
	return s.Members(), true
}

// crossProduct appends every member to every prefix. The result has
// len(prefixes)*len(members) strings.
func crossProduct(prefixes [][]byte, members []byte) [][]byte {
	out := make([][]byte, 0, len(prefixes)*len(members))
	for _, p := range prefixes {
		for _, m := range members {
			s := make([]byte, len(p)+1)
			copy(s, p)
			s[len(p)] = m
			out = append(out, s)
		}
	}
	return out
}
