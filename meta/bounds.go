package meta

import (
	"math"

	"github.com/coregx/rematch/ast"
)

// unboundedLen marks a pattern whose matches have no maximum length.
const unboundedLen = -1

// lengthBounds returns the shortest and longest match length of n. max is
// unboundedLen when matches can be arbitrarily long. Lengths saturate at
// math.MaxInt32.
func lengthBounds(n *ast.Node) (minLen, maxLen int) {
	switch n.Kind {
	case ast.KindEmpty:
		return 0, 0
	case ast.KindLiteral, ast.KindAny, ast.KindClass:
		return 1, 1
	case ast.KindString:
		return len(n.Bytes), len(n.Bytes)
	case ast.KindCapture:
		return lengthBounds(n.Sub())
	case ast.KindSequence:
		for _, sub := range n.Subs {
			lo, hi := lengthBounds(sub)
			minLen = satAdd(minLen, lo)
			if maxLen != unboundedLen {
				if hi == unboundedLen {
					maxLen = unboundedLen
				} else {
					maxLen = satAdd(maxLen, hi)
				}
			}
		}
		return minLen, maxLen
	case ast.KindAlternation:
		minLen = math.MaxInt32
		for _, sub := range n.Subs {
			lo, hi := lengthBounds(sub)
			minLen = min(minLen, lo)
			if maxLen != unboundedLen {
				if hi == unboundedLen {
					maxLen = unboundedLen
				} else {
					maxLen = max(maxLen, hi)
				}
			}
		}
		return minLen, maxLen
	case ast.KindRepeat:
		lo, hi := lengthBounds(n.Sub())
		minLen = satMul(lo, n.Min)
		switch {
		case n.Max == 0 || hi == 0:
			maxLen = 0
		case n.Max == ast.Unbounded || hi == unboundedLen:
			maxLen = unboundedLen
		default:
			maxLen = satMul(hi, n.Max)
		}
		return minLen, maxLen
	}
	return 0, unboundedLen
}

func satAdd(a, b int) int {
	if a > math.MaxInt32-b {
		return math.MaxInt32
	}
	return a + b
}

func satMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt32/b {
		return math.MaxInt32
	}
	return a * b
}
