package meta

import (
	"bytes"

	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/internal/byteset"
	"github.com/coregx/rematch/simd"
)

// runElem is one element of a repetition sequence: a fixed string, or a run
// of between min and max bytes from set.
type runElem struct {
	lit      []byte
	set      byteset.Set
	b        byte
	class    *simd.ClassMatcher // nil when set has a single member b
	min, max int                // max is ast.Unbounded for open runs
}

func (el *runElem) nullable() bool {
	return el.lit == nil && el.min == 0
}

// first returns the bytes the element may begin with.
func (el *runElem) first() byteset.Set {
	if el.lit != nil {
		return byteset.Of(el.lit[0])
	}
	return el.set
}

// planRunSeq lowers n into repetition-sequence elements. ok is false when n
// does not have the repetition shape (see Classify).
func planRunSeq(n *ast.Node) (elems []runElem, ok bool) {
	repeats := 0
	for _, part := range flattenSequence(n, nil) {
		switch part.Kind {
		case ast.KindEmpty:
		case ast.KindLiteral:
			elems = append(elems, runElem{lit: []byte{part.Byte}})
		case ast.KindString:
			elems = append(elems, runElem{lit: part.Bytes})
		case ast.KindAny, ast.KindClass:
			elems = append(elems, runElem{set: symbolSet(part), min: 1, max: 1})
		case ast.KindRepeat:
			if !part.Sub().IsSingleByte() {
				return nil, false
			}
			elems = append(elems, runElem{set: symbolSet(part.Sub()), min: part.Min, max: part.Max})
			repeats++
		default:
			return nil, false
		}
	}
	if repeats == 0 {
		return nil, false
	}
	for i := range elems {
		el := &elems[i]
		if el.lit != nil || el.min == el.max {
			continue
		}
		if !el.set.Disjoint(followBytes(elems[i+1:])) {
			return nil, false
		}
	}
	return elems, true
}

// followBytes returns the bytes that may begin the rest of a sequence.
func followBytes(rest []runElem) byteset.Set {
	var s byteset.Set
	for i := range rest {
		s = s.Union(rest[i].first())
		if !rest[i].nullable() {
			break
		}
	}
	return s
}

// runSeq matches a repetition sequence greedily: each run takes its longest
// stretch, which is the only stretch that can lead to a match.
type runSeq struct {
	elems    []runElem
	kernels  simd.Kernels
	nullable bool
	first    *simd.ClassMatcher
	// skipRun is set when the first element is an open run; a failed start
	// inside that run fails for the same reason as the run's first byte.
	skipRun bool
}

func newRunSeq(elems []runElem, k simd.Kernels) *runSeq {
	r := &runSeq{elems: elems, kernels: k, nullable: true}
	for i := range elems {
		el := &elems[i]
		if el.lit == nil && el.set.Len() != 1 {
			el.class = simd.NewClassMatcher(el.set)
		} else if el.lit == nil {
			el.b, _ = el.set.Min()
		}
		if !el.nullable() {
			r.nullable = false
		}
	}
	r.first = simd.NewClassMatcher(followBytes(elems))
	r.skipRun = elems[0].lit == nil && elems[0].max == ast.Unbounded
	return r
}

// longestAt returns the end of the match starting at start. lead is the
// length of the first element's run.
func (r *runSeq) longestAt(input []byte, start int) (end int, ok bool, lead int) {
	i := start
	for k := range r.elems {
		el := &r.elems[k]
		if el.lit != nil {
			if !bytes.HasPrefix(input[i:], el.lit) {
				return -1, false, lead
			}
			i += len(el.lit)
			continue
		}
		var n int
		if el.class == nil {
			n = r.kernels.RepeatByte(input[i:], el.b, el.max)
		} else {
			n = r.kernels.RepeatClass(input[i:], el.class, el.max)
		}
		if k == 0 {
			lead = n
		}
		if n < el.min {
			return -1, false, lead
		}
		i += n
	}
	return i, true, lead
}

func (r *runSeq) match(input []byte) bool {
	end, ok, _ := r.longestAt(input, 0)
	return ok && end == len(input)
}

// searchAt returns the leftmost-longest match starting at or after at.
func (r *runSeq) searchAt(input []byte, at int) (start, end int, ok bool) {
	for s := at; s <= len(input); {
		if !r.nullable {
			if s == len(input) {
				break
			}
			i := r.kernels.IndexClass(input[s:], r.first)
			if i < 0 {
				break
			}
			s += i
		}
		end, ok, lead := r.longestAt(input, s)
		if ok {
			return s, end, true
		}
		if r.skipRun {
			s += max(lead, 1)
		} else {
			s++
		}
	}
	return -1, -1, false
}
