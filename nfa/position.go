package nfa

import (
	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/internal/byteset"
	"github.com/coregx/rematch/internal/conv"
)

// Nullable reports whether n matches the empty string.
func Nullable(n *ast.Node) bool {
	ar := newArena(n)
	return ar.entries[ar.root()].nullable
}

// FirstPositions returns the ascending positions that can match the first
// byte of a non-empty match of n.
func FirstPositions(n *ast.Node) []StateID {
	ar := newArena(n)
	return ar.entries[ar.root()].first
}

// LastPositions returns the ascending positions that can match the last
// byte of a non-empty match of n.
func LastPositions(n *ast.Node) []StateID {
	ar := newArena(n)
	return ar.entries[ar.root()].last
}

// CountPositions returns the number of positions of n: one per literal
// byte, class or wildcard leaf.
func CountPositions(n *ast.Node) int {
	count := 0
	walkOccurrences(n, func(m *ast.Node) {
		switch m.Kind {
		case ast.KindLiteral, ast.KindAny, ast.KindClass:
			count++
		case ast.KindString:
			count += len(m.Bytes)
		}
	})
	return count
}

// walkOccurrences visits every node occurrence in pre-order without
// recursion. A subtree shared by several parents is visited once per parent.
func walkOccurrences(n *ast.Node, fn func(*ast.Node)) {
	stack := []*ast.Node{n}
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(m)
		for i := len(m.Subs) - 1; i >= 0; i-- {
			stack = append(stack, m.Subs[i])
		}
	}
}

// entry is the per-occurrence record of the arena.
type entry struct {
	node     *ast.Node
	subs     []int32 // arena indices of the children, in order
	pos      StateID // first position of a leaf; 0 for inner nodes
	nullable bool
	first    []StateID
	last     []StateID
}

// position records the symbol of one position.
type position struct {
	kind StateKind
	b    byte
	set  byteset.Set
}

// arena is a post-order flattening of a tree. Children always precede their
// parent and the root is the final entry, so bottom-up attributes are a
// forward sweep and top-down ones a backward sweep. Leaves are numbered in
// visiting order, which is left to right.
type arena struct {
	entries   []entry
	positions []position // index 0 is the start state
}

func (ar *arena) root() int {
	return len(ar.entries) - 1
}

func newArena(n *ast.Node) *arena {
	ar := &arena{positions: []position{{kind: StateStart}}}

	type frame struct {
		node *ast.Node
		next int     // next child to descend into
		subs []int32 // finished children
	}
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.Subs) {
			child := top.node.Subs[top.next]
			top.next++
			stack = append(stack, frame{node: child})
			continue
		}
		idx := ar.emit(top.node, top.subs)
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := &stack[len(stack)-1]
			parent.subs = append(parent.subs, idx)
		}
	}
	return ar
}

// emit appends the entry for node once its children are emitted and
// computes nullable, first and last.
func (ar *arena) emit(node *ast.Node, subs []int32) int32 {
	e := entry{node: node, subs: subs}
	switch node.Kind {
	case ast.KindEmpty:
		e.nullable = true

	case ast.KindLiteral:
		e.pos = ar.addPosition(position{kind: StateByte, b: node.Byte, set: byteset.Of(node.Byte)})
		e.first = []StateID{e.pos}
		e.last = e.first

	case ast.KindAny:
		e.pos = ar.addPosition(position{kind: StateAny, set: byteset.Full()})
		e.first = []StateID{e.pos}
		e.last = e.first

	case ast.KindClass:
		e.pos = ar.addPosition(classPosition(node.Class.ByteSet()))
		e.first = []StateID{e.pos}
		e.last = e.first

	case ast.KindString:
		e.pos = StateID(len(ar.positions))
		for _, c := range node.Bytes {
			ar.addPosition(position{kind: StateByte, b: c, set: byteset.Of(c)})
		}
		e.nullable = len(node.Bytes) == 0
		if len(node.Bytes) > 0 {
			e.first = []StateID{e.pos}
			e.last = []StateID{StateID(len(ar.positions) - 1)}
		}

	case ast.KindSequence:
		e.nullable = true
		for _, si := range subs {
			sub := &ar.entries[si]
			if e.nullable {
				e.first = union(e.first, sub.first)
			}
			if sub.nullable {
				e.last = union(e.last, sub.last)
			} else {
				e.last = sub.last
			}
			e.nullable = e.nullable && sub.nullable
		}

	case ast.KindAlternation:
		for _, si := range subs {
			sub := &ar.entries[si]
			e.first = union(e.first, sub.first)
			e.last = union(e.last, sub.last)
			e.nullable = e.nullable || sub.nullable
		}

	case ast.KindRepeat:
		sub := &ar.entries[subs[0]]
		e.nullable = node.Min == 0 || sub.nullable
		if node.Max != 0 {
			e.first = sub.first
			e.last = sub.last
		}

	case ast.KindCapture:
		sub := &ar.entries[subs[0]]
		e.nullable = sub.nullable
		e.first = sub.first
		e.last = sub.last
	}
	ar.entries = append(ar.entries, e)
	return int32(len(ar.entries) - 1)
}

func (ar *arena) addPosition(p position) StateID {
	ar.positions = append(ar.positions, p)
	return StateID(conv.IntToUint32(len(ar.positions) - 1))
}

// classPosition narrows a class to a byte or wildcard symbol when possible.
func classPosition(set byteset.Set) position {
	switch {
	case set.Len() == 1:
		b, _ := set.Min()
		return position{kind: StateByte, b: b, set: set}
	case set.IsFull():
		return position{kind: StateAny, set: set}
	default:
		return position{kind: StateClass, set: set}
	}
}

// union merges two ascending id lists. Inputs are never modified; when one
// side is empty the other is returned as is.
func union(a, b []StateID) []StateID {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]StateID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
