package nfa

import (
	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/internal/byteset"
)

// Build constructs the position automaton of n.
//
// Successor sets are computed by threading a continuation from the root
// down: a sequence hands each part the first positions of whatever follows
// it, an alternation hands its own continuation to every branch, and a
// repetition that may iterate adds its content's first positions to the
// continuation, which closes the loop. A position's successors are the
// continuation that reaches it. Accepting states are the last positions of
// n, plus the start state when n is nullable.
//
// Counted repetitions contribute their content once, so x{2,5} yields the
// same automaton as x+. The result is exact for ?, * and +; use BuildExact
// when the automaton must accept exactly the language of n.
func Build(n *ast.Node) *Automaton {
	ar := newArena(n)
	conts := make([][]StateID, len(ar.entries))
	succ := make([][]StateID, len(ar.positions))

	// Entries are in post-order, so walking backwards visits every parent
	// before its children.
	for i := ar.root(); i >= 0; i-- {
		e := &ar.entries[i]
		cont := conts[i]
		switch e.node.Kind {
		case ast.KindLiteral, ast.KindAny, ast.KindClass:
			succ[e.pos] = cont

		case ast.KindString:
			if len(e.node.Bytes) == 0 {
				continue
			}
			last := int(e.pos) + len(e.node.Bytes) - 1
			for p := int(e.pos); p < last; p++ {
				succ[p] = []StateID{StateID(p + 1)}
			}
			succ[last] = cont

		case ast.KindSequence:
			c := cont
			for k := len(e.subs) - 1; k >= 0; k-- {
				sub := &ar.entries[e.subs[k]]
				conts[e.subs[k]] = c
				if sub.nullable {
					c = union(sub.first, c)
				} else {
					c = sub.first
				}
			}

		case ast.KindAlternation:
			for _, si := range e.subs {
				conts[si] = cont
			}

		case ast.KindRepeat:
			si := e.subs[0]
			if e.node.Max == 0 || e.node.Max == 1 {
				conts[si] = cont
			} else {
				conts[si] = union(ar.entries[si].first, cont)
			}

		case ast.KindCapture:
			conts[e.subs[0]] = cont
		}
	}

	root := &ar.entries[ar.root()]
	a := &Automaton{
		states:   make([]State, len(ar.positions)),
		nullable: root.nullable,
	}
	for i, p := range ar.positions {
		a.states[i] = State{id: StateID(i), kind: p.kind, b: p.b, set: p.set}
	}
	a.states[StartState].succ = root.first
	for p := 1; p < len(succ); p++ {
		a.states[p].succ = succ[p]
	}
	for _, p := range root.last {
		a.states[p].accept = true
	}
	a.states[StartState].accept = root.nullable
	for i := range a.states {
		if a.states[i].accept {
			a.accepts++
		}
	}
	var fb byteset.Set
	for _, p := range root.first {
		fb = fb.Union(a.states[p].set)
	}
	a.firstBytes = fb
	return a
}

// BuildExact constructs an automaton accepting exactly the language of n by
// unrolling counted repetitions first. It returns a *BuildError wrapping
// ErrTooLarge when the unrolled pattern would have more than limit
// positions.
func BuildExact(n *ast.Node, limit int) (*Automaton, error) {
	unrolled, ok := ast.Unroll(n, limit)
	if !ok {
		return nil, &BuildError{
			Message: "counted repetition expands past the position limit",
			Limit:   limit,
			Err:     ErrTooLarge,
		}
	}
	return Build(unrolled), nil
}
