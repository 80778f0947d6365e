package nfa

import (
	"fmt"
	"strings"

	"github.com/coregx/rematch/internal/byteset"
)

// StateID identifies an automaton state. State 0 is the start state and
// state p (p >= 1) corresponds to position p.
type StateID uint32

// StartState is the id of the implicit start state.
const StartState StateID = 0

// StateKind identifies which symbol a state matches.
type StateKind uint8

const (
	// StateStart is the non-matching start state.
	StateStart StateKind = iota

	// StateByte matches exactly one byte value.
	StateByte

	// StateClass matches any byte of a set with two or more members (or
	// none, for a class that can never match).
	StateClass

	// StateAny matches every byte.
	StateAny
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateStart:
		return "Start"
	case StateByte:
		return "Byte"
	case StateClass:
		return "Class"
	case StateAny:
		return "Any"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State is one automaton state. In a position automaton every edge into a
// state is labelled with that state's symbol, so the symbol lives on the
// state rather than on its incoming transitions.
type State struct {
	id     StateID
	kind   StateKind
	b      byte
	set    byteset.Set
	succ   []StateID // ascending, no duplicates
	accept bool
}

// ID returns the state's identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's symbol kind
func (s *State) Kind() StateKind {
	return s.kind
}

// Byte returns the matched byte of a StateByte state.
func (s *State) Byte() byte {
	return s.b
}

// Set returns the bytes matched by the state (empty for the start state).
func (s *State) Set() byteset.Set {
	return s.set
}

// Matches reports whether the state's symbol accepts c.
func (s *State) Matches(c byte) bool {
	return s.set.Contains(c)
}

// Successors returns the ordered successor ids. The slice must not be
// modified.
func (s *State) Successors() []StateID {
	return s.succ
}

// IsAccept reports whether the state is accepting.
func (s *State) IsAccept() bool {
	return s.accept
}

// Automaton is an immutable position automaton. It is safe for concurrent
// use.
type Automaton struct {
	states     []State
	accepts    int
	nullable   bool
	firstBytes byteset.Set
}

// StateCount returns the number of states, positions plus the start state.
func (a *Automaton) StateCount() int {
	return len(a.states)
}

// Positions returns the number of positions.
func (a *Automaton) Positions() int {
	return len(a.states) - 1
}

// AcceptCount returns the number of accepting states.
func (a *Automaton) AcceptCount() int {
	return a.accepts
}

// State returns the state with the given id.
func (a *Automaton) State(id StateID) *State {
	return &a.states[id]
}

// States returns all states indexed by id. The slice must not be modified.
func (a *Automaton) States() []State {
	return a.states
}

// IsNullable reports whether the automaton accepts the empty input.
func (a *Automaton) IsNullable() bool {
	return a.nullable
}

// FirstBytes returns the set of bytes that can begin a non-empty match.
func (a *Automaton) FirstBytes() byteset.Set {
	return a.firstBytes
}

// Accepts returns the ids of the accepting states in ascending order.
func (a *Automaton) Accepts() []StateID {
	out := make([]StateID, 0, a.accepts)
	for i := range a.states {
		if a.states[i].accept {
			out = append(out, a.states[i].id)
		}
	}
	return out
}

// Predecessors returns, for every state, the ascending list of states that
// have it as a successor.
func (a *Automaton) Predecessors() [][]StateID {
	preds := make([][]StateID, len(a.states))
	for i := range a.states {
		for _, s := range a.states[i].succ {
			preds[s] = append(preds[s], a.states[i].id)
		}
	}
	return preds
}

// String returns a multi-line dump of the automaton, one state per line.
func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "automaton: %d states, %d accepting\n", len(a.states), a.accepts)
	for i := range a.states {
		s := &a.states[i]
		marker := " "
		if s.accept {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s%03d %-5s %-12s -> %v\n", marker, s.id, s.kind, symbolString(s), s.succ)
	}
	return b.String()
}

func symbolString(s *State) string {
	switch s.kind {
	case StateByte:
		return fmt.Sprintf("%q", s.b)
	case StateClass:
		rs := s.set.Ranges()
		parts := make([]string, len(rs))
		for i, r := range rs {
			if r[0] == r[1] {
				parts[i] = fmt.Sprintf("%02x", r[0])
			} else {
				parts[i] = fmt.Sprintf("%02x-%02x", r[0], r[1])
			}
		}
		return "[" + strings.Join(parts, " ") + "]"
	case StateAny:
		return "ANY"
	default:
		return ""
	}
}
