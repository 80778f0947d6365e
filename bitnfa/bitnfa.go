// Package bitnfa implements a bit-parallel simulation of a position
// automaton.
//
// The set of active positions is a bitmask with one bit per position. One
// input byte advances every active position at once: the follow masks of the
// active positions are ORed together and ANDed with the mask of positions
// whose symbol accepts the byte. Alternation branches therefore run in
// parallel without a backtracking stack.
//
// Automata with up to 64 positions use a single machine word; up to
// MaxPositions are supported with four words.
package bitnfa

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/coregx/rematch/internal/byteset"
	"github.com/coregx/rematch/nfa"
)

// MaxPositions is the largest automaton the engine accepts.
const MaxPositions = 256

// ErrTooManyPositions is returned by New for automata with more than
// MaxPositions positions.
var ErrTooManyPositions = errors.New("bitnfa: too many positions")

// Mask is a set of positions. Position p (p >= 1) is bit p-1.
type Mask [4]uint64

// Has reports whether position p is in the mask.
func (m Mask) Has(p nfa.StateID) bool {
	if p == 0 || p > MaxPositions {
		return false
	}
	i := p - 1
	return m[i>>6]&(1<<(i&63)) != 0
}

// IsEmpty reports whether no position is set.
func (m Mask) IsEmpty() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}

// Count returns the number of positions in the mask.
func (m Mask) Count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}

func (m *Mask) add(p nfa.StateID) {
	i := p - 1
	m[i>>6] |= 1 << (i & 63)
}

func (m Mask) and(o Mask) Mask {
	return Mask{m[0] & o[0], m[1] & o[1], m[2] & o[2], m[3] & o[3]}
}

func (m Mask) or(o Mask) Mask {
	return Mask{m[0] | o[0], m[1] | o[1], m[2] | o[2], m[3] | o[3]}
}

func (m Mask) intersects(o Mask) bool {
	return m[0]&o[0]|m[1]&o[1]|m[2]&o[2]|m[3]&o[3] != 0
}

// Engine is a compiled bit-parallel automaton. It is immutable and safe for
// concurrent use; matching allocates nothing.
type Engine struct {
	positions  int
	narrow     bool
	byteMasks  [256]Mask
	follow     []Mask // indexed by position-1
	first      Mask
	accept     Mask
	nullable   bool
	firstBytes byteset.Set
}

// New compiles a. The automaton must accept exactly the intended language
// (see nfa.BuildExact); New does not unroll counted repetitions.
//
// Example:
//
//	a, _ := nfa.BuildExact(ast.MustParse(`Tom|Sawyer|Huckleberry|Finn`), 1000)
//	e, err := bitnfa.New(a)
//	if err != nil {
//	    return err
//	}
//	e.Match([]byte("Huckleberry")) // true
func New(a *nfa.Automaton) (*Engine, error) {
	n := a.Positions()
	if n > MaxPositions {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPositions, n, MaxPositions)
	}
	e := &Engine{
		positions:  n,
		narrow:     n <= 64,
		follow:     make([]Mask, n),
		nullable:   a.IsNullable(),
		firstBytes: a.FirstBytes(),
	}
	for id := nfa.StateID(1); int(id) <= n; id++ {
		s := a.State(id)
		set := s.Set()
		for _, b := range set.Members() {
			e.byteMasks[b].add(id)
		}
		for _, t := range s.Successors() {
			e.follow[id-1].add(t)
		}
		if s.IsAccept() {
			e.accept.add(id)
		}
	}
	for _, t := range a.State(nfa.StartState).Successors() {
		e.first.add(t)
	}
	return e, nil
}

// Positions returns the number of positions.
func (e *Engine) Positions() int {
	return e.positions
}

// Start returns the positions reached from the start state by b.
func (e *Engine) Start(b byte) Mask {
	return e.first.and(e.byteMasks[b])
}

// Step returns the positions reached from cur by b.
func (e *Engine) Step(cur Mask, b byte) Mask {
	if e.narrow {
		var next uint64
		for w := cur[0]; w != 0; w &= w - 1 {
			next |= e.follow[bits.TrailingZeros64(w)][0]
		}
		return Mask{next & e.byteMasks[b][0]}
	}
	var next Mask
	for k, w := range cur {
		for ; w != 0; w &= w - 1 {
			next = next.or(e.follow[k<<6+bits.TrailingZeros64(w)])
		}
	}
	return next.and(e.byteMasks[b])
}

// IsAccepting reports whether m contains an accepting position.
func (e *Engine) IsAccepting(m Mask) bool {
	return m.intersects(e.accept)
}

// Reachable returns the active positions after each prefix of input:
// element i is the set reached by input[:i]. Element 0 is empty, the start
// state not being a position.
func (e *Engine) Reachable(input []byte) []Mask {
	out := make([]Mask, len(input)+1)
	for i, b := range input {
		if i == 0 {
			out[1] = e.Start(b)
		} else {
			out[i+1] = e.Step(out[i], b)
		}
	}
	return out
}

// Match reports whether the whole input is accepted.
func (e *Engine) Match(input []byte) bool {
	end, ok := e.LongestAt(input, 0)
	return ok && end == len(input)
}

// LongestAt returns the end of the longest match starting at start.
func (e *Engine) LongestAt(input []byte, start int) (end int, ok bool) {
	if start < 0 || start > len(input) {
		return -1, false
	}
	end = -1
	if e.nullable {
		end, ok = start, true
	}
	if start == len(input) {
		return end, ok
	}
	cur := e.Start(input[start])
	for i := start + 1; !cur.IsEmpty(); i++ {
		if cur.intersects(e.accept) {
			end, ok = i, true
		}
		if i == len(input) {
			break
		}
		cur = e.Step(cur, input[i])
	}
	return end, ok
}

// Search returns the leftmost-longest match in input.
func (e *Engine) Search(input []byte) (start, end int, ok bool) {
	return e.SearchAt(input, 0)
}

// SearchAt returns the leftmost-longest match in input starting at or after
// at. Offsets are relative to input.
//
// An unanchored pass finds the earliest offset at which any match ends; the
// leftmost match starts at or before it, so anchored runs from the candidate
// starts up to that offset find it.
func (e *Engine) SearchAt(input []byte, at int) (start, end int, ok bool) {
	if at < 0 || at > len(input) {
		return -1, -1, false
	}
	first, found := e.earliestEnd(input, at)
	if !found {
		return -1, -1, false
	}
	for s := at; s <= first; s++ {
		if !e.nullable && (s == len(input) || !e.firstBytes.Contains(input[s])) {
			continue
		}
		if end, ok := e.LongestAt(input, s); ok {
			return s, end, true
		}
	}
	return -1, -1, false
}

// earliestEnd returns the smallest offset at which a match starting at or
// after at ends.
func (e *Engine) earliestEnd(input []byte, at int) (int, bool) {
	if e.nullable {
		return at, true
	}
	var cur Mask
	for i := at; i < len(input); i++ {
		b := input[i]
		cur = e.Step(cur, b).or(e.Start(b))
		if cur.intersects(e.accept) {
			return i + 1, true
		}
	}
	return -1, false
}
