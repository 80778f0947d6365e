package nfa

import (
	"github.com/coregx/rematch/internal/conv"
	"github.com/coregx/rematch/internal/sparse"
)

// Simulator runs a position automaton over the input one byte at a time,
// tracking the set of live states together with the earliest offset each
// was entered from. It finds the leftmost-longest match in a single pass in
// O(len(input) * edges).
//
// The automaton must be exact (see BuildExact) for results to agree with
// Evaluator. Simulator is immutable; per-call scratch space lives in a
// SimCache, which must not be shared between goroutines.
type Simulator struct {
	a *Automaton
}

// SimCache holds the two state sets a simulation alternates between.
type SimCache struct {
	cur, next *sparse.Set
}

// NewSimulator returns a simulator for a.
func NewSimulator(a *Automaton) *Simulator {
	return &Simulator{a: a}
}

// Automaton returns the simulated automaton.
func (s *Simulator) Automaton() *Automaton {
	return s.a
}

// NewCache allocates scratch space sized for the automaton.
func (s *Simulator) NewCache() *SimCache {
	n := conv.IntToUint32(s.a.StateCount())
	return &SimCache{cur: sparse.NewSet(n), next: sparse.NewSet(n)}
}

// Match reports whether the whole input is accepted.
func (s *Simulator) Match(c *SimCache, input []byte) bool {
	cur := c.cur
	cur.Clear()
	cur.Insert(uint32(StartState), 0)
	for i := 0; i < len(input); i++ {
		cur = s.step(c, cur, input[i])
		if cur.IsEmpty() {
			return false
		}
	}
	return s.anyAccept(cur)
}

// LongestAt returns the end of the longest match that starts at start.
func (s *Simulator) LongestAt(c *SimCache, input []byte, start int) (end int, ok bool) {
	if start < 0 || start > len(input) {
		return -1, false
	}
	end = -1
	cur := c.cur
	cur.Clear()
	cur.Insert(uint32(StartState), start)
	for i := start; ; i++ {
		if s.anyAccept(cur) {
			end = i
		}
		if i == len(input) {
			break
		}
		cur = s.step(c, cur, input[i])
		if cur.IsEmpty() {
			break
		}
	}
	return end, end >= 0
}

// Search returns the leftmost match, longest at that start.
func (s *Simulator) Search(c *SimCache, input []byte) (start, end int, ok bool) {
	return s.SearchRange(c, input, 0, len(input)+1)
}

// SearchRange is like Search but only starts matches at offsets in
// [from, limit).
func (s *Simulator) SearchRange(c *SimCache, input []byte, from, limit int) (start, end int, ok bool) {
	if limit > len(input)+1 {
		limit = len(input) + 1
	}
	bestStart, bestEnd := -1, -1
	first := s.a.FirstBytes()
	nullable := s.a.IsNullable()
	cur := c.cur
	cur.Clear()
	for i := from; ; i++ {
		if bestStart < 0 && i < limit {
			if cur.IsEmpty() && !nullable {
				// nothing is live: skip offsets that cannot begin a match
				for i < len(input) && i < limit && !first.Contains(input[i]) {
					i++
				}
				if i >= len(input) || i >= limit {
					break
				}
			}
			cur.Insert(uint32(StartState), i)
		}
		for k := 0; k < cur.Len(); k++ {
			id, st := cur.At(k)
			if !s.a.states[id].accept {
				continue
			}
			if bestStart < 0 || st < bestStart || (st == bestStart && i > bestEnd) {
				bestStart, bestEnd = st, i
			}
		}
		if bestStart >= 0 {
			// threads that began later can no longer win
			cur.Retain(bestStart)
		}
		if i == len(input) {
			break
		}
		if cur.IsEmpty() && (bestStart >= 0 || i+1 >= limit) {
			break
		}
		cur = s.step(c, cur, input[i])
	}
	if bestStart < 0 {
		return -1, -1, false
	}
	return bestStart, bestEnd, true
}

// step advances every live state over byte b and returns the new set,
// which is one of the cache's two sets.
func (s *Simulator) step(c *SimCache, cur *sparse.Set, b byte) *sparse.Set {
	next := c.next
	if cur == c.next {
		next = c.cur
	}
	next.Clear()
	for k := 0; k < cur.Len(); k++ {
		id, st := cur.At(k)
		for _, p := range s.a.states[id].succ {
			if s.a.states[p].set.Contains(b) {
				next.InsertMin(uint32(p), st)
			}
		}
	}
	return next
}

func (s *Simulator) anyAccept(set *sparse.Set) bool {
	for _, id := range set.Values() {
		if s.a.states[id].accept {
			return true
		}
	}
	return false
}
