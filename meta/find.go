package meta

import (
	"sync/atomic"

	"github.com/coregx/rematch/prefilter"
)

// Match reports whether the whole input matches the pattern.
//
// Example:
//
//	engine, _ := meta.Compile(`[0-9]+\.[0-9]+\.[0-9]+\.[0-9]+`)
//	engine.Match([]byte("192.168.1.1")) // true
func (e *Engine) Match(input []byte) bool {
	if len(input) < e.minLen || (e.maxLen != unboundedLen && len(input) > e.maxLen) {
		atomic.AddUint64(&e.stats.LengthRejects, 1)
		return false
	}
	if e.keys != nil {
		atomic.AddUint64(&e.stats.LiteralSetLookups, 1)
		return e.keys.contains(input)
	}
	if e.rejects(input, 0) {
		return false
	}

	switch e.strategy {
	case UseRepeat:
		atomic.AddUint64(&e.stats.RepeatSearches, 1)
		return e.runseq.match(input)
	case UseBitNFA:
		if len(input) >= MinBitNFAInput {
			atomic.AddUint64(&e.stats.BitNFASearches, 1)
			return e.bitnfa.Match(input)
		}
	}

	if e.simulator == nil {
		atomic.AddUint64(&e.stats.EvaluatorSearches, 1)
		return e.evaluator.Match(input)
	}
	atomic.AddUint64(&e.stats.SimulatorSearches, 1)
	state := e.getSearchState()
	defer e.putSearchState(state)
	return e.simulator.Match(state.cache, input)
}

// Search returns the leftmost match in input, longest at that start.
//
// Example:
//
//	engine, _ := meta.Compile(`(abc|def).*ghi`)
//	m := engine.Search([]byte("prefix def xxx ghi suffix"))
//	// m.Begin == 7, m.End == 18 ("def xxx ghi")
func (e *Engine) Search(input []byte) MatchResult {
	return e.SearchAt(input, 0)
}

// SearchAt is like Search but only reports matches starting at or after
// at. Offsets are relative to input. at outside [0, len(input)] yields no
// match.
//
// Example:
//
//	engine, _ := meta.Compile(`Tom|Sawyer|Huckleberry|Finn`)
//	m := engine.SearchAt([]byte("Mark Twain wrote Huckleberry Finn"), 18)
//	// m.Begin == 29, m.End == 33 ("Finn")
func (e *Engine) SearchAt(input []byte, at int) MatchResult {
	if at < 0 || at > len(input) {
		return MatchResult{}
	}
	if len(input)-at < e.minLen {
		atomic.AddUint64(&e.stats.LengthRejects, 1)
		return MatchResult{}
	}
	if e.rejects(input, at) {
		return MatchResult{}
	}

	switch e.strategy {
	case UseRepeat:
		atomic.AddUint64(&e.stats.RepeatSearches, 1)
		return result(e.runseq.searchAt(input, at))
	case UseBitNFA:
		if len(input)-at >= MinBitNFAInput {
			atomic.AddUint64(&e.stats.BitNFASearches, 1)
			return result(e.bitnfa.SearchAt(input, at))
		}
	case UseLookback:
		return e.searchLookback(input, at)
	}

	state := e.getSearchState()
	defer e.putSearchState(state)
	return result(e.searchRange(state, input, at, len(input)+1))
}

// rejects reports whether a definitive prefilter proves that no match
// starts at or after at.
func (e *Engine) rejects(input []byte, at int) bool {
	if e.prefilter == nil || !e.prefilter.IsDefinitive() {
		return false
	}
	var miss bool
	if r, ok := e.prefilter.(prefilter.Rejecter); ok && at == 0 {
		miss = r.Reject(input)
	} else {
		miss = e.prefilter.Find(input, at) < 0
	}
	if miss {
		atomic.AddUint64(&e.stats.PrefilterRejects, 1)
	}
	return miss
}

// longestAt returns the end of the longest match starting at start, on the
// simulator when there is an exact automaton and the evaluator otherwise.
func (e *Engine) longestAt(state *searchState, input []byte, start int) (int, bool) {
	if e.simulator != nil {
		return e.simulator.LongestAt(state.cache, input, start)
	}
	return e.evaluator.LongestAt(input, start)
}

// searchRange returns the leftmost-longest match starting in [from, limit).
func (e *Engine) searchRange(state *searchState, input []byte, from, limit int) (int, int, bool) {
	if e.simulator != nil {
		atomic.AddUint64(&e.stats.SimulatorSearches, 1)
		return e.simulator.SearchRange(state.cache, input, from, limit)
	}
	atomic.AddUint64(&e.stats.EvaluatorSearches, 1)
	return e.evaluator.SearchRange(input, from, limit)
}

func result(start, end int, ok bool) MatchResult {
	if !ok {
		return MatchResult{}
	}
	return found(start, end)
}
