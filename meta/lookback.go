package meta

import (
	"sync/atomic"

	"github.com/coregx/rematch/prefilter"
)

// LookbackWindow is how many bytes before a literal hit are tried as match
// starts.
const LookbackWindow = 64

// searchLookback finds the leftmost-longest match starting at or after at
// by verifying anchored matches just before each literal hit.
//
// Hits are visited in order and each tries the starts in
// [hit-LookbackWindow, hit] not tried before, so starts are tried in
// increasing order and the first success is the leftmost match among them.
//
// With an exact lookback every match starts at most LookbackWindow bytes
// before one of its literal hits, so the tried starts cover every possible
// match: the first success is the answer and running out of hits means
// there is none. Otherwise a success is confirmed by searching the starts
// before it, and running out of hits ends in a full search.
//
// The tracker retires the prefilter when too few hits lead to matches; the
// search then continues with the simulator past the starts already
// settled.
func (e *Engine) searchLookback(input []byte, at int) MatchResult {
	state := e.getSearchState()
	defer e.putSearchState(state)

	tracker := prefilter.NewTracker(e.prefilter)
	lastTried := at - 1
	for hit := tracker.Find(input, at); hit >= 0; hit = tracker.Find(input, hit+1) {
		for s := max(hit-LookbackWindow, lastTried+1); s <= hit; s++ {
			end, ok := e.longestAt(state, input, s)
			if !ok {
				continue
			}
			tracker.ConfirmMatch()
			atomic.AddUint64(&e.stats.LookbackHits, 1)
			if !e.exactLookback {
				// an untried start before s may still match
				if begin, end, ok := e.searchRange(state, input, at, s); ok {
					return found(begin, end)
				}
			}
			return found(s, end)
		}
		lastTried = hit
	}

	from := at
	if e.exactLookback {
		if tracker.IsActive() {
			return MatchResult{}
		}
		// every start up to lastTried is settled
		from = lastTried + 1
	}
	if !tracker.IsActive() {
		atomic.AddUint64(&e.stats.PrefilterAbandoned, 1)
	}
	atomic.AddUint64(&e.stats.LookbackFallbacks, 1)
	return result(e.searchRange(state, input, from, len(input)+1))
}
