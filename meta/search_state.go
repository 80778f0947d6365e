package meta

import (
	"sync"

	"github.com/coregx/rematch/nfa"
)

// searchState holds per-search mutable state for concurrent searches on one
// Engine. It is obtained from a sync.Pool so that the compiled Engine stays
// immutable.
//
// Usage pattern:
//
//	state := engine.getSearchState()
//	defer engine.putSearchState(state)
//	// use state.cache for simulator calls
type searchState struct {
	// cache is the simulator scratch space. Nil when the engine has no
	// exact automaton.
	cache *nfa.SimCache
}

// searchStatePool manages a pool of searchState instances for thread-safe reuse.
// This follows the stdlib regexp pattern of using sync.Pool for concurrent safety.
type searchStatePool struct {
	pool sync.Pool
	sim  *nfa.Simulator
}

// newSearchStatePool creates a pool for sim, which may be nil.
func newSearchStatePool(sim *nfa.Simulator) *searchStatePool {
	p := &searchStatePool{sim: sim}
	p.pool = sync.Pool{
		New: func() any {
			state := &searchState{}
			if p.sim != nil {
				state.cache = p.sim.NewCache()
			}
			return state
		},
	}
	return p
}

// get retrieves a searchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *searchState {
	return p.pool.Get().(*searchState)
}

// put returns a searchState to the pool for reuse. Caches are cleared at the
// start of every simulation, so no reset is needed here.
func (p *searchStatePool) put(state *searchState) {
	if state == nil {
		return
	}
	p.pool.Put(state)
}
