package prefilter

// Tracker wraps a Prefilter with effectiveness tracking for one search.
//
// Every candidate the prefilter reports costs a verification. The tracker
// counts candidates and confirmed matches; once the warmup is over, it
// retires the prefilter as soon as the confirmation ratio falls below the
// configured minimum, and the caller continues without it.
//
// A Tracker is not safe for concurrent use; create one per search.
//
// Example usage:
//
//	t := prefilter.NewTracker(pf)
//	for pos := t.Find(haystack, 0); pos >= 0; pos = t.Find(haystack, pos+1) {
//	    if verify(haystack, pos) {
//	        t.ConfirmMatch()
//	        return pos
//	    }
//	}
//	if !t.IsActive() {
//	    // retired: finish with the full automaton
//	}
type Tracker struct {
	inner Prefilter

	candidates uint64
	confirms   uint64

	checkInterval  uint64
	minEfficiency  float64
	warmupPeriod   uint64
	lastCheckpoint uint64

	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness (in candidates).
	// Default: 64
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of confirms/candidates.
	// Default: 0.1
	MinEfficiency float64

	// WarmupPeriod is the minimum number of candidates before checking
	// effectiveness.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker with the default configuration. It returns
// nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration. It
// returns nil if inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:         inner,
		checkInterval: max(config.CheckInterval, 1),
		minEfficiency: config.MinEfficiency,
		warmupPeriod:  config.WarmupPeriod,
		active:        true,
	}
}

// Find returns the next candidate, or -1 when there is none or the
// prefilter has been retired. Check IsActive to tell the two apart.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.checkEffectiveness()
	}
	return pos
}

// ConfirmMatch records that the last candidate led to a match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the tracking statistics.
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64, active bool) {
	candidates = t.candidates
	confirms = t.confirms
	if candidates > 0 {
		efficiency = float64(confirms) / float64(candidates)
	}
	return candidates, confirms, efficiency, t.active
}

// Reset clears the statistics and re-enables the prefilter.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.confirms = 0
	t.lastCheckpoint = 0
	t.active = true
}

// Inner returns the wrapped prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.warmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.checkInterval {
		return
	}
	t.lastCheckpoint = t.candidates
	if float64(t.confirms)/float64(t.candidates) < t.minEfficiency {
		t.active = false
	}
}
