package meta

import (
	"github.com/coregx/rematch/literal"
)

// Strategy is the execution path the engine prefers for a pattern.
//
// The strategy is fixed at compile time. A call may still fall through to
// a more general path when the preferred one declines, for instance the
// bit-parallel engine on inputs shorter than MinBitNFAInput.
type Strategy int

const (
	// UseEvaluator runs the reference evaluator on the pattern tree.
	// Selected when counted repetitions unroll past MaxUnrollPositions.
	UseEvaluator Strategy = iota

	// UseSimulator runs the linear simulation of the exact automaton.
	// Selected when no shortcut applies.
	UseSimulator

	// UseLookback scans for the pattern's literal and verifies anchored
	// matches in a bounded window before each hit.
	// Selected for:
	//   - Patterns with a literal of at least MinLiteralLen bytes
	//   - No leading unbounded wildcard such as `.*`
	UseLookback

	// UseBitNFA runs the bit-parallel engine.
	// Selected for:
	//   - Top-level alternations with >= MinAlternationBranches branches
	//   - Exact automata with at most bitnfa.MaxPositions positions
	UseBitNFA

	// UseRepeat runs the greedy repetition-sequence matcher on the vector
	// repeat kernels.
	// Selected for:
	//   - Sequences of single-symbol repetitions, symbols and strings
	//   - Variable-length runs disjoint from what follows them
	UseRepeat
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseEvaluator:
		return "UseEvaluator"
	case UseSimulator:
		return "UseSimulator"
	case UseLookback:
		return "UseLookback"
	case UseBitNFA:
		return "UseBitNFA"
	case UseRepeat:
		return "UseRepeat"
	default:
		return "Unknown"
	}
}

// strategyInputs is what strategy selection looks at.
type strategyInputs struct {
	shape           Shape
	hasRunSeq       bool
	hasBitNFA       bool
	hasPrefilter    bool
	hasSimulator    bool
	leadingWildcard bool
}

// selectStrategy picks the preferred strategy. The ladder goes from the
// most specialised engine to the reference evaluator:
//
//  1. Repetition shape → UseRepeat
//  2. Alternation shape with a bit-parallel engine → UseBitNFA
//  3. Usable literal without leading wildcard → UseLookback
//  4. Exact automaton → UseSimulator
//  5. Otherwise → UseEvaluator
func selectStrategy(in strategyInputs, config Config) Strategy {
	switch {
	case in.shape == ShapeRepetition && in.hasRunSeq:
		return UseRepeat
	case in.shape == ShapeAlternation && in.hasBitNFA && config.EnableBitNFA:
		return UseBitNFA
	case in.hasPrefilter && config.EnableLookback && !in.leadingWildcard:
		return UseLookback
	case in.hasSimulator:
		return UseSimulator
	default:
		return UseEvaluator
	}
}

// usableLiteral reports whether r is long enough to drive a prefilter.
func usableLiteral(r literal.Result, config Config) bool {
	if !config.EnablePrefilter || !r.HasLiteral {
		return false
	}
	if r.Set.Len() > 1 {
		return r.Set.MinLen() >= config.MinLiteralLen
	}
	return r.Len() >= config.MinLiteralLen
}
