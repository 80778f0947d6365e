package meta

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/bitnfa"
	"github.com/coregx/rematch/literal"
	"github.com/coregx/rematch/nfa"
	"github.com/coregx/rematch/prefilter"
	"github.com/coregx/rematch/simd"
)

// MinBitNFAInput is the input length from which the bit-parallel engine is
// used; below it the simulator is faster.
const MinBitNFAInput = 8

// Engine is a compiled pattern: the pattern tree, its automata, its literal
// plan and the chosen strategy.
//
// The Engine is immutable after compilation. Per-search scratch space is
// taken from a sync.Pool, so Match and Search are safe to call from
// multiple goroutines on the same Engine.
//
// Example:
//
//	// Compile pattern (once)
//	engine, err := meta.Compile(`(abc|def).*ghi`)
//	if err != nil {
//	    return err
//	}
//
//	// Search (safe to call from multiple goroutines)
//	m := engine.Search([]byte("prefix def xxx ghi suffix"))
//	if m.Matched {
//	    println(m.Begin, m.End) // 7 18
//	}
type Engine struct {
	// Statistics (useful for debugging and tuning)
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on 32-bit platforms.
	// This ensures atomic operations on uint64 fields work correctly.
	stats Stats

	root   *ast.Node
	config Config

	shape    Shape
	strategy Strategy

	// literal is the extracted literal; prefilter is nil when it is missing
	// or too short.
	literal   literal.Result
	prefilter prefilter.Prefilter

	// exactLookback is set when every match contains a literal hit no more
	// than LookbackWindow bytes after its start, so lookback alone decides.
	exactLookback   bool
	leadingWildcard bool

	evaluator *nfa.Evaluator
	exact     *nfa.Automaton // nil when unrolling exceeds MaxUnrollPositions
	simulator *nfa.Simulator
	bitnfa    *bitnfa.Engine
	runseq    *runSeq
	keys      *literalSet

	minLen, maxLen int

	statePool *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// RepeatSearches counts calls served by the repetition matcher
	RepeatSearches uint64

	// BitNFASearches counts calls served by the bit-parallel engine
	BitNFASearches uint64

	// SimulatorSearches counts calls served by the automaton simulator
	SimulatorSearches uint64

	// EvaluatorSearches counts calls served by the reference evaluator
	EvaluatorSearches uint64

	// LiteralSetLookups counts matches answered by the literal key set
	LiteralSetLookups uint64

	// LengthRejects counts inputs too short or too long to match
	LengthRejects uint64

	// PrefilterRejects counts inputs ruled out by a definitive literal miss
	PrefilterRejects uint64

	// LookbackHits counts matches found by lookback verification
	LookbackHits uint64

	// LookbackFallbacks counts lookback searches finished by a full search
	LookbackFallbacks uint64

	// PrefilterAbandoned counts times prefilter was abandoned due to high FP rate
	PrefilterAbandoned uint64
}

// Compile parses pattern and compiles it with the default configuration.
//
// Example:
//
//	engine, err := meta.Compile(`[0-9]+\.[0-9]+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig parses pattern and compiles it with config.
//
// Returns an error if:
//   - Configuration is invalid (*ConfigError)
//   - Pattern syntax is invalid or unsupported (*ast.CompileError)
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	n, err := ast.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return CompileAST(n, config)
}

// CompileAST compiles a pattern tree. It fails only on an invalid config:
// every analysis that does not apply to n is skipped.
//
// Steps:
//  1. Classify the shape
//  2. Build the exact automaton (skipped past MaxUnrollPositions)
//  3. Extract the literal and build the prefilter
//  4. Build the repetition matcher, bit-parallel engine and key set
//  5. Select strategy
func CompileAST(n *ast.Node, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		root:            n,
		config:          config,
		shape:           Classify(n),
		evaluator:       nfa.NewEvaluator(n),
		leadingWildcard: hasLeadingWildcard(n),
	}
	e.minLen, e.maxLen = lengthBounds(n)
	if e.maxLen >= math.MaxInt32 {
		e.maxLen = unboundedLen
	}

	exact, err := nfa.BuildExact(n, config.MaxUnrollPositions)
	switch {
	case err == nil:
		e.exact = exact
		e.simulator = nfa.NewSimulator(exact)
	case !errors.Is(err, nfa.ErrTooLarge):
		return nil, err
	}

	// literals come from the exact automaton when there is one; the
	// analysis automaton over-approximates counted repetitions
	analysed := e.exact
	if analysed == nil {
		analysed = nfa.Build(n)
	}
	if config.EnablePrefilter {
		e.literal = literal.Analyze(analysed, config.MaxExpandedLiterals)
		if usableLiteral(e.literal, config) {
			e.prefilter = prefilter.New(e.literal)
		}
		if e.prefilter != nil && e.prefilter.IsDefinitive() && len(e.literal.States) > 0 {
			prefix, bounded := literal.MaxPrefix(analysed, e.literal.States[0])
			e.exactLookback = bounded && prefix <= LookbackWindow
		}
	}

	if e.shape == ShapeRepetition {
		if elems, ok := planRunSeq(n); ok {
			kernels := simd.KernelsFor(simd.None)
			if config.EnableVector {
				kernels = simd.KernelsFor(simd.Probe())
			}
			e.runseq = newRunSeq(elems, kernels)
		}
	}
	if e.shape == ShapeAlternation && config.EnableBitNFA && e.exact != nil {
		// too many positions only means the simulator runs instead
		e.bitnfa, _ = bitnfa.New(e.exact)
	}
	if config.EnableLiteralSet {
		if keys, ok := alternationKeys(n); ok {
			e.keys = newLiteralSet(keys)
		}
	}

	e.strategy = selectStrategy(strategyInputs{
		shape:           e.shape,
		hasRunSeq:       e.runseq != nil,
		hasBitNFA:       e.bitnfa != nil,
		hasPrefilter:    e.prefilter != nil,
		hasSimulator:    e.simulator != nil,
		leadingWildcard: e.leadingWildcard,
	}, config)
	e.statePool = newSearchStatePool(e.simulator)
	return e, nil
}

// Strategy returns the execution strategy selected for this engine.
//
// Example:
//
//	strategy := engine.Strategy()
//	println(strategy.String()) // "UseLookback"
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Shape returns the pattern's shape classification.
func (e *Engine) Shape() Shape {
	return e.shape
}

// Literal returns the extracted literal. HasLiteral is false when none was
// found or prefiltering is disabled.
func (e *Engine) Literal() literal.Result {
	return e.literal
}

// Pattern returns the compiled pattern tree.
func (e *Engine) Pattern() *ast.Node {
	return e.root
}

// Stats returns execution statistics.
//
// Useful for performance analysis and debugging.
//
// Example:
//
//	stats := engine.Stats()
//	println("lookback hits:", stats.LookbackHits)
func (e *Engine) Stats() Stats {
	return Stats{
		RepeatSearches:     atomic.LoadUint64(&e.stats.RepeatSearches),
		BitNFASearches:     atomic.LoadUint64(&e.stats.BitNFASearches),
		SimulatorSearches:  atomic.LoadUint64(&e.stats.SimulatorSearches),
		EvaluatorSearches:  atomic.LoadUint64(&e.stats.EvaluatorSearches),
		LiteralSetLookups:  atomic.LoadUint64(&e.stats.LiteralSetLookups),
		LengthRejects:      atomic.LoadUint64(&e.stats.LengthRejects),
		PrefilterRejects:   atomic.LoadUint64(&e.stats.PrefilterRejects),
		LookbackHits:       atomic.LoadUint64(&e.stats.LookbackHits),
		LookbackFallbacks:  atomic.LoadUint64(&e.stats.LookbackFallbacks),
		PrefilterAbandoned: atomic.LoadUint64(&e.stats.PrefilterAbandoned),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	for _, p := range []*uint64{
		&e.stats.RepeatSearches,
		&e.stats.BitNFASearches,
		&e.stats.SimulatorSearches,
		&e.stats.EvaluatorSearches,
		&e.stats.LiteralSetLookups,
		&e.stats.LengthRejects,
		&e.stats.PrefilterRejects,
		&e.stats.LookbackHits,
		&e.stats.LookbackFallbacks,
		&e.stats.PrefilterAbandoned,
	} {
		atomic.StoreUint64(p, 0)
	}
}

// getSearchState retrieves a searchState from the pool.
// Caller must call putSearchState when done.
func (e *Engine) getSearchState() *searchState {
	return e.statePool.get()
}

// putSearchState returns a searchState to the pool.
func (e *Engine) putSearchState(state *searchState) {
	e.statePool.put(state)
}
