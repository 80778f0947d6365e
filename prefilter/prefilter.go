// Package prefilter scans the input for the literal a pattern's matches
// contain, so that the full automaton only runs near candidate positions.
//
// New selects the scanner from a literal.Result:
//   - One byte → memchr (simd.Memchr), with a whole-input reject through
//     segmentio/asm's mem.ContainsByte
//   - One string → simd.LiteralScanner
//   - Several strings (an expansion or a region) → Aho-Corasick automaton
//
// A prefilter built from a dominator or expansion literal is definitive: if
// Find reports no candidate from offset 0, the pattern cannot match. A
// region prefilter is a hint and never proves absence.
//
// Example usage:
//
//	a := nfa.Build(ast.MustParse(`(abc|def).*ghi`))
//	pf := prefilter.New(literal.Analyze(a, literal.DefaultMaxExpandedLiterals))
//	pos := pf.Find([]byte("prefix def xxx ghi suffix"), 0)
//	// pos == 15 (position of "ghi")
package prefilter

import (
	"strconv"

	"github.com/coregx/ahocorasick"
	"github.com/segmentio/asm/mem"

	"github.com/coregx/rematch/literal"
	"github.com/coregx/rematch/simd"
)

// Prefilter finds candidate positions: occurrences of the literal (or of one
// of the literals) extracted from a pattern.
type Prefilter interface {
	// Find returns the start of the first literal occurrence at or after
	// start, or -1. Successive calls with start = previous+1 visit every
	// occurrence of a single literal, overlapping ones included.
	Find(haystack []byte, start int) int

	// IsDefinitive reports whether a miss from offset 0 proves that the
	// pattern has no match in the haystack.
	IsDefinitive() bool

	// LiteralLen returns the length of the shortest scanned literal.
	LiteralLen() int

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int

	// String describes the prefilter for diagnostics.
	String() string
}

// Rejecter is implemented by prefilters that can rule out a whole haystack
// faster than Find can locate the first candidate.
type Rejecter interface {
	// Reject reports whether the haystack certainly holds no candidate.
	Reject(haystack []byte) bool
}

// New builds the prefilter for r. It returns nil when r has no literal.
//
// Example:
//
//	pf := prefilter.New(literal.Result{
//	    HasLiteral: true,
//	    Bytes:      []byte("ghi"),
//	    Source:     literal.SourceDominator,
//	    Set:        literal.NewSeq([]byte("ghi")),
//	})
//	pf.Find([]byte("def xxx ghi"), 0) // 8
func New(r literal.Result) Prefilter {
	if !r.HasLiteral || len(r.Bytes) == 0 {
		return nil
	}
	definitive := r.IsDefinitive()
	if r.Set.Len() > 1 {
		if pf := newSetPrefilter(r.Set.Literals(), definitive); pf != nil {
			return pf
		}
		if definitive {
			// scanning one alternative would not be definitive
			return nil
		}
	}
	if len(r.Bytes) == 1 {
		return newMemchrPrefilter(r.Bytes[0], definitive)
	}
	return newLiteralPrefilter(r.Bytes, definitive)
}

// memchrPrefilter finds a single byte with simd.Memchr.
type memchrPrefilter struct {
	needle     byte
	definitive bool
}

func newMemchrPrefilter(needle byte, definitive bool) *memchrPrefilter {
	return &memchrPrefilter{needle: needle, definitive: definitive}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// Reject implements Rejecter using mem.ContainsByte.
func (p *memchrPrefilter) Reject(haystack []byte) bool {
	return !mem.ContainsByte(haystack, p.needle)
}

// IsDefinitive implements Prefilter.IsDefinitive.
func (p *memchrPrefilter) IsDefinitive() bool {
	return p.definitive
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	return 1
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

func (p *memchrPrefilter) String() string {
	return "memchr " + quote([]byte{p.needle})
}

// literalPrefilter finds one string with simd.LiteralScanner.
type literalPrefilter struct {
	scanner    *simd.LiteralScanner
	definitive bool
}

func newLiteralPrefilter(lit []byte, definitive bool) *literalPrefilter {
	return &literalPrefilter{scanner: simd.NewLiteralScanner(lit), definitive: definitive}
}

// Find implements Prefilter.Find using simd.LiteralScanner.
func (p *literalPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	return p.scanner.Find(haystack, start)
}

// IsDefinitive implements Prefilter.IsDefinitive.
func (p *literalPrefilter) IsDefinitive() bool {
	return p.definitive
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *literalPrefilter) LiteralLen() int {
	return p.scanner.Len()
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *literalPrefilter) HeapBytes() int {
	return p.scanner.Len()
}

func (p *literalPrefilter) String() string {
	return "literal " + quote(p.scanner.Literal())
}

// setPrefilter finds any of several strings with an Aho-Corasick automaton.
type setPrefilter struct {
	auto       *ahocorasick.Automaton
	lits       *literal.Seq
	minLen     int
	heap       int
	definitive bool
}

// newSetPrefilter returns nil if the automaton cannot be built.
func newSetPrefilter(lits [][]byte, definitive bool) *setPrefilter {
	builder := ahocorasick.NewBuilder()
	heap := 0
	for _, lit := range lits {
		builder.AddPattern(lit)
		heap += len(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	seq := literal.NewSeq(lits...)
	return &setPrefilter{
		auto:       auto,
		lits:       seq,
		minLen:     seq.MinLen(),
		heap:       heap,
		definitive: definitive,
	}
}

// Find implements Prefilter.Find using the Aho-Corasick automaton.
func (p *setPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// Reject implements Rejecter.
func (p *setPrefilter) Reject(haystack []byte) bool {
	return !p.auto.IsMatch(haystack)
}

// IsDefinitive implements Prefilter.IsDefinitive.
func (p *setPrefilter) IsDefinitive() bool {
	return p.definitive
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *setPrefilter) LiteralLen() int {
	return p.minLen
}

// HeapBytes implements Prefilter.HeapBytes. It counts the literal bytes;
// the automaton's tables are not included.
func (p *setPrefilter) HeapBytes() int {
	return p.heap
}

func (p *setPrefilter) String() string {
	return "aho-corasick " + p.lits.String()
}

func quote(b []byte) string {
	return strconv.Quote(string(b))
}
