package literal

import (
	"fmt"
	"strconv"

	"github.com/coregx/rematch/nfa"
)

const (
	// MaxLiteralLen caps the length of an extracted literal.
	MaxLiteralLen = 64

	// MaxCharClassExpansion is the largest class cardinality that is
	// enumerated into alternatives.
	MaxCharClassExpansion = 11

	// DefaultMaxExpandedLiterals bounds the number of strings an expanded
	// run may produce.
	DefaultMaxExpandedLiterals = 64

	// MinRegionLiteralLen is the shortest branch literal a region may use.
	MinRegionLiteralLen = 2
)

// Source identifies which extractor produced a Result.
type Source uint8

const (
	// SourceNone marks an empty result.
	SourceNone Source = iota

	// SourceDominator: Bytes occurs in every match.
	SourceDominator

	// SourceRegion: Bytes is a representative branch literal; a hint only.
	SourceRegion

	// SourceExpansion: every match contains one of Set.
	SourceExpansion
)

// String returns a human-readable representation of the Source
func (s Source) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceDominator:
		return "dominator"
	case SourceRegion:
		return "region"
	case SourceExpansion:
		return "expansion"
	default:
		return fmt.Sprintf("Source(%d)", s)
	}
}

// Result is the outcome of literal extraction. The zero value means no
// literal was found.
type Result struct {
	// HasLiteral reports whether Bytes is set. When false Bytes is empty.
	HasLiteral bool

	// Bytes is the literal, at most MaxLiteralLen long. For expansion and
	// region results it is one member of Set.
	Bytes []byte

	// Source is the extractor that produced the result.
	Source Source

	// Set holds all alternatives: the enumerated strings of an expansion or
	// the branch literals of a region. For a dominator it holds Bytes only.
	Set *Seq

	// States are the automaton states the literal was read from, in order.
	// Set for dominator and expansion results.
	States []nfa.StateID
}

// Len returns the literal length (0 when there is none).
func (r Result) Len() int {
	return len(r.Bytes)
}

// IsDefinitive reports whether a scan miss proves the absence of a match.
func (r Result) IsDefinitive() bool {
	return r.HasLiteral && (r.Source == SourceDominator || r.Source == SourceExpansion)
}

// String renders the result for diagnostics.
func (r Result) String() string {
	if !r.HasLiteral {
		return "none"
	}
	if r.Set.Len() > 1 {
		return r.Source.String() + " " + r.Set.String()
	}
	return r.Source.String() + " " + quote(r.Bytes)
}

func quote(b []byte) string {
	return strconv.Quote(string(b))
}
