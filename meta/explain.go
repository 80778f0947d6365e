package meta

import (
	"fmt"
	"strings"

	"github.com/coregx/rematch/literal"
	"github.com/coregx/rematch/simd"
)

// Plan describes how an engine executes its pattern. Fields carry yaml tags
// for machine-readable output.
type Plan struct {
	Pattern         string `yaml:"pattern"`
	Shape           string `yaml:"shape"`
	Strategy        string `yaml:"strategy"`
	Literal         string `yaml:"literal"`
	LiteralSource   string `yaml:"literal_source"`
	Prefilter       string `yaml:"prefilter,omitempty"`
	Definitive      bool   `yaml:"definitive"`
	ExactLookback   bool   `yaml:"exact_lookback"`
	LeadingWildcard bool   `yaml:"leading_wildcard"`
	Positions       int    `yaml:"positions"`
	ExactAutomaton  bool   `yaml:"exact_automaton"`
	BitNFA          bool   `yaml:"bitnfa"`
	LiteralSet      string `yaml:"literal_set,omitempty"`
	Capability      string `yaml:"capability"`
	MinLen          int    `yaml:"min_len"`
	MaxLen          int    `yaml:"max_len"`
}

// Plan returns the execution plan of the engine.
func (e *Engine) Plan() Plan {
	p := Plan{
		Pattern:         e.root.String(),
		Shape:           e.shape.String(),
		Strategy:        e.strategy.String(),
		Literal:         "none",
		LiteralSource:   e.literal.Source.String(),
		ExactLookback:   e.exactLookback,
		LeadingWildcard: e.leadingWildcard,
		ExactAutomaton:  e.exact != nil,
		BitNFA:          e.bitnfa != nil,
		Capability:      simd.None.String(),
		MinLen:          e.minLen,
		MaxLen:          e.maxLen,
	}
	if e.literal.HasLiteral {
		p.Literal = e.literal.String()
	}
	if e.prefilter != nil {
		p.Prefilter = e.prefilter.String()
		p.Definitive = e.prefilter.IsDefinitive()
	}
	if e.exact != nil {
		p.Positions = e.exact.Positions()
	}
	if e.keys != nil {
		p.LiteralSet = fmt.Sprintf("%d keys (map)", len(e.keys.keys))
		if e.keys.usesKeyset() {
			p.LiteralSet = fmt.Sprintf("%d keys (keyset)", len(e.keys.keys))
		}
	}
	if e.runseq != nil {
		p.Capability = e.runseq.kernels.Capability().String()
	}
	return p
}

// Explain renders the execution plan as aligned "name: value" lines.
//
// Example:
//
//	engine, _ := meta.Compile(`(abc|def).*ghi`)
//	fmt.Print(engine.Explain())
//	// pattern:   (abc|def).*ghi
//	// shape:     other
//	// strategy:  UseLookback
//	// ...
func (e *Engine) Explain() string {
	p := e.Plan()
	rows := [][2]string{
		{"pattern", p.Pattern},
		{"shape", p.Shape},
		{"strategy", p.Strategy},
		{"literal", p.Literal},
	}
	if p.Prefilter != "" {
		rows = append(rows,
			[2]string{"prefilter", p.Prefilter},
			[2]string{"definitive", fmt.Sprint(p.Definitive)},
			[2]string{"lookback", lookbackMode(p)},
		)
	}
	if p.ExactAutomaton {
		rows = append(rows, [2]string{"automaton", fmt.Sprintf("exact, %d positions", p.Positions)})
	} else {
		rows = append(rows, [2]string{"automaton", "too large, evaluator"})
	}
	if p.BitNFA {
		rows = append(rows, [2]string{"bitnfa", "yes"})
	}
	if p.LiteralSet != "" {
		rows = append(rows, [2]string{"literal set", p.LiteralSet})
	}
	if e.runseq != nil {
		rows = append(rows, [2]string{"vector", p.Capability})
	}
	rows = append(rows, [2]string{"length", lengthRange(p.MinLen, p.MaxLen)})

	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s %s\n", width+1, r[0]+":", r[1])
	}
	return b.String()
}

func lookbackMode(p Plan) string {
	switch {
	case p.LeadingWildcard:
		return "off (leading wildcard)"
	case p.ExactLookback:
		return fmt.Sprintf("exact (window %d)", LookbackWindow)
	case p.LiteralSource == literal.SourceRegion.String():
		return "hint"
	default:
		return "confirmed"
	}
}

func lengthRange(lo, hi int) string {
	if hi == unboundedLen {
		return fmt.Sprintf("%d..", lo)
	}
	return fmt.Sprintf("%d..%d", lo, hi)
}
