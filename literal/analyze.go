package literal

import "github.com/coregx/rematch/nfa"

// Analyze picks the literal a matcher should scan for. The dominator
// literal is preferred unless expansion yields longer strings; both are
// definitive. A region literal is used only when neither exists.
// maxExpanded bounds the number of expanded strings; below 2 it disables
// expansion.
//
// Example:
//
//	r := literal.Analyze(nfa.Build(ast.MustParse(`\d+foo`)), literal.DefaultMaxExpandedLiterals)
//	// r.Bytes == "foo", r.Source == literal.SourceDominator
func Analyze(a *nfa.Automaton, maxExpanded int) Result {
	dom := ExtractDominator(a)
	var exp Result
	if maxExpanded >= 2 {
		exp = ExtractExpanded(a, maxExpanded)
	}
	switch {
	case dom.HasLiteral && dom.Len() >= exp.Len():
		return dom
	case exp.HasLiteral:
		return exp
	}
	return ExtractRegion(a)
}
