package literal

import "github.com/coregx/rematch/nfa"

// MaxPrefix returns the largest number of bytes a match can consume before
// it first enters target, i.e. the longest path of intermediate states from
// the start state to target that does not pass through target itself.
// bounded is false when such paths can loop.
//
// When target starts a dominator literal, a match containing a hit of the
// literal at offset h starts no earlier than h-n.
//
// Example:
//
//	a, _ := nfa.BuildExact(ast.MustParse(`[a-z]{0,3}@x`), 100)
//	n, bounded := literal.MaxPrefix(a, 4) // n == 3, bounded == true
func MaxPrefix(a *nfa.Automaton, target nfa.StateID) (n int, bounded bool) {
	if target == nfa.StartState {
		return 0, true
	}
	g, _ := automatonGraph(a)
	t := int32(target)
	fwd := g.reach(0, t, g.succ)
	bwd := g.reach(t, 0, g.pred)
	inner := make([]bool, len(fwd))
	for v := range fwd {
		inner[v] = fwd[v] && bwd[v] && int32(v) != t && v != 0
	}

	const (
		unvisited = iota
		active
		done
	)
	color := make([]uint8, len(inner))
	depth := make([]int, len(inner))
	var longest func(v int32) bool
	longest = func(v int32) bool {
		color[v] = active
		d := 1
		for _, p := range g.pred[v] {
			if !inner[p] {
				continue
			}
			switch color[p] {
			case active:
				return false
			case unvisited:
				if !longest(p) {
					return false
				}
			}
			d = max(d, depth[p]+1)
		}
		depth[v] = d
		color[v] = done
		return true
	}

	for _, p := range g.pred[t] {
		if !inner[p] {
			continue
		}
		if color[p] == unvisited && !longest(p) {
			return 0, false
		}
		n = max(n, depth[p])
	}
	return n, true
}
