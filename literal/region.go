package literal

import (
	"github.com/coregx/rematch/nfa"
)

// region is the part of the automaton between two consecutive chain
// vertices, split into the branches a match may take through it.
type region struct {
	left, right int32
	branches    [][]int32
}

// ExtractRegion looks for an alternation squeezed between two consecutive
// dominators (or between the last dominator and the end of the match) and
// returns a literal per branch. Each branch literal is the longest forced
// run inside that branch; branches are ordered by their lowest state.
//
// A region qualifies when it has at least two branches and every branch
// yields a literal of at least MinRegionLiteralLen bytes. Among qualifying
// regions the one whose shortest branch literal is longest wins, the
// earliest on ties. Bytes is that region's longest branch literal and Set
// holds all of them.
//
// The result is a hint: it cannot prove a match absent on its own, so it is
// never definitive.
//
// Example:
//
//	r := literal.ExtractRegion(nfa.Build(ast.MustParse(`(foo|bar)suffix`)))
//	// r.Bytes == "foo", r.Set == "foo"|"bar"
func ExtractRegion(a *nfa.Automaton) Result {
	g, sink := automatonGraph(a)
	chain := g.chainTo(g.idoms(), sink)
	if chain == nil {
		return Result{}
	}
	chain = append(chain, sink)

	var (
		best      [][]byte
		bestShort int
	)
	for i := 0; i+1 < len(chain); i++ {
		r, ok := g.region(chain[i], chain[i+1])
		if !ok {
			continue
		}
		lits, ok := r.literals(a, g)
		if !ok {
			continue
		}
		short := lits[0]
		for _, l := range lits[1:] {
			if len(l) < len(short) {
				short = l
			}
		}
		if len(short) > bestShort {
			best, bestShort = lits, len(short)
		}
	}
	if best == nil {
		return Result{}
	}

	rep := best[0]
	for _, l := range best[1:] {
		if len(l) > len(rep) {
			rep = l
		}
	}
	return Result{
		HasLiteral: true,
		Bytes:      rep,
		Source:     SourceRegion,
		Set:        NewSeq(best...),
	}
}

// region collects the vertices between left and right: those reachable from
// left without passing through right that can also reach right without
// passing through left. It reports false when there are fewer than two
// branches or when left leads straight to right, which is an empty branch.
func (g *graph) region(left, right int32) (region, bool) {
	for _, v := range g.succ[left] {
		if v == right {
			return region{}, false
		}
	}
	fwd := g.reach(left, right, g.succ)
	bwd := g.reach(right, left, g.pred)
	var between []int32
	for v := range fwd {
		if fwd[v] && bwd[v] && int32(v) != left && int32(v) != right {
			between = append(between, int32(v))
		}
	}
	if len(between) < 2 {
		return region{}, false
	}
	branches := g.components(between)
	if len(branches) < 2 {
		return region{}, false
	}
	return region{left: left, right: right, branches: branches}, true
}

// reach marks the vertices reachable from the neighbours of from along
// edges, without expanding stop or from again.
func (g *graph) reach(from, stop int32, edges [][]int32) []bool {
	seen := make([]bool, len(edges))
	var stack []int32
	for _, v := range edges[from] {
		if !seen[v] {
			seen[v] = true
			stack = append(stack, v)
		}
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v == stop || v == from {
			continue
		}
		for _, w := range edges[v] {
			if !seen[w] {
				seen[w] = true
				stack = append(stack, w)
			}
		}
	}
	return seen
}

// components splits vertices (ascending) into weakly connected components
// of the induced subgraph. Components come out ordered by their smallest
// vertex and list their vertices in ascending order.
func (g *graph) components(vertices []int32) [][]int32 {
	comp := make(map[int32]int, len(vertices))
	for _, v := range vertices {
		comp[v] = -1
	}
	var out [][]int32
	for _, v := range vertices {
		if comp[v] != -1 {
			continue
		}
		id := len(out)
		comp[v] = id
		members := []int32{v}
		for i := 0; i < len(members); i++ {
			u := members[i]
			for _, edges := range [][]int32{g.succ[u], g.pred[u]} {
				for _, w := range edges {
					if c, ok := comp[w]; ok && c == -1 {
						comp[w] = id
						members = append(members, w)
					}
				}
			}
		}
		out = append(out, nil)
	}
	for _, v := range vertices {
		out[comp[v]] = append(out[comp[v]], v)
	}
	return out
}

// literals extracts one literal per branch. It reports false as soon as a
// branch has no literal of at least MinRegionLiteralLen bytes.
func (r region) literals(a *nfa.Automaton, g *graph) ([][]byte, bool) {
	lits := make([][]byte, 0, len(r.branches))
	for _, branch := range r.branches {
		chain := g.branchChain(r.left, r.right, branch)
		states := make([]nfa.StateID, len(chain))
		for i, v := range chain {
			states[i] = nfa.StateID(v)
		}
		_, run := bestRun(a, states, admitByte, 1)
		if len(run) == 0 || len(run[0]) < MinRegionLiteralLen {
			return nil, false
		}
		lits = append(lits, run[0])
	}
	return lits, true
}

// branchChain returns the dominator chain of one branch, in graph vertex
// numbering and without the region's endpoints. The branch is rooted at a
// virtual vertex leading to its entries and drains into a virtual vertex
// fed by its exits.
func (g *graph) branchChain(left, right int32, branch []int32) []int32 {
	local := make(map[int32]int32, len(branch))
	for i, v := range branch {
		local[v] = int32(i + 1)
	}
	exit := int32(len(branch) + 1)
	sub := newGraph(len(branch) + 2)
	for _, v := range g.succ[left] {
		if l, ok := local[v]; ok {
			sub.addEdge(0, l)
		}
	}
	for _, v := range branch {
		for _, w := range g.succ[v] {
			if l, ok := local[w]; ok {
				sub.addEdge(local[v], l)
			} else if w == right {
				sub.addEdge(local[v], exit)
			}
		}
	}
	chain := sub.chainTo(sub.idoms(), exit)
	out := make([]int32, 0, len(chain))
	for _, l := range chain {
		if l != 0 {
			out = append(out, branch[l-1])
		}
	}
	return out
}
