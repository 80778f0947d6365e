package literal

import (
	"github.com/coregx/rematch/internal/conv"
	"github.com/coregx/rematch/nfa"
)

// Dominators returns the states that every accepting path passes through,
// ordered from the start state onwards. The start state is always first.
// It returns nil when no accepting state is reachable.
//
// The states are the dominators of a virtual sink that every accepting
// state leads to, found with the iterative algorithm of Cooper, Harvey and
// Kennedy over reverse postorder.
//
// Example:
//
//	a := nfa.Build(ast.MustParse(`(foo|bar)suffix`))
//	chain := literal.Dominators(a)
//	// chain == [0 7 8 9 10 11 12]: the start state and "suffix"
func Dominators(a *nfa.Automaton) []nfa.StateID {
	g, sink := automatonGraph(a)
	chain := g.chainTo(g.idoms(), sink)
	out := make([]nfa.StateID, len(chain))
	for i, v := range chain {
		out[i] = nfa.StateID(v)
	}
	return out
}

// ExtractDominator returns the longest literal read along the dominator
// chain: consecutive single-byte states where each state but the last has
// the next one as its only successor. On ties the earliest run wins; runs
// longer than MaxLiteralLen are cut to their first MaxLiteralLen bytes.
//
// The literal occurs in every match. HasLiteral is false when the chain has
// no single-byte state, e.g. for an alternation without a shared part.
//
// Example:
//
//	r := literal.ExtractDominator(nfa.Build(ast.MustParse(`(abc|def).*ghi`)))
//	// r.Bytes == "ghi", r.Source == literal.SourceDominator
func ExtractDominator(a *nfa.Automaton) Result {
	states, lits := bestRun(a, Dominators(a), admitByte, 1)
	if len(states) == 0 {
		return Result{}
	}
	return Result{
		HasLiteral: true,
		Bytes:      lits[0],
		Source:     SourceDominator,
		Set:        NewSeq(lits[0]),
		States:     states,
	}
}

// ExtractExpanded walks the dominator chain like ExtractDominator but also
// steps through class states of at most MaxCharClassExpansion members,
// enumerating the strings of the run as long as there are at most limit of
// them. Every match contains one of the returned strings.
//
// It only reports runs that actually pass through a class; a run of plain
// bytes is ExtractDominator's result.
//
// Example:
//
//	r := literal.ExtractExpanded(nfa.Build(ast.MustParse(`x*id[0-2]`)), 64)
//	// r.Set == "id0"|"id1"|"id2", r.Source == literal.SourceExpansion
func ExtractExpanded(a *nfa.Automaton, limit int) Result {
	states, lits := bestRun(a, Dominators(a), admitSmallClass, limit)
	if len(lits) < 2 {
		return Result{}
	}
	return Result{
		HasLiteral: true,
		Bytes:      lits[0],
		Source:     SourceExpansion,
		Set:        NewSeq(lits...),
		States:     states,
	}
}

// admitFunc returns the bytes a chain state contributes to a run, or false
// when the state breaks the run.
type admitFunc func(s *nfa.State) ([]byte, bool)

func admitByte(s *nfa.State) ([]byte, bool) {
	if s.Kind() != nfa.StateByte {
		return nil, false
	}
	return []byte{s.Byte()}, true
}

func admitSmallClass(s *nfa.State) ([]byte, bool) {
	switch s.Kind() {
	case nfa.StateByte:
		return []byte{s.Byte()}, true
	case nfa.StateClass:
		return expandSet(s.Set())
	}
	return nil, false
}

// linked reports whether a run may continue from state u to state v: u
// must lead only to v and must not end a match on its own.
func linked(a *nfa.Automaton, u, v nfa.StateID) bool {
	s := a.State(u)
	succ := s.Successors()
	return len(succ) == 1 && succ[0] == v && !s.IsAccept()
}

// bestRun finds the longest window of chain whose states are all admitted
// and pairwise linked, whose string count (the product of member counts)
// stays within limit, and whose length is at most MaxLiteralLen. It returns
// the window's states and its strings. The first window wins ties.
func bestRun(a *nfa.Automaton, chain []nfa.StateID, admit admitFunc, limit int) ([]nfa.StateID, [][]byte) {
	members := make([][]byte, len(chain))
	ok := make([]bool, len(chain))
	for i, id := range chain {
		members[i], ok[i] = admit(a.State(id))
	}

	bestLo, bestLen := 0, 0
	lo, product := 0, 1
	for hi := 0; hi < len(chain); hi++ {
		if !ok[hi] {
			lo, product = hi+1, 1
			continue
		}
		if hi > lo && !linked(a, chain[hi-1], chain[hi]) {
			lo, product = hi, 1
		}
		product *= len(members[hi])
		for lo <= hi && (product > limit || hi-lo+1 > MaxLiteralLen) {
			product /= len(members[lo])
			lo++
		}
		if n := hi - lo + 1; n > bestLen {
			bestLo, bestLen = lo, n
		}
	}
	if bestLen == 0 {
		return nil, nil
	}

	lits := [][]byte{{}}
	for i := bestLo; i < bestLo+bestLen; i++ {
		lits = crossProduct(lits, members[i])
	}
	states := append([]nfa.StateID(nil), chain[bestLo:bestLo+bestLen]...)
	return states, lits
}

// graph is a directed graph over vertices 0..n-1 rooted at vertex 0.
type graph struct {
	succ [][]int32
	pred [][]int32
}

func newGraph(n int) *graph {
	return &graph{succ: make([][]int32, n), pred: make([][]int32, n)}
}

func (g *graph) addEdge(u, v int32) {
	g.succ[u] = append(g.succ[u], v)
	g.pred[v] = append(g.pred[v], u)
}

// automatonGraph returns the state graph of a with an extra sink vertex fed
// by every accepting state.
func automatonGraph(a *nfa.Automaton) (*graph, int32) {
	n := a.StateCount()
	sink := int32(conv.IntToUint32(n))
	g := newGraph(n + 1)
	for i := range a.States() {
		s := &a.States()[i]
		for _, t := range s.Successors() {
			g.addEdge(int32(s.ID()), int32(t))
		}
		if s.IsAccept() {
			g.addEdge(int32(s.ID()), sink)
		}
	}
	return g, sink
}

// idoms computes immediate dominators. Unreachable vertices get -1 and the
// root is its own dominator.
func (g *graph) idoms() []int32 {
	n := len(g.succ)
	postNum := make([]int32, n)
	for i := range postNum {
		postNum[i] = -1
	}
	post := make([]int32, 0, n)
	visited := make([]bool, n)

	type frame struct {
		v    int32
		next int
	}
	stack := []frame{{v: 0}}
	visited[0] = true
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(g.succ[top.v]) {
			w := g.succ[top.v][top.next]
			top.next++
			if !visited[w] {
				visited[w] = true
				stack = append(stack, frame{v: w})
			}
			continue
		}
		postNum[top.v] = int32(len(post))
		post = append(post, top.v)
		stack = stack[:len(stack)-1]
	}

	idom := make([]int32, n)
	for i := range idom {
		idom[i] = -1
	}
	idom[0] = 0
	intersect := func(a, b int32) int32 {
		for a != b {
			for postNum[a] < postNum[b] {
				a = idom[a]
			}
			for postNum[b] < postNum[a] {
				b = idom[b]
			}
		}
		return a
	}
	for changed := true; changed; {
		changed = false
		for i := len(post) - 1; i >= 0; i-- {
			v := post[i]
			if v == 0 {
				continue
			}
			newIdom := int32(-1)
			for _, p := range g.pred[v] {
				if idom[p] == -1 {
					continue
				}
				if newIdom == -1 {
					newIdom = p
				} else {
					newIdom = intersect(p, newIdom)
				}
			}
			if idom[v] != newIdom {
				idom[v] = newIdom
				changed = true
			}
		}
	}
	return idom
}

// chainTo returns the dominators of target from the root down, excluding
// target itself, or nil when target is unreachable.
func (g *graph) chainTo(idom []int32, target int32) []int32 {
	if idom[target] == -1 || target == 0 {
		return nil
	}
	var rev []int32
	for v := idom[target]; ; v = idom[v] {
		rev = append(rev, v)
		if v == 0 {
			break
		}
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
