// Package literal finds byte strings that matches of a pattern must (or
// are likely to) contain, by analysing the pattern's position automaton.
//
// Three extractors are provided:
//   - ExtractDominator: the longest run of states every accepting path is
//     forced through. Its bytes occur in every match, so a scan miss proves
//     there is no match.
//   - ExtractExpanded: the same walk, also stepping through small character
//     classes by enumerating them. Every match contains one of the
//     enumerated strings.
//   - ExtractRegion: per-branch literals of an alternation sitting between
//     two forced states. These are hints only: a hit does not prove a match
//     and a miss does not prove its absence.
//
// Analyze combines them into the single plan a matcher uses.
package literal

import (
	"bytes"
	"sort"
)

// Seq is a set of alternative literals, e.g. the members of an expanded
// class or the branch literals of a region.
//
// Example:
//
//	seq := literal.NewSeq([]byte("foo"), []byte("bar"))
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	lits [][]byte
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...[]byte) *Seq {
	return &Seq{lits: lits}
}

// Len returns the number of literals. A nil Seq is empty.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lits)
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// Get returns the i-th literal. Panics if i is out of range.
func (s *Seq) Get(i int) []byte {
	return s.lits[i]
}

// Literals returns the literals in order. The slice must not be modified.
func (s *Seq) Literals() [][]byte {
	if s == nil {
		return nil
	}
	return s.lits
}

// MinLen returns the length of the shortest literal, or 0 when empty.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	m := len(s.lits[0])
	for _, l := range s.lits[1:] {
		m = min(m, len(l))
	}
	return m
}

// MaxLen returns the length of the longest literal, or 0 when empty.
func (s *Seq) MaxLen() int {
	m := 0
	for _, l := range s.Literals() {
		m = max(m, len(l))
	}
	return m
}

// Minimize removes duplicates and every literal that contains another
// literal of the set: an occurrence of the longer one is always an
// occurrence of the shorter one, so scanning for the shorter one suffices.
// The remaining literals keep their relative order.
//
// Example:
//
//	seq := literal.NewSeq([]byte("abc"), []byte("xbcx"), []byte("bc"))
//	seq.Minimize()
//	// seq holds only "bc"
func (s *Seq) Minimize() {
	if s.Len() < 2 {
		return
	}
	order := make([]int, len(s.lits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(s.lits[order[i]]) < len(s.lits[order[j]])
	})
	keep := make([]bool, len(s.lits))
	var kept [][]byte
	for _, i := range order {
		redundant := false
		for _, k := range kept {
			if bytes.Contains(s.lits[i], k) {
				redundant = true
				break
			}
		}
		if !redundant {
			keep[i] = true
			kept = append(kept, s.lits[i])
		}
	}
	out := s.lits[:0:0]
	for i, l := range s.lits {
		if keep[i] {
			out = append(out, l)
		}
	}
	s.lits = out
}

// String renders the literals quoted and separated by '|'.
func (s *Seq) String() string {
	var b bytes.Buffer
	for i, l := range s.Literals() {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(quote(l))
	}
	return b.String()
}
