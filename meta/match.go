package meta

import "strconv"

// MatchResult is the outcome of a match or search. The zero value means no
// match; otherwise Begin <= End and input[Begin:End] is the matched span.
//
// Example:
//
//	m := engine.Search([]byte("prefix def xxx ghi suffix"))
//	if m.Matched {
//	    println(m.Begin, m.End) // 7 18
//	}
type MatchResult struct {
	Matched bool
	Begin   int
	End     int
}

func found(begin, end int) MatchResult {
	return MatchResult{Matched: true, Begin: begin, End: end}
}

// Len returns the length of the match in bytes, 0 when there is none.
//
// Example:
//
//	m := meta.MatchResult{Matched: true, Begin: 5, End: 11}
//	println(m.Len()) // 6
func (m MatchResult) Len() int {
	return m.End - m.Begin
}

// Bytes returns the matched bytes as a view into input, or nil when there is
// no match or the span does not fit input.
func (m MatchResult) Bytes(input []byte) []byte {
	if !m.Matched || m.Begin < 0 || m.End > len(input) || m.Begin > m.End {
		return nil
	}
	return input[m.Begin:m.End]
}

// IsEmpty reports whether the result is a zero-length match.
//
// Empty matches occur for patterns like `a*` that match without consuming
// input.
func (m MatchResult) IsEmpty() bool {
	return m.Matched && m.Begin == m.End
}

// Contains reports whether pos lies within the match (Begin <= pos < End).
func (m MatchResult) Contains(pos int) bool {
	return m.Matched && pos >= m.Begin && pos < m.End
}

// String renders the span as [Begin,End), or "no match".
func (m MatchResult) String() string {
	if !m.Matched {
		return "no match"
	}
	return "[" + strconv.Itoa(m.Begin) + "," + strconv.Itoa(m.End) + ")"
}
