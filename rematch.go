// Package rematch provides a byte-oriented pattern matcher built on
// position automata.
//
// A pattern compiles to a Glushkov automaton with one state per symbol
// occurrence. On top of it the engine layers shortcuts that each apply to
// one kind of pattern:
//   - Vector repeat kernels for sequences of runs like `[0-9]+\.[0-9]+`
//   - A bit-parallel engine for wide alternations like `Tom|Sawyer|Finn`
//   - Literal scanning with bounded lookback for patterns with a literal
//     every match must contain
//
// Every shortcut agrees with the reference evaluator, so results never
// depend on which one runs.
//
// Basic usage:
//
//	// Compile a pattern
//	re, err := rematch.Compile(`[0-9]+\.[0-9]+\.[0-9]+\.[0-9]+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Whole-input match
//	re.Match([]byte("192.168.1.1")) // true
//
//	// Leftmost-longest search
//	loc := re.FindIndex([]byte("host 10.0.0.1 up")) // [5 13]
//
// Semantics differ from stdlib regexp in two ways:
//   - Match is anchored at both ends; use Search for a substring match
//   - Search is leftmost-longest, like regexp after Longest()
//
// Anchors, word boundaries and capture extraction are not supported.
package rematch

import (
	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/meta"
)

// MatchResult is the outcome of a search: Matched and the half-open byte
// range [Begin, End).
type MatchResult = meta.MatchResult

// Regex represents a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := rematch.MustCompile(`hello`)
//	if re.MatchString("hello") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a pattern with the default configuration.
//
// Syntax is Perl-compatible (same as Go's stdlib regexp) minus anchors and
// word boundaries. Returns an error if the pattern is invalid or uses an
// unsupported construct.
//
// Example:
//
//	re, err := rematch.Compile(`[0-9]{3}-[0-9]{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, meta.DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var ipRegex = rematch.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+\.[0-9]+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rematch: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := rematch.DefaultConfig()
//	config.EnableBitNFA = false
//	re, err := rematch.CompileWithConfig(`Tom|Sawyer|Huck|Finn`, config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// CompileAST compiles a pattern tree built with the ast constructors.
//
// Example:
//
//	n := ast.Seq(ast.Plus(ast.ClassOf(ast.Range{Lo: '0', Hi: '9'})), ast.Str("px"))
//	re, err := rematch.CompileAST(n, rematch.DefaultConfig())
func CompileAST(n *ast.Node, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileAST(n, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: n.String(),
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all pattern metacharacters
// inside the argument text; the returned string is a pattern matching the
// literal text.
//
// Example:
//
//	escaped := rematch.QuoteMeta("hello.world")
//	// escaped = "hello\\.world"
//	re := rematch.MustCompile(escaped)
//	re.MatchString("hello.world") // true
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// Match reports whether the whole of b matches the pattern.
//
// Example:
//
//	re := rematch.MustCompile(`[0-9]+`)
//	re.Match([]byte("123"))       // true
//	re.Match([]byte("hello 123")) // false
func (r *Regex) Match(b []byte) bool {
	return r.engine.Match(b)
}

// MatchString reports whether the whole of s matches the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Search returns the leftmost match in b, longest at that start.
//
// Example:
//
//	re := rematch.MustCompile(`(abc|def).*ghi`)
//	m := re.Search([]byte("prefix def xxx ghi suffix"))
//	// m.Begin == 7, m.End == 18
func (r *Regex) Search(b []byte) MatchResult {
	return r.engine.Search(b)
}

// SearchString is like Search on a string.
func (r *Regex) SearchString(s string) MatchResult {
	return r.Search([]byte(s))
}

// SearchAt is like Search but only reports matches starting at or after at.
func (r *Regex) SearchAt(b []byte, at int) MatchResult {
	return r.engine.SearchAt(b, at)
}

// Find returns a slice holding the text of the leftmost-longest match in b.
// Returns nil if no match is found.
//
// Example:
//
//	re := rematch.MustCompile(`[0-9]+`)
//	match := re.Find([]byte("age: 42"))
//	println(string(match)) // "42"
func (r *Regex) Find(b []byte) []byte {
	m := r.engine.Search(b)
	if !m.Matched {
		return nil
	}
	return b[m.Begin:m.End:m.End]
}

// FindString returns the text of the leftmost-longest match in s.
// Returns empty string if no match is found.
func (r *Regex) FindString(s string) string {
	m := r.engine.Search([]byte(s))
	if !m.Matched {
		return ""
	}
	return s[m.Begin:m.End]
}

// FindIndex returns a two-element slice of integers defining the location of
// the leftmost-longest match in b. The match is at b[loc[0]:loc[1]].
// Returns nil if no match is found.
//
// Example:
//
//	re := rematch.MustCompile(`[0-9]+`)
//	loc := re.FindIndex([]byte("age: 42"))
//	println(loc[0], loc[1]) // 5, 7
func (r *Regex) FindIndex(b []byte) []int {
	m := r.engine.Search(b)
	if !m.Matched {
		return nil
	}
	return []int{m.Begin, m.End}
}

// FindStringIndex is like FindIndex on a string.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindAllIndex returns the locations of all successive non-overlapping
// matches in b. If n > 0, it returns at most n matches. If n <= 0, it
// returns all matches. As in stdlib regexp, an empty match right after a
// previous match is skipped.
//
// Example:
//
//	re := rematch.MustCompile(`[0-9]+`)
//	locs := re.FindAllIndex([]byte("1 22 333"), -1)
//	// locs = [[0 1] [2 4] [5 8]]
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}

	var locs [][]int
	pos, prevEnd := 0, -1
	for pos <= len(b) {
		m := r.engine.SearchAt(b, pos)
		if !m.Matched {
			break
		}

		if m.IsEmpty() && m.Begin == prevEnd {
			// Empty match abutting the previous one
			pos = m.Begin + 1
			continue
		}
		locs = append(locs, []int{m.Begin, m.End})
		prevEnd = m.End

		if m.End > m.Begin {
			pos = m.End
		} else {
			// Empty match: advance by 1 to avoid infinite loop
			pos = m.End + 1
		}

		if n > 0 && len(locs) >= n {
			break
		}
	}

	return locs
}

// FindAll returns a slice of all successive matches of the pattern in b.
// If n > 0, it returns at most n matches. If n <= 0, it returns all matches.
//
// Example:
//
//	re := rematch.MustCompile(`[0-9]+`)
//	matches := re.FindAll([]byte("1 2 3"), -1)
//	// matches = [[]byte("1"), []byte("2"), []byte("3")]
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	locs := r.FindAllIndex(b, n)
	if locs == nil {
		return nil
	}

	matches := make([][]byte, len(locs))
	for i, loc := range locs {
		matches[i] = b[loc[0]:loc[1]:loc[1]]
	}
	return matches
}

// FindAllString returns a slice of all successive matches of the pattern in s.
// If n > 0, it returns at most n matches. If n <= 0, it returns all matches.
func (r *Regex) FindAllString(s string, n int) []string {
	locs := r.FindAllIndex([]byte(s), n)
	if locs == nil {
		return nil
	}

	result := make([]string, len(locs))
	for i, loc := range locs {
		result[i] = s[loc[0]:loc[1]]
	}
	return result
}

// Count returns the number of non-overlapping matches of the pattern in b.
// If n > 0, counts at most n matches. If n <= 0, counts all matches.
func (r *Regex) Count(b []byte, n int) int {
	return len(r.FindAllIndex(b, n))
}

// String returns the source text used to compile the pattern. For a
// pattern compiled with CompileAST it is the rendered tree.
func (r *Regex) String() string {
	return r.pattern
}

// Strategy returns the execution strategy selected for the pattern.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// Explain describes how the pattern is executed, one "name: value" line
// per property.
//
// Example:
//
//	fmt.Print(rematch.MustCompile(`(abc|def).*ghi`).Explain())
//	// pattern:   (abc|def).*ghi
//	// shape:     other
//	// strategy:  UseLookback
//	// ...
func (r *Regex) Explain() string {
	return r.engine.Explain()
}

// Plan returns the execution plan behind Explain in structured form.
func (r *Regex) Plan() meta.Plan {
	return r.engine.Plan()
}

// Stats returns execution statistics of the underlying engine.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}
