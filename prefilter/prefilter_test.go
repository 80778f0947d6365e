package prefilter

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/literal"
	"github.com/coregx/rematch/nfa"
)

func analyze(pattern string) literal.Result {
	return literal.Analyze(nfa.Build(ast.MustParse(pattern)), literal.DefaultMaxExpandedLiterals)
}

func TestNewSelection(t *testing.T) {
	tests := []struct {
		pattern    string
		want       string
		definitive bool
		minLen     int
		rejecter   bool
	}{
		{`a.*b`, `memchr "a"`, true, 1, true},
		{`(abc|def).*ghi`, `literal "ghi"`, true, 3, false},
		{`x*id[0-2]`, `aho-corasick "id0"|"id1"|"id2"`, true, 3, true},
		{`(foo|bar)`, `aho-corasick "foo"|"bar"`, false, 3, true},
		{`(hello|yo)`, `aho-corasick "hello"|"yo"`, false, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			pf := New(analyze(tt.pattern))
			if pf == nil {
				t.Fatal("New returned nil")
			}
			if pf.String() != tt.want {
				t.Errorf("String = %s, want %s", pf, tt.want)
			}
			if pf.IsDefinitive() != tt.definitive {
				t.Errorf("IsDefinitive = %v, want %v", pf.IsDefinitive(), tt.definitive)
			}
			if pf.LiteralLen() != tt.minLen {
				t.Errorf("LiteralLen = %d, want %d", pf.LiteralLen(), tt.minLen)
			}
			if _, ok := pf.(Rejecter); ok != tt.rejecter {
				t.Errorf("Rejecter = %v, want %v", ok, tt.rejecter)
			}
		})
	}
}

func TestNewWithoutLiteral(t *testing.T) {
	for _, p := range []string{`[a-z]+`, `.*`, `a|b*`} {
		if pf := New(analyze(p)); pf != nil {
			t.Errorf("New(%q) = %s, want nil", p, pf)
		}
	}
	if New(literal.Result{}) != nil {
		t.Error("New(zero Result) != nil")
	}
}

func TestFind(t *testing.T) {
	h := []byte("prefix def xxx ghi suffix ghi")
	tests := []struct {
		name  string
		pf    Prefilter
		start int
		want  int
	}{
		{"memchr", newMemchrPrefilter('x', true), 0, 5},
		{"memchr from", newMemchrPrefilter('x', true), 6, 11},
		{"memchr miss", newMemchrPrefilter('z', true), 0, -1},
		{"memchr past end", newMemchrPrefilter('p', true), len(h), -1},
		{"literal", newLiteralPrefilter([]byte("ghi"), true), 0, 15},
		{"literal second", newLiteralPrefilter([]byte("ghi"), true), 16, 26},
		{"literal negative", newLiteralPrefilter([]byte("ghi"), true), -3, -1},
		{"set", newSetPrefilter([][]byte{[]byte("suffix"), []byte("def")}, false), 0, 7},
		{"set from", newSetPrefilter([][]byte{[]byte("suffix"), []byte("def")}, false), 8, 19},
		{"set miss", newSetPrefilter([][]byte{[]byte("abc"), []byte("xyz")}, false), 0, -1},
	}
	for _, tt := range tests {
		if got := tt.pf.Find(h, tt.start); got != tt.want {
			t.Errorf("%s: Find(%d) = %d, want %d", tt.name, tt.start, got, tt.want)
		}
	}
}

// TestFindAgreesWithIndex checks every prefilter kind against a naive scan
// for the earliest occurrence of any of its literals.
func TestFindAgreesWithIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sets := [][][]byte{
		{[]byte("a")},
		{[]byte("ab")},
		{[]byte("aba")},
		{[]byte("ab"), []byte("ba")},
		{[]byte("abc"), []byte("bca"), []byte("cab")},
	}
	for range 200 {
		h := make([]byte, rng.Intn(80))
		for i := range h {
			h[i] = "abcc"[rng.Intn(4)]
		}
		start := rng.Intn(len(h) + 1)
		for _, lits := range sets {
			want := -1
			for i := start; i < len(h) && want < 0; i++ {
				for _, l := range lits {
					if bytes.HasPrefix(h[i:], l) {
						want = i
						break
					}
				}
			}
			var pf Prefilter
			switch {
			case len(lits) > 1:
				pf = newSetPrefilter(lits, true)
			case len(lits[0]) == 1:
				pf = newMemchrPrefilter(lits[0][0], true)
			default:
				pf = newLiteralPrefilter(lits[0], true)
			}
			if got := pf.Find(h, start); got != want {
				t.Fatalf("%s: Find(%q, %d) = %d, want %d", pf, h, start, got, want)
			}
		}
	}
}

func TestReject(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{`a.*b`, "xyz", true},
		{`a.*b`, "xaz", false},
		{`x*id[0-2]`, "id3 id4", true},
		{`x*id[0-2]`, "id3 id1", false},
		{`(foo|bar)`, "fo ba", true},
		{`(foo|bar)`, "a bar", false},
	}
	for _, tt := range tests {
		r, ok := New(analyze(tt.pattern)).(Rejecter)
		if !ok {
			t.Fatalf("%q: prefilter is not a Rejecter", tt.pattern)
		}
		if got := r.Reject([]byte(tt.input)); got != tt.want {
			t.Errorf("%q: Reject(%q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestHeapBytes(t *testing.T) {
	if got := newMemchrPrefilter('a', true).HeapBytes(); got != 0 {
		t.Errorf("memchr HeapBytes = %d", got)
	}
	if got := newLiteralPrefilter([]byte("hello"), true).HeapBytes(); got != 5 {
		t.Errorf("literal HeapBytes = %d, want 5", got)
	}
	if got := newSetPrefilter([][]byte{[]byte("ab"), []byte("cde")}, true).HeapBytes(); got != 5 {
		t.Errorf("set HeapBytes = %d, want 5", got)
	}
}

func BenchmarkFind(b *testing.B) {
	h := bytes.Repeat([]byte("the quick brown fox "), 500)
	h = append(h, "needle"...)
	cases := []struct {
		name string
		pf   Prefilter
	}{
		{"memchr", newMemchrPrefilter('z', true)},
		{"literal", newLiteralPrefilter([]byte("needle"), true)},
		{"set", newSetPrefilter([][]byte{[]byte("needle"), []byte("thimble")}, true)},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.SetBytes(int64(len(h)))
			for range b.N {
				c.pf.Find(h, 0)
			}
		})
	}
}
