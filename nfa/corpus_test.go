package nfa

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/coregx/rematch/ast"
)

// corpusPatterns exercises every node kind, nullable and counted content.
var corpusPatterns = []string{
	`a`,
	`abc`,
	`a+`,
	`a*`,
	`a?b`,
	`(ab)*c`,
	`(a|bc)+d`,
	`ab|cd|ef`,
	`(foo|bar)suffix`,
	`(abc|def).*ghi`,
	`[0-9]+\.[0-9]+`,
	`[0-9]{3}`,
	`[0-9]{2,4}x`,
	`(ab){2,}`,
	`(a?){3}b`,
	`a{0}b`,
	`x*y*z*`,
	`(a|b)*abb`,
	`[^a]+a`,
	`.b.`,
	`(a|ab)(c|bcd)(d*)`,
	`((a*)*b)*`,
	`(?:x|y{1,2})z{0,2}`,
}

// corpusInputs returns deterministic inputs over an alphabet that hits the
// corpus patterns often.
func corpusInputs(seed int64, count int) []string {
	const alphabet = "abcdefghiostuxyz0129. \n"
	rng := rand.New(rand.NewSource(seed))
	out := []string{"", "a", "ab", "abc", "abb", "foosuffix", "barsuffix", "def xxx ghi", "192.168", "1234x", "abab", "xyz"}
	for len(out) < count {
		n := rng.Intn(12)
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		out = append(out, string(b))
	}
	return out
}

func TestEvaluatorAgainstStdlib(t *testing.T) {
	inputs := corpusInputs(1, 300)
	for _, p := range corpusPatterns {
		t.Run(p, func(t *testing.T) {
			ev := NewEvaluator(ast.MustParse(p))
			search := regexp.MustCompile(p)
			search.Longest()
			whole := regexp.MustCompile(`^(?:` + p + `)$`)
			for _, in := range inputs {
				if got, want := ev.Match([]byte(in)), whole.MatchString(in); got != want {
					t.Errorf("Match(%q) = %v, want %v", in, got, want)
				}
				s, e, ok := ev.Search([]byte(in))
				loc := search.FindStringIndex(in)
				if ok != (loc != nil) || (ok && (s != loc[0] || e != loc[1])) {
					t.Errorf("Search(%q) = (%d, %d, %v), want %v", in, s, e, ok, loc)
				}
			}
		})
	}
}

func TestNullabilityAgreement(t *testing.T) {
	for _, p := range corpusPatterns {
		n := ast.MustParse(p)
		if got, want := NewEvaluator(n).Match(nil), Nullable(n); got != want {
			t.Errorf("%q: Evaluator accepts empty = %v, Nullable = %v", p, got, want)
		}
	}
}

func TestSimulatorAgreesWithEvaluator(t *testing.T) {
	inputs := corpusInputs(2, 300)
	for _, p := range corpusPatterns {
		t.Run(p, func(t *testing.T) {
			n := ast.MustParse(p)
			a, err := BuildExact(n, 1000)
			if err != nil {
				t.Fatal(err)
			}
			sim := NewSimulator(a)
			cache := sim.NewCache()
			ev := NewEvaluator(n)
			for _, in := range inputs {
				b := []byte(in)
				if got, want := sim.Match(cache, b), ev.Match(b); got != want {
					t.Errorf("Match(%q) = %v, want %v", in, got, want)
				}
				gs, ge, gok := sim.Search(cache, b)
				ws, we, wok := ev.Search(b)
				if gs != ws || ge != we || gok != wok {
					t.Errorf("Search(%q) = (%d, %d, %v), want (%d, %d, %v)", in, gs, ge, gok, ws, we, wok)
				}
				for start := 0; start <= len(b); start++ {
					ge, gok := sim.LongestAt(cache, b, start)
					we, wok := ev.LongestAt(b, start)
					if ge != we || gok != wok {
						t.Errorf("LongestAt(%q, %d) = (%d, %v), want (%d, %v)", in, start, ge, gok, we, wok)
					}
				}
			}
		})
	}
}

func TestSearchRange(t *testing.T) {
	n := ast.MustParse(`ab`)
	a := Build(n)
	sim := NewSimulator(a)
	cache := sim.NewCache()
	ev := NewEvaluator(n)
	input := []byte("xxabyyab")
	tests := []struct {
		from, limit int
		start, end  int
		ok          bool
	}{
		{0, 9, 2, 4, true},
		{0, 2, -1, -1, false},
		{0, 3, 2, 4, true},
		{3, 9, 6, 8, true},
		{7, 9, -1, -1, false},
	}
	for _, tt := range tests {
		s, e, ok := sim.SearchRange(cache, input, tt.from, tt.limit)
		if s != tt.start || e != tt.end || ok != tt.ok {
			t.Errorf("Simulator.SearchRange(%d, %d) = (%d, %d, %v), want (%d, %d, %v)",
				tt.from, tt.limit, s, e, ok, tt.start, tt.end, tt.ok)
		}
		s, e, ok = ev.SearchRange(input, tt.from, tt.limit)
		if s != tt.start || e != tt.end || ok != tt.ok {
			t.Errorf("Evaluator.SearchRange(%d, %d) = (%d, %d, %v), want (%d, %d, %v)",
				tt.from, tt.limit, s, e, ok, tt.start, tt.end, tt.ok)
		}
	}
}

func TestCountedRepeatExactness(t *testing.T) {
	// the analysis automaton over-approximates counted repetition while the
	// exact one does not
	n := ast.MustParse(`[0-9]{16}`)
	digits15 := []byte("123456789012345")
	digits16 := []byte("1234567890123456")

	loose := NewSimulator(Build(n))
	if !loose.Match(loose.NewCache(), digits15) {
		t.Error("analysis automaton should accept 15 digits")
	}
	exact, err := BuildExact(n, 100)
	if err != nil {
		t.Fatal(err)
	}
	sim := NewSimulator(exact)
	c := sim.NewCache()
	if sim.Match(c, digits15) {
		t.Error("exact automaton accepted 15 digits")
	}
	if !sim.Match(c, digits16) {
		t.Error("exact automaton rejected 16 digits")
	}
	ev := NewEvaluator(n)
	if ev.Match(digits15) || !ev.Match(digits16) {
		t.Error("evaluator disagrees on counted repetition")
	}
	if _, _, ok := ev.Search(digits15); ok {
		t.Error("evaluator found a 16-digit run in 15 digits")
	}
}
