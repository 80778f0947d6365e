package meta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/rematch/ast"
	"github.com/coregx/rematch/literal"
	"github.com/coregx/rematch/nfa"
)

func mustCompile(t *testing.T, pattern string) *Engine {
	t.Helper()
	e, err := Compile(pattern)
	require.NoError(t, err, pattern)
	return e
}

func TestScenarioRepeatByte(t *testing.T) {
	e := mustCompile(t, `a+`)
	assert.Equal(t, ShapeRepetition, e.Shape())
	assert.Equal(t, UseRepeat, e.Strategy())

	m := e.Search([]byte(strings.Repeat("a", 16) + "b"))
	assert.Equal(t, found(0, 16), m)
	assert.Equal(t, uint64(1), e.Stats().RepeatSearches)
}

func TestScenarioDottedQuad(t *testing.T) {
	e := mustCompile(t, `[0-9]+\.[0-9]+\.[0-9]+\.[0-9]+`)
	assert.Equal(t, ShapeRepetition, e.Shape())
	assert.Equal(t, UseRepeat, e.Strategy())

	input := []byte("192.168.1.1")
	assert.True(t, e.Match(input))
	assert.Equal(t, found(0, len(input)), e.Search(input))
	assert.False(t, e.Match([]byte("192.168.1.")))
	assert.Equal(t, found(4, 14), e.Search([]byte("ip: 10.0.0.254!")))
}

func TestScenarioRegionLiteral(t *testing.T) {
	n := ast.MustParse(`(foo|bar)suffix`)
	region := literal.ExtractRegion(nfa.Build(n))
	require.True(t, region.HasLiteral)
	assert.Contains(t, []string{"foo", "bar"}, string(region.Bytes))
	assert.False(t, region.IsDefinitive())

	e, err := CompileAST(n, DefaultConfig())
	require.NoError(t, err)
	// the shared tail is a dominator, which the engine prefers
	assert.Equal(t, literal.SourceDominator, e.Literal().Source)
	assert.Equal(t, "suffix", string(e.Literal().Bytes))
	assert.Equal(t, found(0, 9), e.Search([]byte("barsuffix")))
	assert.True(t, e.Match([]byte("barsuffix")))

	// a region literal alone drives a lookback search
	config := DefaultConfig()
	config.MinLiteralLen = 7
	e, err = CompileAST(ast.MustParse(`(foo|bar)`), config)
	require.NoError(t, err)
	assert.Nil(t, e.prefilter)
	assert.Equal(t, UseSimulator, e.Strategy())

	config.MinLiteralLen = 3
	e, err = CompileAST(ast.MustParse(`(foo|bar)`), config)
	require.NoError(t, err)
	assert.Equal(t, literal.SourceRegion, e.Literal().Source)
	assert.Equal(t, UseLookback, e.Strategy())
	assert.Equal(t, found(3, 6), e.Search([]byte("xx barxx")))
	assert.False(t, e.Search([]byte("xx baz")).Matched)
	assert.Contains(t, e.Explain(), "hint")
}

func TestScenarioAlternation(t *testing.T) {
	e := mustCompile(t, `Tom|Sawyer|Huckleberry|Finn`)
	assert.Equal(t, ShapeAlternation, e.Shape())
	assert.Equal(t, UseBitNFA, e.Strategy())

	input := []byte("Huckleberry")
	ev := nfa.NewEvaluator(e.Pattern())
	assert.Equal(t, ev.Match(input), e.Match(input))
	assert.True(t, e.Match(input))

	start, end, ok := ev.Search(input)
	require.True(t, ok)
	assert.Equal(t, found(start, end), e.Search(input))
	assert.Equal(t, uint64(1), e.Stats().BitNFASearches)

	book := []byte("Mark Twain wrote Huckleberry Finn")
	assert.Equal(t, found(17, 28), e.Search(book))
	assert.Equal(t, found(29, 33), e.SearchAt(book, 18))
}

func TestScenarioDominatorLookback(t *testing.T) {
	e := mustCompile(t, `(abc|def).*ghi`)
	assert.Equal(t, literal.SourceDominator, e.Literal().Source)
	assert.Equal(t, "ghi", string(e.Literal().Bytes))
	assert.Equal(t, UseLookback, e.Strategy())

	input := []byte("prefix def xxx ghi suffix")
	m := e.Search(input)
	assert.Equal(t, found(7, 18), m)
	assert.Equal(t, "def xxx ghi", string(m.Bytes(input)))
	assert.Equal(t, uint64(1), e.Stats().LookbackHits)

	assert.False(t, e.Search([]byte("prefix def xxx gh suffix")).Matched)
	assert.Equal(t, uint64(1), e.Stats().PrefilterRejects)
}

func TestScenarioCountedDigits(t *testing.T) {
	input := []byte(strings.Repeat("7", 15))
	ev := nfa.NewEvaluator(ast.MustParse(`[0-9]{16}`))
	require.False(t, ev.Match(input))
	_, _, ok := ev.Search(input)
	require.False(t, ok)

	for name, config := range configVariants() {
		e, err := CompileWithConfig(`[0-9]{16}`, config)
		require.NoError(t, err, name)
		assert.False(t, e.Match(input), name)
		assert.False(t, e.Search(input).Matched, name)
		assert.Equal(t, found(1, 17), e.Search([]byte("x"+strings.Repeat("7", 16))), name)
	}
}

func TestLengthReject(t *testing.T) {
	e := mustCompile(t, `abc[0-9]{2}`)
	assert.False(t, e.Match([]byte("abc1")))
	assert.False(t, e.Match([]byte("abc123")))
	assert.True(t, e.Match([]byte("abc12")))
	assert.Equal(t, uint64(2), e.Stats().LengthRejects)
	assert.False(t, e.SearchAt([]byte("xxabc12"), 3).Matched)
}

func TestLiteralSetMatch(t *testing.T) {
	e := mustCompile(t, `Tom|Sawyer|Huckleberry|Finn`)
	for _, w := range []string{"Tom", "Sawyer", "Huckleberry", "Finn"} {
		assert.True(t, e.Match([]byte(w)), w)
	}
	for _, w := range []string{"", "To", "Tomm", "Finn\x00", "tom"} {
		assert.False(t, e.Match([]byte(w)), w)
	}
	assert.NotZero(t, e.Stats().LiteralSetLookups)

	config := DefaultConfig()
	config.EnableLiteralSet = false
	e, err := CompileWithConfig(`Tom|Sawyer|Huckleberry|Finn`, config)
	require.NoError(t, err)
	assert.Nil(t, e.keys)
	assert.True(t, e.Match([]byte("Huckleberry")))
	assert.Zero(t, e.Stats().LiteralSetLookups)
}

func TestSearchAtBounds(t *testing.T) {
	e := mustCompile(t, `a*`)
	input := []byte("baa")
	assert.Equal(t, found(0, 0), e.Search(input))
	assert.Equal(t, found(1, 3), e.SearchAt(input, 1))
	assert.Equal(t, found(3, 3), e.SearchAt(input, 3))
	assert.False(t, e.SearchAt(input, 4).Matched)
	assert.False(t, e.SearchAt(input, -1).Matched)
}

func TestEvaluatorFallback(t *testing.T) {
	config := DefaultConfig()
	config.MaxUnrollPositions = 8
	e, err := CompileWithConfig(`x[0-9]{20}(yy|zz)`, config)
	require.NoError(t, err)
	assert.Nil(t, e.exact)
	assert.Equal(t, UseLookback, e.Strategy())

	input := []byte("--x" + strings.Repeat("5", 20) + "yy--")
	assert.Equal(t, found(2, 25), e.Search(input))
	assert.True(t, e.Match(input[2:25]))
	assert.NotZero(t, e.Stats().EvaluatorSearches)

	config.EnablePrefilter = false
	e, err = CompileWithConfig(`x[0-9]{20}(yy|zz)`, config)
	require.NoError(t, err)
	assert.Equal(t, UseEvaluator, e.Strategy())
	assert.Equal(t, found(2, 25), e.Search(input))
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(`a(b`)
	require.Error(t, err)
	var ce *ast.CompileError
	assert.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, ast.ErrInvalidPattern)

	_, err = Compile(`^abc`)
	assert.ErrorIs(t, err, ast.ErrUnsupported)

	_, err = CompileAST(ast.Str("abc"), Config{})
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestStatsReset(t *testing.T) {
	e := mustCompile(t, `a+`)
	e.Search([]byte("aaa"))
	e.Match([]byte(""))
	require.NotEqual(t, Stats{}, e.Stats())
	e.ResetStats()
	assert.Equal(t, Stats{}, e.Stats())
}

func TestExplain(t *testing.T) {
	e := mustCompile(t, `(abc|def).*ghi`)
	out := e.Explain()
	for _, want := range []string{"strategy:", "UseLookback", `literal:`, `dominator "ghi"`, "confirmed", "exact, "} {
		assert.Contains(t, out, want)
	}

	p := mustCompile(t, `[0-9]{3}-x`).Plan()
	assert.Equal(t, "repetition", p.Shape)
	assert.True(t, p.ExactAutomaton)
	assert.Equal(t, 5, p.MinLen)
	assert.Equal(t, 5, p.MaxLen)

	p = mustCompile(t, `.*foo`).Plan()
	assert.True(t, p.LeadingWildcard)
	assert.Equal(t, UseSimulator.String(), p.Strategy)

	p = mustCompile(t, `Tom|Sawyer|Huckleberry|Finn`).Plan()
	assert.True(t, p.BitNFA)
	assert.Contains(t, p.LiteralSet, "4 keys")
}

func TestMatchResult(t *testing.T) {
	input := []byte("test foo123 end")
	m := found(5, 11)
	assert.Equal(t, 6, m.Len())
	assert.Equal(t, "foo123", string(m.Bytes(input)))
	assert.Equal(t, "[5,11)", m.String())
	assert.True(t, m.Contains(5))
	assert.False(t, m.Contains(11))
	assert.False(t, m.IsEmpty())
	assert.True(t, found(3, 3).IsEmpty())

	var none MatchResult
	assert.Equal(t, "no match", none.String())
	assert.Nil(t, none.Bytes(input))
	assert.False(t, none.Contains(0))
	assert.Nil(t, found(10, 20).Bytes(input))
}
