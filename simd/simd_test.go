package simd

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/coregx/rematch/internal/byteset"
)

var allCapabilities = []Capability{None, SSE, AVX2, AVX512, NEON}

func TestCapability(t *testing.T) {
	tests := []struct {
		c     Capability
		name  string
		width int
	}{
		{None, "none", 0},
		{SSE, "sse", 16},
		{AVX2, "avx2", 32},
		{AVX512, "avx512", 64},
		{NEON, "neon", 16},
	}
	for _, tt := range tests {
		if tt.c.String() != tt.name || tt.c.Width() != tt.width {
			t.Errorf("%d: got (%s, %d), want (%s, %d)", tt.c, tt.c, tt.c.Width(), tt.name, tt.width)
		}
	}
	if got := Capability(42).String(); got != "Capability(42)" {
		t.Errorf("unknown capability String = %q", got)
	}
	if Probe() != Probe() {
		t.Error("Probe is not stable")
	}
	for _, c := range allCapabilities {
		for _, family := range []int{RepeatThreshold, ClassThreshold, LiteralScanThreshold} {
			if th := threshold(c, family); th < c.Width() || th < family {
				t.Errorf("threshold(%s, %d) = %d", c, family, th)
			}
		}
	}
}

func TestMovemask(t *testing.T) {
	tests := []struct {
		lanes uint64
		want  uint64
	}{
		{0, 0},
		{hi8, 0xff},
		{0x80, 0x01},
		{0x8000000000000000, 0x80},
		{0x0080008000800080, 0x55},
	}
	for _, tt := range tests {
		if got := movemask(tt.lanes); got != tt.want {
			t.Errorf("movemask(%#x) = %#x, want %#x", tt.lanes, got, tt.want)
		}
	}
}

func TestLaneCompares(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	edge := []byte{0, 1, 0x7f, 0x80, 0x81, 0xfe, 0xff}
	pick := func() byte {
		if rng.Intn(2) == 0 {
			return edge[rng.Intn(len(edge))]
		}
		return byte(rng.Intn(256))
	}
	for range 5000 {
		var xs, ys [8]byte
		var x, y uint64
		for i := range xs {
			xs[i], ys[i] = pick(), pick()
			x |= uint64(xs[i]) << (8 * i)
			y |= uint64(ys[i]) << (8 * i)
		}
		var wantEq, wantLe uint64
		for i := range xs {
			if xs[i] == ys[i] {
				wantEq |= 1 << i
			}
			if xs[i] <= ys[i] {
				wantLe |= 1 << i
			}
		}
		if got := movemask(eqLanes(x, y)); got != wantEq {
			t.Fatalf("eqLanes(%v, %v) = %08b, want %08b", xs, ys, got, wantEq)
		}
		if got := movemask(leLanes(x, y)); got != wantLe {
			t.Fatalf("leLanes(%v, %v) = %08b, want %08b", xs, ys, got, wantLe)
		}
	}
}

func TestRepeatByte(t *testing.T) {
	tests := []struct {
		name  string
		h     string
		b     byte
		limit int
		want  int
	}{
		{"empty", "", 'a', -1, 0},
		{"none", "bbb", 'a', -1, 0},
		{"scenario", strings.Repeat("a", 16) + "b", 'a', -1, 16},
		{"all", strings.Repeat("a", 100), 'a', -1, 100},
		{"limited", strings.Repeat("a", 100), 'a', 40, 40},
		{"limit zero", "aaa", 'a', 0, 0},
		{"break in tail", strings.Repeat("x", 70) + "y", 'x', -1, 70},
		{"break at 63", strings.Repeat("x", 63) + "y" + strings.Repeat("x", 10), 'x', -1, 63},
		{"high byte", strings.Repeat("\xff", 33) + "\x7f", 0xff, -1, 33},
		{"nul", strings.Repeat("\x00", 40), 0, -1, 40},
	}
	for _, tt := range tests {
		for _, c := range allCapabilities {
			if got := repeatByteWith(c, []byte(tt.h), tt.b, tt.limit); got != tt.want {
				t.Errorf("%s/%s: got %d, want %d", tt.name, c, got, tt.want)
			}
		}
	}
	if got := RepeatByte([]byte("aaab"), 'a', -1); got != 3 {
		t.Errorf("RepeatByte = %d, want 3", got)
	}
}

func TestNewClassMatcherStrategy(t *testing.T) {
	tests := []struct {
		name string
		set  byteset.Set
		want ClassStrategy
	}{
		{"digits", byteset.Range('0', '9'), StrategyRange},
		{"full", byteset.Full(), StrategyRange},
		{"vowels", byteset.Of('a', 'e', 'i', 'o'), StrategyEnum},
		{"empty", byteset.Set{}, StrategyEnum},
		{"alnum", byteset.Range('0', '9').Union(byteset.Range('A', 'Z')).Union(byteset.Range('a', 'z')), StrategyRanges},
		{"punct", byteset.Of('!', '#', '%', '\'', ')', '+'), StrategyShufti},
		{"spread", byteset.Of(0x01, 0x13, 0x25, 0x37, 0x49, 0x5b, 0x6d, 0x7f, 0x91), StrategyBitmap},
	}
	for _, tt := range tests {
		if got := NewClassMatcher(tt.set).Strategy(); got != tt.want {
			t.Errorf("%s: strategy %s, want %s", tt.name, got, tt.want)
		}
	}
}

// classSets covers every strategy.
var classSets = []byteset.Set{
	byteset.Range('0', '9'),
	byteset.Range(0x80, 0xff),
	byteset.Of('a', 'e', 'i', 'o'),
	byteset.Range('0', '9').Union(byteset.Range('A', 'Z')).Union(byteset.Range('a', 'z')),
	byteset.Of('!', '#', '%', '\'', ')', '+', 0x7f, 0x81),
	byteset.Of(0x01, 0x13, 0x25, 0x37, 0x49, 0x5b, 0x6d, 0x7f, 0x91),
	byteset.Full(),
	{},
}

func TestClassMatcherLanes(t *testing.T) {
	for _, set := range classSets {
		m := NewClassMatcher(set)
		for v := 0; v < 256; v += 8 {
			var chunk [8]byte
			for i := range chunk {
				chunk[i] = byte(v + i)
			}
			got := chunkMask(chunk[:], m.lanes)
			for i, b := range chunk {
				if want := set.Contains(b); (got>>i&1 == 1) != want {
					t.Errorf("%s: byte %#x lane = %v, want %v", m.Strategy(), b, !want, want)
				}
			}
		}
	}
}

func randomInput(rng *rand.Rand, alphabet string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return b
}

func TestVectorScalarEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	alphabet := "aaaaaaab09Z!#\x00\x80\xff"
	lits := [][]byte{[]byte("a"), []byte("ab"), []byte("aab"), []byte("b09"), []byte("\x00\x80"), []byte("zzz")}
	for range 300 {
		h := randomInput(rng, alphabet, rng.Intn(200))
		limit := rng.Intn(len(h)+2) - 1
		wantRepeat := repeatByteScalar(clip(h, limit), 'a')
		for _, c := range allCapabilities {
			if got := repeatByteWith(c, h, 'a', limit); got != wantRepeat {
				t.Fatalf("repeatByteWith(%s, %q, %d) = %d, want %d", c, h, limit, got, wantRepeat)
			}
		}
		for _, set := range classSets {
			m := NewClassMatcher(set)
			want := repeatClassScalar(clip(h, limit), m)
			wantIdx := indexClassWith(None, h, m)
			for _, c := range allCapabilities {
				if got := repeatClassWith(c, h, m, limit); got != want {
					t.Fatalf("repeatClassWith(%s, %s, %q) = %d, want %d", c, m.Strategy(), h, got, want)
				}
				if got := indexClassWith(c, h, m); got != wantIdx {
					t.Fatalf("indexClassWith(%s, %s, %q) = %d, want %d", c, m.Strategy(), h, got, wantIdx)
				}
			}
		}
		for _, lit := range lits {
			s := NewLiteralScanner(lit)
			start := rng.Intn(len(h) + 1)
			want := -1
			if i := bytes.Index(h[start:], lit); i >= 0 {
				want = start + i
			}
			for _, c := range allCapabilities {
				if got := s.findWith(c, h, start); got != want {
					t.Fatalf("findWith(%s, %q, %q, %d) = %d, want %d", c, lit, h, start, got, want)
				}
			}
		}
		wantChr := bytes.IndexByte(h, 'Z')
		for _, c := range allCapabilities {
			if got := memchrWith(c, h, 'Z'); got != wantChr {
				t.Fatalf("memchrWith(%s, %q) = %d, want %d", c, h, got, wantChr)
			}
		}
	}
}

func TestLiteralScanner(t *testing.T) {
	h := []byte("prefix def xxx ghi suffix ghi")
	tests := []struct {
		lit   string
		start int
		want  int
	}{
		{"ghi", 0, 15},
		{"ghi", 16, 26},
		{"ghi", 27, -1},
		{"", 5, 5},
		{"suffix", 0, 19},
		{"prefix", 1, -1},
		{"x", 100, -1},
	}
	for _, tt := range tests {
		s := NewLiteralScanner([]byte(tt.lit))
		for _, c := range allCapabilities {
			if got := s.findWith(c, h, tt.start); got != tt.want {
				t.Errorf("%s: Find(%q, %d) = %d, want %d", c, tt.lit, tt.start, got, tt.want)
			}
		}
	}
	s := NewLiteralScanner([]byte("abc"))
	if string(s.Literal()) != "abc" || s.Len() != 3 {
		t.Errorf("Literal = %q", s.Literal())
	}
}

func TestRarestByte(t *testing.T) {
	tests := []struct {
		lit    string
		b      byte
		offset int
	}{
		{"", 0, -1},
		{"a", 'a', 0},
		{"ab", 'b', 1},
		{"the quiz", 'q', 4},
		{"eeee", 'e', 1},
	}
	for _, tt := range tests {
		b, off := RarestByte([]byte(tt.lit))
		if b != tt.b || off != tt.offset {
			t.Errorf("RarestByte(%q) = (%q, %d), want (%q, %d)", tt.lit, b, off, tt.b, tt.offset)
		}
	}
	if ByteRank('Z') >= ByteRank('e') {
		t.Error("'Z' should rank rarer than 'e'")
	}
}

func TestMemchr(t *testing.T) {
	if got := Memchr([]byte("hello world"), 'o'); got != 4 {
		t.Errorf("Memchr = %d, want 4", got)
	}
	long := []byte(strings.Repeat("-", 200) + "x")
	for _, c := range allCapabilities {
		if got := memchrWith(c, long, 'x'); got != 200 {
			t.Errorf("%s: memchr = %d, want 200", c, got)
		}
		if got := memchrWith(c, long, 'y'); got != -1 {
			t.Errorf("%s: memchr = %d, want -1", c, got)
		}
	}
}

func TestKernels(t *testing.T) {
	h := []byte(strings.Repeat("7", 40) + "x" + strings.Repeat("-", 30) + "Z")
	digits := NewClassMatcher(byteset.Range('0', '9'))
	for _, c := range allCapabilities {
		k := KernelsFor(c)
		if k.Capability() != c {
			t.Errorf("Capability = %s, want %s", k.Capability(), c)
		}
		if got := k.RepeatByte(h, '7', -1); got != 40 {
			t.Errorf("%s: RepeatByte = %d, want 40", c, got)
		}
		if got := k.RepeatClass(h, digits, 12); got != 12 {
			t.Errorf("%s: RepeatClass = %d, want 12", c, got)
		}
		if got := k.IndexClass(h[40:], digits); got != -1 {
			t.Errorf("%s: IndexClass = %d, want -1", c, got)
		}
		if got := k.Memchr(h, 'Z'); got != len(h)-1 {
			t.Errorf("%s: Memchr = %d, want %d", c, got, len(h)-1)
		}
	}
}
