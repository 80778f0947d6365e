package meta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/rematch/ast"
)

func TestAlternationKeys(t *testing.T) {
	keys, ok := alternationKeys(ast.MustParse(`(Tom|Sawyer|Huckleberry|Finn)`))
	require.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("Tom"), []byte("Sawyer"), []byte("Huckleberry"), []byte("Finn")}, keys)

	keys, ok = alternationKeys(ast.Alt(ast.Lit('x'), ast.Str("yz")))
	require.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("x"), []byte("yz")}, keys)

	for _, p := range []string{`abc`, `a+|b`, `(ab|c)d`, `x[0-9]|y`} {
		_, ok := alternationKeys(ast.MustParse(p))
		assert.False(t, ok, p)
	}
}

func TestLiteralSetContains(t *testing.T) {
	long := strings.Repeat("k", 20)
	tests := []struct {
		name   string
		keys   []string
		keyset bool // eligible for the vector key set
	}{
		{"short", []string{"Tom", "Sawyer", "Huckleberry", "Finn"}, true},
		{"long key", []string{"Tom", long}, false},
		{"nul byte", []string{"a\x00b", "c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := make([][]byte, len(tt.keys))
			for i, k := range tt.keys {
				keys[i] = []byte(k)
			}
			s := newLiteralSet(keys)
			if !tt.keyset {
				assert.False(t, s.usesKeyset())
			}

			for _, k := range tt.keys {
				assert.True(t, s.contains([]byte(k)), "%q", k)
			}
			for _, k := range []string{"", "To", "Tomm", "Tom\x00", "tom", long + "k", "a"} {
				assert.False(t, s.contains([]byte(k)), "%q", k)
			}
		})
	}
}
