package meta

import (
	"bytes"

	"github.com/segmentio/asm/keyset"

	"github.com/coregx/rematch/ast"
)

// literalSet answers anchored whole-input matches for a pattern that is an
// alternation of plain strings: the input matches iff it equals a branch.
//
// Keys of up to 16 bytes without NUL go into a segmentio/asm key set, which
// compares against all keys with vector instructions. The key set pads keys
// with zero bytes, so a hit is verified against the stored key. Otherwise,
// or when the host has no vector support, a map is used.
type literalSet struct {
	keys  [][]byte
	index []byte
	set   map[string]struct{}
}

// alternationKeys returns the branch strings of n when n, looking through
// captures, is an alternation whose branches are all non-empty strings.
func alternationKeys(n *ast.Node) ([][]byte, bool) {
	root := n.Unwrap()
	if root.Kind != ast.KindAlternation {
		return nil, false
	}
	keys := make([][]byte, 0, len(root.Subs))
	for _, sub := range root.Subs {
		sub = sub.Unwrap()
		switch sub.Kind {
		case ast.KindLiteral:
			keys = append(keys, []byte{sub.Byte})
		case ast.KindString:
			keys = append(keys, sub.Bytes)
		default:
			return nil, false
		}
	}
	return keys, true
}

// maxKeysetKey is the longest key segmentio/asm/keyset stores.
const maxKeysetKey = 16

func newLiteralSet(keys [][]byte) *literalSet {
	s := &literalSet{keys: keys}
	if keysetCompatible(keys) {
		s.index = keyset.New(keys)
	}
	if s.index == nil {
		s.set = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			s.set[string(k)] = struct{}{}
		}
	}
	return s
}

// contains reports whether input equals one of the keys.
func (s *literalSet) contains(input []byte) bool {
	if s.index == nil {
		_, ok := s.set[string(input)]
		return ok
	}
	if len(input) > maxKeysetKey {
		return false
	}
	i := keyset.Lookup(s.index, input)
	return i < len(s.keys) && bytes.Equal(s.keys[i], input)
}

func keysetCompatible(keys [][]byte) bool {
	for _, k := range keys {
		if len(k) > maxKeysetKey || bytes.IndexByte(k, 0) >= 0 {
			return false
		}
	}
	return true
}

// usesKeyset reports whether the vector key set is in use.
func (s *literalSet) usesKeyset() bool {
	return s.index != nil
}
