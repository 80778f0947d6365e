package ast

import (
	"fmt"
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// Parse parses pattern with Perl syntax and lowers it with FromSyntax.
//
// Anchors and word boundaries are rejected with ErrUnsupported: match is
// always anchored at both ends and search is unanchored, so the tree has no
// node for them.
func Parse(pattern string) (*Node, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     fmt.Errorf("%w: %w", ErrInvalidPattern, err),
		}
	}
	n, err := FromSyntax(re)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return n, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) *Node {
	n, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return n
}

// FromSyntax lowers a parsed regexp/syntax tree.
//
// Literal runes become their UTF-8 bytes; case-folded literals become a
// class per byte position when every fold of the rune is a single byte.
// Class ranges are clipped to 0x00-0xFF. Greediness flags are ignored since
// matching is leftmost-longest.
func FromSyntax(re *syntax.Regexp) (*Node, error) {
	switch re.Op {
	case syntax.OpNoMatch:
		return ClassNode(NewClass()), nil

	case syntax.OpEmptyMatch:
		return Empty(), nil

	case syntax.OpLiteral:
		return lowerLiteral(re.Rune, re.Flags&syntax.FoldCase != 0), nil

	case syntax.OpCharClass:
		return ClassNode(lowerClass(re.Rune)), nil

	case syntax.OpAnyCharNotNL:
		return ClassNode(NegatedClass(Single('\n'))), nil

	case syntax.OpAnyChar:
		return Any(), nil

	case syntax.OpCapture:
		sub, err := FromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return Capture(re.Cap, sub), nil

	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		sub, err := FromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		min, max := repeatBounds(re)
		return Repeat(min, max, sub), nil

	case syntax.OpConcat:
		subs, err := lowerAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return Seq(subs...), nil

	case syntax.OpAlternate:
		subs, err := lowerAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return Alt(subs...), nil

	default:
		return nil, unsupportedError(re.Op)
	}
}

func lowerAll(res []*syntax.Regexp) ([]*Node, error) {
	out := make([]*Node, 0, len(res))
	for _, sub := range res {
		n, err := FromSyntax(sub)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func repeatBounds(re *syntax.Regexp) (int, int) {
	switch re.Op {
	case syntax.OpStar:
		return 0, Unbounded
	case syntax.OpPlus:
		return 1, Unbounded
	case syntax.OpQuest:
		return 0, 1
	}
	if re.Max < 0 {
		return re.Min, Unbounded
	}
	return re.Min, re.Max
}

func lowerLiteral(runes []rune, fold bool) *Node {
	var parts []*Node
	var text []byte
	flush := func() {
		if len(text) > 0 {
			parts = append(parts, Str(string(text)))
			text = nil
		}
	}
	for _, r := range runes {
		if fold {
			if c, ok := foldClass(r); ok {
				flush()
				parts = append(parts, ClassNode(c))
				continue
			}
		}
		text = utf8.AppendRune(text, r)
	}
	flush()
	return Seq(parts...)
}

// foldClass returns the class of the ASCII case variants of r. It declines
// when r has no other ASCII variant.
func foldClass(r rune) (*Class, bool) {
	if r >= utf8.RuneSelf {
		return nil, false
	}
	c := &Class{}
	c.set.Add(byte(r))
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < utf8.RuneSelf {
			c.set.Add(byte(f))
		}
	}
	if c.Len() == 1 {
		return nil, false
	}
	return c, true
}

func lowerClass(pairs []rune) *Class {
	c := &Class{}
	for i := 0; i+1 < len(pairs); i += 2 {
		lo, hi := pairs[i], pairs[i+1]
		if lo > 0xFF {
			continue
		}
		if hi > 0xFF {
			hi = 0xFF
		}
		c.set.AddRange(byte(lo), byte(hi))
	}
	return c
}
