package byteset

import (
	"bytes"
	"testing"
)

func TestSetBasics(t *testing.T) {
	s := Of('a', 'c', 0, 255)
	for _, b := range []byte{'a', 'c', 0, 255} {
		if !s.Contains(b) {
			t.Errorf("Contains(%d) = false, want true", b)
		}
	}
	if s.Contains('b') {
		t.Error("Contains('b') = true, want false")
	}
	if got := s.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
	if got := s.Members(); !bytes.Equal(got, []byte{0, 'a', 'c', 255}) {
		t.Errorf("Members() = %v", got)
	}
}

func TestSetRanges(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want [][2]byte
	}{
		{"empty", Set{}, nil},
		{"digits", Range('0', '9'), [][2]byte{{'0', '9'}}},
		{"two", Range('a', 'c').Union(Range('x', 'z')), [][2]byte{{'a', 'c'}, {'x', 'z'}}},
		{"tail", Range(250, 255), [][2]byte{{250, 255}}},
		{"full", Full(), [][2]byte{{0, 255}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.set.Ranges()
			if len(got) != len(tt.want) {
				t.Fatalf("Ranges() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Ranges()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSetAlgebra(t *testing.T) {
	a := Range('a', 'm')
	b := Range('k', 'z')
	if a.Disjoint(b) {
		t.Error("overlapping sets reported disjoint")
	}
	if got := a.Intersect(b).Len(); got != 3 {
		t.Errorf("|a∩b| = %d, want 3", got)
	}
	if !Range('0', '9').Disjoint(Of('.')) {
		t.Error("digits and '.' should be disjoint")
	}
	c := a.Complement()
	if c.Len() != 256-13 || c.Contains('a') || !c.Contains('z') {
		t.Errorf("Complement wrong: len=%d", c.Len())
	}
	if !Full().IsFull() || Range(1, 255).IsFull() {
		t.Error("IsFull wrong")
	}
	if m, ok := Range('x', 'z').Min(); !ok || m != 'x' {
		t.Errorf("Min() = %q, %v", m, ok)
	}
	if _, ok := (Set{}).Min(); ok {
		t.Error("Min() of empty set reported ok")
	}
	if Range('z', 'a') != (Set{}) {
		t.Error("inverted range should be empty")
	}
}

func TestSetMethodsOnResults(t *testing.T) {
	digits := Range('0', '9')
	if n := digits.Union(Of('.')).Len(); n != 11 {
		t.Errorf("Union().Len() = %d, want 11", n)
	}
	if !digits.Intersect(Range('a', 'z')).IsEmpty() {
		t.Error("Intersect().IsEmpty() = false, want true")
	}
	if got := digits.Complement().Complement().Members(); !bytes.Equal(got, []byte("0123456789")) {
		t.Errorf("Complement().Complement().Members() = %q", got)
	}
	if got := Of('b', 'a', 'c').Union(Of('x')).Ranges(); len(got) != 2 || got[0] != [2]byte{'a', 'c'} || got[1] != [2]byte{'x', 'x'} {
		t.Errorf("Union().Ranges() = %v", got)
	}
	if Full().Intersect(digits).Contains('a') {
		t.Error("Intersect().Contains('a') = true")
	}
}
