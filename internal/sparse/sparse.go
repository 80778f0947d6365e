// Package sparse provides a sparse set of automaton states used by the
// position-automaton simulator.
//
// A sparse set supports O(1) insertion, membership testing and clearing
// while keeping a dense list of members in insertion order. Each member
// additionally carries a start offset: the input position at which the
// thread occupying that state began. The simulator keeps, per state, only
// the earliest start that reached it.
package sparse

// Set is a set of uint32 state ids in [0, capacity) with a start offset per
// member.
type Set struct {
	sparse []uint32
	dense  []uint32
	starts []int // indexed like dense
}

// NewSet creates a set able to hold ids in [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
		starts: make([]int, 0, capacity),
	}
}

// Capacity returns the exclusive upper bound on ids.
func (s *Set) Capacity() int {
	return len(s.sparse)
}

// Insert adds id with the given start. It returns false, leaving the set
// unchanged, when id is already present.
// Panics if id >= capacity.
func (s *Set) Insert(id uint32, start int) bool {
	if s.Contains(id) {
		return false
	}
	s.sparse[id] = uint32(len(s.dense))
	s.dense = append(s.dense, id)
	s.starts = append(s.starts, start)
	return true
}

// InsertMin adds id with start, or lowers the start of an existing member
// when start is earlier.
func (s *Set) InsertMin(id uint32, start int) {
	if s.Contains(id) {
		i := s.sparse[id]
		if start < s.starts[i] {
			s.starts[i] = start
		}
		return
	}
	s.Insert(id, start)
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id uint32) bool {
	if int(id) >= len(s.sparse) {
		return false
	}
	i := s.sparse[id]
	return int(i) < len(s.dense) && s.dense[i] == id
}

// Start returns the start offset recorded for id, or -1 if id is absent.
func (s *Set) Start(id uint32) int {
	if !s.Contains(id) {
		return -1
	}
	return s.starts[s.sparse[id]]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	return len(s.dense) == 0
}

// At returns the i-th member in insertion order with its start.
func (s *Set) At(i int) (id uint32, start int) {
	return s.dense[i], s.starts[i]
}

// Values returns the members in insertion order. The slice is valid until
// the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}

// Clear removes all members in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
	s.starts = s.starts[:0]
}

// Retain keeps only members whose start is <= maxStart, preserving order.
func (s *Set) Retain(maxStart int) {
	n := 0
	for i, id := range s.dense {
		if s.starts[i] > maxStart {
			continue
		}
		s.dense[n] = id
		s.starts[n] = s.starts[i]
		s.sparse[id] = uint32(n)
		n++
	}
	s.dense = s.dense[:n]
	s.starts = s.starts[:n]
}
