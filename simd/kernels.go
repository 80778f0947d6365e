package simd

// Kernels binds the matcher families to one capability level. The package
// functions use the probed capability; Kernels lets a caller pin a level,
// for instance None to force the scalar paths.
//
// Example:
//
//	k := simd.KernelsFor(simd.None)
//	n := k.RepeatByte([]byte("aaab"), 'a', -1) // n == 3, scalar path
type Kernels struct {
	c Capability
}

// KernelsFor returns kernels running at capability c.
func KernelsFor(c Capability) Kernels {
	return Kernels{c: c}
}

// Capability returns the pinned capability level.
func (k Kernels) Capability() Capability {
	return k.c
}

// RepeatByte is RepeatByte at the pinned level.
func (k Kernels) RepeatByte(h []byte, b byte, limit int) int {
	return repeatByteWith(k.c, h, b, limit)
}

// RepeatClass is RepeatClass at the pinned level.
func (k Kernels) RepeatClass(h []byte, m *ClassMatcher, limit int) int {
	return repeatClassWith(k.c, h, m, limit)
}

// IndexClass is IndexClass at the pinned level.
func (k Kernels) IndexClass(h []byte, m *ClassMatcher) int {
	return indexClassWith(k.c, h, m)
}

// Memchr is Memchr at the pinned level.
func (k Kernels) Memchr(h []byte, b byte) int {
	return memchrWith(k.c, h, b)
}
