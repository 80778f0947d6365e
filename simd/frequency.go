package simd

// byteRanks orders byte values by how common they are in text, source code
// and binary data. Lower rank means rarer.
var byteRanks = [256]byte{
	// 0x00-0x0F: control characters
	0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 0,
	// 0x10-0x1F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// 0x20-0x2F: space and punctuation
	255, 60, 140, 50, 40, 35, 30, 160, 130, 130, 80, 55, 200, 140, 210, 100,
	// 0x30-0x3F: digits
	180, 190, 170, 150, 140, 140, 130, 120, 120, 120, 150, 100, 70, 160, 70, 50,
	// 0x40-0x4F: '@', A-O
	25, 120, 80, 90, 85, 130, 75, 70, 80, 115, 30, 35, 90, 85, 100, 105,
	// 0x50-0x5F: P-Z, brackets
	80, 15, 100, 110, 115, 70, 45, 55, 20, 50, 10, 90, 60, 90, 20, 110,
	// 0x60-0x6F: '`', a-o
	30, 225, 140, 170, 165, 245, 135, 130, 150, 200, 25, 65, 175, 155, 195, 205,
	// 0x70-0x7F: p-z, braces
	145, 15, 195, 200, 215, 150, 75, 95, 45, 120, 20, 85, 40, 85, 15, 0,
	// 0x80-0xFF: non-ASCII
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
}

// ByteRank returns the frequency rank of b. Lower values are rarer.
func ByteRank(b byte) byte {
	return byteRanks[b]
}

// RarestByte returns the rarest byte of lit after its first byte and its
// offset, the earliest on ties. For a one-byte literal it returns the first
// byte at offset 0.
func RarestByte(lit []byte) (b byte, offset int) {
	if len(lit) == 0 {
		return 0, -1
	}
	if len(lit) == 1 {
		return lit[0], 0
	}
	b, offset = lit[1], 1
	for i := 2; i < len(lit); i++ {
		if byteRanks[lit[i]] < byteRanks[b] {
			b, offset = lit[i], i
		}
	}
	return b, offset
}
