package chunk

import "fmt"

// ChunkType is the four-byte chunk type code. The case of each byte encodes
// one property bit: ancillary, private, reserved and safe-to-copy.
type ChunkType struct {
	b [4]byte
}

// FromBytes builds a ChunkType from raw bytes. Every byte must be an ASCII
// letter.
func FromBytes(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isLetter(c) {
			return ChunkType{}, fmt.Errorf("%w: byte %d is 0x%02x in %q", ErrInvalidBytes, i, c, b[:])
		}
	}
	return ChunkType{b: b}, nil
}

// FromString builds a ChunkType from a four character type code, e.g. "tEXt".
func FromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("%w: %q is %d bytes long, want 4", ErrInvalidChunkLength, s, len(s))
	}
	var b [4]byte
	copy(b[:], s)
	return FromBytes(b)
}

// Bytes returns a copy of the type code.
func (t ChunkType) Bytes() [4]byte {
	return t.b
}

// IsCritical reports whether the ancillary bit (bit 5 of byte 0) is clear.
func (t ChunkType) IsCritical() bool {
	return isUpper(t.b[0])
}

// IsPublic reports whether the private bit (bit 5 of byte 1) is clear.
func (t ChunkType) IsPublic() bool {
	return isUpper(t.b[1])
}

// IsReservedBitValid reports whether the reserved bit (bit 5 of byte 2) is
// clear, as PNG 1.2 requires.
func (t ChunkType) IsReservedBitValid() bool {
	return isUpper(t.b[2])
}

// IsSafeToCopy reports whether the safe-to-copy bit (bit 5 of byte 3) is set.
func (t ChunkType) IsSafeToCopy() bool {
	return isLower(t.b[3])
}

// IsValid reports whether t may appear in a conforming datastream.
// A ChunkType that was built successfully can still fail here when its
// reserved bit is set.
func (t ChunkType) IsValid() bool {
	for _, c := range t.b {
		if !isLetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

func (t ChunkType) String() string {
	return string(t.b[:])
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isLetter(c byte) bool { return isUpper(c) || isLower(c) }

// IsStandard reports whether t is one of the chunk types registered by the
// PNG specification.
func IsStandard(t ChunkType) bool {
	_, ok := standard[t]
	return ok
}

func mustType(s string) ChunkType {
	t, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	// NOTE: Critical chunks
	ChunkIHDR = mustType("IHDR")
	ChunkPLTE = mustType("PLTE")
	ChunkIDAT = mustType("IDAT")
	ChunkIEND = mustType("IEND")

	// NOTE: Ancillary chunks
	ChunkcHRM = mustType("cHRM")
	ChunkgAMA = mustType("gAMA")
	ChunkiCCP = mustType("iCCP")
	ChunksBIT = mustType("sBIT")
	ChunksRGB = mustType("sRGB")
	ChunkbKGD = mustType("bKGD")
	ChunkhIST = mustType("hIST")
	ChunktRNS = mustType("tRNS")
	ChunkpHYs = mustType("pHYs")
	ChunksPLT = mustType("sPLT")
	ChunktIME = mustType("tIME")
	ChunkiTXt = mustType("iTXt")
	ChunktEXt = mustType("tEXt")
	ChunkzTXt = mustType("zTXt")
)

var standard = map[ChunkType]struct{}{
	ChunkIHDR: {}, ChunkPLTE: {}, ChunkIDAT: {}, ChunkIEND: {},
	ChunkcHRM: {}, ChunkgAMA: {}, ChunkiCCP: {}, ChunksBIT: {},
	ChunksRGB: {}, ChunkbKGD: {}, ChunkhIST: {}, ChunktRNS: {},
	ChunkpHYs: {}, ChunksPLT: {}, ChunktIME: {}, ChunkiTXt: {},
	ChunktEXt: {}, ChunkzTXt: {},
}
