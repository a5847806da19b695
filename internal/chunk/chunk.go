package chunk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/snksoft/crc"
)

// Below is visually what a chunk in the PNG datastream looks like.
//  +------------+ +------------+ +------------+ +-------+
//  |   LENGTH   | | CHUNK TYPE | | CHUNK DATA | |  CRC  |
//  +------------+ +------------+ +------------+ +-------+
const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// Overhead is the number of bytes a chunk occupies besides its data.
	Overhead = lengthSize + typeSize + crcSize
)

// Chunk defines the chunk layout as specified by PNG datastream structure.
// The length and CRC are derived from the type and data, so a Chunk is
// always internally consistent.
type Chunk struct {
	length uint32    // Number of bytes in the data field.
	typ    ChunkType // A sequence of four bytes defining the chunk type.
	data   []byte    // The data bytes of the chunk; can be zero length.
	crc    uint32    // Calculated on type and data, NOT length.
}

// New builds a chunk carrying data. The data slice is copied.
func New(t ChunkType, data []byte) Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return Chunk{
		length: uint32(len(d)),
		typ:    t,
		data:   d,
		crc:    checksum(t, d),
	}
}

// Decode parses one chunk from the start of b. b must hold at least
// Overhead+length bytes; anything past the chunk is ignored.
func Decode(b []byte) (Chunk, error) {
	// Step 1: Read 4 integer bytes, the length of the chunk data field.
	if len(b) < Overhead {
		return Chunk{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncated, len(b), Overhead)
	}
	length := binary.BigEndian.Uint32(b[0:lengthSize])

	// Step 2: Read 4 bytes of chunk type.
	var raw [4]byte
	copy(raw[:], b[lengthSize:lengthSize+typeSize])
	t, err := FromBytes(raw)
	if err != nil {
		return Chunk{}, fmt.Errorf("%w: %w", ErrInvalidChunkType, err)
	}
	if !t.IsValid() {
		return Chunk{}, fmt.Errorf("%w: %s has the reserved bit set", ErrInvalidChunkType, t)
	}

	// Step 3: Slice the chunk data.
	span := uint64(Overhead) + uint64(length)
	if uint64(len(b)) < span {
		return Chunk{}, fmt.Errorf("%w: %s declares %d data bytes, only %d available", ErrTruncated, t, length, len(b)-Overhead)
	}
	start := lengthSize + typeSize
	end := start + int(length)
	data := make([]byte, length)
	copy(data, b[start:end])

	// Step 4: Validate the stored CRC against type + data.
	stored := binary.BigEndian.Uint32(b[end : end+crcSize])
	computed := checksum(t, data)
	if stored != computed {
		return Chunk{}, fmt.Errorf("%w: %s stored %08x, calculated %08x", ErrInvalidCRC, t, stored, computed)
	}

	return Chunk{
		length: length,
		typ:    t,
		data:   data,
		crc:    stored,
	}, nil
}

// checksum computes the CRC-32/IEEE over the type code followed by data.
func checksum(t ChunkType, data []byte) uint32 {
	preceding := make([]byte, 0, typeSize+len(data))
	preceding = append(preceding, t.b[:]...)
	preceding = append(preceding, data...)
	return uint32(crc.CalculateCRC(crc.CRC32, preceding))
}

func (c Chunk) Length() uint32 {
	return c.length
}

func (c Chunk) Type() ChunkType {
	return c.typ
}

// Data returns the chunk payload. Callers must not modify it.
func (c Chunk) Data() []byte {
	return c.data
}

// DataString returns the payload as text.
func (c Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: %s", ErrUtf8Decode, c.typ)
	}
	return string(c.data), nil
}

func (c Chunk) Crc() uint32 {
	return c.crc
}

// Bytes serializes the chunk as length, type, data and CRC.
func (c Chunk) Bytes() []byte {
	out := make([]byte, Overhead+len(c.data))
	binary.BigEndian.PutUint32(out[0:lengthSize], c.length)
	copy(out[lengthSize:], c.typ.b[:])
	n := lengthSize + typeSize
	n += copy(out[n:], c.data)
	binary.BigEndian.PutUint32(out[n:], c.crc)
	return out
}

// Equal reports whether c and o have the same type and data.
func (c Chunk) Equal(o Chunk) bool {
	return c.typ == o.typ && c.crc == o.crc && bytes.Equal(c.data, o.data)
}

func (c Chunk) String() string {
	data := fmt.Sprintf("%x", c.data)
	if utf8.Valid(c.data) {
		data = fmt.Sprintf("%q", c.data)
	}
	return fmt.Sprintf("Chunk {\n  Length: %d\n  Type: %s\n  Data: %s\n  Crc: %d\n}", c.length, c.typ, data, c.crc)
}
