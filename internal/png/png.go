// Package png holds a PNG datastream as an ordered list of chunks. It does
// not look at pixel data.
package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"strings"

	"pngme.adpollak.net/internal/chunk"
)

// Signature is the 8 byte header every PNG datastream starts with:
// 137 80 78 71 13 10 26 10.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

var (
	ErrInvalidHeader = errors.New("invalid png signature")
	ErrChunkNotFound = errors.New("chunk not found")
)

// Png is a PNG datastream. Chunk order is the on-disk order.
type Png struct {
	chunks []chunk.Chunk
}

// New builds a Png from chunks in the given order.
func New(chunks []chunk.Chunk) *Png {
	p := &Png{chunks: make([]chunk.Chunk, len(chunks))}
	copy(p.chunks, chunks)
	return p
}

// Decode parses a whole datastream. A bad chunk anywhere fails the call.
func Decode(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		n := min(len(b), len(Signature))
		return nil, fmt.Errorf("%w: got %x, expected %x", ErrInvalidHeader, b[:n], Signature)
	}
	p := &Png{chunks: make([]chunk.Chunk, 0)}
	offset := len(Signature)
	for offset < len(b) {
		rest := b[offset:]
		if len(rest) < chunk.Overhead {
			return nil, fmt.Errorf("chunk at offset %d: %w: %d trailing bytes", offset, chunk.ErrTruncated, len(rest))
		}
		span := uint64(chunk.Overhead) + uint64(binary.BigEndian.Uint32(rest[0:4]))
		if span > uint64(len(rest)) {
			return nil, fmt.Errorf("chunk at offset %d: %w: span %d, %d bytes left", offset, chunk.ErrTruncated, span, len(rest))
		}
		c, err := chunk.Decode(rest[:span])
		if err != nil {
			return nil, fmt.Errorf("chunk at offset %d: %w", offset, err)
		}
		p.chunks = append(p.chunks, c)
		offset += int(span)
	}
	return p, nil
}

// AppendChunk adds c after the last chunk. Duplicate types are allowed.
func (p *Png) AppendChunk(c chunk.Chunk) {
	p.chunks = append(p.chunks, c)
}

// index returns the position of the first chunk whose type code is exactly
// typeCode, or -1.
func (p *Png) index(typeCode string) int {
	for i, c := range p.chunks {
		if c.Type().String() == typeCode {
			return i
		}
	}
	return -1
}

// ChunkByType returns the first chunk whose type code equals typeCode.
// The comparison is case sensitive.
func (p *Png) ChunkByType(typeCode string) (chunk.Chunk, bool) {
	i := p.index(typeCode)
	if i < 0 {
		return chunk.Chunk{}, false
	}
	return p.chunks[i], true
}

// RemoveChunk removes and returns the first chunk whose type code equals
// typeCode. Later chunks of the same type are kept.
func (p *Png) RemoveChunk(typeCode string) (chunk.Chunk, error) {
	i := p.index(typeCode)
	if i < 0 {
		return chunk.Chunk{}, fmt.Errorf("%w: %q", ErrChunkNotFound, typeCode)
	}
	c := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return c, nil
}

// Chunks returns a copy of the chunk list in stored order.
func (p *Png) Chunks() []chunk.Chunk {
	return slices.Clone(p.chunks)
}

// Bytes serializes the signature followed by every chunk.
func (p *Png) Bytes() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += chunk.Overhead + len(c.Data())
	}
	var buf bytes.Buffer
	buf.Grow(size)
	buf.Write(Signature[:])
	for _, c := range p.chunks {
		buf.Write(c.Bytes())
	}
	return buf.Bytes()
}

// Equal reports whether p and o hold equal chunks in the same order.
func (p *Png) Equal(o *Png) bool {
	if len(p.chunks) != len(o.chunks) {
		return false
	}
	for i := range p.chunks {
		if !p.chunks[i].Equal(o.chunks[i]) {
			return false
		}
	}
	return true
}

func (p *Png) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Png { %d chunks }\n", len(p.chunks))
	for i, c := range p.chunks {
		fmt.Fprintf(&sb, "%d: %s len=%d crc=%08x\n", i, c.Type(), c.Length(), c.Crc())
	}
	return sb.String()
}
