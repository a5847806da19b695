// Package commands implements the user facing operations on PNG files:
// hiding a message in a chunk, reading it back, removing it and listing the
// chunks of a file.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"pngme.adpollak.net/internal/chunk"
	"pngme.adpollak.net/internal/png"
)

type Runner struct {
	logger *slog.Logger
	mode   os.FileMode
}

func NewRunner(logger *slog.Logger, mode os.FileMode) *Runner {
	return &Runner{logger: logger, mode: mode}
}

// Encode appends a chunk of type chunkType carrying message to the PNG at
// path. The result goes to out, or back to path when out is empty.
func (r *Runner) Encode(path, chunkType, message, out string) error {
	ct, err := chunk.FromString(chunkType)
	if err != nil {
		return err
	}
	// png.Decode rejects these, so the file could not be read back
	if !ct.IsValid() {
		return fmt.Errorf("%w: %s has the reserved bit set", chunk.ErrInvalidChunkType, ct)
	}
	p, err := r.readPng(path)
	if err != nil {
		return err
	}
	c := chunk.New(ct, []byte(message))
	p.AppendChunk(c)
	r.logger.Debug("appended chunk", "type", ct, "length", c.Length(), "crc", c.Crc())
	if out == "" {
		out = path
	}
	return r.writePng(out, p)
}

// Decode returns the message stored in the first chunk of type chunkType.
func (r *Runner) Decode(path, chunkType string) (string, error) {
	p, err := r.readPng(path)
	if err != nil {
		return "", err
	}
	c, ok := p.ChunkByType(chunkType)
	if !ok {
		return "", fmt.Errorf("%w: %q in %s", png.ErrChunkNotFound, chunkType, path)
	}
	r.logger.Debug("found chunk", "type", c.Type(), "length", c.Length())
	return c.DataString()
}

// Remove deletes the first chunk of type chunkType from the PNG at path and
// returns it.
func (r *Runner) Remove(path, chunkType string) (chunk.Chunk, error) {
	p, err := r.readPng(path)
	if err != nil {
		return chunk.Chunk{}, err
	}
	c, err := p.RemoveChunk(chunkType)
	if err != nil {
		return chunk.Chunk{}, fmt.Errorf("%s: %w", path, err)
	}
	r.logger.Debug("removed chunk", "type", c.Type(), "length", c.Length())
	if err := r.writePng(path, p); err != nil {
		return chunk.Chunk{}, err
	}
	return c, nil
}

// Print writes a listing of every chunk in the PNG at path to w.
func (r *Runner) Print(path string, w io.Writer) error {
	p, err := r.readPng(path)
	if err != nil {
		return err
	}
	chunks := p.Chunks()
	if _, err := fmt.Fprintf(w, "%s: %d chunks\n", path, len(chunks)); err != nil {
		return err
	}
	for i, c := range chunks {
		t := c.Type()
		_, err := fmt.Fprintf(w, "%3d  %s  %9s  crc=%08x  %s\n",
			i, t, humanize.IBytes(uint64(c.Length())), c.Crc(), flags(t))
		if err != nil {
			return err
		}
	}
	return nil
}

func flags(t chunk.ChunkType) string {
	s := "ancillary"
	if t.IsCritical() {
		s = "critical"
	}
	if t.IsPublic() {
		s += ",public"
	} else {
		s += ",private"
	}
	if t.IsSafeToCopy() {
		s += ",safe-to-copy"
	} else {
		s += ",unsafe-to-copy"
	}
	if chunk.IsStandard(t) {
		s += ",standard"
	}
	return s
}

func (r *Runner) readPng(path string) (*png.Png, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("read file", "path", path, "size", len(data))
	p, err := png.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.logger.Debug("parsed png", "path", path, "chunks", len(p.Chunks()))
	return p, nil
}

func (r *Runner) writePng(path string, p *png.Png) error {
	data := p.Bytes()
	if err := os.WriteFile(path, data, r.mode); err != nil {
		return err
	}
	r.logger.Debug("wrote file", "path", path, "size", len(data))
	return nil
}
