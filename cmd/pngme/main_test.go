package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	stdpng "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pngme.adpollak.net/internal/commands"
)

func TestRunUsage(t *testing.T) {
	r := commands.NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)), 0o644)
	cases := [][]string{
		nil,
		{"paint"},
		{"encode", "a.png", "ruSt"},
		{"encode", "-bogus", "a.png", "ruSt", "msg"},
		{"decode", "a.png"},
		{"remove"},
		{"print", "a.png", "b.png"},
	}
	for i, args := range cases {
		t.Run(fmt.Sprintf("run_%d", i), func(t *testing.T) {
			err := run(r, args, io.Discard)
			var u errUsage
			if !errors.As(err, &u) {
				t.Errorf("run(%q): expected a usage error, got %v", args, err)
			}
		})
	}
}

func TestRunCommands(t *testing.T) {
	r := commands.NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)), 0o644)
	src := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(src)
	if err != nil {
		t.Fatalf("Error creating temp file: %v", err)
	}
	if err := stdpng.Encode(f, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Error encoding PNG: %v", err)
	}
	f.Close()
	dst := filepath.Join(filepath.Dir(src), "out.png")

	var out bytes.Buffer
	if err := run(r, []string{"encode", "-out", dst, src, "ruSt", "hi there"}, &out); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out.Reset()
	if err := run(r, []string{"decode", dst, "ruSt"}, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.TrimSpace(out.String()) != "hi there" {
		t.Errorf("decode printed %q", out.String())
	}
	out.Reset()
	if err := run(r, []string{"print", dst}, &out); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(out.String(), "ruSt") {
		t.Errorf("print output lacks ruSt:\n%s", out.String())
	}
	out.Reset()
	if err := run(r, []string{"remove", dst, "ruSt"}, &out); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(out.String(), "removed ruSt") {
		t.Errorf("remove printed %q", out.String())
	}
}
