package main

import (
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesPreview(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plot.png")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := run(64, 48, 10, out, logger); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("preview size = %dx%d, want 64x48", b.Dx(), b.Dy())
	}
}
