package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rook-computer/barchart/internal/app"
)

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	cfg := app.DefaultConfig(app.ModeOneShot)

	pngPath := filepath.Join(dir, "chart.png")
	if err := renderFile(context.Background(), pngPath, 300, 200, cfg, app.NoopLogger{}); err != nil {
		t.Fatalf("png: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("size=%v", b)
	}

	svgPath := filepath.Join(dir, "chart.SVG")
	if err := renderFile(context.Background(), svgPath, 300, 200, cfg, app.NoopLogger{}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ">unchecked</text>") {
		t.Fatalf("svg missing label:\n%s", data)
	}
}

func TestRenderFile_UnknownExtension(t *testing.T) {
	err := renderFile(context.Background(), filepath.Join(t.TempDir(), "chart.gif"), 10, 10, app.DefaultConfig(app.ModeOneShot), app.NoopLogger{})
	if err == nil {
		t.Fatal("expected error for .gif")
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8080":       "127.0.0.1:8080",
		"[::]:9000":   "127.0.0.1:9000",
		"10.0.0.2:80": "10.0.0.2:80",
	}
	for in, want := range tests {
		if got := displayAddr(in); got != want {
			t.Errorf("displayAddr(%q)=%q, want %q", in, got, want)
		}
	}
}
