package main

import (
	"bytes"
	"fmt"

	"github.com/rook-computer/barchart/internal/app"
	"github.com/rook-computer/barchart/internal/render"
)

// fileTarget picks a render target for path. encode moves the finished
// frame into buf; for SVG the target already wrote it on Present.
func fileTarget(path string, buf *bytes.Buffer, width, height int) (app.Target, func() error, error) {
	switch ext(path) {
	case ".png":
		target := render.NewImageTarget(width, height)
		return target, func() error { return target.WritePNG(buf) }, nil
	case ".svg":
		return render.NewSVGTarget(buf, width, height), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported output %q: use .png or .svg", path)
	}
}
