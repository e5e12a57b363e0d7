package render

import (
	"errors"
	"io"

	"github.com/rook-computer/barchart/internal/chart"
)

// ImageTarget renders into an in-memory image of a fixed size.
type ImageTarget struct {
	Width  int
	Height int

	raster *Raster
}

func NewImageTarget(width, height int) *ImageTarget {
	return &ImageTarget{Width: width, Height: height}
}

func (t *ImageTarget) Viewport() (chart.Viewport, error) {
	return chart.Viewport{Width: float64(t.Width), Height: float64(t.Height)}, nil
}

func (t *ImageTarget) Begin(vp chart.Viewport) (Surface, error) {
	width, height := pixelSize(vp)
	t.raster = NewRaster(width, height)
	t.raster.Clear(Background)
	return t.raster, nil
}

func (t *ImageTarget) Present() error { return nil }

// Raster returns the last drawn frame, or nil before the first one.
func (t *ImageTarget) Raster() *Raster { return t.raster }

// WritePNG encodes the last drawn frame.
func (t *ImageTarget) WritePNG(w io.Writer) error {
	if t.raster == nil {
		return errors.New("no frame drawn")
	}
	return t.raster.EncodePNG(w)
}

// SVGTarget writes one SVG document per frame to W.
type SVGTarget struct {
	W      io.Writer
	Width  int
	Height int

	surface *SVG
}

func NewSVGTarget(w io.Writer, width, height int) *SVGTarget {
	return &SVGTarget{W: w, Width: width, Height: height}
}

func (t *SVGTarget) Viewport() (chart.Viewport, error) {
	return chart.Viewport{Width: float64(t.Width), Height: float64(t.Height)}, nil
}

func (t *SVGTarget) Begin(vp chart.Viewport) (Surface, error) {
	if t.W == nil {
		return nil, ErrNoSurface
	}
	width, height := pixelSize(vp)
	t.surface = NewSVG(t.W, width, height)
	t.surface.Clear(Background, width, height)
	return t.surface, nil
}

func (t *SVGTarget) Present() error {
	if t.surface == nil {
		return errors.New("no frame drawn")
	}
	err := t.surface.Close()
	t.surface = nil
	return err
}

// pixelSize converts a viewport to whole pixels, never negative.
func pixelSize(vp chart.Viewport) (int, int) {
	return pixels(vp.Width), pixels(vp.Height)
}

// MaxCanvasSide caps either side of an offscreen canvas.
const MaxCanvasSide = 1 << 14

func pixels(v float64) int {
	if !(v > 0) {
		return 0
	}
	if v > MaxCanvasSide {
		return MaxCanvasSide
	}
	return int(v)
}
