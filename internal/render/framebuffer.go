//go:build linux

package render

import (
	"errors"
	"fmt"
	"image"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/barchart/internal/chart"
	xdraw "golang.org/x/image/draw"
)

// Framebuffer draws frames into an offscreen canvas and blits them to a
// Linux framebuffer device.
type Framebuffer struct {
	Path string

	// CanvasWidth and CanvasHeight set a logical drawing size that is scaled
	// to the device on Present. Zero means the device's native size.
	CanvasWidth  int
	CanvasHeight int

	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	dev    *fb.Device
	raster *Raster
}

func NewFramebuffer(path string) *Framebuffer {
	if path == "" {
		path = "/dev/fb0"
	}
	return &Framebuffer{Path: path}
}

func (f *Framebuffer) Open() error {
	dev, err := fb.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", f.Path, err)
	}
	f.dev = dev
	if f.Logger != nil {
		bounds := dev.Bounds()
		f.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	return nil
}

func (f *Framebuffer) Close() error {
	if f.dev == nil {
		return nil
	}
	f.dev.Close()
	f.dev = nil
	return nil
}

// Viewport reports the logical canvas size, or the device size when no
// canvas size is configured. The device is queried on every call.
func (f *Framebuffer) Viewport() (chart.Viewport, error) {
	if f.dev == nil {
		return chart.Viewport{}, errors.New("framebuffer not open")
	}
	if f.CanvasWidth > 0 && f.CanvasHeight > 0 {
		return chart.Viewport{Width: float64(f.CanvasWidth), Height: float64(f.CanvasHeight)}, nil
	}
	bounds := f.dev.Bounds()
	return chart.Viewport{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}, nil
}

// Begin returns a cleared surface of the viewport's size. The canvas is
// reused while the size does not change.
func (f *Framebuffer) Begin(vp chart.Viewport) (Surface, error) {
	if f.dev == nil {
		return nil, errors.New("framebuffer not open")
	}
	width, height := pixelSize(vp)
	if f.raster == nil || f.raster.Image().Bounds().Dx() != width || f.raster.Image().Bounds().Dy() != height {
		f.raster = NewRaster(width, height)
	} else {
		f.raster.Reset()
	}
	f.raster.Clear(Background)
	return f.raster, nil
}

func (f *Framebuffer) Present() error {
	if f.dev == nil || f.raster == nil {
		return errors.New("framebuffer not open")
	}
	blitToFB(f.dev, f.raster.Image())
	return nil
}

// blitToFB copies canvas onto dst with nearest-neighbor scaling.
func blitToFB(dst xdraw.Image, canvas *image.RGBA) {
	if canvas.Bounds().Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)
}
