//go:build linux

package render

import (
	"image"
	"image/color"
	"testing"
)

func TestBlitToFB_ScalesNearestNeighbor(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 2, 1))
	canvas.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	canvas.SetRGBA(1, 0, color.RGBA{B: 0xFF, A: 0xFF})

	dst := image.NewRGBA(image.Rect(0, 0, 4, 2))
	blitToFB(dst, canvas)

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			want := color.RGBA{R: 0xFF, A: 0xFF}
			if x >= 2 {
				want = color.RGBA{B: 0xFF, A: 0xFF}
			}
			if got := dst.RGBAAt(x, y); got != want {
				t.Errorf("(%d,%d)=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBlitToFB_EmptyCanvasLeavesDisplay(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 3, 3))
	dst.SetRGBA(1, 1, color.RGBA{G: 0xFF, A: 0xFF})
	blitToFB(dst, image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if got := dst.RGBAAt(1, 1); got.G != 0xFF {
		t.Fatalf("empty canvas overwrote display: %v", got)
	}
}
