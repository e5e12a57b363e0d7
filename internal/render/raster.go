package render

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Raster is a Surface backed by an RGBA image.
type Raster struct {
	img   *image.RGBA
	dc    *gg.Context
	text  textState
	stack []textState
	// truetype faces keep glyph caches and are not safe to share.
	faces map[Font]font.Face
}

// textState is the part of the paint state gg does not track itself.
type textState struct {
	font     Font
	align    TextAlign
	baseline TextBaseline
}

func NewRaster(width, height int) *Raster {
	return NewRasterFor(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewRasterFor draws into an existing image.
func NewRasterFor(img *image.RGBA) *Raster {
	r := &Raster{img: img, dc: gg.NewContextForRGBA(img), faces: map[Font]font.Face{}}
	r.initPaint()
	return r
}

// Reset returns the raster to its initial paint state for a new frame,
// keeping the pixels and the font faces already loaded.
func (r *Raster) Reset() {
	for len(r.stack) > 0 {
		r.Restore()
	}
	r.dc.Identity()
	r.dc.ResetClip()
	r.dc.ClearPath()
	r.dc.SetLineWidth(1)
	r.initPaint()
}

func (r *Raster) initPaint() {
	r.text = textState{}
	r.dc.SetFillStyle(gg.NewSolidPattern(DefaultFill))
	r.dc.SetStrokeStyle(gg.NewSolidPattern(DefaultStroke))
	r.SetFont(DefaultFont)
}

func (r *Raster) Image() *image.RGBA { return r.img }

// Clear paints the whole image with c, ignoring paint state.
func (r *Raster) Clear(c color.Color) {
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

func (r *Raster) Save() {
	r.dc.Push()
	r.stack = append(r.stack, r.text)
}

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.dc.Pop()
	r.text = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

// Nil colors and non-positive widths are ignored, leaving the previous value.
func (r *Raster) SetFillColor(c color.Color) {
	if c != nil {
		r.dc.SetFillStyle(gg.NewSolidPattern(c))
	}
}

func (r *Raster) SetStrokeColor(c color.Color) {
	if c != nil {
		r.dc.SetStrokeStyle(gg.NewSolidPattern(c))
	}
}

func (r *Raster) SetLineWidth(width float64) {
	if width > 0 {
		r.dc.SetLineWidth(width)
	}
}

func (r *Raster) SetFont(f Font) {
	r.text.font = f
	r.dc.SetFontFace(r.face(f))
}

func (r *Raster) SetTextAlign(a TextAlign)       { r.text.align = a }
func (r *Raster) SetTextBaseline(b TextBaseline) { r.text.baseline = b }

func (r *Raster) BeginPath() { r.dc.ClearPath() }

func (r *Raster) Rect(x, y, width, height float64) {
	r.dc.DrawRectangle(x, y, width, height)
}

func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }
func (r *Raster) Fill()               { r.dc.FillPreserve() }
func (r *Raster) Stroke()             { r.dc.StrokePreserve() }

func (r *Raster) FillText(text string, x, y float64) {
	metrics := r.face(r.text.font).Metrics()
	ascent := float64(metrics.Ascent) / 64
	descent := float64(metrics.Descent) / 64

	switch r.text.baseline {
	case TextBaselineTop:
		y += ascent
	case TextBaselineMiddle:
		y += (ascent - descent) / 2
	case TextBaselineBottom:
		y -= descent
	}

	var ax float64
	switch r.text.align {
	case TextAlignCenter:
		ax = 0.5
	case TextAlignRight:
		ax = 1
	}
	r.dc.DrawStringAnchored(text, x, y, ax, 0)
}

func (r *Raster) Err() error { return nil }

var (
	fontsOnce sync.Once
	regularTT *truetype.Font
	boldTT    *truetype.Font
)

func parseFonts() {
	regularTT, _ = truetype.Parse(goregular.TTF)
	boldTT, _ = truetype.Parse(gobold.TTF)
}

// face returns a cached face for f. Faces fall back to basicfont when the
// embedded Go fonts cannot be parsed.
func (r *Raster) face(f Font) font.Face {
	if face, ok := r.faces[f]; ok {
		return face
	}
	fontsOnce.Do(parseFonts)

	tt := regularTT
	if f.Bold {
		tt = boldTT
	}
	size := f.Size
	if size <= 0 {
		size = DefaultFont.Size
	}

	var face font.Face = basicfont.Face7x13
	if tt != nil {
		face = truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	}
	r.faces[f] = face
	return face
}
