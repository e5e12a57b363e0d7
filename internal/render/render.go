package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/rook-computer/barchart/internal/chart"
)

var ErrNoSurface = errors.New("no drawing surface")

// Surface is an immediate-mode 2D drawing API in the style of an HTML canvas
// context. Paint state (colors, line width, font, text alignment) is scoped
// by Save/Restore. Fill and Stroke paint the current path without clearing it.
type Surface interface {
	Save()
	Restore()

	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(width float64)
	SetFont(f Font)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)

	BeginPath()
	Rect(x, y, width, height float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Fill()
	Stroke()

	FillText(text string, x, y float64)

	// Err returns the first error the surface hit, if any.
	Err() error
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

type TextBaseline int

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineMiddle
	TextBaselineBottom
)

// Font describes a text face. Size is in pixels.
type Font struct {
	Size float64
	Bold bool
}

// Render draws primitives in order. Each primitive runs inside its own
// Save/Restore so its styling never leaks into the next one.
func Render(prims []chart.Primitive, s Surface) error {
	if s == nil {
		return ErrNoSurface
	}
	for _, p := range prims {
		s.Save()
		switch v := p.(type) {
		case chart.Rect:
			drawRect(s, v)
		case chart.Line:
			drawLine(s, v)
		case chart.Label:
			drawLabel(s, v)
		}
		s.Restore()
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func drawRect(s Surface, r chart.Rect) {
	s.SetFillColor(r.Fill)
	s.SetLineWidth(r.StrokeWidth)
	s.BeginPath()
	s.SetStrokeColor(r.Stroke)
	s.Rect(r.X, r.Y, r.Width, r.Height)
	s.Fill()
	s.Stroke()
}

func drawLine(s Surface, l chart.Line) {
	s.BeginPath()
	s.SetStrokeColor(l.Color)
	s.SetLineWidth(l.Width)
	s.MoveTo(l.X1, l.Y1)
	s.LineTo(l.X2, l.Y2)
	s.Stroke()
}

func drawLabel(s Surface, l chart.Label) {
	s.SetTextBaseline(TextBaselineBottom)
	s.SetTextAlign(TextAlignCenter)
	s.SetFillColor(LabelColor)
	s.SetFont(LabelFont)
	s.FillText(l.Text, l.X, l.Y)
}
