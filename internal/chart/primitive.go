package chart

import "image/color"

// Primitive is one drawable instruction produced by Layout.
// The set of variants is closed: Rect, Line and Label.
type Primitive interface {
	primitive()
}

// Rect is a rectangle that is filled and then stroked with the same path.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Fill          color.Color
	Stroke        color.Color
	StrokeWidth   float64
}

type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Color  color.Color
	Width  float64
}

// Label is text anchored at its horizontal center and its bottom edge.
type Label struct {
	Text string
	X, Y float64
}

func (Rect) primitive()  {}
func (Line) primitive()  {}
func (Label) primitive() {}
