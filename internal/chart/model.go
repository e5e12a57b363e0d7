package chart

import (
	"errors"
	"image/color"
	"math"
)

var ErrInvalidGridScale = errors.New("grid scale must be a positive number")

// DataPoint is one bar of the chart.
type DataPoint struct {
	Name  string
	Value float64
	Color color.Color
}

// Dataset is ordered; index order is left-to-right bar placement.
type Dataset []DataPoint

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Viewport is the drawable size in pixels, read fresh on every render.
type Viewport struct {
	Width  float64
	Height float64
}

// Style holds everything about the chart's look that is not data.
type Style struct {
	GridScale     float64
	GridColor     color.Color
	GridLineWidth float64

	BarGapPx       float64
	BarStrokeColor color.Color
	BarStrokeWidth float64
}

// Validate reports a grid scale that would never advance the gridline loop.
// Layout itself tolerates such a style by emitting no gridlines.
func (s Style) Validate() error {
	if !(s.GridScale > 0) || math.IsInf(s.GridScale, 1) {
		return ErrInvalidGridScale
	}
	return nil
}

func DefaultStyle() Style {
	return Style{
		GridScale:      5,
		GridColor:      color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}, // #eeeeee
		GridLineWidth:  2,
		BarGapPx:       50,
		BarStrokeColor: color.Black,
		BarStrokeWidth: 2,
	}
}

func DefaultPadding() Padding {
	return Padding{Top: 50, Right: 25, Bottom: 25, Left: 25}
}

// SampleDataset is the dataset shown when nothing else is configured.
func SampleDataset() Dataset {
	return Dataset{
		{Name: "good", Value: 7, Color: MustParseColor("#00ff00")},
		{Name: "bad", Value: 3, Color: MustParseColor("#ff0000")},
		{Name: "unchecked", Value: 17, Color: MustParseColor("#f7f7f7")},
		{Name: "total", Value: 27, Color: MustParseColor("white")},
	}
}
