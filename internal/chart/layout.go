package chart

import "math"

// MaxGridLines is the gridline count used when maxValue/GridScale is not
// finite or does not fit in an int32. Smaller ratios are never capped.
const MaxGridLines = 10000

// sentinelMax is the divisor used when no value is above zero.
const sentinelMax = 1

// Geometry is the measured frame a layout is computed from.
type Geometry struct {
	PlotWidth  float64
	PlotHeight float64
	MaxValue   float64
	Bars       int
	// BarSlot is zero when there are no bars.
	BarSlot float64
}

// Measure computes the plotting area and value scale for a dataset.
func Measure(ds Dataset, vp Viewport, pad Padding) Geometry {
	geom := Geometry{
		PlotWidth:  clampZero(vp.Width - pad.Horizontal()),
		PlotHeight: clampZero(vp.Height - pad.Vertical()),
		Bars:       len(ds),
	}

	var maxValue float64
	for _, dp := range ds {
		if dp.Value > maxValue {
			maxValue = dp.Value
		}
	}
	if maxValue <= 0 {
		maxValue = sentinelMax
	}
	geom.MaxValue = maxValue

	if geom.Bars > 0 {
		geom.BarSlot = geom.PlotWidth / float64(geom.Bars)
	}
	return geom
}

// Layout turns a dataset into the primitives that draw it: gridlines first,
// then one Rect and one Label per data point in dataset order.
func Layout(ds Dataset, vp Viewport, pad Padding, st Style) []Primitive {
	geom := Measure(ds, vp, pad)
	out := make([]Primitive, 0, gridLineCount(geom.MaxValue, st.GridScale)+2*len(ds))

	out = appendGridLines(out, geom, vp, pad, st)
	if geom.Bars == 0 {
		return out
	}

	for i, dp := range ds {
		barHeight := roundHalfUp(geom.PlotHeight * dp.Value / geom.MaxValue)
		x := pad.Left + float64(i)*geom.BarSlot
		y := vp.Height - barHeight - pad.Bottom

		out = append(out,
			Rect{
				X:           x,
				Y:           y,
				Width:       clampZero(geom.BarSlot - st.BarGapPx),
				Height:      barHeight,
				Fill:        dp.Color,
				Stroke:      st.BarStrokeColor,
				StrokeWidth: st.BarStrokeWidth,
			},
			Label{
				Text: dp.Name,
				X:    x + geom.BarSlot/2,
				Y:    y + barHeight,
			},
		)
	}
	return out
}

func appendGridLines(out []Primitive, geom Geometry, vp Viewport, pad Padding, st Style) []Primitive {
	n := gridLineCount(geom.MaxValue, st.GridScale)
	for k := 0; k < n; k++ {
		gridValue := float64(k) * st.GridScale
		y := geom.PlotHeight*(1-gridValue/geom.MaxValue) + pad.Top
		out = append(out, Line{
			X1:    0,
			Y1:    y,
			X2:    vp.Width,
			Y2:    y,
			Color: st.GridColor,
			Width: st.GridLineWidth,
		})
	}
	return out
}

// gridLineCount is the number of multiples of scale in [0, maxValue].
// A non-positive or NaN scale yields none.
func gridLineCount(maxValue, scale float64) int {
	if !(scale > 0) || math.IsInf(scale, 1) || !(maxValue >= 0) {
		return 0
	}
	ratio := maxValue / scale
	if math.IsInf(ratio, 1) || ratio >= math.MaxInt32 {
		return MaxGridLines
	}
	n := int(math.Floor(ratio)) + 1
	// The division can be off by one ulp either way; settle on the product.
	for n > 0 && float64(n-1)*scale > maxValue {
		n--
	}
	for float64(n)*scale <= maxValue {
		n++
	}
	return n
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func clampZero(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
