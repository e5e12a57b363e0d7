package chart

import (
	"image/color"
	"math"
	"reflect"
	"testing"
)

func split(prims []Primitive) (lines []Line, rects []Rect, labels []Label) {
	for _, p := range prims {
		switch v := p.(type) {
		case Line:
			lines = append(lines, v)
		case Rect:
			rects = append(rects, v)
		case Label:
			labels = append(labels, v)
		}
	}
	return lines, rects, labels
}

func goodBad() Dataset {
	return Dataset{
		{Name: "good", Value: 7, Color: MustParseColor("#0f0")},
		{Name: "bad", Value: 3, Color: MustParseColor("#f00")},
	}
}

func TestLayout_GoodBadScenario(t *testing.T) {
	style := DefaultStyle()
	style.BarGapPx = 10
	vp := Viewport{Width: 400, Height: 300}
	pad := DefaultPadding()

	geom := Measure(goodBad(), vp, pad)
	if geom.MaxValue != 7 {
		t.Fatalf("MaxValue=%v, want 7", geom.MaxValue)
	}
	if geom.PlotWidth != 350 || geom.PlotHeight != 225 {
		t.Fatalf("plot=%vx%v, want 350x225", geom.PlotWidth, geom.PlotHeight)
	}
	if geom.BarSlot != 175 {
		t.Fatalf("BarSlot=%v, want 175", geom.BarSlot)
	}

	lines, rects, labels := split(Layout(goodBad(), vp, pad, style))

	if len(lines) != 2 {
		t.Fatalf("gridlines=%d, want 2", len(lines))
	}
	// gridValue 0 sits on the baseline, 5 at 225*(1-5/7)+50.
	if lines[0].Y1 != 275 || lines[0].Y2 != 275 {
		t.Errorf("gridline 0 at y=%v, want 275", lines[0].Y1)
	}
	wantY := 225*(1-5.0/7) + 50
	if math.Abs(lines[1].Y1-wantY) > 1e-9 {
		t.Errorf("gridline 5 at y=%v, want %v", lines[1].Y1, wantY)
	}
	for i, l := range lines {
		if l.X1 != 0 || l.X2 != 400 {
			t.Errorf("gridline %d spans %v..%v, want 0..400", i, l.X1, l.X2)
		}
		if l.Color != style.GridColor {
			t.Errorf("gridline %d color=%v", i, l.Color)
		}
	}

	if len(rects) != 2 || len(labels) != 2 {
		t.Fatalf("rects=%d labels=%d, want 2 and 2", len(rects), len(labels))
	}
	good, bad := rects[0], rects[1]
	if good.Height != 225 {
		t.Errorf("good height=%v, want full plot height 225", good.Height)
	}
	if want := math.Floor(225*3.0/7 + 0.5); bad.Height != want {
		t.Errorf("bad height=%v, want %v", bad.Height, want)
	}
	if good.X != 25 || bad.X != 200 {
		t.Errorf("bar x=%v,%v, want 25,200", good.X, bad.X)
	}
	if good.Width != 165 || bad.Width != 165 {
		t.Errorf("bar width=%v,%v, want 165", good.Width, bad.Width)
	}
	if good.Y != 50 {
		t.Errorf("good y=%v, want 50", good.Y)
	}
	if bad.Y+bad.Height != 275 {
		t.Errorf("bad bottom=%v, want baseline 275", bad.Y+bad.Height)
	}
	if good.Fill != goodBad()[0].Color || good.Stroke != style.BarStrokeColor || good.StrokeWidth != 2 {
		t.Errorf("good paint=%+v", good)
	}

	if labels[0].Text != "good" || labels[1].Text != "bad" {
		t.Errorf("labels=%q,%q", labels[0].Text, labels[1].Text)
	}
	if labels[0].X != 112.5 || labels[0].Y != 275 {
		t.Errorf("good label at (%v,%v), want (112.5,275)", labels[0].X, labels[0].Y)
	}
	if labels[1].X != 287.5 {
		t.Errorf("bad label x=%v, want 287.5", labels[1].X)
	}
}

func TestLayout_OrderGridlinesThenBarLabelPairs(t *testing.T) {
	prims := Layout(SampleDataset(), Viewport{Width: 800, Height: 600}, DefaultPadding(), DefaultStyle())
	seenBar := false
	for i, p := range prims {
		switch p.(type) {
		case Line:
			if seenBar {
				t.Fatalf("gridline at %d after a bar", i)
			}
		case Rect:
			seenBar = true
			if _, ok := prims[i+1].(Label); !ok {
				t.Fatalf("rect at %d not followed by its label", i)
			}
		}
	}
}

func TestLayout_BarAndLabelCountMatchDataset(t *testing.T) {
	ds := SampleDataset()
	_, rects, labels := split(Layout(ds, Viewport{Width: 1024, Height: 768}, DefaultPadding(), DefaultStyle()))
	if len(rects) != len(ds) || len(labels) != len(ds) {
		t.Fatalf("rects=%d labels=%d, want %d", len(rects), len(labels), len(ds))
	}
	for i, dp := range ds {
		if labels[i].Text != dp.Name {
			t.Errorf("label %d=%q, want %q", i, labels[i].Text, dp.Name)
		}
		if rects[i].Fill != dp.Color {
			t.Errorf("rect %d fill=%v, want %v", i, rects[i].Fill, dp.Color)
		}
	}
}

func TestLayout_EmptyDataset(t *testing.T) {
	style := DefaultStyle()
	style.GridScale = 0.5
	geom := Measure(nil, Viewport{Width: 400, Height: 300}, DefaultPadding())
	if geom.MaxValue != sentinelMax || geom.BarSlot != 0 {
		t.Fatalf("geom=%+v", geom)
	}

	lines, rects, labels := split(Layout(nil, Viewport{Width: 400, Height: 300}, DefaultPadding(), style))
	if len(rects) != 0 || len(labels) != 0 {
		t.Fatalf("rects=%d labels=%d, want none", len(rects), len(labels))
	}
	// Sentinel max of 1 with scale 0.5 gives gridlines at 0, 0.5 and 1.
	if len(lines) != 3 {
		t.Fatalf("gridlines=%d, want 3", len(lines))
	}
	for _, l := range lines {
		if math.IsNaN(l.Y1) || math.IsInf(l.Y1, 0) {
			t.Fatalf("gridline y=%v", l.Y1)
		}
	}
}

func TestLayout_ZeroValueKeepsSlot(t *testing.T) {
	ds := Dataset{
		{Name: "a", Value: 4, Color: color.Black},
		{Name: "zero", Value: 0, Color: color.Black},
	}
	vp := Viewport{Width: 400, Height: 300}
	_, rects, labels := split(Layout(ds, vp, DefaultPadding(), DefaultStyle()))
	if len(rects) != 2 {
		t.Fatalf("rects=%d, want 2", len(rects))
	}
	if rects[1].Height != 0 {
		t.Errorf("zero bar height=%v", rects[1].Height)
	}
	if rects[1].Y != 275 {
		t.Errorf("zero bar y=%v, want baseline 275", rects[1].Y)
	}
	if labels[1].Text != "zero" || labels[1].Y != 275 {
		t.Errorf("zero label=%+v", labels[1])
	}
}

func TestLayout_AllZeroUsesSentinel(t *testing.T) {
	ds := Dataset{{Name: "a"}, {Name: "b"}}
	geom := Measure(ds, Viewport{Width: 100, Height: 100}, Padding{})
	if geom.MaxValue != sentinelMax {
		t.Fatalf("MaxValue=%v, want sentinel", geom.MaxValue)
	}
	lines, rects, _ := split(Layout(ds, Viewport{Width: 100, Height: 100}, Padding{}, DefaultStyle()))
	if len(lines) != 1 {
		t.Errorf("gridlines=%d, want 1", len(lines))
	}
	for _, r := range rects {
		if r.Height != 0 {
			t.Errorf("height=%v, want 0", r.Height)
		}
	}
}

func TestLayout_NegativeValueInverts(t *testing.T) {
	ds := Dataset{
		{Name: "up", Value: 10},
		{Name: "down", Value: -5},
	}
	_, rects, _ := split(Layout(ds, Viewport{Width: 200, Height: 200}, Padding{}, DefaultStyle()))
	if rects[1].Height != -100 {
		t.Fatalf("negative bar height=%v, want -100", rects[1].Height)
	}
	if rects[1].Y != 300 {
		t.Fatalf("negative bar y=%v, want 300 (below the baseline)", rects[1].Y)
	}
}

func TestLayout_ZeroViewport(t *testing.T) {
	prims := Layout(SampleDataset(), Viewport{}, DefaultPadding(), DefaultStyle())
	lines, rects, _ := split(prims)
	if len(rects) != 4 {
		t.Fatalf("rects=%d, want 4", len(rects))
	}
	for _, r := range rects {
		if r.Width != 0 || r.Height != 0 {
			t.Errorf("rect=%+v, want zero size", r)
		}
	}
	for _, l := range lines {
		if l.X2 != 0 {
			t.Errorf("gridline x2=%v", l.X2)
		}
	}
}

func TestLayout_GapWiderThanSlotClamps(t *testing.T) {
	style := DefaultStyle()
	style.BarGapPx = 1000
	_, rects, _ := split(Layout(goodBad(), Viewport{Width: 400, Height: 300}, DefaultPadding(), style))
	for _, r := range rects {
		if r.Width != 0 {
			t.Errorf("width=%v, want 0", r.Width)
		}
	}
}

func TestLayout_NonPositiveGridScale(t *testing.T) {
	for _, scale := range []float64{0, -5, math.NaN()} {
		style := DefaultStyle()
		style.GridScale = scale
		if err := style.Validate(); err != ErrInvalidGridScale {
			t.Errorf("scale %v: Validate=%v", scale, err)
		}
		lines, rects, _ := split(Layout(goodBad(), Viewport{Width: 400, Height: 300}, DefaultPadding(), style))
		if len(lines) != 0 {
			t.Errorf("scale %v: gridlines=%d, want 0", scale, len(lines))
		}
		if len(rects) != 2 {
			t.Errorf("scale %v: rects=%d", scale, len(rects))
		}
	}
}

func TestGridLineCount(t *testing.T) {
	tests := []struct {
		max, scale float64
		want       int
	}{
		{7, 5, 2},
		{10, 5, 3},
		{27, 5, 6},
		{1, 0.1, 11},
		{4.9, 5, 1},
		{0.3, 0.1, 3},
		{20000, 1, 20001},
		{1e6, 0.5, 2000001},
		{math.Inf(1), 1, MaxGridLines},
		{math.MaxFloat64, math.SmallestNonzeroFloat64, MaxGridLines},
	}
	for _, tt := range tests {
		if got := gridLineCount(tt.max, tt.scale); got != tt.want {
			t.Errorf("gridLineCount(%v, %v)=%d, want %d", tt.max, tt.scale, got, tt.want)
		}
	}
}

func TestLayout_LargeRatioReachesPlotTop(t *testing.T) {
	ds := Dataset{{Name: "big", Value: 20000, Color: MustParseColor("blue")}}
	st := DefaultStyle()
	st.GridScale = 1
	pad := DefaultPadding()
	prims := Layout(ds, Viewport{Width: 400, Height: 300}, pad, st)

	var lines []Line
	for _, p := range prims {
		if l, ok := p.(Line); ok {
			lines = append(lines, l)
		}
	}
	if len(lines) != 20001 {
		t.Fatalf("gridlines=%d, want 20001", len(lines))
	}
	if top := lines[len(lines)-1].Y1; math.Abs(top-pad.Top) > 1e-9 {
		t.Fatalf("topmost gridline y=%v, want plot top %v", top, pad.Top)
	}
}

func TestMeasure_SlotsSumToPlotWidth(t *testing.T) {
	for n := 1; n <= 13; n++ {
		ds := make(Dataset, n)
		geom := Measure(ds, Viewport{Width: 977, Height: 300}, Padding{Left: 13.5, Right: 7})
		if diff := math.Abs(float64(n)*geom.BarSlot - geom.PlotWidth); diff > 1e-9 {
			t.Errorf("n=%d: n*slot differs from plot width by %v", n, diff)
		}
	}
}

func TestMeasure_PaddingLargerThanViewport(t *testing.T) {
	geom := Measure(goodBad(), Viewport{Width: 40, Height: 30}, DefaultPadding())
	if geom.PlotWidth != 0 || geom.PlotHeight != 0 {
		t.Fatalf("plot=%vx%v, want 0x0", geom.PlotWidth, geom.PlotHeight)
	}
}

func TestLayout_Idempotent(t *testing.T) {
	ds := SampleDataset()
	vp := Viewport{Width: 640, Height: 480}
	a := Layout(ds, vp, DefaultPadding(), DefaultStyle())
	b := Layout(ds, vp, DefaultPadding(), DefaultStyle())
	if !reflect.DeepEqual(a, b) {
		t.Fatal("layout differs between identical calls")
	}
}
