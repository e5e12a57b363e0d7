package render

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVG is a Surface that writes SVG elements as it draws. Call Close to
// finish the document.
type SVG struct {
	canvas *svg.SVG
	out    *errWriter
	state  paintState
	stack  []paintState
	path   strings.Builder
}

type paintState struct {
	fill      color.Color
	stroke    color.Color
	lineWidth float64
	text      textState
}

func NewSVG(w io.Writer, width, height int) *SVG {
	out := &errWriter{w: w}
	s := &SVG{
		canvas: svg.New(out),
		out:    out,
		state: paintState{
			fill:      DefaultFill,
			stroke:    DefaultStroke,
			lineWidth: 1,
			text:      textState{font: DefaultFont},
		},
	}
	s.canvas.Start(width, height)
	return s
}

// Clear paints a full-size background rectangle.
func (s *SVG) Clear(c color.Color, width, height int) {
	s.canvas.Rect(0, 0, width, height, "fill:"+cssColor(c)+fillOpacity(c))
}

func (s *SVG) Close() error {
	s.canvas.End()
	return s.out.err
}

func (s *SVG) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *SVG) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *SVG) SetFillColor(c color.Color) {
	if c != nil {
		s.state.fill = c
	}
}

func (s *SVG) SetStrokeColor(c color.Color) {
	if c != nil {
		s.state.stroke = c
	}
}

func (s *SVG) SetLineWidth(width float64) {
	if width > 0 {
		s.state.lineWidth = width
	}
}

func (s *SVG) SetFont(f Font)                 { s.state.text.font = f }
func (s *SVG) SetTextAlign(a TextAlign)       { s.state.text.align = a }
func (s *SVG) SetTextBaseline(b TextBaseline) { s.state.text.baseline = b }

func (s *SVG) BeginPath() { s.path.Reset() }

func (s *SVG) Rect(x, y, width, height float64) {
	fmt.Fprintf(&s.path, "M%s %s h%s v%s h%s Z ", num(x), num(y), num(width), num(height), num(-width))
}

func (s *SVG) MoveTo(x, y float64) {
	fmt.Fprintf(&s.path, "M%s %s ", num(x), num(y))
}

func (s *SVG) LineTo(x, y float64) {
	fmt.Fprintf(&s.path, "L%s %s ", num(x), num(y))
}

func (s *SVG) Fill() {
	if s.path.Len() == 0 {
		return
	}
	s.canvas.Path(strings.TrimSpace(s.path.String()),
		"fill:"+cssColor(s.state.fill)+fillOpacity(s.state.fill)+";stroke:none")
}

func (s *SVG) Stroke() {
	if s.path.Len() == 0 {
		return
	}
	s.canvas.Path(strings.TrimSpace(s.path.String()),
		"fill:none;stroke:"+cssColor(s.state.stroke)+strokeOpacity(s.state.stroke)+
			";stroke-width:"+num(s.state.lineWidth))
}

func (s *SVG) FillText(text string, x, y float64) {
	t := s.state.text
	style := []string{
		"fill:" + cssColor(s.state.fill) + fillOpacity(s.state.fill),
		"font-family:sans-serif",
		"font-size:" + num(t.font.Size) + "px",
	}
	if t.font.Bold {
		style = append(style, "font-weight:bold")
	}
	switch t.align {
	case TextAlignCenter:
		style = append(style, "text-anchor:middle")
	case TextAlignRight:
		style = append(style, "text-anchor:end")
	}
	switch t.baseline {
	case TextBaselineTop:
		style = append(style, "dominant-baseline:text-before-edge")
	case TextBaselineMiddle:
		style = append(style, "dominant-baseline:middle")
	case TextBaselineBottom:
		style = append(style, "dominant-baseline:text-after-edge")
	}
	// svgo's Text only takes int coordinates; labels sit on half pixels.
	fmt.Fprintf(s.canvas.Writer, `<text x="%s" y="%s" style="%s">`, num(x), num(y), strings.Join(style, ";"))
	_ = xml.EscapeText(s.canvas.Writer, []byte(text))
	fmt.Fprint(s.canvas.Writer, "</text>\n")
}

func (s *SVG) Err() error { return s.out.err }

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cssColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func fillOpacity(c color.Color) string {
	return opacity("fill-opacity", c)
}

func strokeOpacity(c color.Color) string {
	return opacity("stroke-opacity", c)
}

func opacity(prop string, c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return ""
	}
	return ";" + prop + ":" + strconv.FormatFloat(float64(n.A)/255, 'f', 3, 64)
}
