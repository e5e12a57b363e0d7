package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"net/http"
	"strconv"

	"github.com/rook-computer/barchart/internal/app"
	"github.com/rook-computer/barchart/internal/chart"
	"github.com/rook-computer/barchart/internal/render"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
	maxSide       = 4096
)

// ChartConfig is what every preview request draws. It is read-only once the
// server has started.
type ChartConfig struct {
	Dataset chart.Dataset
	Padding chart.Padding
	Style   chart.Style
	Logger  app.Logger
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type primitiveJSON struct {
	Kind string `json:"kind"`

	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	X1 *float64 `json:"x1,omitempty"`
	Y1 *float64 `json:"y1,omitempty"`
	X2 *float64 `json:"x2,omitempty"`
	Y2 *float64 `json:"y2,omitempty"`

	Fill        string   `json:"fill,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`

	Text string `json:"text,omitempty"`
}

type layoutResponse struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	MaxValue   float64         `json:"maxValue"`
	BarSlot    float64         `json:"barSlot"`
	Primitives []primitiveJSON `json:"primitives"`
}

func chartRouter(cfg ChartConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = app.NoopLogger{}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/chart.png", func(w http.ResponseWriter, r *http.Request) { handlePNG(w, r, cfg) })
	mux.HandleFunc("/chart.svg", func(w http.ResponseWriter, r *http.Request) { handleSVG(w, r, cfg) })
	mux.HandleFunc("/api/v1/layout", func(w http.ResponseWriter, r *http.Request) { handleLayout(w, r, cfg) })
	mux.HandleFunc("/qr.png", handleQR)
	return mux
}

func (cfg ChartConfig) driver(target app.Target) *app.Driver {
	d := app.NewDriver(target, cfg.Dataset)
	d.Padding = cfg.Padding
	d.Style = cfg.Style
	d.Logger = cfg.Logger
	return d
}

func handlePNG(w http.ResponseWriter, r *http.Request, cfg ChartConfig) {
	width, height, ok := viewportFromQuery(w, r)
	if !ok {
		return
	}
	target := render.NewImageTarget(width, height)
	if err := cfg.driver(target).Frame(r.Context()); err != nil {
		cfg.Logger.Errorf("web", "png frame: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	var buf bytes.Buffer
	if err := target.WritePNG(&buf); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func handleSVG(w http.ResponseWriter, r *http.Request, cfg ChartConfig) {
	width, height, ok := viewportFromQuery(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	target := render.NewSVGTarget(&buf, width, height)
	if err := cfg.driver(target).Frame(r.Context()); err != nil {
		cfg.Logger.Errorf("web", "svg frame: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func handleLayout(w http.ResponseWriter, r *http.Request, cfg ChartConfig) {
	width, height, ok := viewportFromQuery(w, r)
	if !ok {
		return
	}
	vp := chart.Viewport{Width: float64(width), Height: float64(height)}
	geom := chart.Measure(cfg.Dataset, vp, cfg.Padding)
	prims := chart.Layout(cfg.Dataset, vp, cfg.Padding, cfg.Style)

	resp := layoutResponse{
		Width:      width,
		Height:     height,
		MaxValue:   geom.MaxValue,
		BarSlot:    geom.BarSlot,
		Primitives: make([]primitiveJSON, 0, len(prims)),
	}
	for _, p := range prims {
		resp.Primitives = append(resp.Primitives, toJSON(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	png, err := render.QRCodePNG(scheme+"://"+r.Host+"/", 256)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// viewportFromQuery reads width/height, writing a 4xx response when they
// are not usable.
func viewportFromQuery(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return 0, 0, false
	}
	width, err := dimension(r, "width", defaultWidth)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_width", err.Error())
		return 0, 0, false
	}
	height, err := dimension(r, "height", defaultHeight)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_height", err.Error())
		return 0, 0, false
	}
	return width, height, true
}

func dimension(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q)", name, raw)
	}
	if v < 0 || v > maxSide {
		return 0, fmt.Errorf("%s must be between 0 and %d (got %d)", name, maxSide, v)
	}
	return v, nil
}

func toJSON(p chart.Primitive) primitiveJSON {
	f := func(v float64) *float64 { return &v }
	switch v := p.(type) {
	case chart.Rect:
		return primitiveJSON{
			Kind: "rect",
			X:    f(v.X), Y: f(v.Y), Width: f(v.Width), Height: f(v.Height),
			Fill: hexColor(v.Fill), Stroke: hexColor(v.Stroke), StrokeWidth: f(v.StrokeWidth),
		}
	case chart.Line:
		return primitiveJSON{
			Kind: "line",
			X1:   f(v.X1), Y1: f(v.Y1), X2: f(v.X2), Y2: f(v.Y2),
			Stroke: hexColor(v.Color), StrokeWidth: f(v.Width),
		}
	case chart.Label:
		return primitiveJSON{Kind: "label", X: f(v.X), Y: f(v.Y), Text: v.Text}
	default:
		return primitiveJSON{Kind: "unknown"}
	}
}

func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
