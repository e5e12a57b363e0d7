package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/rook-computer/barchart/internal/assets"
)

// RegisterChart registers the chart endpoints:
// /chart.png, /chart.svg, /api/v1/layout and /qr.png.
func RegisterChart(mux *http.ServeMux, cfg ChartConfig) {
	router := chartRouter(cfg)
	for _, path := range []string{"/chart.png", "/chart.svg", "/api/v1/layout", "/qr.png"} {
		mux.Handle(path, router)
	}
}

// RegisterUI serves either the embedded preview page or a directory.
func RegisterUI(mux *http.ServeMux, staticDir string) {
	mux.Handle("/", StaticUIHandler(staticDir))
}

// NewDefaultMux builds the preview mux: chart endpoints plus the page at '/'.
func NewDefaultMux(staticDir string, cfg ChartConfig) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterChart(mux, cfg)
	RegisterUI(mux, staticDir)
	return mux
}

// StaticUIHandler serves staticDir when it is an existing directory and the
// embedded page when staticDir is empty.
func StaticUIHandler(staticDir string) http.Handler {
	var fileServer http.Handler
	if staticDir == "" {
		fileServer = http.FileServer(http.FS(assets.WebUI))
	} else {
		if st, err := os.Stat(staticDir); err != nil || !st.IsDir() {
			return http.NotFoundHandler()
		}
		fileServer = http.FileServer(http.Dir(staticDir))
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Clean path to avoid oddities.
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}
