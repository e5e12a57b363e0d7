package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rook-computer/barchart/internal/app"
	"github.com/rook-computer/barchart/internal/chart"
	"github.com/rook-computer/barchart/internal/web"
)

func main() {
	serverDefaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	cfg, err := app.ConfigFromEnv(app.DefaultConfig(app.ModeOneShot))
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", serverDefaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", serverDefaults.DevMode, "enable dev mode (permissive CORS); also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve the preview page from this directory; when empty, the embedded page is served")
	out := flag.String("out", "", "render once to this .png or .svg file and exit instead of serving")
	width := flag.Int("width", 800, "viewport width for -out")
	height := flag.Int("height", 600, "viewport height for -out")
	gridScale := flag.Float64("grid-scale", cfg.GridScale, "value step between gridlines; also configurable via "+app.EnvGridScale)
	barGap := flag.Float64("bar-gap", cfg.BarGapPx, "pixels between bars; also configurable via "+app.EnvBarGap)
	debug := flag.Bool("debug", false, "log to stderr")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		logger = app.NewFileLogger(os.Stderr)
	}

	cfg.GridScale = *gridScale
	cfg.BarGapPx = *barGap
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *out != "" {
		if err := renderFile(processCtx, *out, *width, *height, cfg, logger); err != nil {
			fmt.Println("render error:", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *out)
		return
	}

	driver := app.NewDriver(nil, chart.SampleDataset())
	cfg.Apply(driver)

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger
	server.Handler = web.NewDefaultMux(*staticDir, web.ChartConfig{
		Dataset: driver.Dataset,
		Padding: driver.Padding,
		Style:   driver.Style,
		Logger:  logger,
	})

	if err := server.Start(processCtx); err != nil {
		fmt.Println("server start error:", err)
		os.Exit(1)
	}

	fmt.Println("barchart simulator listening on", server.Addr)
	fmt.Println("Preview: http://" + displayAddr(server.Addr) + "/")

	<-processCtx.Done()
	_ = server.Stop()
}

// renderFile draws one frame and writes it as PNG or SVG depending on the
// file extension.
func renderFile(ctx context.Context, path string, width, height int, cfg app.Config, logger app.Logger) error {
	var buf bytes.Buffer
	target, encode, err := fileTarget(path, &buf, width, height)
	if err != nil {
		return err
	}

	driver := app.NewDriver(target, chart.SampleDataset())
	driver.Logger = logger
	cfg.Apply(driver)
	driver.Mode = app.ModeOneShot
	if err := driver.Run(ctx); err != nil {
		return err
	}
	if err := encode(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func displayAddr(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if strings.HasPrefix(addr, ":") {
		return "127.0.0.1" + addr
	}
	if strings.HasPrefix(addr, "[::]:") {
		return "127.0.0.1:" + strings.TrimPrefix(addr, "[::]:")
	}
	return addr
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
