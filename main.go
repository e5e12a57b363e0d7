//go:build linux

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/barchart/internal/app"
	"github.com/rook-computer/barchart/internal/chart"
	"github.com/rook-computer/barchart/internal/render"
	"github.com/rook-computer/barchart/internal/system"
)

func main() {
	defaults, err := app.ConfigFromEnv(app.DefaultConfig(app.ModeContinuous))
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	debug := flag.Bool("debug", false, "enable debug logging to ./barchart-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+app.EnvStdioLog)
	mode := flag.String("mode", defaults.Mode.String(), "oneshot | continuous; also configurable via "+app.EnvMode)
	fps := flag.Int("fps", defaults.FPS, "frames per second in continuous mode; also configurable via "+app.EnvFPS)
	gridScale := flag.Float64("grid-scale", defaults.GridScale, "value step between gridlines; also configurable via "+app.EnvGridScale)
	barGap := flag.Float64("bar-gap", defaults.BarGapPx, "pixels between bars; also configurable via "+app.EnvBarGap)
	fbPath := flag.String("fb", "/dev/fb0", "framebuffer device")
	canvasWidth := flag.Int("canvas-width", 0, "logical canvas width scaled to the display; 0 uses the display size")
	canvasHeight := flag.Int("canvas-height", 0, "logical canvas height scaled to the display; 0 uses the display size")
	flag.Parse()

	// Redirect early so crashes are diagnosable while the console is in
	// graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(app.EnvStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./barchart-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg := defaults
	if cfg.Mode, err = app.ParseMode(*mode); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	cfg.FPS = *fps
	cfg.GridScale = *gridScale
	cfg.BarGapPx = *barGap
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	display := render.NewFramebuffer(*fbPath)
	display.CanvasWidth = *canvasWidth
	display.CanvasHeight = *canvasHeight
	display.Logger = logger
	if err := display.Open(); err != nil {
		fmt.Println("display error:", err)
		os.Exit(1)
	}
	defer display.Close()

	restoreConsole := system.EnterGraphics(logger)
	defer restoreConsole()

	driver := app.NewDriver(display, chart.SampleDataset())
	driver.Logger = logger
	cfg.Apply(driver)

	if err := driver.Run(ctx); err != nil {
		logger.Errorf("main", "run: %v", err)
		fmt.Println("render error:", err)
		return
	}

	// One-shot leaves the chart on screen until interrupted.
	if cfg.Mode == app.ModeOneShot {
		<-ctx.Done()
	}
}
