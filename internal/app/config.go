package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rook-computer/barchart/internal/chart"
)

const (
	EnvMode      = "BARCHART_MODE"
	EnvFPS       = "BARCHART_FPS"
	EnvGridScale = "BARCHART_GRID_SCALE"
	EnvBarGap    = "BARCHART_BAR_GAP"
	EnvStdioLog  = "BARCHART_STDIO_LOG"
)

// Config holds the driver settings a binary can change without code.
//
// The intended defaults differ per binary:
// - device:    continuous, redrawing the framebuffer
// - simulator: one-shot, writing a file or serving requests
type Config struct {
	Mode      Mode
	FPS       int
	GridScale float64
	BarGapPx  float64
}

func DefaultConfig(mode Mode) Config {
	style := chart.DefaultStyle()
	return Config{
		Mode:      mode,
		FPS:       DefaultFPS,
		GridScale: style.GridScale,
		BarGapPx:  style.BarGapPx,
	}
}

// ConfigFromEnv overlays BARCHART_* environment variables on defaults.
func ConfigFromEnv(defaults Config) (Config, error) {
	cfg := defaults

	if raw := os.Getenv(EnvMode); raw != "" {
		mode, err := ParseMode(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMode, err)
		}
		cfg.Mode = mode
	}
	if raw := os.Getenv(EnvFPS); raw != "" {
		fps, err := strconv.Atoi(raw)
		if err != nil || fps <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive integer (got %q)", EnvFPS, raw)
		}
		cfg.FPS = fps
	}
	if raw := os.Getenv(EnvGridScale); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a number (got %q): %w", EnvGridScale, raw, err)
		}
		cfg.GridScale = scale
	}
	if raw := os.Getenv(EnvBarGap); raw != "" {
		gap, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a number (got %q): %w", EnvBarGap, raw, err)
		}
		cfg.BarGapPx = gap
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.style().Validate(); err != nil {
		return fmt.Errorf("grid scale %v: %w", c.GridScale, err)
	}
	if c.BarGapPx < 0 {
		return fmt.Errorf("bar gap must not be negative (got %v)", c.BarGapPx)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive (got %d)", c.FPS)
	}
	return nil
}

// Apply copies the settings onto a driver.
func (c Config) Apply(d *Driver) {
	d.Mode = c.Mode
	d.FPS = c.FPS
	d.Style = c.style()
}

func (c Config) style() chart.Style {
	style := chart.DefaultStyle()
	style.GridScale = c.GridScale
	style.BarGapPx = c.BarGapPx
	return style
}
