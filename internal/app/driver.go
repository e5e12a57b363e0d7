package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rook-computer/barchart/internal/chart"
	"github.com/rook-computer/barchart/internal/render"
)

var ErrUnknownMode = errors.New("unknown render mode")

// Mode selects who triggers redraws.
type Mode int

const (
	// ModeOneShot lays out and draws a single frame.
	ModeOneShot Mode = iota
	// ModeContinuous redraws on every tick until the context is cancelled.
	ModeContinuous
)

const DefaultFPS = 30

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "oneshot", "one-shot", "once":
		return ModeOneShot, nil
	case "continuous", "loop":
		return ModeContinuous, nil
	default:
		return ModeOneShot, fmt.Errorf("%w %q", ErrUnknownMode, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeOneShot:
		return "oneshot"
	case ModeContinuous:
		return "continuous"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Target is where frames end up: it reports the current viewport, hands out
// a fresh surface for each frame and presents the finished frame.
type Target interface {
	Viewport() (chart.Viewport, error)
	Begin(vp chart.Viewport) (render.Surface, error)
	Present() error
}

// Driver owns the render trigger. The dataset, padding and style belong to
// the caller and are only read during a frame.
type Driver struct {
	Target  Target
	Dataset chart.Dataset
	Padding chart.Padding
	Style   chart.Style

	Mode Mode
	FPS  int

	// Ticks, when set, replaces the internal FPS ticker as the frame
	// scheduler for continuous mode.
	Ticks <-chan time.Time

	Logger Logger
}

func NewDriver(target Target, ds chart.Dataset) *Driver {
	return &Driver{
		Target:  target,
		Dataset: ds,
		Padding: chart.DefaultPadding(),
		Style:   chart.DefaultStyle(),
		Mode:    ModeOneShot,
		FPS:     DefaultFPS,
		Logger:  NoopLogger{},
	}
}

// Frame runs one complete pass: read viewport, lay out, draw, present.
// Nothing is carried over from earlier frames.
func (d *Driver) Frame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.Target == nil {
		return render.ErrNoSurface
	}
	vp, err := d.Target.Viewport()
	if err != nil {
		return fmt.Errorf("read viewport: %w", err)
	}
	prims := chart.Layout(d.Dataset, vp, d.Padding, d.Style)

	surface, err := d.Target.Begin(vp)
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := render.Render(prims, surface); err != nil {
		return err
	}
	if err := d.Target.Present(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// Run draws according to Mode. One-shot returns after the first frame.
// Continuous draws immediately and then once per tick until ctx is done,
// which is not treated as an error.
func (d *Driver) Run(ctx context.Context) error {
	logger := d.logger()
	logger.Infof("driver", "run mode=%s bars=%d", d.Mode, len(d.Dataset))

	if err := d.Frame(ctx); err != nil {
		logger.Errorf("driver", "frame failed: %v", err)
		return err
	}
	switch d.Mode {
	case ModeOneShot:
		return nil
	case ModeContinuous:
	default:
		return fmt.Errorf("%w %d", ErrUnknownMode, int(d.Mode))
	}

	ticks := d.Ticks
	if ticks == nil {
		fps := d.FPS
		if fps <= 0 {
			fps = DefaultFPS
		}
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		ticks = ticker.C
	}

	frames := 1
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Infof("driver", "stopped after %d frames", frames)
			return nil
		case _, ok := <-ticks:
			if !ok {
				logger.Infof("driver", "scheduler closed after %d frames", frames)
				return nil
			}
			if err := d.Frame(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Errorf("driver", "frame failed: %v", err)
				return err
			}
			frames++
			if time.Since(lastLog) > time.Second {
				logger.Infof("driver", "heartbeat, frames=%d", frames)
				lastLog = time.Now()
			}
		}
	}
}

func (d *Driver) logger() Logger {
	if d.Logger == nil {
		return NoopLogger{}
	}
	return d.Logger
}
