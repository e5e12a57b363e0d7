//go:build linux

package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Consoles tried in order: the active VT, then tty0.
var consoles = []string{"/dev/tty", "/dev/tty0"}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// SetGraphicsMode stops the kernel console from drawing text and the
// hardware cursor over the framebuffer.
func SetGraphicsMode() error { return setConsoleMode(kdGraphics, "KD_GRAPHICS") }

// RestoreTextMode gives the console back.
func RestoreTextMode() error { return setConsoleMode(kdText, "KD_TEXT") }

func setConsoleMode(mode int, name string) error {
	var errs []error
	for _, p := range consoles {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			errs = append(errs, fmt.Errorf("open %s: %w", p, err))
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s on %s: %w", name, p, err))
			continue
		}
		return nil
	}
	return errors.Join(errs...)
}

func HideCursor() error { return writeVT("\x1b[?25l") }
func ShowCursor() error { return writeVT("\x1b[?25h") }

func writeVT(s string) error {
	var errs []error
	for _, p := range consoles {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("write VT failed: %w", errors.Join(errs...))
}

// EnterGraphics switches the console for framebuffer drawing and returns a
// function that undoes it. Failures are only logged.
func EnterGraphics(l logger) (restore func()) {
	if err := SetGraphicsMode(); err != nil {
		l.Errorf("tty", "KD_GRAPHICS failed: %v", err)
	} else {
		l.Infof("tty", "KD_GRAPHICS set")
	}
	if err := HideCursor(); err != nil {
		l.Errorf("tty", "hide cursor failed: %v", err)
	}
	return func() {
		if err := ShowCursor(); err != nil {
			l.Errorf("tty", "show cursor failed: %v", err)
		}
		if err := RestoreTextMode(); err != nil {
			l.Errorf("tty", "KD_TEXT failed: %v", err)
		} else {
			l.Infof("tty", "KD_TEXT set")
		}
	}
}
