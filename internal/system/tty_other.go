//go:build !linux

package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterGraphics is a no-op where there is no Linux console to switch.
func EnterGraphics(l logger) (restore func()) {
	l.Infof("tty", "console mode switching not supported on this platform")
	return func() {}
}
