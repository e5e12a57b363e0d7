package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts CSS hex notation (#rgb, #rgba, #rrggbb, #rrggbbaa)
// and CSS color names.
func ParseColor(value string) (color.Color, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil, fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(value, "#") {
		named, ok := colornames.Map[value]
		if !ok {
			return nil, fmt.Errorf("unknown color name %q", value)
		}
		return named, nil
	}

	hex := value[1:]
	switch len(hex) {
	case 3, 4:
		// Expand shorthand: #0f0 -> #00ff00.
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return nil, fmt.Errorf("invalid hex color %q", value)
	}

	raw, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", value, err)
	}
	if len(hex) == 6 {
		raw = raw<<8 | 0xFF
	}
	return color.NRGBA{
		R: uint8(raw >> 24),
		G: uint8(raw >> 16),
		B: uint8(raw >> 8),
		A: uint8(raw),
	}, nil
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(value string) color.Color {
	c, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}
