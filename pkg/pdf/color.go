// Package pdf is the page model and PDF output layer used by the report
// composer. Geometry is in PostScript points with the origin at the top-left
// corner of the page and y growing downward; renderers flip to PDF space.
package pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black     = Color{0, 0, 0}
	White     = Color{255, 255, 255}
	DarkGray  = Color{64, 64, 64}
	Gray      = Color{128, 128, 128}
	LightGray = Color{230, 230, 230}
)

// RGB builds a Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// HexColor parses "#RRGGBB" or "RRGGBB".
func HexColor(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// operands returns the color as PDF "r g b" operands in [0, 1].
func (c Color) operands() string {
	return fmt.Sprintf("%.3f %.3f %.3f",
		float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}
