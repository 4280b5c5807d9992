package report

import (
	"github.com/jaffarkeikei/InsightEd/pkg/pdf"
)

// Theme holds the named colors of a report. Styles are built from it per
// draw call; nothing is remembered between calls.
type Theme struct {
	Primary pdf.Color
	Pass    pdf.Color
	Fail    pdf.Color
	Text    pdf.Color
	Muted   pdf.Color
	Stripe  pdf.Color
	Rule    pdf.Color
}

// DefaultTheme is indigo with green and red status colors.
func DefaultTheme() Theme {
	return Theme{
		Primary: pdf.RGB(99, 102, 241),
		Pass:    pdf.RGB(34, 197, 94),
		Fail:    pdf.RGB(220, 38, 38),
		Text:    pdf.RGB(33, 37, 41),
		Muted:   pdf.RGB(100, 100, 100),
		Stripe:  pdf.RGB(240, 242, 245),
		Rule:    pdf.RGB(209, 213, 219),
	}
}

// ThemeWithPrimary returns the default theme with its primary color
// replaced by hex.
func ThemeWithPrimary(hex string) (Theme, error) {
	t := DefaultTheme()
	if hex == "" {
		return t, nil
	}
	c, err := pdf.HexColor(hex)
	if err != nil {
		return t, err
	}
	t.Primary = c
	return t, nil
}

// Status returns the pass or fail color.
func (t Theme) Status(passed bool) pdf.Color {
	if passed {
		return t.Pass
	}
	return t.Fail
}

func (t Theme) text(font pdf.Font, size float64, color pdf.Color) pdf.Style {
	return pdf.Style{Font: font, Size: size, Color: color}
}

func (t Theme) fill(color pdf.Color) pdf.Style {
	return pdf.Style{Color: color, Fill: color, LineWidth: 0.5}
}

func (t Theme) stroke(color pdf.Color, width float64) pdf.Style {
	return pdf.Style{Color: color, LineWidth: width}
}

// tint mixes c towards white; f=0 keeps c, f=1 gives white.
func tint(c pdf.Color, f float64) pdf.Color {
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*f)
	}
	return pdf.RGB(mix(c.R), mix(c.G), mix(c.B))
}
