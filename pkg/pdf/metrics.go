package pdf

import "strings"

// Glyph widths in 1/1000 em for printable ASCII (32..126), taken from the
// Adobe Helvetica and Helvetica-Bold AFM files.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // ' ' to '/'
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, // 0-9
	278, 278, 584, 584, 584, 556, 1015, // : to @
	667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, // A-M
	722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, // N-Z
	278, 278, 278, 469, 556, 333, // [ to `
	556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, // a-m
	556, 556, 556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, // n-z
	334, 260, 334, 584, // { to ~
}

var helveticaBoldWidths = [95]int{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556,
	333, 333, 584, 584, 584, 611, 975,
	722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833,
	722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611,
	333, 278, 333, 584, 556, 333,
	556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889,
	611, 611, 611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500,
	389, 280, 389, 584,
}

// defaultGlyphWidth is used for runes outside printable ASCII.
const defaultGlyphWidth = 556

// Ellipsis is appended by Truncate.
const Ellipsis = "..."

func glyphWidth(r rune, font Font) int {
	if r < 32 || r > 126 {
		return defaultGlyphWidth
	}
	if font == Bold {
		return helveticaBoldWidths[r-32]
	}
	return helveticaWidths[r-32]
}

// StringWidth returns the advance width of s in points.
func StringWidth(s string, font Font, size float64) float64 {
	units := 0
	for _, r := range s {
		units += glyphWidth(r, font)
	}
	return float64(units) * size / 1000
}

// WrapText breaks text into lines no wider than width. Newlines start a new
// paragraph and are kept as line boundaries; runs of other whitespace collapse
// to one space. A word wider than width is placed alone on its own line and is
// never split, so every character of the input survives.
func WrapText(text string, width float64, font Font, size float64) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	space := StringWidth(" ", font, size)

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line strings.Builder
		lineWidth := 0.0
		for _, w := range words {
			ww := StringWidth(w, font, size)
			if line.Len() > 0 && lineWidth+space+ww > width {
				lines = append(lines, line.String())
				line.Reset()
				lineWidth = 0
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
				lineWidth += space
			}
			line.WriteString(w)
			lineWidth += ww
		}
		lines = append(lines, line.String())
	}
	return lines
}

// Truncate shortens s with a trailing ellipsis until it fits width. It returns
// "" when not even the ellipsis fits.
func Truncate(s string, width float64, font Font, size float64) string {
	if StringWidth(s, font, size) <= width {
		return s
	}
	limit := width - StringWidth(Ellipsis, font, size)
	if limit < 0 {
		return ""
	}
	units := 0.0
	for i, r := range s {
		units += float64(glyphWidth(r, font)) * size / 1000
		if units > limit {
			return strings.TrimRight(s[:i], " ") + Ellipsis
		}
	}
	return s
}

// LineCount returns how many lines WrapText produces.
func LineCount(text string, width float64, font Font, size float64) int {
	return len(WrapText(text, width, font, size))
}
