package help

import (
	"strings"
	"unicode/utf8"
)

// Box draws a rounded frame of a fixed inner width.
type Box struct {
	Width int
}

// NewBox creates a box with the given inner width.
func NewBox(width int) *Box {
	return &Box{Width: width}
}

// Top returns ╭───╮.
func (b *Box) Top() string {
	return BoxTopLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxTopRight
}

// Bottom returns ╰───╯.
func (b *Box) Bottom() string {
	return BoxBottomLeft + strings.Repeat(BoxHorizontal, b.Width) + BoxBottomRight
}

// Row returns content left-aligned between vertical borders, truncated to
// fit.
func (b *Box) Row(content string) string {
	return BoxVertical + PadRight(truncate(content, b.Width), b.Width) + BoxVertical
}

// RowCenter returns content centred between vertical borders.
func (b *Box) RowCenter(content string) string {
	content = truncate(content, b.Width)
	pad := b.Width - visibleLength(content)
	left := pad / 2
	return BoxVertical + strings.Repeat(" ", left) + content + strings.Repeat(" ", pad-left) + BoxVertical
}

// visibleLength counts runes outside escape sequences.
func visibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// truncate shortens plain text to width runes. Styled text is returned
// unchanged.
func truncate(s string, width int) string {
	if strings.Contains(s, "\033") || utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

// PadRight pads s with spaces to the visible width.
func PadRight(s string, width int) string {
	if n := visibleLength(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
