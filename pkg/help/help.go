// Package help renders the InsightEd shell help: commands grouped by
// category with usage and examples, drawn with box characters and ANSI
// colors. Color is dropped when the output is not a terminal.
//
//	r := help.NewRenderer(os.Stdout, true)
//	r.RenderFull()
//	r.RenderCommand("report")
package help

import (
	"fmt"
	"io"
	"strings"
)

// Box drawing characters.
const (
	BoxTopLeft     = "╭"
	BoxTopRight    = "╮"
	BoxBottomLeft  = "╰"
	BoxBottomRight = "╯"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
	BoxTeeLeft     = "├"
	BoxTeeRight    = "┤"
)

// ANSI color codes.
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorGray   = "\033[90m"
)

// Renderer writes help output.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer creates a renderer writing to w. Without color every escape
// sequence is stripped.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

func (r *Renderer) writeln(s string) {
	if !r.color {
		s = StripANSI(s)
	}
	fmt.Fprintln(r.w, s)
}

// StripANSI removes color escape sequences from s.
func StripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, c := range s {
		switch {
		case c == '\033':
			inEscape = true
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
