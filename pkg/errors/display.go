package errors

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[90m"
	colorBold   = "\033[1m"
)

// Formatter handles error display with optional color support.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool

	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer

	// Indent is the prefix for context and suggestion lines.
	Indent string
}

// DefaultFormatter returns a Formatter for stderr, colored when stderr is a TTY.
func DefaultFormatter() *Formatter {
	return &Formatter{
		UseColor: IsTTY(os.Stderr),
		Writer:   os.Stderr,
		Indent:   "  ",
	}
}

// IsTTY returns true if the given file is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Format renders an error with color coding based on formatter settings.
// ReportErrors show code, message, context, cause and suggestions.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}
	re, ok := AsReportError(err)
	if !ok {
		return f.paint(colorRed, "Error: ") + err.Error()
	}

	var sb strings.Builder
	f.writeHeader(&sb, re)
	if re.HasContext() {
		f.writeContext(&sb, re)
	}
	if re.Cause != nil {
		sb.WriteString(f.Indent)
		sb.WriteString(f.paint(colorDim, "cause: "+re.Cause.Error()))
		sb.WriteString("\n")
	}
	if re.HasSuggestions() {
		f.writeSuggestions(&sb, re)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (f *Formatter) paint(color, s string) string {
	if !f.UseColor {
		return s
	}
	return color + s + colorReset
}

func (f *Formatter) writeHeader(sb *strings.Builder, re *ReportError) {
	if f.UseColor {
		sb.WriteString(colorRed + colorBold + "ERROR" + colorReset)
		sb.WriteString(colorRed + " [" + re.Code + "]: " + colorReset)
	} else {
		sb.WriteString("ERROR [" + re.Code + "]: ")
	}
	sb.WriteString(re.Message)
	sb.WriteString("\n")
}

func (f *Formatter) writeContext(sb *strings.Builder, re *ReportError) {
	keys := make([]string, 0, len(re.Context))
	for k := range re.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(f.Indent)
		sb.WriteString(f.paint(colorYellow, key+": "))
		sb.WriteString(re.Context[key])
		sb.WriteString("\n")
	}
}

func (f *Formatter) writeSuggestions(sb *strings.Builder, re *ReportError) {
	if re.HasContext() || re.Cause != nil {
		sb.WriteString("\n")
	}
	for _, suggestion := range re.Suggestions {
		sb.WriteString(f.Indent)
		sb.WriteString(f.paint(colorCyan, "→ "+suggestion))
		sb.WriteString("\n")
	}
}

// Display writes a formatted error to the formatter's writer.
func (f *Formatter) Display(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(f.Writer, f.Format(err))
}

// Display writes a formatted error to stderr with default settings.
func Display(err error) {
	DefaultFormatter().Display(err)
}

// Sprint returns a formatted error string without colors.
func Sprint(err error) string {
	f := &Formatter{Writer: io.Discard, Indent: "  "}
	return f.Format(err)
}

// CategoryLabel returns a human-readable label for an error category.
func CategoryLabel(cat Category) string {
	switch cat {
	case CategoryConfig:
		return "Configuration Error"
	case CategoryData:
		return "Data Error"
	case CategoryValidation:
		return "Validation Error"
	case CategoryFeedback:
		return "Feedback Error"
	case CategoryRender:
		return "Render Error"
	case CategoryCommand:
		return "Command Error"
	case CategoryNetwork:
		return "Network Error"
	case CategoryIO:
		return "I/O Error"
	case CategoryInternal:
		return "Internal Error"
	default:
		return "Error"
	}
}
