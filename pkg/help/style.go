package help

import "strings"

// Header styles a title.
func Header(text string) string {
	return ColorBold + ColorCyan + text + ColorReset
}

// StyleCategory styles a category label.
func StyleCategory(text string) string {
	return ColorBold + ColorGreen + text + ColorReset
}

// StyleCommand styles a command name.
func StyleCommand(text string) string {
	return ColorCyan + text + ColorReset
}

// Argument styles command arguments.
func Argument(text string) string {
	return ColorYellow + text + ColorReset
}

// Shortcut styles an alias or key.
func Shortcut(text string) string {
	return ColorBold + ColorYellow + text + ColorReset
}

// Dim styles secondary text.
func Dim(text string) string {
	return ColorGray + text + ColorReset
}

// Bold emphasises text.
func Bold(text string) string {
	return ColorBold + text + ColorReset
}

// CommandWithAliases renders "report (or r)".
func CommandWithAliases(name string, aliases []string) string {
	if len(aliases) == 0 {
		return StyleCommand(name)
	}
	styled := make([]string, len(aliases))
	for i, a := range aliases {
		styled[i] = Shortcut(a)
	}
	return StyleCommand(name) + Dim(" (or ") + strings.Join(styled, Dim(", ")) + Dim(")")
}

// HighlightExample shows the command word in cyan and its arguments in
// yellow.
func HighlightExample(line string) string {
	name, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	out := StyleCommand(name)
	if args = strings.TrimSpace(args); args != "" {
		out += Argument(" " + args)
	}
	return out
}

// ExampleLine renders an example and what it does.
func ExampleLine(line, desc string) string {
	return "  " + HighlightExample(line) + Dim(" -> ") + Dim(desc)
}
