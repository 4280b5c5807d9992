package help

import (
	"fmt"
	"strings"
)

const (
	commandColumnWidth = 22
	indentCategory     = "  "
	indentCommand      = "    "
	indentExample      = "      "
	maxInlineExamples  = 2
)

// RenderFull writes every category followed by the tips section.
func (r *Renderer) RenderFull() {
	r.writeln("")
	r.writeln(Header(indentCategory + "InsightEd Commands"))
	r.writeln("")
	for _, cat := range CategoryOrder {
		r.renderCategory(cat)
	}
	r.RenderTips()
}

// RenderCommand writes the detail view of one command. It reports false
// when name is unknown.
func (r *Renderer) RenderCommand(name string) bool {
	cmd, ok := Lookup(name)
	if !ok {
		r.writeln(fmt.Sprintf(indentCategory+"Command '%s' not found. Use help to see all commands.", name))
		return false
	}

	r.writeln("")
	r.writeln(indentCategory + CommandWithAliases(cmd.Name, cmd.Aliases))
	r.writeln(indentCategory + Dim(cmd.Description))
	r.writeln("")
	r.writeln(indentCategory + Bold("Usage:") + " " + Argument(cmd.Usage))
	r.writeln("")
	if len(cmd.Examples) > 0 {
		r.writeln(indentCategory + Bold("Examples:"))
		for _, ex := range cmd.Examples {
			r.writeln(indentCommand + ExampleLine(ex.Command, ex.Description))
		}
		r.writeln("")
	}
	return true
}

// RenderTips writes the shortcuts section.
func (r *Renderer) RenderTips() {
	r.writeln(indentCategory + StyleCategory("Tips"))
	r.writeln(indentCategory + separator())
	r.writeln(indentCommand + Dim(BoxVertical+" ") + Dim("Tab:  ") + Dim("complete commands, student IDs and classes"))
	r.writeln(indentCommand + Dim(BoxVertical+" ") + Dim("Keys: ") +
		Shortcut("Ctrl+C") + Dim(" cancel  ") +
		Shortcut("Ctrl+D") + Dim(" exit  ") +
		Shortcut("↑↓") + Dim(" history"))
	r.writeln("")
}

func separator() string {
	return Dim(BoxTeeLeft + strings.Repeat(BoxHorizontal, commandColumnWidth+20))
}

func (r *Renderer) renderCategory(cat Category) {
	cmds := CommandsIn(cat)
	if len(cmds) == 0 {
		return
	}
	r.writeln(indentCategory + StyleCategory(cat.DisplayName()))
	r.writeln(indentCategory + separator())

	for _, cmd := range cmds {
		name := CommandWithAliases(cmd.Name, cmd.Aliases)
		r.writeln(indentCommand + Dim(BoxVertical+" ") + PadRight(name, commandColumnWidth) + Dim(cmd.Description))

		n := len(cmd.Examples)
		if n > maxInlineExamples {
			n = maxInlineExamples
		}
		for _, ex := range cmd.Examples[:n] {
			r.writeln(indentExample + Dim(BoxVertical+"   e.g. ") + HighlightExample(ex.Command))
		}
	}
	r.writeln("")
}
