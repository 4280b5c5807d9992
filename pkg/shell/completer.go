package shell

import (
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/help"
)

// commandNames lists the shell commands in help order.
func commandNames() []string {
	out := make([]string, len(help.Commands))
	for i, c := range help.Commands {
		out[i] = c.Name
	}
	return out
}

// Which arguments each command takes.
var (
	studentArgs = map[string]bool{"report": true, "show": true}
	classArgs   = map[string]bool{"report": true, "analyze": true}
)

// Completer completes command names, student IDs and class names from the
// loaded results. It implements readline.AutoCompleter.
type Completer struct {
	book *gradebook.Book
}

// NewCompleter creates a completer over book, which may be nil.
func NewCompleter(book *gradebook.Book) *Completer {
	return &Completer{book: book}
}

var _ readline.AutoCompleter = (*Completer)(nil)

// Do implements readline.AutoCompleter. It returns the suffixes that
// complete the word under the cursor and that word's length.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	if pos <= 0 {
		return nil, 0
	}

	before := string(line[:pos])
	start := strings.LastIndexAny(before, " \t") + 1
	word := before[start:]
	fields := strings.Fields(before[:start])

	var candidates []string
	switch len(fields) {
	case 0:
		if word == "" {
			return nil, 0
		}
		// A bare query is a report request.
		candidates = append(candidates, commandNames()...)
		candidates = append(candidates, c.studentIDs()...)
		candidates = append(candidates, c.classes()...)
	case 1:
		cmd := strings.ToLower(fields[0])
		if studentArgs[cmd] {
			candidates = append(candidates, c.studentIDs()...)
		}
		if classArgs[cmd] {
			candidates = append(candidates, c.classes()...)
		}
	}

	return complete(candidates, word), len([]rune(word))
}

func (c *Completer) studentIDs() []string {
	if c.book == nil {
		return nil
	}
	return c.book.StudentIDs()
}

func (c *Completer) classes() []string {
	if c.book == nil {
		return nil
	}
	return c.book.Classes()
}

// complete returns the suffixes of candidates matching prefix, each
// followed by a space. Student IDs match case-insensitively.
func complete(candidates []string, prefix string) [][]rune {
	seen := make(map[string]bool)
	var names []string
	for _, cand := range candidates {
		if seen[cand] || len(cand) < len(prefix) {
			continue
		}
		if strings.HasPrefix(cand, prefix) || strings.EqualFold(cand[:len(prefix)], prefix) {
			seen[cand] = true
			names = append(names, cand)
		}
	}
	sort.Strings(names)

	out := make([][]rune, 0, len(names))
	for _, n := range names {
		out = append(out, []rune(n[len(prefix):]+" "))
	}
	return out
}
