package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// Prompter asks the user to confirm an action such as overwriting a report.
type Prompter interface {
	// Confirm shows message and reports whether the user answered yes.
	Confirm(message string) (bool, error)
}

// InteractivePrompter reads answers line by line from a reader.
type InteractivePrompter struct {
	reader io.Reader
	writer io.Writer
}

// NewInteractivePrompter creates a prompter on stdin and stdout.
func NewInteractivePrompter() *InteractivePrompter {
	return NewInteractivePrompterWithIO(os.Stdin, os.Stdout)
}

// NewInteractivePrompterWithIO creates a prompter on custom streams.
func NewInteractivePrompterWithIO(reader io.Reader, writer io.Writer) *InteractivePrompter {
	return &InteractivePrompter{reader: reader, writer: writer}
}

// Confirm implements Prompter. Anything other than y or yes, including EOF,
// is a no.
func (p *InteractivePrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N]: ", message)

	scanner := bufio.NewScanner(p.reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		return false, nil
	}
	return affirmative(scanner.Text()), nil
}

var _ Prompter = (*InteractivePrompter)(nil)

// readlinePrompter asks through the shell's own readline instance so the
// answer is not swallowed by its input loop.
type readlinePrompter struct {
	rl     *readline.Instance
	prompt string
}

func (p *readlinePrompter) Confirm(message string) (bool, error) {
	p.rl.SetPrompt(message + " [y/N]: ")
	defer p.rl.SetPrompt(p.prompt)

	line, err := p.rl.Readline()
	if err == readline.ErrInterrupt || err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return affirmative(line), nil
}

func affirmative(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
