package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Progress is a bar counting completed items out of a known total.
type Progress struct {
	mu      sync.Mutex
	w       io.Writer
	isTTY   bool
	width   int
	message string
	total   int
	done    int
	last    int
}

// NewProgress creates a bar of total items writing to w (stderr when nil).
func NewProgress(w io.Writer, total int, message string) *Progress {
	if w == nil {
		w = os.Stderr
	}
	return &Progress{w: w, isTTY: IsTerminal(w), width: 24, message: message, total: total}
}

// SetTTY overrides terminal detection.
func (p *Progress) SetTTY(tty bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isTTY = tty
}

// Set records done of total items and redraws. It matches the progress
// callback of report generation.
func (p *Progress) Set(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if total > 0 {
		p.total = total
	}
	if done > p.total {
		done = p.total
	}
	p.done = done
	p.draw()
}

// Increment advances the bar by one.
func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		p.done++
	}
	p.draw()
}

// Done returns the completed count.
func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish ends the bar's line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isTTY && p.last > 0 {
		fmt.Fprintln(p.w)
		p.last = 0
	}
}

// Bar renders the bar alone, e.g. "[######------] 2/4".
func (p *Progress) Bar() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bar()
}

func (p *Progress) bar() string {
	filled := 0
	if p.total > 0 {
		filled = p.done * p.width / p.total
	}
	return fmt.Sprintf("[%s%s] %d/%d", strings.Repeat("#", filled), strings.Repeat("-", p.width-filled), p.done, p.total)
}

// draw writes the current state. Caller holds mu.
func (p *Progress) draw() {
	line := p.bar() + " " + p.message
	if !p.isTTY {
		fmt.Fprintln(p.w, line)
		return
	}
	clearLine(p.w, p.last)
	fmt.Fprint(p.w, line)
	p.last = len(line)
}
