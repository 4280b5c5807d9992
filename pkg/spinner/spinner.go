// Package spinner shows terminal activity while a report is being built: a
// spinner while feedback is fetched and a progress bar for class reports.
// Without a terminal both fall back to plain lines.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	carriageReturn = "\r"

	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"

	symbolSuccess = "✓"
	symbolFailure = "✗"
)

// Frames is an animation sequence.
type Frames []string

var (
	Braille = Frames{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	Line    = Frames{"|", "/", "-", "\\"}
)

// Config configures a Spinner.
type Config struct {
	Frames      Frames
	Message     string
	Interval    time.Duration
	ShowElapsed bool
	Writer      io.Writer
	// IsTTY overrides terminal detection on Writer.
	IsTTY *bool
}

// Spinner animates a message until Stop, Success or Fail.
type Spinner struct {
	mu     sync.Mutex
	config Config
	isTTY  bool

	active  bool
	started time.Time
	frame   int
	last    int
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a spinner writing to stderr.
func New(message string) *Spinner {
	return NewWithConfig(Config{Message: message, ShowElapsed: true})
}

// NewWithConfig creates a spinner, filling unset fields with defaults.
func NewWithConfig(cfg Config) *Spinner {
	if len(cfg.Frames) == 0 {
		cfg.Frames = Braille
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 80 * time.Millisecond
	}
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	return &Spinner{config: cfg, isTTY: resolveTTY(cfg.Writer, cfg.IsTTY)}
}

func resolveTTY(w io.Writer, override *bool) bool {
	if override != nil {
		return *override
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsActive reports whether the spinner is running.
func (s *Spinner) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Start begins the animation. Starting a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.started = time.Now()
	s.frame = 0

	if !s.isTTY {
		fmt.Fprintf(s.config.Writer, "%s...\n", s.config.Message)
		return
	}
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	fmt.Fprint(s.config.Writer, hideCursor)
	go s.spin(s.stopCh, s.doneCh)
}

func (s *Spinner) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	line := s.config.Frames[s.frame%len(s.config.Frames)] + " " + s.config.Message
	if s.config.ShowElapsed {
		line += " " + FormatElapsed(time.Since(s.started))
	}
	s.frame++
	s.rewrite(line)
}

// rewrite replaces the current line. Caller holds mu.
func (s *Spinner) rewrite(line string) {
	clearLine(s.config.Writer, s.last)
	fmt.Fprint(s.config.Writer, line)
	s.last = len(line)
}

func clearLine(w io.Writer, n int) {
	if n > 0 {
		fmt.Fprint(w, carriageReturn+strings.Repeat(" ", n)+carriageReturn)
	}
}

// Update changes the message.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Message = message
}

// Stop ends the animation and clears its line.
func (s *Spinner) Stop() {
	s.halt()
}

// halt stops the animation and returns the elapsed time, or zero when the
// spinner was not running.
func (s *Spinner) halt() time.Duration {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return 0
	}
	s.active = false
	elapsed := time.Since(s.started)
	stop, done := s.stopCh, s.doneCh
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
		s.mu.Lock()
		clearLine(s.config.Writer, s.last)
		s.last = 0
		fmt.Fprint(s.config.Writer, showCursor)
		s.mu.Unlock()
	}
	return elapsed
}

// Success stops the spinner and prints a check mark with message, or with
// the spinner's message when empty.
func (s *Spinner) Success(message string) {
	s.finish(message, symbolSuccess, colorGreen)
}

// Fail stops the spinner and prints a cross with message.
func (s *Spinner) Fail(message string) {
	s.finish(message, symbolFailure, colorRed)
}

func (s *Spinner) finish(message, symbol, color string) {
	elapsed := s.halt()

	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		message = s.config.Message
	}
	if s.isTTY {
		symbol = color + symbol + colorReset
	}
	line := symbol + " " + message
	if s.config.ShowElapsed && elapsed > 0 {
		line += " " + FormatElapsed(elapsed)
	}
	fmt.Fprintln(s.config.Writer, line)
}

// FormatElapsed renders "(1.2s)" below a minute and "(1m 30s)" above.
func FormatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	}
	return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
}
