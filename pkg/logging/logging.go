// Package logging hands out leveled, per-component loggers backed by
// gommon/log. All loggers share one level, output and header format so the
// CLI, shell and API server can be reconfigured from a single place.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/labstack/gommon/log"
)

// Header templates understood by gommon/log.
const (
	TextHeader = "${time_rfc3339} ${level} [${prefix}]"
	JSONHeader = `{"time":"${time_rfc3339_nano}","level":"${level}","component":"${prefix}"}`
)

// Options configures every logger handed out by New.
type Options struct {
	Level  string    // debug, info, warn, error, off
	Format string    // text or json
	Output io.Writer // defaults to os.Stderr
}

var (
	mu      sync.Mutex
	loggers = make(map[string]*log.Logger)
	current = Options{Level: "info", Format: "text", Output: os.Stderr}
)

// ParseLevel maps a config string onto a gommon level.
func ParseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off", "none":
		return log.OFF, nil
	}
	return log.INFO, fmt.Errorf("unknown log level %q", s)
}

// Configure applies opts to all existing and future loggers.
func Configure(opts Options) error {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	switch opts.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", opts.Format)
	}

	mu.Lock()
	defer mu.Unlock()
	current = opts
	for _, l := range loggers {
		apply(l, lvl)
	}
	return nil
}

// New returns the logger for component, creating it on first use.
func New(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[component]; ok {
		return l
	}
	l := log.New(component)
	lvl, _ := ParseLevel(current.Level)
	apply(l, lvl)
	loggers[component] = l
	return l
}

func apply(l *log.Logger, lvl log.Lvl) {
	l.SetLevel(lvl)
	l.SetOutput(current.Output)
	if current.Format == "json" {
		l.SetHeader(JSONHeader)
		l.DisableColor()
		return
	}
	l.SetHeader(TextHeader)
	if f, ok := current.Output.(*os.File); !ok || !isTerminal(f) {
		l.DisableColor()
	}
}
