// Package shell provides the interactive InsightEd REPL.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/help"
	"github.com/jaffarkeikei/InsightEd/pkg/report"
	"github.com/jaffarkeikei/InsightEd/pkg/spinner"
)

const prompt = "\033[32minsighted>\033[0m "

// Config holds shell configuration.
type Config struct {
	HistoryFile string
	// OutputDir receives generated reports.
	OutputDir string
	// TTY overrides terminal detection for spinners and progress bars.
	TTY *bool
}

// Shell is the interactive command-line interface.
type Shell struct {
	gen      *report.Generator
	cfg      Config
	rl       *readline.Instance
	out      io.Writer
	prompter Prompter
}

// New creates a shell reading from the terminal.
func New(gen *report.Generator, cfg Config) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewCompleter(gen.Book()),
	})
	if err != nil {
		return nil, err
	}
	if cfg.TTY == nil {
		tty := spinner.IsTerminal(os.Stdout)
		cfg.TTY = &tty
	}
	s := newShell(gen, cfg, rl.Stdout(), &readlinePrompter{rl: rl, prompt: prompt})
	s.rl = rl
	return s, nil
}

func newShell(gen *report.Generator, cfg Config, out io.Writer, p Prompter) *Shell {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &Shell{gen: gen, cfg: cfg, out: out, prompter: p}
}

// Run reads and executes lines until exit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	defer s.rl.Close()

	fmt.Fprintf(s.out, "Loaded %d results for %d students. Type a student ID or class to build a report.\n",
		s.gen.Book().Len(), len(s.gen.Book().StudentIDs()))
	fmt.Fprintln(s.out, "Commands: report, students, classes, show, analyze, help, exit")
	fmt.Fprintln(s.out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(s.out, rerrors.Sprint(err))
		}
	}
}

var errQuit = errors.New("quit")

// Execute runs one input line. A line that is not a command is treated as
// a report query.
func (s *Shell) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "exit", "quit", "q":
		return errQuit
	case "help", "h", "?":
		s.printHelp(arg)
	case "students":
		s.printStudents()
	case "classes":
		s.printClasses()
	case "show":
		if arg == "" {
			return rerrors.CommandMissingArgs("show", "show <student-id>")
		}
		return s.show(arg)
	case "analyze":
		if arg == "" {
			return rerrors.CommandMissingArgs("analyze", "analyze <class>")
		}
		return s.analyze(arg)
	case "report":
		if arg == "" {
			return rerrors.CommandMissingArgs("report", "report <student-id|class>")
		}
		return s.report(ctx, arg)
	default:
		return s.report(ctx, line)
	}
	return nil
}

func (s *Shell) printHelp(topic string) {
	r := help.NewRenderer(s.out, s.cfg.TTY != nil && *s.cfg.TTY)
	if topic != "" {
		r.RenderCommand(topic)
		return
	}
	r.RenderFull()
	fmt.Fprintf(s.out, "Reports are written to %s\n", s.cfg.OutputDir)
}

func (s *Shell) printStudents() {
	roster := s.gen.Book().Roster()
	if len(roster) == 0 {
		fmt.Fprintln(s.out, "No students loaded.")
		return
	}
	fmt.Fprintf(s.out, "%-8s %-24s %-8s %5s %8s  %s\n", "ID", "Name", "Class", "Exams", "Average", "Performance")
	for _, r := range roster {
		fmt.Fprintf(s.out, "%-8s %-24s %-8s %5d %8s  %s\n",
			r.StudentID, r.StudentName, r.Class, r.Exams, gradebook.FormatPercent(r.Average), r.Performance)
	}
}

func (s *Shell) printClasses() {
	book := s.gen.Book()
	for _, class := range book.Classes() {
		fmt.Fprintf(s.out, "  %-10s %d students\n", class, len(gradebook.GroupByStudent(book.ForClass(class))))
	}
}

func (s *Shell) show(id string) error {
	sel, err := s.gen.Book().Lookup(gradebook.Query{Kind: gradebook.QueryStudent, Value: strings.ToUpper(id)})
	if err != nil {
		return err
	}
	passMark := s.gen.Settings().PassMark
	g := sel.Groups[0]

	fmt.Fprintf(s.out, "%s (%s) - %s\n", g.StudentName, g.StudentID, g.Class)
	for _, r := range g.Results {
		pct := r.Percentage()
		fmt.Fprintf(s.out, "  %-20s %-10s %9s %8s  %-2s  %s\n",
			r.ExamName, r.Date,
			gradebook.FormatMarks(r.Marks)+"/"+gradebook.FormatMarks(r.TotalMarks),
			gradebook.FormatPercent(pct), gradebook.GradeFor(pct).Letter, r.StatusFor(passMark))
	}
	sum := gradebook.Summarize(g.Results, passMark)
	fmt.Fprintf(s.out, "Overall %s (%s), passed %d of %d\n", gradebook.FormatPercent(sum.Overall), sum.MarksText(), sum.Passed, sum.Exams)
	return nil
}

func (s *Shell) analyze(class string) error {
	sel, err := s.gen.Book().Lookup(gradebook.Query{Kind: gradebook.QueryClass, Value: class})
	if err != nil {
		return err
	}
	a := gradebook.AnalyzeClass(class, sel.Groups)

	fmt.Fprintf(s.out, "Class %s: %d students, average %s\n", a.Class, a.TotalStudents, gradebook.FormatPercent(a.ClassAverage))
	if a.Top != nil {
		fmt.Fprintf(s.out, "  Top:    %s (%s)\n", a.Top.StudentName, gradebook.FormatPercent(a.Top.Average))
	}
	if a.Bottom != nil {
		fmt.Fprintf(s.out, "  Bottom: %s (%s)\n", a.Bottom.StudentName, gradebook.FormatPercent(a.Bottom.Average))
	}
	d := a.Distribution
	fmt.Fprintf(s.out, "  Excellent %d, Good %d, Average %d, Needs Improvement %d\n", d.Excellent, d.Good, d.Average, d.NeedsImprovement)
	fmt.Fprintf(s.out, "  %-20s %8s %8s %8s\n", "Subject", "Average", "Highest", "Lowest")
	for _, sub := range a.Subjects {
		fmt.Fprintf(s.out, "  %-20s %8s %8s %8s\n", sub.Subject,
			gradebook.FormatPercent(sub.AverageScore), gradebook.FormatPercent(sub.HighestScore), gradebook.FormatPercent(sub.LowestScore))
	}
	return nil
}

// report builds and saves the report for query. An existing file is only
// replaced after confirmation.
func (s *Shell) report(ctx context.Context, query string) error {
	q, err := gradebook.ParseQuery(query)
	if err != nil {
		return err
	}

	spin := spinner.NewWithConfig(spinner.Config{
		Message:     fmt.Sprintf("Generating report for %s", q.Value),
		ShowElapsed: true,
		Writer:      s.out,
		IsTTY:       s.cfg.TTY,
	})
	var bar *spinner.Progress
	req := report.Request{Query: q}
	if q.Kind == gradebook.QueryClass {
		req.Progress = func(done, total int) {
			if bar == nil {
				spin.Stop()
				bar = spinner.NewProgress(s.out, total, "students composed")
				bar.SetTTY(s.cfg.TTY != nil && *s.cfg.TTY)
			}
			bar.Set(done, total)
		}
	}

	spin.Start()
	out, err := s.gen.GenerateWith(ctx, req)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		spin.Fail("Report failed")
		return err
	}
	spin.Stop()

	path := filepath.Join(s.cfg.OutputDir, out.Filename)
	if _, statErr := os.Stat(path); statErr == nil {
		ok, err := s.prompter.Confirm(fmt.Sprintf("%s exists. Overwrite?", path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.out, "Skipped.")
			return nil
		}
	}
	if _, err := out.SaveTo(s.cfg.OutputDir); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Saved %s (%d pages, %d students)\n", path, out.Pages, out.Students)
	if out.Fallback {
		fmt.Fprintf(s.out, "Note: feedback came from templates (%s)\n", out.FallbackReason)
	}
	return nil
}
