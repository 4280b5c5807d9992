package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/feedback"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/report"
)

// fakePrompter answers every confirmation with a fixed response.
type fakePrompter struct {
	answer  bool
	err     error
	prompts []string
}

func (f *fakePrompter) Confirm(message string) (bool, error) {
	f.prompts = append(f.prompts, message)
	return f.answer, f.err
}

func testBook() *gradebook.Book {
	var results []gradebook.Result
	for _, s := range []struct{ id, name, class string }{
		{"STU001", "Alice Mwangi", "10th"},
		{"STU002", "Brian Otieno", "10th"},
		{"STU003", "Chloe Wanjiru", "11th"},
	} {
		results = append(results,
			gradebook.Result{ExamName: "Mathematics", StudentID: s.id, StudentName: s.name, Class: s.class, Marks: 80, TotalMarks: 100, Date: "2024-03-01"},
			gradebook.Result{ExamName: "Swahili", StudentID: s.id, StudentName: s.name, Class: s.class, Marks: 40, TotalMarks: 100, Date: "2024-03-02"},
		)
	}
	return gradebook.NewBook(results, nil)
}

func testShell(t *testing.T, p Prompter) (*Shell, *bytes.Buffer, string) {
	t.Helper()
	settings := report.DefaultSettings()
	settings.Now = func() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) }
	gen := report.NewGenerator(testBook(), feedback.NewService(nil, time.Second), settings, nil)

	dir := t.TempDir()
	var out bytes.Buffer
	tty := false
	return newShell(gen, Config{OutputDir: dir, TTY: &tty}, &out, p), &out, dir
}

func TestExecuteReportWritesFile(t *testing.T) {
	sh, out, dir := testShell(t, &fakePrompter{})

	if err := sh.Execute(context.Background(), "report stu001"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	path := filepath.Join(dir, "Report_Alice_Mwangi.pdf")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("written file is not a PDF")
	}
	if !strings.Contains(out.String(), "Saved "+path) {
		t.Errorf("missing saved line in %q", out.String())
	}
	if !strings.Contains(out.String(), "feedback came from templates (no_credentials)") {
		t.Errorf("fallback note missing in %q", out.String())
	}
}

func TestBareQueryBuildsClassReport(t *testing.T) {
	sh, out, dir := testShell(t, &fakePrompter{})

	if err := sh.Execute(context.Background(), "10th"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Class_10th_Report.pdf")); err != nil {
		t.Fatalf("class report not written: %v", err)
	}
	if !strings.Contains(out.String(), "2/2 students composed") {
		t.Errorf("progress bar missing in %q", out.String())
	}
	if !strings.Contains(out.String(), "2 students") {
		t.Errorf("student count missing in %q", out.String())
	}
}

func TestReportOverwriteConfirmation(t *testing.T) {
	tests := []struct {
		name     string
		answer   bool
		wantSkip bool
	}{
		{"declined", false, true},
		{"accepted", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePrompter{answer: tt.answer}
			sh, out, dir := testShell(t, p)
			path := filepath.Join(dir, "Report_Alice_Mwangi.pdf")
			if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
				t.Fatal(err)
			}

			if err := sh.Execute(context.Background(), "STU001"); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if len(p.prompts) != 1 || !strings.Contains(p.prompts[0], "Overwrite?") {
				t.Fatalf("prompts = %v", p.prompts)
			}

			data, _ := os.ReadFile(path)
			kept := string(data) == "old"
			if kept != tt.wantSkip {
				t.Errorf("file kept = %v, want %v", kept, tt.wantSkip)
			}
			if tt.wantSkip && !strings.Contains(out.String(), "Skipped.") {
				t.Errorf("missing skip message in %q", out.String())
			}
		})
	}
}

func TestReportPromptError(t *testing.T) {
	boom := errors.New("tty gone")
	sh, _, dir := testShell(t, &fakePrompter{err: boom})
	os.WriteFile(filepath.Join(dir, "Report_Alice_Mwangi.pdf"), []byte("old"), 0644)

	if err := sh.Execute(context.Background(), "STU001"); !errors.Is(err, boom) {
		t.Errorf("Execute() error = %v, want %v", err, boom)
	}
}

func TestReportUnknownQuery(t *testing.T) {
	sh, out, _ := testShell(t, &fakePrompter{})

	err := sh.Execute(context.Background(), "STU999")
	if !rerrors.IsCode(err, rerrors.ErrDataNotFound) {
		t.Fatalf("expected DATA_NOT_FOUND, got %v", err)
	}
	if !strings.Contains(out.String(), "Report failed") {
		t.Errorf("spinner should report failure, got %q", out.String())
	}
}

func TestExecuteCommands(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"help", []string{"InsightEd Commands", "analyze", "Reports are written to"}},
		{"help show", []string{"Usage: show <student-id>"}},
		{"students", []string{"STU001", "Alice Mwangi", "10th", "Average"}},
		{"classes", []string{"10th", "2 students", "11th", "1 students"}},
		{"show stu003", []string{"Chloe Wanjiru (STU003) - 11th", "Mathematics", "80/100", "Fail", "Overall 60.0% (120/200), passed 1 of 2"}},
		{"analyze 10th", []string{"Class 10th: 2 students", "Swahili", "Mathematics"}},
		{"   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			sh, out, _ := testShell(t, &fakePrompter{})
			if err := sh.Execute(context.Background(), tt.line); err != nil {
				t.Fatalf("Execute(%q) error = %v", tt.line, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output of %q missing %q:\n%s", tt.line, w, out.String())
				}
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	sh, _, _ := testShell(t, &fakePrompter{})
	ctx := context.Background()

	for _, line := range []string{"show", "analyze", "report"} {
		if err := sh.Execute(ctx, line); !rerrors.IsCode(err, rerrors.ErrCommandMissingArgs) {
			t.Errorf("Execute(%q) = %v, want COMMAND_MISSING_ARGS", line, err)
		}
	}
	if err := sh.Execute(ctx, "analyze 12th"); !rerrors.IsCode(err, rerrors.ErrDataNotFound) {
		t.Errorf("unknown class = %v", err)
	}
	for _, line := range []string{"exit", "quit", "Q"} {
		if err := sh.Execute(ctx, line); !errors.Is(err, errQuit) {
			t.Errorf("Execute(%q) = %v, want quit", line, err)
		}
	}
}

func TestCompleter(t *testing.T) {
	c := NewCompleter(testBook())

	tests := []struct {
		line    string
		want    []string
		wantLen int
	}{
		{"re", []string{"port "}, 2},
		{"stu00", []string{"1 ", "2 ", "3 "}, 5},
		{"1", []string{"0th ", "1th "}, 1},
		{"show STU00", []string{"1 ", "2 ", "3 "}, 5},
		{"show 1", nil, 1},
		{"analyze 1", []string{"0th ", "1th "}, 1},
		{"report 11", []string{"th "}, 2},
		{"report STU001 x", nil, 1},
		{"", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, n := c.Do([]rune(tt.line), len(tt.line))
			if n != tt.wantLen {
				t.Errorf("length = %d, want %d", n, tt.wantLen)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d candidates %q, want %q", len(got), got, tt.want)
			}
			for i := range got {
				if string(got[i]) != tt.want[i] {
					t.Errorf("candidate %d = %q, want %q", i, string(got[i]), tt.want[i])
				}
			}
		})
	}
}

func TestCompleterNilBook(t *testing.T) {
	got, _ := NewCompleter(nil).Do([]rune("show S"), 6)
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %q", got)
	}
}

func TestInteractivePrompter(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"  YES \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		var w bytes.Buffer
		p := NewInteractivePrompterWithIO(strings.NewReader(tt.input), &w)
		got, err := p.Confirm("Overwrite?")
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if w.String() != "Overwrite? [y/N]: " {
			t.Errorf("prompt = %q", w.String())
		}
	}
}
