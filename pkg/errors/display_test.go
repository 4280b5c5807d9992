package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestFormatter_Format_NilError(t *testing.T) {
	f := &Formatter{Indent: "  "}
	if got := f.Format(nil); got != "" {
		t.Errorf("expected empty string for nil error, got %q", got)
	}
}

func TestFormatter_Format_StandardError(t *testing.T) {
	tests := []struct {
		name     string
		useColor bool
		contains []string
	}{
		{"no color", false, []string{"Error: ", "something went wrong"}},
		{"with color", true, []string{colorRed, "Error: ", colorReset}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Formatter{UseColor: tt.useColor, Indent: "  "}
			got := f.Format(fmt.Errorf("something went wrong"))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in %q", want, got)
				}
			}
		})
	}
}

func TestFormatter_Format_ReportError(t *testing.T) {
	re := New(ErrDataLoadFailed, CategoryData, "failed to load results dataset").
		WithContext("path", "results.xlsx").
		WithCause(fmt.Errorf("zip: not a valid zip file")).
		WithSuggestion("Set data.path")

	got := Sprint(re)
	want := "ERROR [DATA_LOAD_FAILED]: failed to load results dataset\n" +
		"  path: results.xlsx\n" +
		"  cause: zip: not a valid zip file\n" +
		"\n" +
		"  → Set data.path"
	if got != want {
		t.Errorf("Sprint() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatter_Display(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, Indent: "  "}
	f.Display(EmptyQuery())

	out := buf.String()
	if !strings.HasPrefix(out, "ERROR [DATA_EMPTY_QUERY]") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Display should end with a newline")
	}

	buf.Reset()
	f.Display(nil)
	if buf.Len() != 0 {
		t.Errorf("Display(nil) wrote %q", buf.String())
	}
}

func TestIsTTY_Nil(t *testing.T) {
	if IsTTY(nil) {
		t.Error("nil file is not a terminal")
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := map[Category]string{
		CategoryData:     "Data Error",
		CategoryFeedback: "Feedback Error",
		CategoryRender:   "Render Error",
		Category("x"):    "Error",
	}
	for cat, want := range tests {
		if got := CategoryLabel(cat); got != want {
			t.Errorf("CategoryLabel(%q) = %q, want %q", cat, got, want)
		}
	}
}
