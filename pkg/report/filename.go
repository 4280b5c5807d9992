package report

import (
	"strings"
	"unicode"

	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

// Filename names the output file of a report: Report_<Student_Name>.pdf for
// a student and Class_<class>_Report.pdf for a class. Whitespace runs become
// single underscores and path separators are dropped.
func Filename(kind gradebook.QueryKind, subject string) string {
	name := sanitize(subject)
	if name == "" {
		name = "Unknown"
	}
	if kind == gradebook.QueryClass {
		return "Class_" + name + "_Report.pdf"
	}
	return "Report_" + name + ".pdf"
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return -1
		case unicode.IsSpace(r):
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), "_")
	return strings.Trim(s, ".")
}
