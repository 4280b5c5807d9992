package report

import (
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
)

// ClassTitle is the document title of a class report.
func ClassTitle(class string) string {
	return "Class " + class + " - Multi-Student Report"
}

// ClassReport lays out one section per student, each after the first on a
// new page, followed by an optional class overview. The returned Composer is
// ready to Save.
func ClassReport(id, class string, students []StudentContent, s Settings) *Composer {
	c := NewComposer(s.layout(id, ClassTitle(class)))
	groups := make([]gradebook.Group, 0, len(students))
	for i, sc := range students {
		if i > 0 {
			c.PageBreak()
		}
		writeStudent(c, sc, s)
		groups = append(groups, sc.Group)
	}
	if s.ClassOverview && len(groups) > 0 {
		writeClassOverview(c, gradebook.AnalyzeClass(class, groups), s)
	}
	return c.AddFooter()
}

// writeClassOverview continues on the current page; only implicit breaks are
// taken so each student keeps exactly one explicit break before it.
func writeClassOverview(c *Composer, a gradebook.ClassAnalysis, s Settings) {
	metrics := []Metric{
		{Label: "Total Students", Value: FormatCell(a.TotalStudents)},
		{Label: "Class Average", Value: gradebook.FormatPercent(a.ClassAverage)},
	}
	if a.Top != nil {
		metrics = append(metrics, Metric{Label: "Top Performer",
			Value: a.Top.StudentName + " (" + gradebook.FormatPercent(a.Top.Average) + ")"})
	}
	if a.Bottom != nil && a.TotalStudents > 1 {
		metrics = append(metrics, Metric{Label: "Needs Support",
			Value: a.Bottom.StudentName + " (" + gradebook.FormatPercent(a.Bottom.Average) + ")"})
	}
	d := a.Distribution
	metrics = append(metrics,
		Metric{Label: "Excellent (90%+)", Value: FormatCell(d.Excellent)},
		Metric{Label: "Good (75-89%)", Value: FormatCell(d.Good)},
		Metric{Label: "Average (60-74%)", Value: FormatCell(d.Average)},
		Metric{Label: "Below 60%", Value: FormatCell(d.NeedsImprovement)},
	)

	c.AddSection("Class Overview - " + a.Class).
		AddSummary(metrics).
		AddSection("Subject Analysis").
		AddTable(SubjectTable(a.Subjects), 0)

	if s.Chart != ChartNone && len(a.Subjects) > 0 {
		series := Series{Title: "Average score by subject (%)"}
		for _, sa := range a.Subjects {
			series.Data = append(series.Data, Datum{Label: sa.Subject, Value: sa.AverageScore})
		}
		c.AddChart(ChartBar, series, 0)
	}
}

// SubjectTable tabulates per-subject statistics.
func SubjectTable(subjects []gradebook.SubjectAnalysis) Table {
	t := Table{
		Columns: []Column{
			{Header: "Subject"},
			{Header: "Students", Width: 52, Align: AlignRight},
			{Header: "Average", Width: 56, Align: AlignRight},
			{Header: "Highest", Width: 56, Align: AlignRight},
			{Header: "Lowest", Width: 56, Align: AlignRight},
			{Header: "Above Avg", Width: 60, Align: AlignRight},
			{Header: "Below Avg", Width: 60, Align: AlignRight},
		},
	}
	for _, sa := range subjects {
		t.Rows = append(t.Rows, []any{
			sa.Subject,
			sa.Count,
			gradebook.FormatPercent(sa.AverageScore),
			gradebook.FormatPercent(sa.HighestScore),
			gradebook.FormatPercent(sa.LowestScore),
			sa.AboveAverage,
			sa.BelowAverage,
		})
	}
	return t
}
