package report

import (
	"time"

	"github.com/jaffarkeikei/InsightEd/pkg/config"
	"github.com/jaffarkeikei/InsightEd/pkg/feedback"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/pdf"
)

// Settings are the per-deployment report options.
type Settings struct {
	SchoolName    string
	PassMark      float64
	Chart         ChartKind
	PageSize      pdf.PageSize
	Margin        float64
	Theme         Theme
	Renderer      pdf.Renderer
	VerifyQR      bool
	ClassOverview bool
	// Now stamps reports; nil means time.Now.
	Now func() time.Time
}

// DefaultSettings mirror config.Default.
func DefaultSettings() Settings {
	return Settings{
		SchoolName:    "InsightEd School",
		PassMark:      50,
		Chart:         ChartBar,
		PageSize:      pdf.A4,
		Margin:        DefaultMargin,
		Theme:         DefaultTheme(),
		Renderer:      &pdf.NativeRenderer{Compress: true},
		VerifyQR:      true,
		ClassOverview: true,
	}
}

// SettingsFromConfig resolves the report and data sections of cfg.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	s := DefaultSettings()
	rc := cfg.Report

	if rc.SchoolName != "" {
		s.SchoolName = rc.SchoolName
	}
	s.PassMark = cfg.Data.PassMark
	s.PageSize = pdf.PageSizeByName(rc.PageSize)
	if rc.Margin > 0 {
		s.Margin = rc.Margin
	}
	s.VerifyQR = rc.VerifyQR
	s.ClassOverview = rc.ClassOverview

	chart, err := ParseChartKind(rc.Chart)
	if err != nil {
		return s, err
	}
	s.Chart = chart

	theme, err := ThemeWithPrimary(rc.PrimaryColor)
	if err != nil {
		return s, err
	}
	s.Theme = theme

	r, err := pdf.RendererByName(rc.Renderer, rc.Compress)
	if err != nil {
		return s, err
	}
	s.Renderer = r
	return s, nil
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// HeaderTitle is the title band text of every report.
func (s Settings) HeaderTitle() string {
	return s.SchoolName + " - Examination Report"
}

func (s Settings) layout(id, title string) Layout {
	return Layout{
		Size:     s.PageSize,
		Margin:   s.Margin,
		Theme:    s.Theme,
		VerifyQR: s.VerifyQR,
		Renderer: s.Renderer,
		Info: pdf.Info{
			ID:       id,
			Title:    title,
			Author:   s.SchoolName,
			Subject:  "Examination Report",
			Creator:  "InsightEd",
			Keywords: []string{"exam", "report"},
			Created:  s.now(),
		},
	}
}

// StudentContent is everything drawn for one student.
type StudentContent struct {
	Group    gradebook.Group
	Profile  *gradebook.Student
	Feedback *feedback.Feedback
}

// StudentTitle is the document title of a single-student report.
func StudentTitle(name string) string {
	return "Student Report - " + name
}

// StudentReport lays out a complete single-student report, footer included.
// The returned Composer is ready to Save.
func StudentReport(id string, sc StudentContent, s Settings) *Composer {
	c := NewComposer(s.layout(id, StudentTitle(sc.Group.StudentName)))
	writeStudent(c, sc, s)
	return c.AddFooter()
}

// writeStudent draws one student's header and sections from the cursor.
func writeStudent(c *Composer, sc StudentContent, s Settings) {
	g := sc.Group
	sum := gradebook.Summarize(g.Results, s.PassMark)
	grade := gradebook.GradeFor(sum.Average)

	left := []Field{
		{"Student Name", g.StudentName},
		{"Student ID", g.StudentID},
		{"Class", g.Class},
	}
	right := []Field{
		{"Report Date", s.now().Format("02 Jan 2006")},
		{"Overall", sum.OverallText()},
		{"Grade", grade.Letter},
	}
	if p := sc.Profile; p != nil {
		if p.Grade != "" {
			left = append(left, Field{"Level", p.Grade})
		}
		if p.ParentName != "" {
			right = append(right, Field{"Parent", p.ParentName})
		}
	}

	badge, err := pdf.HexColor(grade.Color)
	if err != nil {
		badge = s.Theme.Primary
	}
	c.AddHeader(s.HeaderTitle(), left, right).
		AddGradeBadge(grade.Letter, badge).
		AddSection("Detailed Exam Results").
		AddTable(ResultsTable(g.Results, s.PassMark, s.Theme), 0).
		AddSection("Performance Summary").
		AddSummary(SummaryMetrics(sum, s.Theme))

	if s.Chart != ChartNone && len(g.Results) > 0 {
		c.AddSection("Performance Chart").
			AddChart(s.Chart, SeriesFromResults("Score by subject (%)", g.Results), 0)
	}
	if fb := sc.Feedback; fb != nil && len(fb.Sections) > 0 {
		title := "Teacher's Feedback"
		if !fb.Fallback {
			title = "AI-Assisted Feedback"
		}
		c.AddSection(title).AddFeedback(fb.Sections)
	}
}

// ResultsTable tabulates results in recorded order, coloring the status
// column.
func ResultsTable(results []gradebook.Result, passMark float64, th Theme) Table {
	t := Table{
		Columns: []Column{
			{Header: "Subject"},
			{Header: "Date", Width: 62},
			{Header: "Marks", Width: 42, Align: AlignRight},
			{Header: "Total Marks", Width: 56, Align: AlignRight},
			{Header: "Percentage", Width: 58, Align: AlignRight},
			{Header: "Grade", Width: 38, Align: AlignCenter},
			{Header: "Remark", Width: 58},
			{Header: "Status", Width: 44, Align: AlignCenter, Bold: true},
		},
		Rows: make([][]any, 0, len(results)),
	}
	const statusCol = 7

	passed := make([]bool, len(results))
	for i, r := range results {
		pct := r.Percentage()
		passed[i] = r.Passed(passMark)
		t.Rows = append(t.Rows, []any{
			r.ExamName,
			r.Date,
			gradebook.FormatMarks(r.Marks),
			gradebook.FormatMarks(r.TotalMarks),
			gradebook.FormatPercent(pct),
			gradebook.GradeFor(pct).Letter,
			gradebook.ScoreComment(pct, r.ExamName),
			string(r.StatusFor(passMark)),
		})
	}
	t.CellColor = func(row, col int) (pdf.Color, bool) {
		if col != statusCol {
			return pdf.Color{}, false
		}
		return th.Status(passed[row]), true
	}
	return t
}

// SummaryMetrics lists the aggregate rows of the performance summary.
func SummaryMetrics(sum gradebook.Summary, th Theme) []Metric {
	pass, fail := th.Pass, th.Fail
	m := []Metric{
		{Label: "Total Exams", Value: FormatCell(sum.Exams)},
		{Label: "Exams Passed", Value: FormatCell(sum.Passed), Color: &pass},
		{Label: "Exams Failed", Value: FormatCell(sum.Failed), Color: &fail},
		{Label: "Total Marks Obtained", Value: sum.MarksText()},
		{Label: "Overall Percentage", Value: sum.OverallText()},
		{Label: "Average Score", Value: gradebook.FormatPercent(sum.Average)},
	}
	if sum.Best != "" {
		m = append(m, Metric{Label: "Strongest Subject", Value: sum.Best})
	}
	if sum.Weakest != "" && sum.Weakest != sum.Best {
		m = append(m, Metric{Label: "Needs Attention", Value: sum.Weakest})
	}
	return m
}
