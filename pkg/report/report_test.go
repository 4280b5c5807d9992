package report

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/feedback"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/metrics"
	"github.com/jaffarkeikei/InsightEd/pkg/pdf"
)

func fixedSettings() Settings {
	s := DefaultSettings()
	s.Renderer = &pdf.NativeRenderer{}
	s.Now = func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }
	return s
}

func texts(doc *pdf.Document, tag string) []string {
	var out []string
	for _, p := range doc.Pages {
		for _, c := range p.Tagged(tag) {
			out = append(out, c.Text)
		}
	}
	return out
}

func numberedRows(n int) Table {
	t := Table{Columns: []Column{{Header: "#", Width: 40}, {Header: "Name"}}}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, []any{i + 1, "row"})
	}
	return t
}

func sampleResults() []gradebook.Result {
	return []gradebook.Result{
		{ExamName: "Math", StudentID: "STU001", StudentName: "Alice Mwangi", Class: "10A", Marks: 85, TotalMarks: 100, Status: gradebook.StatusPass, Date: "2024-03-01"},
		{ExamName: "Eng", StudentID: "STU001", StudentName: "Alice Mwangi", Class: "10A", Marks: 30, TotalMarks: 100, Status: gradebook.StatusFail, Date: "2024-03-02"},
	}
}

func classResults() []gradebook.Result {
	out := sampleResults()
	for _, s := range []struct{ id, name string }{{"STU002", "Brian Otieno"}, {"STU003", "Chloe Wanjiru"}} {
		out = append(out,
			gradebook.Result{ExamName: "Math", StudentID: s.id, StudentName: s.name, Class: "10A", Marks: 72, TotalMarks: 100},
			gradebook.Result{ExamName: "Eng", StudentID: s.id, StudentName: s.name, Class: "10A", Marks: 64, TotalMarks: 100},
		)
	}
	return out
}

// ---- Composer Tests ----

func TestComposerStartsAtTopMargin(t *testing.T) {
	c := NewComposer(Layout{})
	if c.Y() != DefaultMargin {
		t.Errorf("Y() = %v, want %v", c.Y(), DefaultMargin)
	}
	if c.Document().PageCount() != 1 {
		t.Errorf("PageCount() = %d, want 1", c.Document().PageCount())
	}
	if c.RowsPerPage() != 34 {
		t.Errorf("RowsPerPage() = %d, want 34 on A4", c.RowsPerPage())
	}
}

func TestHeaderAdvancesFixedHeight(t *testing.T) {
	c := NewComposer(Layout{})
	before := c.Y()
	c.AddHeader("School - Examination Report",
		[]Field{{"Student Name", "Alice"}, {"Student ID", "STU001"}},
		[]Field{{"Report Date", "15 Mar 2024"}})
	if got := c.Y() - before; got != HeaderHeight {
		t.Errorf("header advanced %v, want %v", got, HeaderHeight)
	}
	if n := c.Document().CountTag("header.field"); n != 6 {
		t.Errorf("header.field commands = %d, want 6 (label and value per field)", n)
	}
	if c.Headers() != 1 {
		t.Errorf("Headers() = %d, want 1", c.Headers())
	}
}

func TestHeaderCapsRowsPerColumn(t *testing.T) {
	c := NewComposer(Layout{})
	var many []Field
	for i := 0; i < 7; i++ {
		many = append(many, Field{"Label", "Value"})
	}
	c.AddHeader("Title", many, nil)
	if n := c.Document().CountTag("header.field"); n != 2*maxHeaderRows {
		t.Errorf("header.field commands = %d, want %d", n, 2*maxHeaderRows)
	}
}

func TestGradeBadgeDrawnOnHeaderPage(t *testing.T) {
	c := NewComposer(Layout{})
	c.AddHeader("Title", nil, nil).AddTable(numberedRows(80), 0).AddGradeBadge("A", pdf.RGB(0, 0, 255))
	doc := c.Document()
	if len(doc.Pages[0].Tagged("header.badge")) == 0 {
		t.Error("badge not drawn on the header's page")
	}
	if len(doc.Current().Tagged("header.badge")) != 0 {
		t.Error("badge drawn on the last page")
	}
}

func TestSectionAdvance(t *testing.T) {
	c := NewComposer(Layout{})
	before := c.Y()
	c.AddSection("Performance Summary")
	if got := c.Y() - before; got != SectionAdvance {
		t.Errorf("section advanced %v, want %v", got, SectionAdvance)
	}
	if c.Document().CountTag("section.rule") != 1 {
		t.Error("section rule missing")
	}
}

func TestCursorMonotonicWithinPage(t *testing.T) {
	c := NewComposer(Layout{})
	c.AddSection("One")
	y := c.Y()
	c.AddTable(numberedRows(2), 10)
	hdr := c.Document().Current().Tagged("table.header")
	if len(hdr) != 1 {
		t.Fatalf("table headers = %d, want 1", len(hdr))
	}
	if hdr[0].Y < y {
		t.Errorf("table header at %v, cursor was %v", hdr[0].Y, y)
	}

	c2 := NewComposer(Layout{})
	c2.AddTable(numberedRows(1), 300)
	if got := c2.Document().Current().Tagged("table.header")[0].Y; got != 300 {
		t.Errorf("table header at %v, want 300", got)
	}
}

func TestPageBreakResetsCursor(t *testing.T) {
	c := NewComposer(Layout{Margin: 50})
	c.AddSection("One").AddSection("Two").PageBreak()
	if c.Y() != 50 {
		t.Errorf("Y() after break = %v, want 50", c.Y())
	}
	if c.Document().ExplicitBreaks() != 1 {
		t.Errorf("ExplicitBreaks() = %d, want 1", c.Document().ExplicitBreaks())
	}
}

func TestSaveIsTerminal(t *testing.T) {
	c := NewComposer(Layout{Renderer: &pdf.NativeRenderer{}})
	c.AddSection("Only")

	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-1.4")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:8])
	}

	c.AddSection("Too late")
	if !rerrors.IsCode(c.Err(), rerrors.ErrRenderFinalized) {
		t.Errorf("Err() after Save = %v, want %s", c.Err(), rerrors.ErrRenderFinalized)
	}
	if err := c.Save(&buf); !rerrors.IsCode(err, rerrors.ErrRenderFinalized) {
		t.Errorf("second Save() = %v, want %s", err, rerrors.ErrRenderFinalized)
	}
	if n := c.Document().CountTag("section"); n != 1 {
		t.Errorf("section commands = %d, want 1", n)
	}
}

func TestSaveFileCreatesDirectories(t *testing.T) {
	path := t.TempDir() + "/nested/out/report.pdf"
	c := NewComposer(Layout{Renderer: &pdf.NativeRenderer{}})
	if err := c.AddSection("x").SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
}

// ---- Table Tests ----

func TestTablePagination(t *testing.T) {
	tests := []struct {
		rows      int
		wantPages int
	}{
		{1, 1},
		{34, 1},
		{35, 2},
		{100, 3},
	}
	for _, tt := range tests {
		c := NewComposer(Layout{})
		rpp := c.RowsPerPage()
		c.AddTable(numberedRows(tt.rows), 0)

		doc := c.Document()
		want := int(math.Ceil(float64(tt.rows) / float64(rpp)))
		if want != tt.wantPages || doc.PageCount() != want {
			t.Fatalf("%d rows: pages = %d, want %d", tt.rows, doc.PageCount(), want)
		}
		for i, p := range doc.Pages {
			if len(p.Tagged("table.header")) != 1 {
				t.Errorf("%d rows: page %d has %d header rows", tt.rows, i+1, len(p.Tagged("table.header")))
			}
			rows := len(p.Tagged("table.rule"))
			if i < len(doc.Pages)-1 && rows != rpp {
				t.Errorf("%d rows: page %d holds %d rows, want %d", tt.rows, i+1, rows, rpp)
			}
		}
		if doc.ExplicitBreaks() != 0 {
			t.Errorf("%d rows: table took explicit breaks", tt.rows)
		}
	}
}

func TestTableDoesNotModifyInput(t *testing.T) {
	tbl := numberedRows(3)
	before := FormatCell(tbl.Rows[2][0])
	NewComposer(Layout{}).AddTable(tbl, 0)
	if len(tbl.Rows) != 3 || FormatCell(tbl.Rows[2][0]) != before {
		t.Error("AddTable modified its input")
	}
}

func TestTableEndsOneGapBelowLastRow(t *testing.T) {
	c := NewComposer(Layout{})
	start := c.Y()
	c.AddTable(numberedRows(3), 0)
	want := start + tableHeaderHeight + 3*tableRowHeight + tableGap
	if c.Y() != want {
		t.Errorf("Y() = %v, want %v", c.Y(), want)
	}
}

func TestTableWidths(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
		want []float64
	}{
		{"flex share", []Column{{Width: 100}, {}, {}}, []float64{100, 200, 200}},
		{"all fixed scaled", []Column{{Width: 100}, {Width: 150}}, []float64{200, 300}},
		{"overfull split", []Column{{Width: 400}, {Width: 400}, {}}, []float64{500.0 / 3, 500.0 / 3, 500.0 / 3}},
	}
	for _, tt := range tests {
		got := Table{Columns: tt.cols}.widths(500)
		for i := range tt.want {
			if math.Abs(got[i]-tt.want[i]) > 1e-9 {
				t.Errorf("%s: widths = %v, want %v", tt.name, got, tt.want)
				break
			}
		}
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"Math", "Math"},
		{85.0, "85"},
		{57.5, "57.5"},
		{3, "3"},
		{gradebook.StatusPass, "Pass"},
	}
	for _, tt := range tests {
		if got := FormatCell(tt.in); got != tt.want {
			t.Errorf("FormatCell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResultsTableStatusColors(t *testing.T) {
	th := DefaultTheme()
	tbl := ResultsTable(sampleResults(), 50, th)
	if got := tbl.Rows[0][4]; got != "85.0%" {
		t.Errorf("percentage cell = %v, want 85.0%%", got)
	}
	if c, ok := tbl.CellColor(0, 7); !ok || c != th.Pass {
		t.Errorf("pass status color = %v, %v", c, ok)
	}
	if c, ok := tbl.CellColor(1, 7); !ok || c != th.Fail {
		t.Errorf("fail status color = %v, %v", c, ok)
	}
	if _, ok := tbl.CellColor(0, 0); ok {
		t.Error("subject column should keep the default color")
	}
}

func TestResultsTableDerivesMissingStatus(t *testing.T) {
	rs := []gradebook.Result{{ExamName: "Art", Marks: 40, TotalMarks: 100}}
	tbl := ResultsTable(rs, 50, DefaultTheme())
	if got := tbl.Rows[0][7]; got != "Fail" {
		t.Errorf("derived status = %v, want Fail", got)
	}
}

// ---- Summary Tests ----

func TestSummaryMetricsExample(t *testing.T) {
	sum := gradebook.Summarize(sampleResults(), 50)
	values := map[string]string{}
	for _, m := range SummaryMetrics(sum, DefaultTheme()) {
		values[m.Label] = m.Value
	}
	want := map[string]string{
		"Total Exams":          "2",
		"Exams Passed":         "1",
		"Exams Failed":         "1",
		"Total Marks Obtained": "115/200",
		"Overall Percentage":   "57.5%",
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("%s = %q, want %q", k, values[k], v)
		}
	}
}

func TestSummaryMetricsEmpty(t *testing.T) {
	sum := gradebook.Summarize(nil, 50)
	c := NewComposer(Layout{})
	c.AddSummary(SummaryMetrics(sum, DefaultTheme()))
	for _, v := range texts(c.Document(), "summary.value") {
		if strings.Contains(v, "NaN") || strings.Contains(v, "Inf") {
			t.Errorf("summary value %q for empty results", v)
		}
	}
	if got := texts(c.Document(), "summary.value"); got[4] != "0.0%" {
		t.Errorf("overall for empty results = %q, want 0.0%%", got[4])
	}
}

// ---- Chart Tests ----

func zeroSeries(n int) Series {
	s := Series{Title: "zeros"}
	for i := 0; i < n; i++ {
		s.Data = append(s.Data, Datum{Label: "S", Value: 0})
	}
	return s
}

func TestBarChartAllZero(t *testing.T) {
	c := NewComposer(Layout{})
	c.AddChart(ChartBar, zeroSeries(4), 0)
	if c.Err() != nil {
		t.Fatalf("Err() = %v", c.Err())
	}
	bars := c.Document().Current().Tagged("chart.bar")
	if len(bars) != 4 {
		t.Fatalf("bars = %d, want 4", len(bars))
	}
	for _, b := range bars {
		if b.H != 0 || math.IsNaN(b.Y) {
			t.Errorf("zero bar drawn with height %v at %v", b.H, b.Y)
		}
	}
}

func TestBarChartProportional(t *testing.T) {
	c := NewComposer(Layout{})
	c.AddChart(ChartBar, Series{Data: []Datum{{"A", 50}, {"B", 100}}}, 0)
	bars := c.Document().Current().Tagged("chart.bar")
	if bars[1].H != plotHeight || bars[0].H != plotHeight/2 {
		t.Errorf("bar heights = %v, %v; want %v, %v", bars[0].H, bars[1].H, plotHeight/2, plotHeight)
	}
}

func TestRadarChartAllZero(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		c := NewComposer(Layout{})
		c.AddChart(ChartRadar, zeroSeries(n), 0)
		radar := c.Document().Current().Tagged("chart.radar")
		if len(radar) != 1 || len(radar[0].Points) != n {
			t.Fatalf("n=%d: radar polygon missing", n)
		}
		first := radar[0].Points[0]
		for _, pt := range radar[0].Points {
			if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || pt != first {
				t.Errorf("n=%d: zero point at %v, want the center %v", n, pt, first)
			}
		}
	}
}

func TestRadarPointAngles(t *testing.T) {
	top := radarPoint(0, 0, 100, 1, 0, 4)
	if math.Abs(top.X) > 1e-9 || math.Abs(top.Y+100) > 1e-9 {
		t.Errorf("first spoke = %v, want straight up", top)
	}
	right := radarPoint(0, 0, 100, 0.5, 1, 4)
	if math.Abs(right.X-50) > 1e-9 || math.Abs(right.Y) > 1e-9 {
		t.Errorf("second spoke at 50%% = %v, want (50, 0)", right)
	}
}

func TestLineChartSinglePoint(t *testing.T) {
	c := NewComposer(Layout{})
	c.AddChart(ChartLine, Series{Data: []Datum{{"Only", 0}}}, 0)
	if c.Err() != nil {
		t.Fatalf("Err() = %v", c.Err())
	}
	if n := c.Document().CountTag("chart.point"); n != 1 {
		t.Errorf("points = %d, want 1", n)
	}
}

func TestChartKinds(t *testing.T) {
	if k, err := ParseChartKind(""); err != nil || k != ChartBar {
		t.Errorf("ParseChartKind(\"\") = %v, %v", k, err)
	}
	if _, err := ParseChartKind("pie"); !rerrors.IsCode(err, rerrors.ErrRenderInvalidChart) {
		t.Errorf("ParseChartKind(pie) error = %v", err)
	}

	c := NewComposer(Layout{})
	y := c.Y()
	c.AddChart(ChartNone, zeroSeries(3), 0)
	if c.Y() != y || c.Err() != nil {
		t.Error("ChartNone should draw nothing")
	}
	c.AddChart(ChartKind("pie"), zeroSeries(3), 0)
	if !rerrors.IsCode(c.Err(), rerrors.ErrRenderInvalidChart) {
		t.Errorf("Err() = %v, want %s", c.Err(), rerrors.ErrRenderInvalidChart)
	}
}

// ---- Feedback Tests ----

func TestFeedbackAdvancesByWrappedLines(t *testing.T) {
	body := strings.Repeat("The student shows steady progress across subjects. ", 12)
	sections := []feedback.Section{{Key: "academic", Title: "Academic Progress", Body: body}}

	c := NewComposer(Layout{})
	start := c.Y()
	c.AddFeedback(sections)

	lines := pdf.WrapText(body, c.ContentWidth(), pdf.Regular, feedbackSize)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %d lines", len(lines))
	}
	if n := c.Document().CountTag("feedback.text"); n != len(lines) {
		t.Errorf("feedback.text = %d, want %d", n, len(lines))
	}
	want := start + feedbackTitle + float64(len(lines))*feedbackLine + feedbackGap
	if math.Abs(c.Y()-want) > 1e-9 {
		t.Errorf("Y() = %v, want %v", c.Y(), want)
	}
	if got := strings.Join(texts(c.Document(), "feedback.text"), " "); strings.Join(strings.Fields(got), " ") != strings.Join(strings.Fields(body), " ") {
		t.Error("wrapped feedback lost text")
	}
}

func TestFeedbackBreaksAcrossPages(t *testing.T) {
	body := strings.Repeat("word ", 3000)
	c := NewComposer(Layout{})
	c.AddFeedback([]feedback.Section{{Title: "Long", Body: body}})
	if c.Document().PageCount() < 2 {
		t.Error("long feedback stayed on one page")
	}
	for _, p := range c.Document().Pages {
		for _, cmd := range p.Tagged("feedback.text") {
			if cmd.Y > c.bottom() {
				t.Fatalf("line at %v below bottom %v", cmd.Y, c.bottom())
			}
		}
	}
}

// ---- Footer Tests ----

func TestFooterOnEveryPage(t *testing.T) {
	c := NewComposer(Layout{Info: pdf.Info{ID: "6f1c1a52-7c1e-4a3e-9a51-0d3b2d8f6e10"}, VerifyQR: true})
	c.AddTable(numberedRows(80), 0).AddFooter()

	doc := c.Document()
	pages := texts(doc, "footer.page")
	if len(pages) != doc.PageCount() {
		t.Fatalf("footer.page = %d, want %d", len(pages), doc.PageCount())
	}
	if pages[1] != "Page 2 of 3" {
		t.Errorf("second footer = %q, want Page 2 of 3", pages[1])
	}
	for i, p := range doc.Pages {
		if len(p.Tagged("footer.qr")) == 0 {
			t.Errorf("page %d has no verification code", i+1)
		}
	}
}

func TestFooterDoesNotMoveCursor(t *testing.T) {
	c := NewComposer(Layout{})
	c.AddSection("x")
	y := c.Y()
	c.AddFooter()
	if c.Y() != y {
		t.Errorf("AddFooter moved the cursor from %v to %v", y, c.Y())
	}
	if c.Document().CountTag("footer.qr") != 0 {
		t.Error("verification code drawn without VerifyQR")
	}
}

// ---- Report Tests ----

func TestStudentReport(t *testing.T) {
	s := fixedSettings()
	grp := gradebook.GroupByStudent(sampleResults())[0]
	c := StudentReport("id-1", StudentContent{Group: grp}, s)
	if c.Err() != nil {
		t.Fatalf("Err() = %v", c.Err())
	}
	doc := c.Document()
	if doc.Info.Title != "Student Report - Alice Mwangi" {
		t.Errorf("Title = %q", doc.Info.Title)
	}
	if got := texts(doc, "header"); len(got) != 1 || got[0] != "InsightEd School - Examination Report" {
		t.Errorf("header = %v", got)
	}
	if !containsText(texts(doc, "summary.value"), "57.5%") {
		t.Error("overall percentage 57.5% not in summary")
	}
	if doc.CountTag("chart.bar") != 2 {
		t.Errorf("chart bars = %d, want 2", doc.CountTag("chart.bar"))
	}
}

func TestClassReportHeadersAndBreaks(t *testing.T) {
	s := fixedSettings()
	groups := gradebook.GroupByStudent(classResults())
	var contents []StudentContent
	for _, g := range groups {
		contents = append(contents, StudentContent{Group: g})
	}

	for n := 1; n <= len(contents); n++ {
		c := ClassReport("id", "10A", contents[:n], s)
		doc := c.Document()
		if c.Headers() != n || doc.CountTag("header") != n {
			t.Errorf("n=%d: headers = %d/%d", n, c.Headers(), doc.CountTag("header"))
		}
		if doc.ExplicitBreaks() != n-1 {
			t.Errorf("n=%d: explicit breaks = %d, want %d", n, doc.ExplicitBreaks(), n-1)
		}
		for _, b := range doc.Breaks {
			if b.Explicit && len(doc.Pages[b.Page].Tagged("header")) != 1 {
				t.Errorf("n=%d: explicit break to page %d not followed by a header", n, b.Page)
			}
		}
	}
}

func TestClassOverview(t *testing.T) {
	s := fixedSettings()
	var contents []StudentContent
	for _, g := range gradebook.GroupByStudent(classResults()) {
		contents = append(contents, StudentContent{Group: g})
	}
	doc := ClassReport("id", "10A", contents, s).Document()
	if !containsText(texts(doc, "section"), "Class Overview - 10A") {
		t.Error("class overview missing")
	}

	s.ClassOverview = false
	doc = ClassReport("id", "10A", contents, s).Document()
	if containsText(texts(doc, "section"), "Class Overview - 10A") {
		t.Error("class overview drawn when disabled")
	}
}

func containsText(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ---- Filename Tests ----

func TestFilename(t *testing.T) {
	tests := []struct {
		kind gradebook.QueryKind
		in   string
		want string
	}{
		{gradebook.QueryStudent, "Alice Mwangi", "Report_Alice_Mwangi.pdf"},
		{gradebook.QueryStudent, "  Alice   Mwangi ", "Report_Alice_Mwangi.pdf"},
		{gradebook.QueryStudent, "../etc/passwd", "Report_etcpasswd.pdf"},
		{gradebook.QueryStudent, "", "Report_Unknown.pdf"},
		{gradebook.QueryClass, "10A", "Class_10A_Report.pdf"},
		{gradebook.QueryClass, "Form 2/East", "Class_Form_2East_Report.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.kind, tt.in); got != tt.want {
			t.Errorf("Filename(%s, %q) = %q, want %q", tt.kind, tt.in, got, tt.want)
		}
	}
}

// ---- Theme Tests ----

func TestThemeWithPrimary(t *testing.T) {
	th, err := ThemeWithPrimary("#FF0000")
	if err != nil || th.Primary != pdf.RGB(255, 0, 0) {
		t.Errorf("ThemeWithPrimary = %v, %v", th.Primary, err)
	}
	if _, err := ThemeWithPrimary("red"); err == nil {
		t.Error("expected an error for a named color")
	}
	if got := tint(pdf.RGB(0, 0, 0), 1); got != pdf.White {
		t.Errorf("tint to white = %v", got)
	}
}

// ---- Generator Tests ----

func newTestGenerator(fb *feedback.Service) *Generator {
	book := gradebook.NewBook(classResults(), []gradebook.Student{{ID: "STU001", Name: "Alice Mwangi", ParentName: "Grace Mwangi"}})
	return NewGenerator(book, fb, fixedSettings(), metrics.New())
}

func TestGenerateStudent(t *testing.T) {
	g := newTestGenerator(nil)
	q, _ := gradebook.ParseQuery("stu001")
	out, err := g.Generate(context.Background(), q)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Filename != "Report_Alice_Mwangi.pdf" {
		t.Errorf("Filename = %q", out.Filename)
	}
	if out.Kind != gradebook.QueryStudent || out.Students != 1 || out.Pages < 1 {
		t.Errorf("Output = %+v", out)
	}
	if !bytes.HasPrefix(out.Data, []byte("%PDF-1.4")) || !bytes.Contains(out.Data, []byte("%%EOF")) {
		t.Error("output is not a complete PDF")
	}

	path, err := out.SaveTo(t.TempDir())
	if err != nil || !strings.HasSuffix(path, out.Filename) {
		t.Errorf("SaveTo() = %q, %v", path, err)
	}
}

func TestGenerateNotFound(t *testing.T) {
	g := newTestGenerator(nil)
	for _, in := range []string{"STU999", "12Z"} {
		q, _ := gradebook.ParseQuery(in)
		out, err := g.Generate(context.Background(), q)
		if out != nil || !rerrors.IsCode(err, rerrors.ErrDataNotFound) {
			t.Errorf("Generate(%s) = %v, %v; want DATA_NOT_FOUND", in, out, err)
		}
	}
}

func TestGenerateClassWithFallbackFeedback(t *testing.T) {
	g := newTestGenerator(feedback.NewService(nil, time.Second))

	var progress []int
	var fallbacks []string
	q, _ := gradebook.ParseQuery("10A")
	out, err := g.GenerateWith(context.Background(), Request{
		Query:      q,
		Progress:   func(done, total int) { progress = append(progress, done) },
		OnFallback: func(id, reason string) { fallbacks = append(fallbacks, id+":"+reason) },
	})
	if err != nil {
		t.Fatalf("GenerateWith() error = %v", err)
	}
	if out.Filename != "Class_10A_Report.pdf" || out.Students != 3 {
		t.Errorf("Output = %s, %d students", out.Filename, out.Students)
	}
	if len(progress) != 3 || progress[2] != 3 {
		t.Errorf("progress = %v", progress)
	}
	if !out.Fallback || out.FallbackReason != "no_credentials" || len(fallbacks) != 3 {
		t.Errorf("fallback = %v %q %v", out.Fallback, out.FallbackReason, fallbacks)
	}
}

func TestGenerateRejectsUnknownChart(t *testing.T) {
	g := newTestGenerator(nil)
	q, _ := gradebook.ParseQuery("STU001")
	_, err := g.GenerateWith(context.Background(), Request{Query: q, Chart: "pie"})
	if !rerrors.IsCode(err, rerrors.ErrRenderInvalidChart) {
		t.Errorf("error = %v, want %s", err, rerrors.ErrRenderInvalidChart)
	}
}

func TestGenerateCancelled(t *testing.T) {
	g := newTestGenerator(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q, _ := gradebook.ParseQuery("10A")
	if _, err := g.Generate(ctx, q); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
