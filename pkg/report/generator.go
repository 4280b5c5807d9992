package report

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/feedback"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/logging"
	"github.com/jaffarkeikei/InsightEd/pkg/metrics"
)

// Request is one report generation.
type Request struct {
	Query gradebook.Query
	// Variant overrides the feedback service default.
	Variant feedback.Variant
	// Chart overrides Settings.Chart when set.
	Chart        ChartKind
	SkipFeedback bool
	// Progress is called after each student's feedback has been fetched.
	Progress func(done, total int)
	// OnFallback is called for each student whose feedback came from
	// templates.
	OnFallback func(studentID, reason string)
}

// Output is a finished report.
type Output struct {
	ID       string
	Filename string
	Kind     gradebook.QueryKind
	Title    string
	Students int
	Pages    int
	Data     []byte
	// Fallback is set when any student's feedback came from templates;
	// FallbackReason holds the first reason seen.
	Fallback       bool
	FallbackReason string
}

// SaveTo writes the report into dir and returns its path.
func (o *Output) SaveTo(dir string) (string, error) {
	path := filepath.Join(dir, o.Filename)
	if err := WriteFile(path, o.Data); err != nil {
		return "", err
	}
	return path, nil
}

// Generator turns queries into finished reports. Each call builds its own
// Composer, so a Generator may serve concurrent requests.
type Generator struct {
	book     *gradebook.Book
	feedback *feedback.Service
	settings Settings
	metrics  *metrics.Collector
	log      *log.Logger
}

// NewGenerator creates a Generator. fb and m may be nil.
func NewGenerator(book *gradebook.Book, fb *feedback.Service, s Settings, m *metrics.Collector) *Generator {
	return &Generator{
		book:     book,
		feedback: fb,
		settings: s,
		metrics:  m,
		log:      logging.New("report"),
	}
}

// Settings returns the generator's report settings.
func (g *Generator) Settings() Settings { return g.settings }

// Book returns the results the generator reads.
func (g *Generator) Book() *gradebook.Book { return g.book }

// Generate builds the report for q with default options.
func (g *Generator) Generate(ctx context.Context, q gradebook.Query) (*Output, error) {
	return g.GenerateWith(ctx, Request{Query: q})
}

// GenerateWith builds a report. A query without records fails with
// DATA_NOT_FOUND and produces no document; feedback failures never fail the
// report.
func (g *Generator) GenerateWith(ctx context.Context, req Request) (*Output, error) {
	start := time.Now()
	out, err := g.generate(ctx, req)
	if err != nil {
		g.metrics.ReportFailed(rerrors.CodeOf(err))
		g.log.Warnj(log.JSON{
			"message": "report generation failed",
			"query":   req.Query.String(),
			"code":    rerrors.CodeOf(err),
			"error":   err.Error(),
		})
		return nil, err
	}

	elapsed := time.Since(start)
	g.metrics.ReportGenerated(string(out.Kind), out.Pages, elapsed)
	g.log.Infoj(log.JSON{
		"message":  "report generated",
		"id":       out.ID,
		"file":     out.Filename,
		"pages":    out.Pages,
		"students": out.Students,
		"fallback": out.Fallback,
		"elapsed":  elapsed.Round(time.Millisecond).String(),
	})
	return out, nil
}

func (g *Generator) generate(ctx context.Context, req Request) (*Output, error) {
	sel, err := g.book.Lookup(req.Query)
	if err != nil {
		return nil, err
	}

	s := g.settings
	if req.Chart != "" {
		if _, err := ParseChartKind(string(req.Chart)); err != nil {
			return nil, err
		}
		s.Chart = req.Chart
	}

	out := &Output{ID: uuid.NewString(), Kind: sel.Query.Kind, Students: len(sel.Groups)}
	contents := make([]StudentContent, 0, len(sel.Groups))
	for i, grp := range sel.Groups {
		if err := ctx.Err(); err != nil {
			return nil, rerrors.Wrap(err, rerrors.ErrRenderFailed, rerrors.CategoryRender, "report generation cancelled")
		}
		sc := StudentContent{Group: grp}
		if p, ok := g.book.Profile(grp.StudentID); ok {
			sc.Profile = &p
		}
		if !req.SkipFeedback && g.feedback != nil {
			sc.Feedback = g.feedback.Generate(ctx, feedback.Request{
				StudentID:   grp.StudentID,
				StudentName: grp.StudentName,
				Class:       grp.Class,
				Grade:       gradebook.GradeFor(gradebook.AverageScore(grp.Results)).Letter,
				Results:     grp.Results,
				Variant:     req.Variant,
				PassMark:    s.PassMark,
			})
			if sc.Feedback.Fallback {
				g.noteFallback(out, grp.StudentID, sc.Feedback.Reason, req.OnFallback)
			}
		}
		contents = append(contents, sc)
		if req.Progress != nil {
			req.Progress(i+1, len(sel.Groups))
		}
	}

	var c *Composer
	switch sel.Query.Kind {
	case gradebook.QueryClass:
		out.Title = ClassTitle(sel.Query.Value)
		out.Filename = Filename(gradebook.QueryClass, sel.Query.Value)
		c = ClassReport(out.ID, sel.Query.Value, contents, s)
	default:
		first := contents[0].Group
		out.Title = StudentTitle(first.StudentName)
		name := first.StudentName
		if name == "" {
			name = first.StudentID
		}
		out.Filename = Filename(gradebook.QueryStudent, name)
		c = StudentReport(out.ID, contents[0], s)
	}

	data, err := c.Bytes()
	if err != nil {
		return nil, err
	}
	out.Data = data
	out.Pages = c.Document().PageCount()
	return out, nil
}

func (g *Generator) noteFallback(out *Output, studentID, reason string, notify func(string, string)) {
	if !out.Fallback {
		out.Fallback, out.FallbackReason = true, reason
	}
	g.metrics.FeedbackFallback(reason)
	if notify != nil {
		notify(studentID, reason)
	}
}
