// Package report lays out student and class examination reports on a
// paginated pdf.Document and serializes them.
package report

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/feedback"
	"github.com/jaffarkeikei/InsightEd/pkg/pdf"
)

// Layout metrics in points.
const (
	DefaultMargin = 40.0

	HeaderHeight   = 124.0
	headerBand     = 40.0
	headerRow      = 16.0
	maxHeaderRows  = 4
	SectionAdvance = 26.0
	sectionKeep    = 40.0 // room a section title needs below it
	footerReserve  = 56.0
	footerQR       = 36.0

	tableHeaderHeight = 22.0
	tableRowHeight    = 20.0
	tableGap          = 12.0
	cellPad           = 5.0

	summaryRow    = 18.0
	summaryValueX = 170.0

	feedbackTitle = 16.0
	feedbackLine  = 14.0
	feedbackGap   = 8.0
	feedbackSize  = 10.0
)

// FooterNote is printed at the bottom of every page.
const FooterNote = "Note: This is a confidential record and is computer-generated."

// ErrFinalized is recorded by any drawing call made after Save.
var ErrFinalized = rerrors.New(rerrors.ErrRenderFinalized, rerrors.CategoryRender,
	"report already saved; no further drawing is allowed")

// Field is a labeled header value.
type Field struct {
	Label string
	Value string
}

// Layout configures a Composer.
type Layout struct {
	Size     pdf.PageSize
	Margin   float64
	Theme    Theme
	Info     pdf.Info
	VerifyQR bool
	Renderer pdf.Renderer
}

// Composer places report blocks on pages, tracking a cursor (the y offset of
// the next block) and starting a new page when a block would overflow.
//
// Every method returns the Composer so calls chain. The first failure is kept
// and turns later calls into no-ops; check Err or the result of Save. A
// Composer belongs to one goroutine.
type Composer struct {
	layout Layout
	doc    *pdf.Document
	y      float64
	err    error
	final  bool

	headers    int
	headerTop  float64
	headerPage *pdf.Page
}

// NewComposer creates a Composer with one empty page and the cursor at the
// top margin.
func NewComposer(l Layout) *Composer {
	if l.Size.Width == 0 || l.Size.Height == 0 {
		l.Size = pdf.A4
	}
	if l.Margin <= 0 {
		l.Margin = DefaultMargin
	}
	if l.Theme == (Theme{}) {
		l.Theme = DefaultTheme()
	}
	if l.Renderer == nil {
		l.Renderer = &pdf.NativeRenderer{Compress: true}
	}
	c := &Composer{layout: l, doc: pdf.NewDocument(l.Size, l.Info)}
	c.y = c.top()
	return c
}

// Err returns the first error recorded by a drawing call.
func (c *Composer) Err() error { return c.err }

// Y returns the cursor.
func (c *Composer) Y() float64 { return c.y }

// Document exposes the page model for inspection.
func (c *Composer) Document() *pdf.Document { return c.doc }

// Headers counts AddHeader calls that drew a header.
func (c *Composer) Headers() int { return c.headers }

// ContentWidth is the page width inside the margins.
func (c *Composer) ContentWidth() float64 {
	return c.layout.Size.Width - 2*c.layout.Margin
}

// RowsPerPage is how many table rows fit on a page below a header row when
// the table starts at the top margin.
func (c *Composer) RowsPerPage() int {
	return int(math.Floor((c.bottom() - c.top() - tableHeaderHeight) / tableRowHeight))
}

func (c *Composer) top() float64    { return c.layout.Margin }
func (c *Composer) bottom() float64 { return c.layout.Size.Height - c.layout.Margin - footerReserve }
func (c *Composer) left() float64   { return c.layout.Margin }
func (c *Composer) right() float64  { return c.layout.Size.Width - c.layout.Margin }
func (c *Composer) page() *pdf.Page { return c.doc.Current() }

// ready reports whether drawing may continue, recording ErrFinalized after
// Save.
func (c *Composer) ready() bool {
	if c.err == nil && c.final {
		c.err = ErrFinalized
	}
	return c.err == nil
}

func (c *Composer) newPage(explicit bool) {
	c.doc.NewPage(explicit)
	c.y = c.top()
}

// ensure starts a new page when h points do not fit below the cursor. A
// block taller than a page is drawn from the top of a fresh page and left
// to overflow.
func (c *Composer) ensure(h float64) {
	if c.y+h > c.bottom() && c.y > c.top() {
		c.newPage(false)
	}
}

// startAt moves the cursor down to startY. It never moves it up, so the
// cursor stays monotonic within a page.
func (c *Composer) startAt(startY float64) {
	if startY > c.y && startY <= c.bottom() {
		c.y = startY
	}
}

// PageBreak starts a new page explicitly.
func (c *Composer) PageBreak() *Composer {
	if !c.ready() {
		return c
	}
	c.newPage(true)
	return c
}

// AddHeader draws a title band and up to four labeled fields in each of two
// columns, then advances the cursor by HeaderHeight.
func (c *Composer) AddHeader(title string, left, right []Field) *Composer {
	if !c.ready() {
		return c
	}
	c.ensure(HeaderHeight)

	th := c.layout.Theme
	top := c.y
	p := c.page()
	p.Rect("header.band", c.left(), top, c.ContentWidth(), headerBand, pdf.Fill, th.fill(th.Primary))
	title = pdf.Truncate(title, c.ContentWidth()-24, pdf.Bold, 16)
	p.Text("header", c.left()+12, top+26, title, th.text(pdf.Bold, 16, pdf.White))

	labelStyle := th.text(pdf.Bold, 10, th.Primary)
	valueStyle := th.text(pdf.Regular, 10, th.Text)
	columns := []struct {
		x      float64
		fields []Field
	}{
		{c.left() + 4, left},
		{c.left() + c.ContentWidth()/2, right},
	}
	for _, col := range columns {
		for i, f := range col.fields {
			if i == maxHeaderRows {
				break
			}
			y := top + headerBand + 20 + float64(i)*headerRow
			label := f.Label + ":"
			p.Text("header.field", col.x, y, label, labelStyle)
			p.Text("header.field", col.x+pdf.StringWidth(label, pdf.Bold, 10)+6, y, f.Value, valueStyle)
		}
	}

	c.headers++
	c.headerTop, c.headerPage = top, p
	c.y = top + HeaderHeight
	return c
}

// AddGradeBadge draws a circular grade badge at the right of the last
// header.
func (c *Composer) AddGradeBadge(letter string, color pdf.Color) *Composer {
	if !c.ready() || c.headerPage == nil {
		return c
	}
	const r = 24.0
	cx := c.right() - r - 10
	cy := c.headerTop + headerBand + r + 14

	p := c.headerPage
	p.Circle("header.badge", cx, cy, r, pdf.Fill, c.layout.Theme.fill(color))
	p.Circle("header.badge", cx, cy, r+2, pdf.Stroke, c.layout.Theme.stroke(color, 1))
	w := pdf.StringWidth(letter, pdf.Bold, 18)
	p.Text("header.badge", cx-w/2, cy+6, letter, c.layout.Theme.text(pdf.Bold, 18, pdf.White))
	return c
}

// AddSection writes a section title with an underline rule.
func (c *Composer) AddSection(title string) *Composer {
	if !c.ready() {
		return c
	}
	c.ensure(SectionAdvance + sectionKeep)

	th := c.layout.Theme
	p := c.page()
	p.Text("section", c.left(), c.y+14, title, th.text(pdf.Bold, 13, th.Primary))
	p.Line("section.rule", c.left(), c.y+19, c.right(), c.y+19, th.stroke(th.Rule, 0.8))
	c.y += SectionAdvance
	return c
}

// Metric is one key/value row of a summary block.
type Metric struct {
	Label string
	Value string
	Color *pdf.Color
}

// AddSummary draws metrics as label/value pairs without grid lines.
func (c *Composer) AddSummary(metrics []Metric) *Composer {
	if !c.ready() {
		return c
	}
	th := c.layout.Theme
	for _, m := range metrics {
		c.ensure(summaryRow)
		p := c.page()
		color := th.Text
		if m.Color != nil {
			color = *m.Color
		}
		p.Text("summary.label", c.left()+4, c.y+13, m.Label, th.text(pdf.Bold, 10, th.Primary))
		p.Text("summary.value", c.left()+summaryValueX, c.y+13, m.Value, th.text(pdf.Regular, 10, color))
		c.y += summaryRow
	}
	c.y += tableGap
	return c
}

// AddFeedback draws each section's title and its body wrapped to the
// content width, breaking pages between lines.
func (c *Composer) AddFeedback(sections []feedback.Section) *Composer {
	if !c.ready() {
		return c
	}
	th := c.layout.Theme
	width := c.ContentWidth()
	for _, s := range sections {
		lines := pdf.WrapText(s.Body, width, pdf.Regular, feedbackSize)
		c.ensure(feedbackTitle + feedbackLine)
		if s.Title != "" {
			c.page().Text("feedback.title", c.left(), c.y+12, s.Title, th.text(pdf.Bold, 11, th.Primary))
			c.y += feedbackTitle
		}
		for _, line := range lines {
			if c.y+feedbackLine > c.bottom() {
				c.newPage(false)
			}
			if line != "" {
				c.page().Text("feedback.text", c.left(), c.y+11, line, th.text(pdf.Regular, feedbackSize, th.Text))
			}
			c.y += feedbackLine
		}
		c.y += feedbackGap
	}
	return c
}

// AddFooter draws the confidentiality note, the generation date and
// "Page i of n" on every page present, plus a verification QR code when the
// layout asks for one. It does not move the cursor; call it once, after the
// last page has been started.
func (c *Composer) AddFooter() *Composer {
	if !c.ready() {
		return c
	}
	th := c.layout.Theme
	info := c.doc.Info
	n := c.doc.PageCount()
	date := "Generated on: " + info.Created.Format("02 Jan 2006")
	small := th.text(pdf.Regular, 8, th.Muted)
	withQR := c.layout.VerifyQR && info.ID != ""

	for i, p := range c.doc.Pages {
		base := c.layout.Size.Height - c.layout.Margin
		p.Line("footer", c.left(), base-44, c.right(), base-44, th.stroke(th.Rule, 0.5))
		p.Text("footer", c.left(), base-30, FooterNote, small)
		p.Text("footer", c.left(), base-18, date, small)

		label := fmt.Sprintf("Page %d of %d", i+1, n)
		x := c.right() - pdf.StringWidth(label, pdf.Regular, 8)
		if withQR {
			x -= footerQR + 8
			if err := pdf.QRCode(p, "footer.qr", "insighted:report:"+info.ID,
				c.right()-footerQR, base-footerQR-4, footerQR, th.Text); err != nil {
				c.err = rerrors.RenderWrap(err, rerrors.ErrRenderFailed, "failed to draw verification code")
				return c
			}
		}
		p.Text("footer.page", x, base-18, label, small)
	}
	return c
}

// Save renders the document to w. It is terminal: later drawing calls record
// ErrFinalized and a second Save returns it.
func (c *Composer) Save(w io.Writer) error {
	if c.err != nil {
		return c.err
	}
	if c.final {
		return ErrFinalized
	}
	c.final = true

	data, err := pdf.RenderBytes(c.layout.Renderer, c.doc)
	if err != nil {
		c.err = err
		return err
	}
	if _, err := w.Write(data); err != nil {
		return rerrors.IOWrap(err, rerrors.ErrIOWriteFailed, "failed to write report")
	}
	return nil
}

// Bytes renders the document into memory. Like Save it is terminal.
func (c *Composer) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile renders the document to path, creating parent directories.
func (c *Composer) SaveFile(path string) error {
	data, err := c.Bytes()
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile writes report bytes to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return rerrors.IOWrap(err, rerrors.ErrIODirCreateFailed, "failed to create output directory").
				WithContext("path", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return rerrors.WriteFailed(path, err)
	}
	return nil
}
