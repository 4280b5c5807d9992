package report

import (
	"fmt"
	"math"
	"strings"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/gradebook"
	"github.com/jaffarkeikei/InsightEd/pkg/pdf"
)

// ChartKind selects the chart drawn by AddChart.
type ChartKind string

const (
	ChartBar   ChartKind = "bar"
	ChartRadar ChartKind = "radar"
	ChartLine  ChartKind = "line"
	ChartNone  ChartKind = "none"
)

// ParseChartKind maps a name onto a ChartKind; blank means bar.
func ParseChartKind(s string) (ChartKind, error) {
	switch k := ChartKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return ChartBar, nil
	case ChartBar, ChartRadar, ChartLine, ChartNone:
		return k, nil
	}
	return "", rerrors.Render(rerrors.ErrRenderInvalidChart, fmt.Sprintf("unknown chart kind %q", s)).
		WithContext("available", "bar, radar, line, none")
}

// Datum is one labeled value.
type Datum struct {
	Label string
	Value float64
}

// Series is the input of a chart.
type Series struct {
	Title string
	Data  []Datum
}

// SeriesFromResults charts each result's percentage.
func SeriesFromResults(title string, results []gradebook.Result) Series {
	s := Series{Title: title, Data: make([]Datum, 0, len(results))}
	for _, r := range results {
		s.Data = append(s.Data, Datum{Label: r.ExamName, Value: gradebook.Round1(r.Percentage())})
	}
	return s
}

// Max is the largest value, never below 1.
func (s Series) Max() float64 {
	m := 1.0
	for _, d := range s.Data {
		if d.Value > m {
			m = d.Value
		}
	}
	return m
}

const (
	chartHeight = 210.0
	chartTitle  = 18.0
	plotHeight  = 150.0
	chartInset  = 30.0
	gridLines   = 4
)

// AddChart draws s as a chart of the given kind, starting no higher than
// startY. Bars and line points scale by value/max with max at least 1; radar
// points scale by value/100. ChartNone draws nothing.
func (c *Composer) AddChart(kind ChartKind, s Series, startY float64) *Composer {
	if !c.ready() {
		return c
	}
	switch kind {
	case ChartNone:
		return c
	case ChartBar, ChartRadar, ChartLine:
	default:
		_, c.err = ParseChartKind(string(kind))
		return c
	}

	c.startAt(startY)
	c.ensure(chartHeight)

	th := c.layout.Theme
	p := c.page()
	if s.Title != "" {
		p.Text("chart.title", c.left(), c.y+12, s.Title, th.text(pdf.Bold, 11, th.Text))
	}
	top := c.y + chartTitle
	if len(s.Data) == 0 {
		p.Text("chart.empty", c.left(), top+14, "No results to chart", th.text(pdf.Regular, 9, th.Muted))
		c.y = top + 24
		return c
	}

	switch kind {
	case ChartBar:
		c.barChart(p, s, top)
	case ChartRadar:
		c.radarChart(p, s, top)
	case ChartLine:
		c.lineChart(p, s, top)
	}
	c.y += chartHeight
	return c
}

// plotFrame draws the axes and horizontal grid of a bar or line chart and
// returns the plot rectangle.
func (c *Composer) plotFrame(p *pdf.Page, s Series, top float64) (x0, y0, w float64) {
	th := c.layout.Theme
	x0 = c.left() + chartInset
	w = c.ContentWidth() - chartInset
	y0 = top + plotHeight

	peak := s.Max()
	for i := 1; i <= gridLines; i++ {
		y := y0 - plotHeight*float64(i)/gridLines
		p.Line("chart.grid", x0, y, x0+w, y, th.stroke(th.Stripe, 0.5))
		label := gradebook.FormatMarks(math.Round(peak * float64(i) / gridLines))
		p.Text("chart.grid", x0-6-pdf.StringWidth(label, pdf.Regular, 7), y+3, label, th.text(pdf.Regular, 7, th.Muted))
	}
	p.Line("chart.axis", x0, top, x0, y0, th.stroke(th.Muted, 0.8))
	p.Line("chart.axis", x0, y0, x0+w, y0, th.stroke(th.Muted, 0.8))
	return x0, y0, w
}

func (c *Composer) axisLabel(p *pdf.Page, label string, cx, y, slot float64) {
	label = pdf.Truncate(label, slot-4, pdf.Regular, 7)
	lw := pdf.StringWidth(label, pdf.Regular, 7)
	p.Text("chart.label", cx-lw/2, y, label, c.layout.Theme.text(pdf.Regular, 7, c.layout.Theme.Text))
}

func (c *Composer) barChart(p *pdf.Page, s Series, top float64) {
	th := c.layout.Theme
	x0, y0, w := c.plotFrame(p, s, top)
	peak := s.Max()
	slot := w / float64(len(s.Data))
	barW := slot * 0.6

	for i, d := range s.Data {
		v := math.Max(d.Value, 0)
		h := v / peak * plotHeight
		cx := x0 + slot*(float64(i)+0.5)
		p.Rect("chart.bar", cx-barW/2, y0-h, barW, h, pdf.Fill, th.fill(th.Primary))

		value := gradebook.FormatMarks(gradebook.Round1(d.Value))
		vw := pdf.StringWidth(value, pdf.Bold, 7)
		p.Text("chart.value", cx-vw/2, y0-h-3, value, th.text(pdf.Bold, 7, th.Text))
		c.axisLabel(p, d.Label, cx, y0+12, slot)
	}
}

func (c *Composer) lineChart(p *pdf.Page, s Series, top float64) {
	th := c.layout.Theme
	x0, y0, w := c.plotFrame(p, s, top)
	peak := s.Max()
	slot := w / float64(len(s.Data))

	pts := make([]pdf.Point, len(s.Data))
	for i, d := range s.Data {
		v := math.Max(d.Value, 0)
		pts[i] = pdf.Point{X: x0 + slot*(float64(i)+0.5), Y: y0 - v/peak*plotHeight}
	}
	if len(pts) > 1 {
		p.Polygon("chart.line", pts, false, pdf.Stroke, th.stroke(th.Primary, 1.5))
	}
	for i, pt := range pts {
		p.Circle("chart.point", pt.X, pt.Y, 2.5, pdf.Fill, th.fill(th.Primary))
		c.axisLabel(p, s.Data[i].Label, pt.X, y0+12, slot)
	}
}

// radarPoint places the i-th of n spokes at fraction f of radius r.
func radarPoint(cx, cy, r, f float64, i, n int) pdf.Point {
	angle := float64(i)*2*math.Pi/float64(n) - math.Pi/2
	return pdf.Point{X: cx + r*f*math.Cos(angle), Y: cy + r*f*math.Sin(angle)}
}

func (c *Composer) radarChart(p *pdf.Page, s Series, top float64) {
	th := c.layout.Theme
	n := len(s.Data)
	r := plotHeight/2 - 4
	cx := c.left() + c.ContentWidth()/2
	cy := top + plotHeight/2 + 8

	for ring := 1; ring <= gridLines; ring++ {
		f := float64(ring) / gridLines
		grid := make([]pdf.Point, n)
		for i := range grid {
			grid[i] = radarPoint(cx, cy, r, f, i, n)
		}
		if n > 2 {
			p.Polygon("chart.grid", grid, true, pdf.Stroke, th.stroke(th.Rule, 0.5))
		} else {
			p.Circle("chart.grid", cx, cy, r*f, pdf.Stroke, th.stroke(th.Rule, 0.5))
		}
	}

	pts := make([]pdf.Point, n)
	for i, d := range s.Data {
		edge := radarPoint(cx, cy, r, 1, i, n)
		p.Line("chart.axis", cx, cy, edge.X, edge.Y, th.stroke(th.Rule, 0.5))

		v := math.Min(math.Max(d.Value, 0), 100)
		pts[i] = radarPoint(cx, cy, r, v/100, i, n)

		lp := radarPoint(cx, cy, r+12, 1, i, n)
		label := pdf.Truncate(d.Label, 80, pdf.Regular, 7)
		lw := pdf.StringWidth(label, pdf.Regular, 7)
		p.Text("chart.label", lp.X-lw/2, lp.Y+3, label, th.text(pdf.Regular, 7, th.Text))
	}

	area := th.fill(tint(th.Primary, 0.6))
	area.Color = th.Primary
	area.LineWidth = 1.2
	p.Polygon("chart.radar", pts, true, pdf.FillStroke, area)
	for _, pt := range pts {
		p.Circle("chart.point", pt.X, pt.Y, 2, pdf.Fill, th.fill(th.Primary))
	}
}
