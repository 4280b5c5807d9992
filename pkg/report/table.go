package report

import (
	"fmt"
	"strconv"

	"github.com/jaffarkeikei/InsightEd/pkg/pdf"
)

// Align is the horizontal placement of a cell's text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Column describes one table column. A zero Width shares the space left by
// the fixed-width columns.
type Column struct {
	Header string
	Width  float64
	Align  Align
	Color  *pdf.Color
	Bold   bool
}

// Table is the input to AddTable. The table is read, never modified.
type Table struct {
	Columns []Column
	Rows    [][]any
	// CellColor, when set, overrides the text color of individual cells.
	CellColor func(row, col int) (pdf.Color, bool)
}

// FormatCell renders a cell value as text.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// widths resolves column widths against the available width.
func (t Table) widths(total float64) []float64 {
	out := make([]float64, len(t.Columns))
	if len(out) == 0 {
		return out
	}
	var fixed float64
	flex := 0
	for _, c := range t.Columns {
		if c.Width > 0 {
			fixed += c.Width
		} else {
			flex++
		}
	}
	switch {
	case flex == 0:
		for i, c := range t.Columns {
			out[i] = c.Width * total / fixed
		}
		return out
	case fixed >= total:
		for i := range out {
			out[i] = total / float64(len(out))
		}
		return out
	}
	share := (total - fixed) / float64(flex)
	for i, c := range t.Columns {
		if c.Width > 0 {
			out[i] = c.Width
		} else {
			out[i] = share
		}
	}
	return out
}

// AddTable draws t starting no higher than startY (0 means the cursor). Rows
// that would cross the bottom margin continue on a new page under a repeated
// header row. The cursor ends one gap below the last row.
func (c *Composer) AddTable(t Table, startY float64) *Composer {
	if !c.ready() || len(t.Columns) == 0 {
		return c
	}
	c.startAt(startY)
	c.ensure(tableHeaderHeight + tableRowHeight)

	widths := t.widths(c.ContentWidth())
	c.tableHeader(t, widths)

	th := c.layout.Theme
	for i, row := range t.Rows {
		if c.y+tableRowHeight > c.bottom() {
			c.newPage(false)
			c.tableHeader(t, widths)
		}
		p := c.page()
		if i%2 == 1 {
			p.Rect("table.stripe", c.left(), c.y, c.ContentWidth(), tableRowHeight, pdf.Fill, th.fill(th.Stripe))
		}
		x := c.left()
		for j, col := range t.Columns {
			var v any
			if j < len(row) {
				v = row[j]
			}
			color := th.Text
			if col.Color != nil {
				color = *col.Color
			}
			if t.CellColor != nil {
				if cc, ok := t.CellColor(i, j); ok {
					color = cc
				}
			}
			font := pdf.Regular
			if col.Bold {
				font = pdf.Bold
			}
			c.cell(p, "table.cell", FormatCell(v), x, widths[j], col.Align, th.text(font, 9, color))
			x += widths[j]
		}
		c.y += tableRowHeight
		p.Line("table.rule", c.left(), c.y, c.right(), c.y, th.stroke(th.Rule, 0.4))
	}
	c.y += tableGap
	return c
}

func (c *Composer) tableHeader(t Table, widths []float64) {
	th := c.layout.Theme
	p := c.page()
	p.Rect("table.header", c.left(), c.y, c.ContentWidth(), tableHeaderHeight, pdf.Fill, th.fill(th.Primary))
	x := c.left()
	for j, col := range t.Columns {
		c.cell(p, "table.header.text", col.Header, x, widths[j], col.Align, th.text(pdf.Bold, 9, pdf.White))
		x += widths[j]
	}
	c.y += tableHeaderHeight
}

// cell writes s inside [x, x+w) of the row at the cursor, truncated to fit.
func (c *Composer) cell(p *pdf.Page, tag, s string, x, w float64, a Align, st pdf.Style) {
	s = pdf.Truncate(s, w-2*cellPad, st.Font, st.Size)
	if s == "" {
		return
	}
	tw := pdf.StringWidth(s, st.Font, st.Size)
	switch a {
	case AlignCenter:
		x += (w - tw) / 2
	case AlignRight:
		x += w - cellPad - tw
	default:
		x += cellPad
	}
	p.Text(tag, x, c.y+14, s, st)
}
