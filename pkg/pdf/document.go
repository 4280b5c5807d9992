package pdf

import (
	"time"
)

// PageSize is a page's dimensions in points.
type PageSize struct {
	Name          string
	Width, Height float64
}

// Standard page sizes.
var (
	A4     = PageSize{Name: "A4", Width: 595.28, Height: 841.89}
	Letter = PageSize{Name: "Letter", Width: 612, Height: 792}
)

// PageSizeByName resolves "A4" or "Letter", defaulting to A4.
func PageSizeByName(name string) PageSize {
	if name == Letter.Name {
		return Letter
	}
	return A4
}

// Font selects one of the two built-in faces.
type Font int

const (
	Regular Font = iota
	Bold
)

// PaintMode says how a closed shape is painted.
type PaintMode int

const (
	Stroke PaintMode = iota
	Fill
	FillStroke
)

// Style is the complete drawing state for one command. Nothing carries over
// from one command to the next.
type Style struct {
	Font      Font
	Size      float64
	Color     Color // text and stroke
	Fill      Color
	LineWidth float64
}

// Kind identifies a draw command.
type Kind int

const (
	KindText Kind = iota
	KindRect
	KindLine
	KindCircle
	KindPolygon
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	}
	return "unknown"
}

// Point is a coordinate on the page.
type Point struct {
	X, Y float64
}

// Command is one drawing primitive. Which fields apply depends on Kind:
//
//	Text     X, Y (baseline), Text
//	Rect     X, Y (top-left), W, H, Mode
//	Line     X, Y to X2, Y2
//	Circle   X, Y (center), R, Mode
//	Polygon  Points, Closed, Mode
//
// Tag names the part of the report that emitted the command.
type Command struct {
	Kind   Kind
	Tag    string
	Style  Style
	X, Y   float64
	X2, Y2 float64
	W, H   float64
	R      float64
	Text   string
	Points []Point
	Closed bool
	Mode   PaintMode
}

// Page is a fixed-size canvas holding commands in insertion order.
type Page struct {
	Number   int
	Commands []Command
}

// Add appends a command.
func (p *Page) Add(cmd Command) {
	p.Commands = append(p.Commands, cmd)
}

// Text draws s with its baseline at (x, y).
func (p *Page) Text(tag string, x, y float64, s string, st Style) {
	p.Add(Command{Kind: KindText, Tag: tag, X: x, Y: y, Text: s, Style: st})
}

// Rect draws a rectangle whose top-left corner is (x, y).
func (p *Page) Rect(tag string, x, y, w, h float64, mode PaintMode, st Style) {
	p.Add(Command{Kind: KindRect, Tag: tag, X: x, Y: y, W: w, H: h, Mode: mode, Style: st})
}

// Line draws a segment.
func (p *Page) Line(tag string, x1, y1, x2, y2 float64, st Style) {
	p.Add(Command{Kind: KindLine, Tag: tag, X: x1, Y: y1, X2: x2, Y2: y2, Style: st})
}

// Circle draws a circle centred on (x, y).
func (p *Page) Circle(tag string, x, y, r float64, mode PaintMode, st Style) {
	p.Add(Command{Kind: KindCircle, Tag: tag, X: x, Y: y, R: r, Mode: mode, Style: st})
}

// Polygon draws a polyline, closing it when closed is set.
func (p *Page) Polygon(tag string, pts []Point, closed bool, mode PaintMode, st Style) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	p.Add(Command{Kind: KindPolygon, Tag: tag, Points: cp, Closed: closed, Mode: mode, Style: st})
}

// Tagged returns the commands carrying tag.
func (p *Page) Tagged(tag string) []Command {
	var out []Command
	for _, c := range p.Commands {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Break records the start of a page after the first.
type Break struct {
	// Page is the zero-based index of the page the break starts.
	Page int
	// Explicit is set when the caller asked for the break rather than the
	// layout overflowing.
	Explicit bool
}

// Info is the document metadata.
type Info struct {
	ID       string
	Title    string
	Author   string
	Subject  string
	Creator  string
	Keywords []string
	Created  time.Time
}

// Document is an ordered list of pages of one size.
type Document struct {
	Size   PageSize
	Info   Info
	Pages  []*Page
	Breaks []Break
}

// NewDocument creates a document with a single empty page.
func NewDocument(size PageSize, info Info) *Document {
	if info.Created.IsZero() {
		info.Created = time.Now()
	}
	d := &Document{Size: size, Info: info}
	d.Pages = append(d.Pages, &Page{Number: 1})
	return d
}

// Current returns the last page.
func (d *Document) Current() *Page {
	return d.Pages[len(d.Pages)-1]
}

// NewPage appends a page and records the break.
func (d *Document) NewPage(explicit bool) *Page {
	p := &Page{Number: len(d.Pages) + 1}
	d.Pages = append(d.Pages, p)
	d.Breaks = append(d.Breaks, Break{Page: len(d.Pages) - 1, Explicit: explicit})
	return p
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// ExplicitBreaks counts caller-requested page breaks.
func (d *Document) ExplicitBreaks() int {
	n := 0
	for _, b := range d.Breaks {
		if b.Explicit {
			n++
		}
	}
	return n
}

// CountTag counts commands carrying tag across all pages.
func (d *Document) CountTag(tag string) int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Tagged(tag))
	}
	return n
}
