package pdf

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// FPDFRenderer renders through github.com/go-pdf/fpdf. Its output carries
// fpdf's own object layout; the drawing is the same as NativeRenderer's.
type FPDFRenderer struct {
	Compress bool
}

// Name implements Renderer.
func (r *FPDFRenderer) Name() string { return RendererFPDF }

// Render implements Renderer.
func (r *FPDFRenderer) Render(doc *Document, w io.Writer) error {
	f := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Size.Width, Ht: doc.Size.Height},
	})
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)
	f.SetCompression(r.Compress)

	info := doc.Info
	f.SetTitle(info.Title, true)
	f.SetAuthor(info.Author, true)
	f.SetSubject(info.Subject, true)
	creator := info.Creator
	if creator == "" {
		creator = Producer
	}
	f.SetCreator(creator, true)
	if len(info.Keywords) > 0 {
		f.SetKeywords(strings.Join(info.Keywords, ", "), true)
	}
	f.SetCreationDate(info.Created)

	tr := f.UnicodeTranslatorFromDescriptor("")
	for _, p := range doc.Pages {
		f.AddPage()
		for i := range p.Commands {
			drawFPDF(f, tr, &p.Commands[i])
		}
	}
	if err := f.Error(); err != nil {
		return err
	}
	return f.Output(w)
}

func drawFPDF(f *fpdf.Fpdf, tr func(string) string, c *Command) {
	st := c.Style
	lw := st.LineWidth
	if lw <= 0 {
		lw = 1
	}
	f.SetLineWidth(lw)
	f.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
	f.SetFillColor(int(st.Fill.R), int(st.Fill.G), int(st.Fill.B))

	switch c.Kind {
	case KindText:
		style := ""
		if st.Font == Bold {
			style = "B"
		}
		f.SetFont("Helvetica", style, st.Size)
		f.SetTextColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
		f.Text(c.X, c.Y, tr(c.Text))
	case KindRect:
		f.Rect(c.X, c.Y, c.W, c.H, fpdfStyle(c.Mode))
	case KindLine:
		f.Line(c.X, c.Y, c.X2, c.Y2)
	case KindCircle:
		f.Circle(c.X, c.Y, c.R, fpdfStyle(c.Mode))
	case KindPolygon:
		if c.Closed {
			pts := make([]fpdf.PointType, len(c.Points))
			for i, p := range c.Points {
				pts[i] = fpdf.PointType{X: p.X, Y: p.Y}
			}
			f.Polygon(pts, fpdfStyle(c.Mode))
			return
		}
		for i := 1; i < len(c.Points); i++ {
			f.Line(c.Points[i-1].X, c.Points[i-1].Y, c.Points[i].X, c.Points[i].Y)
		}
	}
}

func fpdfStyle(m PaintMode) string {
	switch m {
	case Fill:
		return "F"
	case FillStroke:
		return "FD"
	}
	return "D"
}
