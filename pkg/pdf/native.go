package pdf

import (
	"bytes"
	"compress/zlib"
	"crypto/md5"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
)

// PDF constants for document generation.
const (
	// PDFVersion is the PDF specification version written by NativeRenderer.
	PDFVersion = "1.4"

	// Producer is embedded in the Info dictionary.
	Producer = "InsightEd Report Service"

	// bezierK places the control points of a four-segment circle.
	bezierK = 0.5523
)

// NativeRenderer writes PDF 1.4 directly: one content stream per page, the
// two standard Helvetica faces, an xref table and an Info dictionary.
type NativeRenderer struct {
	// Compress enables FlateDecode on content streams.
	Compress bool
}

// Name implements Renderer.
func (r *NativeRenderer) Name() string { return RendererNative }

// Render implements Renderer.
func (r *NativeRenderer) Render(doc *Document, w io.Writer) error {
	b := &pdfBuilder{compress: r.Compress}
	for _, p := range doc.Pages {
		content, err := pageContent(doc.Size, p)
		if err != nil {
			return err
		}
		b.addPage(doc.Size, content)
	}
	_, err := w.Write(b.build(doc.Info))
	return err
}

// pageContent converts a page's commands into a content stream.
func pageContent(size PageSize, p *Page) (string, error) {
	var sb strings.Builder
	sb.WriteString("q\n")
	for i := range p.Commands {
		if err := writeCommand(&sb, size.Height, &p.Commands[i]); err != nil {
			return "", fmt.Errorf("page %d command %d (%s): %w", p.Number, i, p.Commands[i].Kind, err)
		}
	}
	sb.WriteString("Q\n")
	return sb.String(), nil
}

func writeCommand(sb *strings.Builder, pageH float64, c *Command) error {
	st := c.Style
	lw := st.LineWidth
	if lw <= 0 {
		lw = 1
	}

	switch c.Kind {
	case KindText:
		font := "/F1"
		if st.Font == Bold {
			font = "/F2"
		}
		sb.WriteString("BT\n")
		fmt.Fprintf(sb, "%s %.2f Tf\n", font, st.Size)
		fmt.Fprintf(sb, "%s rg\n", st.Color.operands())
		fmt.Fprintf(sb, "%.2f %.2f Td\n", c.X, pageH-c.Y)
		fmt.Fprintf(sb, "(%s) Tj\n", encodeText(c.Text))
		sb.WriteString("ET\n")

	case KindRect:
		writePaintState(sb, st, lw)
		fmt.Fprintf(sb, "%.2f %.2f %.2f %.2f re %s\n", c.X, pageH-c.Y-c.H, c.W, c.H, paintOp(c.Mode))

	case KindLine:
		fmt.Fprintf(sb, "%s RG\n%.2f w\n", st.Color.operands(), lw)
		fmt.Fprintf(sb, "%.2f %.2f m %.2f %.2f l S\n", c.X, pageH-c.Y, c.X2, pageH-c.Y2)

	case KindCircle:
		writePaintState(sb, st, lw)
		x, y, rad := c.X, pageH-c.Y, c.R
		k := rad * bezierK
		fmt.Fprintf(sb, "%.2f %.2f m\n", x+rad, y)
		fmt.Fprintf(sb, "%.2f %.2f %.2f %.2f %.2f %.2f c\n", x+rad, y+k, x+k, y+rad, x, y+rad)
		fmt.Fprintf(sb, "%.2f %.2f %.2f %.2f %.2f %.2f c\n", x-k, y+rad, x-rad, y+k, x-rad, y)
		fmt.Fprintf(sb, "%.2f %.2f %.2f %.2f %.2f %.2f c\n", x-rad, y-k, x-k, y-rad, x, y-rad)
		fmt.Fprintf(sb, "%.2f %.2f %.2f %.2f %.2f %.2f c\n", x+k, y-rad, x+rad, y-k, x+rad, y)
		fmt.Fprintf(sb, "%s\n", paintOp(c.Mode))

	case KindPolygon:
		if len(c.Points) == 0 {
			return nil
		}
		writePaintState(sb, st, lw)
		sb.WriteString("1 j\n")
		for i, pt := range c.Points {
			op := "l"
			if i == 0 {
				op = "m"
			}
			fmt.Fprintf(sb, "%.2f %.2f %s\n", pt.X, pageH-pt.Y, op)
		}
		if c.Closed {
			fmt.Fprintf(sb, "h %s\n", paintOp(c.Mode))
		} else {
			sb.WriteString("S\n")
		}

	default:
		return fmt.Errorf("unsupported command kind %d", c.Kind)
	}
	return nil
}

func writePaintState(sb *strings.Builder, st Style, lw float64) {
	fmt.Fprintf(sb, "%s rg\n%s RG\n%.2f w\n", st.Fill.operands(), st.Color.operands(), lw)
}

func paintOp(m PaintMode) string {
	switch m {
	case Fill:
		return "f"
	case FillStroke:
		return "B"
	}
	return "S"
}

// encodeText converts UTF-8 to WinAnsi and escapes it for a literal string.
// Runes outside the code page become '?'. Bytes outside printable ASCII are
// written as octal escapes.
func encodeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		switch {
		case c == '\\' || c == '(' || c == ')':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c < 0x20 || c > 0x7E:
			fmt.Fprintf(&sb, "\\%03o", c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// -----------------------------------------------------------------------------
// Object Writer
// -----------------------------------------------------------------------------

// Objects 1-4 are reserved for the catalog, the page tree and the two fonts.
const reservedObjects = 4

// pdfBuilder accumulates page and stream objects.
type pdfBuilder struct {
	compress bool
	objects  []string
	pages    []int
}

func (b *pdfBuilder) addObject(content string) int {
	b.objects = append(b.objects, content)
	return len(b.objects) + reservedObjects
}

func (b *pdfBuilder) addPage(size PageSize, content string) {
	data := []byte(content)
	filter := ""
	if b.compress {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		zw.Write(data)
		zw.Close()
		data = buf.Bytes()
		filter = "/Filter /FlateDecode\n"
	}

	stream := fmt.Sprintf("<< /Length %d\n%s>>\nstream\n%s\nendstream", len(data), filter, data)
	streamNum := b.addObject(stream)

	page := fmt.Sprintf("<< /Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 %.2f %.2f]\n/Contents %d 0 R\n"+
		"/Resources << /Font << /F1 3 0 R /F2 4 0 R >> >>\n>>",
		size.Width, size.Height, streamNum)
	b.pages = append(b.pages, b.addObject(page))
}

func (b *pdfBuilder) build(info Info) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%PDF-%s\n", PDFVersion)
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	kids := make([]string, len(b.pages))
	for i, n := range b.pages {
		kids[i] = fmt.Sprintf("%d 0 R", n)
	}

	objects := []string{
		"<< /Type /Catalog\n/Pages 2 0 R\n>>",
		fmt.Sprintf("<< /Type /Pages\n/Kids [%s]\n/Count %d\n>>", strings.Join(kids, " "), len(b.pages)),
		"<< /Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica\n/Encoding /WinAnsiEncoding\n>>",
		"<< /Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica-Bold\n/Encoding /WinAnsiEncoding\n>>",
	}
	objects = append(objects, b.objects...)
	objects = append(objects, infoDict(info))
	infoNum := len(objects)

	xref := make([]int, len(objects))
	for i, obj := range objects {
		xref[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefPos := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range xref {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	id := fileID(info.ID)
	buf.WriteString("trailer\n")
	fmt.Fprintf(&buf, "<< /Size %d\n/Root 1 0 R\n/Info %d 0 R\n/ID [<%s> <%s>]\n>>\n", len(objects)+1, infoNum, id, id)
	buf.WriteString("startxref\n")
	fmt.Fprintf(&buf, "%d\n", xrefPos)
	buf.WriteString("%%EOF\n")
	return buf.Bytes()
}

func infoDict(info Info) string {
	var sb strings.Builder
	sb.WriteString("<<\n")
	if info.Title != "" {
		fmt.Fprintf(&sb, "/Title (%s)\n", encodeText(info.Title))
	}
	if info.Author != "" {
		fmt.Fprintf(&sb, "/Author (%s)\n", encodeText(info.Author))
	}
	if info.Subject != "" {
		fmt.Fprintf(&sb, "/Subject (%s)\n", encodeText(info.Subject))
	}
	if len(info.Keywords) > 0 {
		fmt.Fprintf(&sb, "/Keywords (%s)\n", encodeText(strings.Join(info.Keywords, ", ")))
	}
	creator := info.Creator
	if creator == "" {
		creator = Producer
	}
	fmt.Fprintf(&sb, "/Creator (%s)\n", encodeText(creator))
	fmt.Fprintf(&sb, "/Producer (%s)\n", Producer)

	date := info.Created.UTC().Format("D:20060102150405Z")
	fmt.Fprintf(&sb, "/CreationDate (%s)\n", date)
	fmt.Fprintf(&sb, "/ModDate (%s)\n", date)
	sb.WriteString(">>")
	return sb.String()
}

// fileID derives the 16-byte trailer ID. Report IDs are UUIDs and are used
// as-is; anything else is hashed.
func fileID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return fmt.Sprintf("%X", u[:])
	}
	sum := md5.Sum([]byte(id))
	return fmt.Sprintf("%X", sum[:])
}
