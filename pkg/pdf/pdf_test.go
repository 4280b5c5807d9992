package pdf

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

// -----------------------------------------------------------------------------
// Color Tests
// -----------------------------------------------------------------------------

func TestHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#6366F1", Color{99, 102, 241}, false},
		{"22c55e", Color{34, 197, 94}, false},
		{"#FFF", Color{}, true},
		{"#GGGGGG", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := HexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("HexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("HexColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
	if got := RGB(99, 102, 241).Hex(); got != "#6366F1" {
		t.Errorf("Hex() = %q", got)
	}
}

// -----------------------------------------------------------------------------
// Metrics Tests
// -----------------------------------------------------------------------------

func TestStringWidth(t *testing.T) {
	// "Hi" = H(722) + i(222) in Helvetica.
	if got := StringWidth("Hi", Regular, 10); got != 9.44 {
		t.Errorf("StringWidth(Hi, Regular, 10) = %v, want 9.44", got)
	}
	// Bold i is 278.
	if got := StringWidth("Hi", Bold, 10); got != 10 {
		t.Errorf("StringWidth(Hi, Bold, 10) = %v, want 10", got)
	}
	if got := StringWidth("", Regular, 12); got != 0 {
		t.Errorf("empty width = %v", got)
	}
}

func TestWrapText_RejoinReproducesText(t *testing.T) {
	texts := []string{
		"The quick brown fox jumps over the lazy dog.",
		"  leading and trailing   whitespace\tcollapses  ",
		"Paragraph one ends here.\nParagraph two is a little longer than the first one.",
		"Supercalifragilisticexpialidocious antidisestablishmentarianism short words",
		"Blank\n\nlines survive",
		strings.Repeat("lorem ipsum dolor sit amet ", 40),
	}
	widths := []float64{20, 60, 150, 515}

	for _, text := range texts {
		for _, w := range widths {
			lines := WrapText(text, w, Regular, 11)
			rejoined := strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
			want := strings.Join(strings.Fields(text), " ")
			if rejoined != want {
				t.Errorf("width %v: rejoined %q, want %q", w, rejoined, want)
			}
			for _, line := range lines {
				if StringWidth(line, Regular, 11) > w && len(strings.Fields(line)) > 1 {
					t.Errorf("width %v: line %q is %v wide", w, line, StringWidth(line, Regular, 11))
				}
			}
		}
	}
}

func TestWrapText_OverWideWordOwnLine(t *testing.T) {
	lines := WrapText("a verylongunbreakableword b", 30, Regular, 10)
	want := []string{"a", "verylongunbreakableword", "b"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapText_Empty(t *testing.T) {
	if lines := WrapText("   \n ", 100, Regular, 10); lines != nil {
		t.Errorf("WrapText(blank) = %q, want nil", lines)
	}
	if n := LineCount("", 100, Regular, 10); n != 0 {
		t.Errorf("LineCount(empty) = %d", n)
	}
}

func TestTruncate(t *testing.T) {
	s := "Mathematics and Further Mathematics"
	if got := Truncate(s, 1000, Regular, 10); got != s {
		t.Errorf("Truncate fitting = %q", got)
	}
	got := Truncate(s, 60, Regular, 10)
	if !strings.HasSuffix(got, Ellipsis) {
		t.Fatalf("Truncate = %q, want ellipsis suffix", got)
	}
	if w := StringWidth(got, Regular, 10); w > 60 {
		t.Errorf("truncated width %v > 60", w)
	}
	if got := Truncate(s, 5, Regular, 10); got != "" {
		t.Errorf("Truncate tiny = %q, want empty", got)
	}
}

// -----------------------------------------------------------------------------
// Document Tests
// -----------------------------------------------------------------------------

func TestDocument_Breaks(t *testing.T) {
	doc := NewDocument(A4, Info{Title: "t"})
	if doc.PageCount() != 1 {
		t.Fatalf("new document has %d pages", doc.PageCount())
	}
	doc.NewPage(false)
	doc.NewPage(true)
	doc.NewPage(true)

	if doc.PageCount() != 4 {
		t.Errorf("PageCount = %d, want 4", doc.PageCount())
	}
	if doc.ExplicitBreaks() != 2 {
		t.Errorf("ExplicitBreaks = %d, want 2", doc.ExplicitBreaks())
	}
	if doc.Breaks[0].Page != 1 || doc.Current().Number != 4 {
		t.Errorf("breaks = %+v, current = %d", doc.Breaks, doc.Current().Number)
	}
}

func TestPage_Tagged(t *testing.T) {
	doc := NewDocument(Letter, Info{})
	p := doc.Current()
	p.Text("header", 10, 10, "A", Style{Size: 10})
	p.Rect("table.header", 10, 10, 50, 20, Fill, Style{})
	p.Text("header", 10, 30, "B", Style{Size: 10})
	doc.NewPage(true).Text("header", 10, 10, "C", Style{Size: 10})

	if n := len(p.Tagged("header")); n != 2 {
		t.Errorf("page Tagged(header) = %d", n)
	}
	if n := doc.CountTag("header"); n != 3 {
		t.Errorf("CountTag(header) = %d", n)
	}
}

func TestPolygonCopiesPoints(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}}
	doc := NewDocument(A4, Info{})
	doc.Current().Polygon("chart", pts, true, Fill, Style{})
	pts[0].X = 99
	if doc.Current().Commands[0].Points[0].X != 0 {
		t.Error("Polygon kept a reference to the caller's slice")
	}
}

func TestPageSizeByName(t *testing.T) {
	if PageSizeByName("Letter") != Letter || PageSizeByName("A4") != A4 || PageSizeByName("") != A4 {
		t.Error("PageSizeByName mismatch")
	}
}

// -----------------------------------------------------------------------------
// Native Renderer Tests
// -----------------------------------------------------------------------------

func sampleDocument() *Document {
	doc := NewDocument(A4, Info{
		ID:      "0b6d3e0e-3b1a-4c61-9f39-5a8e0b0b5c11",
		Title:   "Student Report - Alice (Smith)",
		Author:  "InsightEd School",
		Created: time.Date(2024, 3, 28, 9, 0, 0, 0, time.UTC),
	})
	st := Style{Size: 12, Color: Black, Fill: LightGray}
	p := doc.Current()
	p.Text("header", 40, 60, "Hello (world)", st)
	p.Rect("table.header", 40, 80, 100, 20, FillStroke, st)
	p.Line("section", 40, 110, 200, 110, st)
	p.Circle("header.badge", 300, 60, 20, Fill, st)
	p.Polygon("chart", []Point{{0, 0}, {10, 10}, {20, 0}}, false, Stroke, st)
	doc.NewPage(true).Text("header", 40, 60, "Café", Style{Font: Bold, Size: 12})
	return doc
}

func TestNativeRenderer_Structure(t *testing.T) {
	var buf bytes.Buffer
	r := &NativeRenderer{Compress: false}
	if err := r.Render(sampleDocument(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"%PDF-1.4",
		"/Count 2",
		"/BaseFont /Helvetica\n",
		"/BaseFont /Helvetica-Bold",
		"(Hello \\(world\\)) Tj",
		"(Caf\\351) Tj",
		"/F2 12.00 Tf",
		"/Title (Student Report - Alice \\(Smith\\))",
		"/CreationDate (D:20240328090000Z)",
		"/ID [<0B6D3E0E3B1A4C619F395A8E0B0B5C11> <0B6D3E0E3B1A4C619F395A8E0B0B5C11>]",
		"%%EOF",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Text at y=60 from the top lands at 841.89-60 in PDF space.
	if !strings.Contains(out, "40.00 781.89 Td") {
		t.Error("text baseline was not flipped into PDF space")
	}
}

func TestNativeRenderer_XrefOffsets(t *testing.T) {
	var buf bytes.Buffer
	if err := (&NativeRenderer{Compress: true}).Render(sampleDocument(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.Bytes()

	m := regexp.MustCompile(`startxref\n(\d+)\n`).FindSubmatch(out)
	if m == nil {
		t.Fatal("no startxref")
	}
	pos, _ := strconv.Atoi(string(m[1]))
	if !bytes.HasPrefix(out[pos:], []byte("xref\n")) {
		t.Fatalf("startxref %d does not point at the xref table", pos)
	}

	entries := regexp.MustCompile(`(\d{10}) 00000 n `).FindAllSubmatch(out[pos:], -1)
	if len(entries) == 0 {
		t.Fatal("no xref entries")
	}
	for i, e := range entries {
		off, _ := strconv.Atoi(string(e[1]))
		prefix := strconv.Itoa(i+1) + " 0 obj"
		if !bytes.HasPrefix(out[off:], []byte(prefix)) {
			t.Errorf("xref entry %d points at %q", i+1, out[off:off+10])
		}
	}
	if !bytes.Contains(out, []byte("/Filter /FlateDecode")) {
		t.Error("compressed output has no FlateDecode filter")
	}
}

func TestEncodeText(t *testing.T) {
	tests := map[string]string{
		"plain":   "plain",
		"a\\b":    "a\\\\b",
		"€5":      "\\2005",
		"日本":      "??",
		"(paren)": "\\(paren\\)",
	}
	for in, want := range tests {
		if got := encodeText(in); got != want {
			t.Errorf("encodeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileID(t *testing.T) {
	if got := fileID("not-a-uuid"); len(got) != 32 {
		t.Errorf("fileID hash length = %d", len(got))
	}
	if fileID("x") != fileID("x") {
		t.Error("fileID is not deterministic")
	}
}

// -----------------------------------------------------------------------------
// FPDF Renderer Tests
// -----------------------------------------------------------------------------

func TestFPDFRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&FPDFRenderer{Compress: false}).Render(sampleDocument(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Errorf("output does not start with a PDF header: %q", out[:8])
	}
	if !strings.Contains(out, "/Count 2") {
		t.Error("expected two pages")
	}
	if !strings.Contains(out, "Hello") {
		t.Error("expected uncompressed text in output")
	}
}

// -----------------------------------------------------------------------------
// Renderer Registry Tests
// -----------------------------------------------------------------------------

func TestRendererByName(t *testing.T) {
	for _, name := range []string{"", RendererNative, RendererFPDF} {
		r, err := RendererByName(name, true)
		if err != nil {
			t.Fatalf("RendererByName(%q): %v", name, err)
		}
		if name != "" && r.Name() != name {
			t.Errorf("Name() = %q, want %q", r.Name(), name)
		}
	}
	if _, err := RendererByName("pdfium", true); err == nil {
		t.Error("expected an error for an unknown renderer")
	}
}

func TestRenderBytes(t *testing.T) {
	for _, name := range RendererNames() {
		r, _ := RendererByName(name, true)
		data, err := RenderBytes(r, sampleDocument())
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("%s: missing header", name)
		}
	}
}

// -----------------------------------------------------------------------------
// QR Tests
// -----------------------------------------------------------------------------

func TestQRCode(t *testing.T) {
	doc := NewDocument(A4, Info{})
	p := doc.Current()
	if err := QRCode(p, "footer.qr", "0b6d3e0e-3b1a-4c61-9f39-5a8e0b0b5c11", 500, 760, 50, Black); err != nil {
		t.Fatalf("QRCode: %v", err)
	}
	cmds := p.Tagged("footer.qr")
	if len(cmds) == 0 {
		t.Fatal("no QR modules drawn")
	}
	for _, c := range cmds {
		if c.Kind != KindRect || c.Mode != Fill {
			t.Fatalf("unexpected command %+v", c)
		}
		if c.X < 500-1e-9 || c.Y < 760-1e-9 || c.X+c.W > 550+1e-9 || c.Y+c.H > 810+1e-9 {
			t.Errorf("module %+v outside the 50pt box", c)
		}
	}
}
