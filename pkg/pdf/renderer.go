package pdf

import (
	"bytes"
	"io"
	"sort"
	"strings"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
)

// Renderer names.
const (
	RendererNative = "native"
	RendererFPDF   = "fpdf"
)

// Renderer serializes a Document.
type Renderer interface {
	Name() string
	Render(doc *Document, w io.Writer) error
}

var renderers = map[string]func(compress bool) Renderer{
	RendererNative: func(compress bool) Renderer { return &NativeRenderer{Compress: compress} },
	RendererFPDF:   func(compress bool) Renderer { return &FPDFRenderer{Compress: compress} },
}

// RendererByName returns the named renderer. An empty name selects the
// native writer.
func RendererByName(name string, compress bool) (Renderer, error) {
	if name == "" {
		name = RendererNative
	}
	mk, ok := renderers[name]
	if !ok {
		return nil, rerrors.RendererNotFound(name).
			WithContext("available", strings.Join(RendererNames(), ", "))
	}
	return mk(compress), nil
}

// RendererNames lists the registered renderers in sorted order.
func RendererNames() []string {
	names := make([]string, 0, len(renderers))
	for n := range renderers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RenderBytes renders doc into memory.
func RenderBytes(r Renderer, doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(doc, &buf); err != nil {
		return nil, rerrors.RenderWrap(err, rerrors.ErrRenderFailed, "failed to render PDF").
			WithContext("renderer", r.Name())
	}
	return buf.Bytes(), nil
}
