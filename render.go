package catalogo

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/galvez/go-catalogo/internal/fileutil"
)

// Renderer is a page-based drawing surface driven by the layout engine.
// Implementations consume instructions in order; the first page is open
// before the first instruction arrives.
type Renderer interface {
	// Render executes the instruction list.
	Render(ins []DrawInstruction) error
	// Output returns the finished document bytes.
	Output() ([]byte, error)
	// PageCount returns the number of pages rendered so far.
	PageCount() int
}

// Compile-time interface implementation check.
var _ Renderer = (*pdfRenderer)(nil)

// pdfRenderer renders instructions to a landscape A4 PDF via gofpdf.
type pdfRenderer struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
}

// NewPDFRenderer creates the built-in gofpdf backend.
func NewPDFRenderer() Renderer {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	r := &pdfRenderer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	pdf.AddPage()
	return r
}

func (r *pdfRenderer) Render(ins []DrawInstruction) error {
	for _, in := range ins {
		switch v := in.(type) {
		case PageBreak:
			r.pdf.AddPage()
		case DrawImage:
			// A vanished file degrades to nothing: the engine already
			// emitted placeholders for assets it knew were missing.
			if !fileutil.FileExists(v.Path) {
				continue
			}
			opts := gofpdf.ImageOptions{ImageType: "", ReadDpi: true}
			r.pdf.ImageOptions(v.Path, v.X, v.Y, v.W, v.H, false, opts, 0, "")
		case DrawRect:
			style := "D"
			if v.Fill {
				r.pdf.SetFillColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
				style = "F"
			} else {
				r.pdf.SetDrawColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
			}
			r.pdf.Rect(v.X, v.Y, v.W, v.H, style)
		case DrawText:
			fontStyle := ""
			if v.Bold {
				fontStyle = "B"
			}
			r.pdf.SetFont("Helvetica", fontStyle, v.Size)
			r.pdf.SetTextColor(int(v.Color.R), int(v.Color.G), int(v.Color.B))
			r.pdf.SetXY(v.X, v.Y)
			r.pdf.CellFormat(v.W, v.Size*0.5, r.translate(v.Text), "", 0, v.Align, false, 0, "")
		default:
			return fmt.Errorf("%w: unknown instruction %T", ErrRender, in)
		}
		if err := r.pdf.Error(); err != nil {
			return fmt.Errorf("%w: %v", ErrRender, err)
		}
	}
	return nil
}

func (r *pdfRenderer) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func (r *pdfRenderer) PageCount() int {
	return r.pdf.PageCount()
}
