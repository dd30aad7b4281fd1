package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/kozaktomas/photo-arrange/internal/layout"
)

// PDFBackend writes single-page PDF documents with fpdf.
type PDFBackend struct {
	Creator string // written to the document info dictionary
}

type pdfDocument struct {
	pdf    *fpdf.Fpdf
	path   string
	height float64
	closed bool
}

// NewDocument starts a one-page PDF sized to the page geometry.
func (b PDFBackend) NewDocument(_ context.Context, path string, geom layout.PageGeometry) (Document, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: geom.Width, Ht: geom.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if b.Creator != "" {
		pdf.SetCreator(b.Creator, true)
	}
	pdf.AddPage()
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to start PDF: %w", err)
	}

	return &pdfDocument{pdf: pdf, path: path, height: geom.Height}, nil
}

// DrawImage registers the JPEG from memory and places it on the page.
// fpdf measures Y from the top edge, so the bottom-left origin is flipped here.
func (d *pdfDocument) DrawImage(name string, data []byte, x, y, w, h float64) error {
	opts := fpdf.ImageOptions{ImageType: "JPG"}

	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if err := d.pdf.Error(); err != nil {
		// The failed image was never added; keep the document usable for the next one.
		d.pdf.ClearError()
		return fmt.Errorf("failed to register image: %w", err)
	}

	d.pdf.ImageOptions(name, x, d.height-y-h, w, h, false, opts, 0, "")
	if err := d.pdf.Error(); err != nil {
		d.pdf.ClearError()
		return fmt.Errorf("failed to draw image: %w", err)
	}
	return nil
}

func (d *pdfDocument) DrawFrame(x, y, w, h float64) {
	d.pdf.SetDrawColor(180, 180, 180)
	d.pdf.SetLineWidth(0.5)
	d.pdf.Rect(x, d.height-y-h, w, h, "D")
}

// Close writes the PDF to disk. Later calls are no-ops.
func (d *pdfDocument) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if err := d.pdf.OutputFileAndClose(d.path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
