package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/kozaktomas/photo-arrange/internal/layout"
)

//go:embed templates/page.tex
var templateFS embed.FS

// LaTeXBackend renders each page as a TikZ picture and compiles it with lualatex.
type LaTeXBackend struct {
	Binary string // lualatex executable
}

// templateRect holds a rectangle in TikZ page coordinates (bp from page bottom-left).
type templateRect struct {
	X, Y, W, H float64
	File       string // image file name relative to the page directory
}

// templatePage is the root data passed to the page template.
type templatePage struct {
	PageW  float64
	PageH  float64
	Images []templateRect
	Frames []templateRect
}

type latexDocument struct {
	ctx    context.Context
	binary string
	path   string
	tmpDir string
	data   templatePage
	closed bool
}

// NewDocument creates a scratch directory holding the page sources until Close.
func (b LaTeXBackend) NewDocument(ctx context.Context, path string, geom layout.PageGeometry) (Document, error) {
	tmpDir, err := os.MkdirTemp("", "photo-arrange-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	binary := b.Binary
	if binary == "" {
		binary = "lualatex"
	}

	return &latexDocument{
		ctx:    ctx,
		binary: binary,
		path:   path,
		tmpDir: tmpDir,
		data:   templatePage{PageW: geom.Width, PageH: geom.Height},
	}, nil
}

// DrawImage writes the JPEG next to the page source and adds a node for it.
func (d *latexDocument) DrawImage(name string, data []byte, x, y, w, h float64) error {
	file := name + ".jpg"
	if err := os.WriteFile(filepath.Join(d.tmpDir, file), data, 0600); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	d.data.Images = append(d.data.Images, templateRect{X: x, Y: y, W: w, H: h, File: file})
	return nil
}

func (d *latexDocument) DrawFrame(x, y, w, h float64) {
	d.data.Frames = append(d.data.Frames, templateRect{X: x, Y: y, W: w, H: h})
}

// Close compiles the page and copies the PDF to its output path.
// The scratch directory is removed on every path out of Close.
func (d *latexDocument) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	defer os.RemoveAll(d.tmpDir)

	pdfData, err := compileLatex(d.ctx, d.binary, d.data, d.tmpDir)
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.path, pdfData, 0600); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// formatBP formats a length for TikZ with two decimals.
func formatBP(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// renderTemplate executes the page template.
func renderTemplate(data templatePage) ([]byte, error) {
	tmpl, err := template.New("page.tex").
		Funcs(template.FuncMap{"fmt": formatBP}).
		ParseFS(templateFS, "templates/page.tex")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// compileLatex writes the page source and runs lualatex, returning the PDF bytes.
func compileLatex(ctx context.Context, binary string, data templatePage, tmpDir string) ([]byte, error) {
	src, err := renderTemplate(data)
	if err != nil {
		return nil, err
	}

	texPath := filepath.Join(tmpDir, "page.tex")
	if err := os.WriteFile(texPath, src, 0600); err != nil {
		return nil, fmt.Errorf("failed to write tex file: %w", err)
	}

	// Run lualatex twice; the second pass resolves remember picture positions
	for pass := range 2 {
		cmd := exec.CommandContext(ctx, binary, //nolint:gosec // binary comes from configuration
			"-interaction=nonstopmode",
			"-halt-on-error",
			"-output-directory="+tmpDir,
			texPath,
		)
		cmd.Dir = tmpDir
		output, err := cmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("lualatex pass %d failed: %w\n%s", pass+1, err, string(output))
		}
	}

	pdfData, err := os.ReadFile(filepath.Join(tmpDir, "page.pdf")) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return pdfData, nil
}
