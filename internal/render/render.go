// Package render draws planned pages into output documents.
//
// An Emitter turns one page worth of placements into one document. Documents are
// produced by a Backend: PDFBackend writes the PDF directly, LaTeXBackend renders a
// TikZ page and compiles it with lualatex.
package render

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/kozaktomas/photo-arrange/internal/constants"
	"github.com/kozaktomas/photo-arrange/internal/layout"
	"github.com/kozaktomas/photo-arrange/internal/photo"
)

// Backend creates page documents.
type Backend interface {
	NewDocument(ctx context.Context, path string, geom layout.PageGeometry) (Document, error)
}

// Document is a single output page. Coordinates are page coordinates in points
// with the origin at the bottom-left corner.
type Document interface {
	// DrawImage draws JPEG data with its bottom-left corner at (x, y), scaled to w x h.
	DrawImage(name string, jpeg []byte, x, y, w, h float64) error
	// DrawFrame outlines a rectangle (debug overlay).
	DrawFrame(x, y, w, h float64)
	// Close finalizes the document and writes it to its path.
	Close() error
}

// Entry is one item placed on a page.
type Entry struct {
	Item      layout.Item
	Placement layout.Placement
	ProbeErr  error // natural size could not be read; the item is skipped
}

// SkippedItem records an item that could not be drawn.
type SkippedItem struct {
	Ordinal int
	Path    string
	Err     error
}

// PageResult describes one emitted page.
type PageResult struct {
	Page    int // 1-based
	Path    string
	Drawn   []int // ordinals of drawn items
	Skipped []SkippedItem
	Err     error // document could not be created or finalized
}

// Emitter renders pages with a fixed geometry and cell.
type Emitter struct {
	Backend   Backend
	Geometry  layout.PageGeometry
	Cell      layout.CellSize
	Grid      layout.GridLayout
	OutputDir string
	Prefix    string
	Photo     photo.Options
	Debug     bool // outline every grid cell
	Logger    *log.Logger
}

// OutputPath returns the document path of a 1-based page number, e.g. ready_01.pdf.
func OutputPath(dir, prefix string, page int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%02d%s", prefix, page, constants.OutputExt))
}

// EmitPage draws the entries of the 0-based page into a new document.
// Items that fail are logged and skipped; their cells stay blank. The document is
// finalized exactly once, after all entries were processed.
func (e *Emitter) EmitPage(ctx context.Context, page int, entries []Entry) (res PageResult) {
	logger := e.logger()
	res = PageResult{
		Page: page + 1,
		Path: OutputPath(e.OutputDir, e.prefix(), page+1),
	}

	doc, err := e.Backend.NewDocument(ctx, res.Path, e.Geometry)
	if err != nil {
		res.Err = fmt.Errorf("failed to create page document: %w", err)
		logger.Error("Failed to create page", "page", res.Page, "path", res.Path, "err", err)
		return res
	}
	defer func() {
		if err := doc.Close(); err != nil {
			res.Err = fmt.Errorf("failed to save page document: %w", err)
			logger.Error("Failed to save page", "page", res.Page, "path", res.Path, "err", err)
		}
	}()

	if e.Debug {
		e.drawGrid(doc)
	}

	for _, entry := range entries {
		if err := e.drawEntry(doc, entry); err != nil {
			logger.Error("Error processing image", "path", entry.Item.Path, "err", err)
			res.Skipped = append(res.Skipped, SkippedItem{
				Ordinal: entry.Placement.Ordinal,
				Path:    entry.Item.Path,
				Err:     err,
			})
			continue
		}
		logger.Debug("Placed image", "path", entry.Item.Path, "page", res.Page,
			"row", entry.Placement.Row, "col", entry.Placement.Col)
		res.Drawn = append(res.Drawn, entry.Placement.Ordinal)
	}
	return res
}

func (e *Emitter) drawEntry(doc Document, entry Entry) error {
	if entry.ProbeErr != nil {
		return entry.ProbeErr
	}
	p := entry.Placement
	return photo.WithScaled(entry.Item.Path, p.Width, p.Height, e.Photo, func(s *photo.Scaled) error {
		return doc.DrawImage(imageName(p.Ordinal), s.JPEG, p.X, p.Y, p.Width, p.Height)
	})
}

// drawGrid outlines every cell of the page grid.
func (e *Emitter) drawGrid(doc Document) {
	for row := range e.Grid.ItemsPerColumn {
		for col := range e.Grid.ItemsPerRow {
			x, y := layout.CellOrigin(e.Geometry, e.Cell, row, col)
			doc.DrawFrame(x, y, e.Cell.Width, e.Cell.Height)
		}
	}
}

func (e *Emitter) prefix() string {
	if e.Prefix == "" {
		return constants.OutputPrefix
	}
	return e.Prefix
}

func (e *Emitter) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// imageName returns a document-unique name for the image of an item.
func imageName(ordinal int) string {
	return fmt.Sprintf("img%04d", ordinal)
}
