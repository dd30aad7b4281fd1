package layout

import (
	"iter"
	"math"

	"github.com/kozaktomas/photo-arrange/internal/constants"
)

// Item is a source image with its natural pixel size.
// Zero dimensions mean the size could not be read; the item keeps its slot.
type Item struct {
	Path   string
	Width  int
	Height int
}

// HasSize reports whether the natural size of the item is known.
func (it Item) HasSize() bool {
	return it.Width > 0 && it.Height > 0
}

// Placement is the position of one item on its page.
type Placement struct {
	Ordinal       int     // index in the input sequence
	Page          int     // 0-based page index
	IndexOnPage   int     // 0-based slot on the page
	Row, Col      int     // grid cell
	CellX, CellY  float64 // bottom-left corner of the cell
	Width, Height float64 // drawn size
	X, Y          float64 // bottom-left corner of the drawn image, centered in the cell
}

// ComputePlacements yields the page index and placement of every item, in input order.
// The sequence is computed lazily; the slot of an item depends only on its ordinal.
func ComputePlacements(items []Item, grid GridLayout, geom PageGeometry, cell CellSize) iter.Seq2[int, Placement] {
	return func(yield func(int, Placement) bool) {
		for i, item := range items {
			p := placeItem(i, item, grid, geom, cell)
			if !yield(p.Page, p) {
				return
			}
		}
	}
}

// Pages groups placements by page. Every page but the last holds exactly
// ItemsPerPage placements. The page count follows the items, not grid.TotalPages.
func Pages(items []Item, grid GridLayout, geom PageGeometry, cell CellSize) [][]Placement {
	pages := make([][]Placement, 0, grid.TotalPages)
	for page, p := range ComputePlacements(items, grid, geom, cell) {
		for len(pages) <= page {
			pages = append(pages, nil)
		}
		pages[page] = append(pages[page], p)
	}
	return pages
}

func placeItem(i int, item Item, grid GridLayout, geom PageGeometry, cell CellSize) Placement {
	page := i / grid.ItemsPerPage
	idx := i % grid.ItemsPerPage
	row := idx / grid.ItemsPerRow
	col := idx % grid.ItemsPerRow
	x, y := CellOrigin(geom, cell, row, col)

	w, h := cell.Width, cell.Height
	if cell.PreserveAspect() && item.HasSize() {
		w, h = FitAspect(cell.Width, cell.Height, item.Width, item.Height)
	}
	cx, cy := Center(x, y, cell, w, h)

	return Placement{
		Ordinal:     i,
		Page:        page,
		IndexOnPage: idx,
		Row:         row,
		Col:         col,
		CellX:       x,
		CellY:       y,
		Width:       w,
		Height:      h,
		X:           cx,
		Y:           cy,
	}
}

// FitAspect returns the largest size with the image's aspect ratio that fits in the cell.
// Landscape images are fitted to the cell width first, portrait and square ones to the
// cell height; either is scaled down again if the other side overflows.
func FitAspect(cellW, cellH float64, naturalW, naturalH int) (w, h float64) {
	aspect := float64(naturalW) / float64(naturalH)
	if aspect > 1 {
		w, h = cellW, cellW/aspect
		if h > cellH {
			h, w = cellH, cellH*aspect
		}
		return w, h
	}
	h, w = cellH, cellH*aspect
	if w > cellW {
		w, h = cellW, cellW/aspect
	}
	return w, h
}

// Center returns the bottom-left corner that centers a w x h box in the cell at (x, y).
func Center(x, y float64, cell CellSize, w, h float64) (cx, cy float64) {
	return x + (cell.Width-w)/2, y + (cell.Height-h)/2
}

// EffectiveDPI returns the print resolution of naturalPx pixels drawn over drawnPt points.
func EffectiveDPI(naturalPx int, drawnPt float64) float64 {
	if naturalPx <= 0 || drawnPt <= 0 {
		return 0
	}
	dpi := float64(naturalPx) / drawnPt * constants.PointsPerInch
	return math.Round(dpi*10) / 10
}

// PlacementDPI returns the lower of the horizontal and vertical effective resolutions.
func PlacementDPI(item Item, p Placement) float64 {
	if !item.HasSize() {
		return 0
	}
	return min(EffectiveDPI(item.Width, p.Width), EffectiveDPI(item.Height, p.Height))
}
