// Package layout computes the grid that photos are packed into on a printed page.
//
// All lengths are PDF points (1/72 inch). Page coordinates have their origin at the
// bottom-left corner of the page and Y grows upward, the same convention TikZ and the
// PDF content stream use.
package layout

import (
	"math"

	"github.com/kozaktomas/photo-arrange/internal/constants"
)

// PageGeometry describes the fixed printable page used for a run.
type PageGeometry struct {
	Width   float64 // page width
	Height  float64 // page height
	Margin  float64 // applied on all four sides
	Spacing float64 // gap between neighbouring cells
}

// DefaultPageGeometry returns the A4 portrait page with 1cm margins and 0.5cm spacing.
func DefaultPageGeometry() PageGeometry {
	return PageGeometry{
		Width:   constants.PageWidthPt,
		Height:  constants.PageHeightPt,
		Margin:  constants.PageMarginCM * constants.PointsPerCM,
		Spacing: constants.ItemSpacingCM * constants.PointsPerCM,
	}
}

// AvailableWidth returns the horizontal space inside the margins.
// A4: 595.28 - 2*28.35 = 538.58pt.
func (g PageGeometry) AvailableWidth() float64 {
	return g.Width - 2*g.Margin
}

// AvailableHeight returns the vertical space inside the margins.
// A4: 841.89 - 2*28.35 = 785.20pt.
func (g PageGeometry) AvailableHeight() float64 {
	return g.Height - 2*g.Margin
}

// CellSize is the size of one grid cell.
type CellSize struct {
	Width    float64
	Height   float64
	Explicit bool // caller supplied both dimensions; images are stretched to fill the cell
}

// PreserveAspect reports whether images keep their aspect ratio inside the cell.
func (c CellSize) PreserveAspect() bool {
	return !c.Explicit
}

// ComputeCellSize returns the explicit cell when both dimensions (in cm) are given,
// otherwise a square cell sized so that defaultColumns cells fill the available width.
// A single dimension on its own is treated as if neither was given.
func ComputeCellSize(geom PageGeometry, widthCM, heightCM *float64, defaultColumns int) CellSize {
	if widthCM != nil && heightCM != nil {
		return CellSize{
			Width:    *widthCM * constants.PointsPerCM,
			Height:   *heightCM * constants.PointsPerCM,
			Explicit: true,
		}
	}
	return DefaultCellSize(geom, defaultColumns)
}

// DefaultCellSize returns the square cell that fits exactly columns cells per row.
// A4 with 4 columns: (538.58 - 3*14.17) / 4 = 124.02pt.
func DefaultCellSize(geom PageGeometry, columns int) CellSize {
	if columns < 1 {
		columns = 1
	}
	side := (geom.AvailableWidth() - float64(columns-1)*geom.Spacing) / float64(columns)
	return CellSize{Width: side, Height: side}
}

// GridLayout holds the packing of cells on every page of a run.
type GridLayout struct {
	ItemsPerRow    int
	ItemsPerColumn int
	ItemsPerPage   int
	TotalPages     int
}

// ComputeGridLayout fits as many cells as possible into the available area.
// Each axis holds at least one cell, even when the cell is larger than the page.
func ComputeGridLayout(geom PageGeometry, cell CellSize, itemCount int) GridLayout {
	perRow := fitCount(geom.AvailableWidth(), cell.Width, geom.Spacing)
	perColumn := fitCount(geom.AvailableHeight(), cell.Height, geom.Spacing)
	perPage := perRow * perColumn

	totalPages := 0
	if itemCount > 0 {
		totalPages = (itemCount + perPage - 1) / perPage
	}

	return GridLayout{
		ItemsPerRow:    perRow,
		ItemsPerColumn: perColumn,
		ItemsPerPage:   perPage,
		TotalPages:     totalPages,
	}
}

// fitEpsilon absorbs rounding when cells fill the available space exactly,
// as the default cell does by construction.
const fitEpsilon = 1e-9

// fitCount returns floor((available + spacing) / (cell + spacing)), at least 1.
// n cells take n*cell + (n-1)*spacing, so adding one spacing to both sides gives the bound.
func fitCount(available, cell, spacing float64) int {
	n := int(math.Floor((available+spacing)/(cell+spacing) + fitEpsilon))
	return max(n, 1)
}

// CellOrigin returns the bottom-left corner of the cell at row/col.
func CellOrigin(geom PageGeometry, cell CellSize, row, col int) (x, y float64) {
	x = geom.Margin + float64(col)*(cell.Width+geom.Spacing)
	y = geom.Height - geom.Margin - float64(row+1)*cell.Height - float64(row)*geom.Spacing
	return x, y
}
