package layout

import "fmt"

// ValidationWarning describes a layout issue found during validation.
type ValidationWarning struct {
	PageNumber int // 1-based
	Ordinal    int
	Message    string
	Severity   string // "error" (cell or page overflow) or "warning" (margin overflow)
}

// ValidatePlacements checks placements against the printable area of the page.
// Explicit cells larger than the available space still get a slot, so the drawn
// image may leave the margins or the page itself.
func ValidatePlacements(placements []Placement, geom PageGeometry, cell CellSize) []ValidationWarning {
	var warnings []ValidationWarning
	const eps = 0.01

	left := geom.Margin
	right := geom.Width - geom.Margin
	bottom := geom.Margin
	top := geom.Height - geom.Margin

	for _, p := range placements {
		warn := func(severity, format string, args ...any) {
			warnings = append(warnings, ValidationWarning{
				PageNumber: p.Page + 1,
				Ordinal:    p.Ordinal,
				Message:    fmt.Sprintf(format, args...),
				Severity:   severity,
			})
		}

		// Drawn image must stay inside its cell
		if p.Width > cell.Width+eps || p.Height > cell.Height+eps {
			warn("error", "drawn size %.2fx%.2f exceeds cell %.2fx%.2f", p.Width, p.Height, cell.Width, cell.Height)
		}

		// Margins
		if p.CellX+cell.Width > right+eps {
			warn("warning", "cell right edge (%.2f) extends past right margin (%.2f)", p.CellX+cell.Width, right)
		}
		if p.CellY < bottom-eps {
			warn("warning", "cell bottom (%.2f) extends below bottom margin (%.2f)", p.CellY, bottom)
		}
		if p.CellX < left-eps {
			warn("warning", "cell left edge (%.2f) extends past left margin (%.2f)", p.CellX, left)
		}
		if p.CellY+cell.Height > top+eps {
			warn("warning", "cell top (%.2f) extends above top margin (%.2f)", p.CellY+cell.Height, top)
		}

		// Off the sheet entirely
		if p.X+p.Width > geom.Width+eps || p.Y < -eps {
			warn("error", "image at (%.2f, %.2f) is clipped by the page edge", p.X, p.Y)
		}
	}
	return warnings
}
