// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Unit conversion constants
const (
	// PointsPerInch is the PDF user space resolution
	PointsPerInch = 72.0

	// PointsPerCM converts centimeters to PDF points
	PointsPerCM = PointsPerInch / 2.54

	// PointsPerMM converts millimeters to PDF points
	PointsPerMM = PointsPerCM / 10
)

// Page constants (A4 portrait)
const (
	// PageWidthPt is the A4 page width in points
	PageWidthPt = 210 * PointsPerMM

	// PageHeightPt is the A4 page height in points
	PageHeightPt = 297 * PointsPerMM

	// PageMarginCM is the margin applied on all four sides
	PageMarginCM = 1.0

	// ItemSpacingCM is the gap between neighbouring cells
	ItemSpacingCM = 0.5

	// DefaultColumns is the number of square cells that fill the available width
	// when no explicit cell size is given
	DefaultColumns = 4
)

// Output constants
const (
	// OutputPrefix is prepended to the zero-padded page number of every output file
	OutputPrefix = "ready_"

	// OutputExt is the extension of generated page documents
	OutputExt = ".pdf"
)

// Image processing constants
const (
	// DefaultRenderDPI is the resolution scaled images are rendered at
	DefaultRenderDPI = 300.0

	// DefaultJPEGQuality is the quality used when re-encoding scaled images
	DefaultJPEGQuality = 90

	// LowResDPIThreshold marks placements whose source image is too small for print
	LowResDPIThreshold = 150.0
)

// ImageExtensions lists the recognized source image extensions (lowercase).
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff"}
