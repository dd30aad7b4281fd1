// Package photo decodes source images and produces the scaled JPEG copies drawn on pages.
package photo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/kozaktomas/photo-arrange/internal/constants"
)

// Size is the natural pixel size of an image.
type Size struct {
	Width  int
	Height int
}

// Options controls how scaled copies are produced.
type Options struct {
	DPI         float64 // render resolution for the drawn size
	JPEGQuality int
}

// DefaultOptions returns the print defaults.
func DefaultOptions() Options {
	return Options{
		DPI:         constants.DefaultRenderDPI,
		JPEGQuality: constants.DefaultJPEGQuality,
	}
}

// Probe reads the pixel size of an image without decoding the pixel data.
func Probe(path string) (Size, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the folder listing
	if err != nil {
		return Size{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("failed to decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Size{}, fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// Decode reads and decodes the full image.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the folder listing
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// PixelSize converts a drawn length in points to pixels at dpi.
// The result is at least 1 and never exceeds the natural size, so images are not upscaled.
func PixelSize(drawnPt float64, naturalPx int, dpi float64) int {
	px := int(math.Round(drawnPt / constants.PointsPerInch * dpi))
	if naturalPx > 0 && px > naturalPx {
		px = naturalPx
	}
	return max(px, 1)
}

// Scale resizes img to exactly w x h pixels with a Lanczos filter and flattens
// any transparency onto white, since JPEG has no alpha channel.
func Scale(img image.Image, w, h int) *image.NRGBA {
	resized := imaging.Resize(img, w, h, imaging.Lanczos)
	background := imaging.New(w, h, color.White)
	return imaging.Overlay(background, resized, image.Pt(0, 0), 1.0)
}

// EncodeJPEG encodes img as JPEG.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
