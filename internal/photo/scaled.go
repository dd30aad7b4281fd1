package photo

import (
	"fmt"
	"image"
)

// Scaled is an in-memory JPEG copy of a source image at its drawn size.
// It is only valid inside the WithScaled callback.
type Scaled struct {
	Path   string // source image
	Width  int    // pixels
	Height int    // pixels
	JPEG   []byte
}

// Release drops the encoded data.
func (s *Scaled) Release() {
	s.JPEG = nil
}

// WithScaled decodes the image at path, scales it to the drawn size (points) at the
// configured resolution, and passes the encoded copy to fn. The copy is released when
// fn returns, whether or not fn fails.
func WithScaled(path string, drawnW, drawnH float64, opts Options, fn func(*Scaled) error) error {
	img, err := Decode(path)
	if err != nil {
		return err
	}

	scaled, err := scale(path, img, drawnW, drawnH, opts)
	if err != nil {
		return err
	}
	defer scaled.Release()

	return fn(scaled)
}

func scale(path string, img image.Image, drawnW, drawnH float64, opts Options) (*Scaled, error) {
	bounds := img.Bounds()
	w := PixelSize(drawnW, bounds.Dx(), opts.DPI)
	h := PixelSize(drawnH, bounds.Dy(), opts.DPI)

	data, err := EncodeJPEG(Scale(img, w, h), opts.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("failed to scale image to %dx%d: %w", w, h, err)
	}
	return &Scaled{Path: path, Width: w, Height: h, JPEG: data}, nil
}
