package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality matches the quality used for downloadable JPEG codes.
const DefaultJPEGQuality = 92

// Encoder serializes a raster in one output format.
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
	MimeType() string
	Extension() string
}

// PNGEncoder writes PNG, keeping the alpha channel.
type PNGEncoder struct {
	CompressionLevel png.CompressionLevel
}

func (e PNGEncoder) Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: e.CompressionLevel}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func (PNGEncoder) MimeType() string  { return "image/png" }
func (PNGEncoder) Extension() string { return ".png" }

// JPEGEncoder flattens the raster onto an opaque background before writing
// JPEG, which has no alpha channel.
type JPEGEncoder struct {
	// Quality ranges 1-100. Zero means DefaultJPEGQuality.
	Quality int

	// Background fills transparent areas. Nil means white.
	Background color.Color
}

func (e JPEGEncoder) Encode(w io.Writer, img image.Image) error {
	bg := e.Background
	if bg == nil {
		bg = color.White
	}
	quality := e.Quality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	flat := imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)

	if err := jpeg.Encode(w, flat, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return nil
}

func (JPEGEncoder) MimeType() string  { return "image/jpeg" }
func (JPEGEncoder) Extension() string { return ".jpg" }

// NewEncoder returns the encoder for an output format name: "png" (or empty)
// and "jpeg"/"jpg".
func NewEncoder(format string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "png":
		return PNGEncoder{}, nil
	case "jpeg", "jpg":
		return JPEGEncoder{}, nil
	}
	return nil, fmt.Errorf("%w: output format %q", ErrUnsupportedFormat, format)
}
