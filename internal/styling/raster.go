package styling

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// checkDimensions fails fast on rasters that cannot hold a single pixel.
func checkDimensions(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrDimensionMismatch)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensionMismatch, b.Dx(), b.Dy())
	}
	return nil
}

// toNRGBA copies src into a new straight-alpha raster anchored at (0,0).
// The result never aliases src.
func toNRGBA(src image.Image) (*image.NRGBA, error) {
	if err := checkDimensions(src); err != nil {
		return nil, err
	}
	return imaging.Clone(src), nil
}
