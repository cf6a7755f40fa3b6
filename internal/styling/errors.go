package styling

import "errors"

var (
	// ErrInvalidStyleConfig is returned before any pixel work when a style
	// cannot be rendered, such as a gradient without a secondary color.
	ErrInvalidStyleConfig = errors.New("invalid style config")

	// ErrLogoDecode marks a logo that could not be turned into an image.
	// The Pipeline treats it as non-fatal and skips compositing.
	ErrLogoDecode = errors.New("logo decode failed")

	// ErrDimensionMismatch reports a raster with non-positive width or
	// height. It points at a defect in whatever produced the raster.
	ErrDimensionMismatch = errors.New("raster has non-positive dimensions")
)
