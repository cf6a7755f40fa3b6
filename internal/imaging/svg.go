package imaging

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// MaxSVGAspect bounds the height-to-width ratio of a rasterized SVG. Taller
// documents are rejected before any canvas is allocated.
const MaxSVGAspect = 8

// rasterizeSVG draws an SVG document onto a transparent RGBA canvas width
// pixels wide, keeping the viewBox aspect ratio. Documents without a usable
// viewBox are drawn square.
func rasterizeSVG(r io.Reader, width int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}

	height := width
	if icon.ViewBox.W > 0 && icon.ViewBox.H > 0 {
		height = int(math.Round(float64(width) * icon.ViewBox.H / icon.ViewBox.W))
	}
	if height <= 0 {
		return nil, fmt.Errorf("svg viewBox %gx%g has no area", icon.ViewBox.W, icon.ViewBox.H)
	}
	if height > width*MaxSVGAspect {
		return nil, fmt.Errorf("%w: svg viewBox %gx%g is more than %d times taller than wide",
			ErrUnsupportedFormat, icon.ViewBox.W, icon.ViewBox.H, MaxSVGAspect)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return canvas, nil
}
