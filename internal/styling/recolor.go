package styling

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
)

// Recolor applies style to a monochrome QR raster and returns a new raster of
// the same dimensions.
//
// Every pixel is classified on the source values: ink pixels get the color
// computed by the style's gradient with their alpha untouched, background
// pixels keep their color and, with TransparentBackground, get the sentinel
// alpha. src is never modified.
//
// Errors:
//   - ErrInvalidStyleConfig if style fails Validate
//   - ErrDimensionMismatch if src has no pixels
func Recolor(src image.Image, style StyleConfig) (*image.NRGBA, error) {
	return recolor(src, style, false)
}

func recolor(src image.Image, style StyleConfig, concurrent bool) (*image.NRGBA, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	out, err := toNRGBA(src)
	if err != nil {
		return nil, err
	}

	w, h := out.Rect.Dx(), out.Rect.Dy()
	mapper := newColorMapper(style, w, h)
	rows := func(start, end int) {
		for y := start; y < end; y++ {
			recolorRow(out, y, w, mapper, style)
		}
	}

	if concurrent {
		// Rows are independent: each pixel is read and written in place
		// exactly once.
		parallel.Line(h, rows)
	} else {
		rows(0, h)
	}
	return out, nil
}

func recolorRow(img *image.NRGBA, y, w int, mapper *colorMapper, style StyleConfig) {
	row := img.Pix[y*img.Stride : y*img.Stride+w*4]
	for x := 0; x < w; x++ {
		px := row[x*4 : x*4+4 : x*4+4]
		if Classify(px[0], px[1], px[2]) == Ink {
			c := mapper.at(x, y)
			px[0], px[1], px[2] = c.R, c.G, c.B
			continue
		}
		if style.TransparentBackground {
			bg := ApplyTransparency(color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]}, style)
			px[3] = bg.A
		}
	}
}
