package styling

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// LogoWidthDivisor fixes the logo width to 1/LogoWidthDivisor of the raster
// width, whatever the logo's own size.
const LogoWidthDivisor = 5

// DefaultLogoFilter is the resampling filter used when none is configured.
var DefaultLogoFilter = imaging.Linear

// PlaceLogo computes where a logoW×logoH logo lands on a rasterW×rasterH
// raster.
//
// The logo is scaled uniformly to rasterW/5 pixels wide (aspect ratio kept,
// height truncated, never below one pixel) and centred on both axes. The
// returned rectangle may extend past the raster for very tall logos; callers
// clip it.
//
// Example: a 500×100 logo on a 250×250 raster is placed at (100,120)-(150,130).
func PlaceLogo(rasterW, rasterH, logoW, logoH int) (image.Rectangle, error) {
	if rasterW <= 0 || rasterH <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: raster %dx%d", ErrDimensionMismatch, rasterW, rasterH)
	}
	if logoW <= 0 || logoH <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: logo %dx%d", ErrDimensionMismatch, logoW, logoH)
	}

	targetW := max(rasterW/LogoWidthDivisor, 1)
	// logoH * (targetW/logoW), truncated
	targetH := max(logoH*targetW/logoW, 1)

	x0 := (rasterW - targetW) / 2
	y0 := (rasterH - targetH) / 2
	return image.Rect(x0, y0, x0+targetW, y0+targetH), nil
}

// CompositeLogo scales logo into the placement computed by PlaceLogo and
// blends it over dst with BlendOver. It returns the new raster and the
// rectangle that was actually written (the placement clipped to the raster).
//
// Pixels outside the returned rectangle are byte-identical to dst, and the
// output has the same dimensions as dst. A filter without support (nearest
// neighbour) is replaced by DefaultLogoFilter: small scale factors need
// smoothing to avoid jagged edges.
func CompositeLogo(dst, logo image.Image, filter imaging.ResampleFilter) (*image.NRGBA, image.Rectangle, error) {
	out, err := toNRGBA(dst)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	if err := checkDimensions(logo); err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("logo: %w", err)
	}

	lb := logo.Bounds()
	place, err := PlaceLogo(out.Rect.Dx(), out.Rect.Dy(), lb.Dx(), lb.Dy())
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	if filter.Support <= 0 {
		filter = DefaultLogoFilter
	}
	clip := place.Intersect(out.Rect)
	scaled, top := resampleLogo(logo, place, clip, filter)

	last := scaled.Rect.Dy() - 1
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		sy := min(max(y-top, 0), last)
		for x := clip.Min.X; x < clip.Max.X; x++ {
			si := scaled.PixOffset(x-place.Min.X, sy)
			di := out.PixOffset(x, y)
			s := scaled.Pix[si : si+4 : si+4]
			d := out.Pix[di : di+4 : di+4]
			c := BlendOver(
				color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]},
				color.NRGBA{R: d[0], G: d[1], B: d[2], A: d[3]},
			)
			d[0], d[1], d[2], d[3] = c.R, c.G, c.B, c.A
		}
	}
	return out, clip, nil
}

// resampleLogo scales logo to the size of place but only produces the rows
// that clip covers, plus a margin for the filter. It returns the scaled rows
// and the raster row of the first one.
func resampleLogo(logo image.Image, place, clip image.Rectangle, filter imaging.ResampleFilter) (*image.NRGBA, int) {
	if clip.Min.Y == place.Min.Y && clip.Max.Y == place.Max.Y {
		return imaging.Resize(logo, place.Dx(), place.Dy(), filter), place.Min.Y
	}

	lb := logo.Bounds()
	// source rows per placed row
	scale := float64(lb.Dy()) / float64(place.Dy())
	pad := int(math.Ceil((filter.Support+1)*math.Max(scale, 1))) + 1

	s0 := max(int(math.Floor(float64(clip.Min.Y-place.Min.Y)*scale))-pad, 0)
	s1 := min(int(math.Ceil(float64(clip.Max.Y-place.Min.Y)*scale))+pad, lb.Dy())
	top := place.Min.Y + int(math.Round(float64(s0)/scale))
	h := max(int(math.Round(float64(s1-s0)/scale)), 1)

	rows := imaging.Crop(logo, image.Rect(lb.Min.X, lb.Min.Y+s0, lb.Max.X, lb.Min.Y+s1))
	return imaging.Resize(rows, place.Dx(), h, filter), top
}

// BlendOver composites src over dst using straight alpha:
//
//	outRGB = srcRGB*srcA + dstRGB*(1-srcA)
//	outA   = srcA + dstA*(1-srcA)
//
// with alphas in [0,1] and results rounded to the nearest 8-bit value. A fully
// transparent src returns dst unchanged and a fully opaque src returns src.
func BlendOver(src, dst color.NRGBA) color.NRGBA {
	switch src.A {
	case 0:
		return dst
	case 255:
		return src
	}

	a := float64(src.A) / 255
	inv := 1 - a
	da := float64(dst.A) / 255

	return color.NRGBA{
		R: uint8(float64(src.R)*a + float64(dst.R)*inv + 0.5),
		G: uint8(float64(src.G)*a + float64(dst.G)*inv + 0.5),
		B: uint8(float64(src.B)*a + float64(dst.B)*inv + 0.5),
		A: uint8((a+da*inv)*255 + 0.5),
	}
}
