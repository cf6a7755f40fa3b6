package styling

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// GradientRatio returns the interpolation ratio of pixel (x, y) in a w×h
// raster for the given mode.
//
// Ratios by mode:
//   - GradientNone: always 0
//   - GradientLinear: y / h, 0 on the top row and approaching 1 at the bottom
//   - GradientRadial: distance from (w/2, h/2) divided by the centre-to-corner
//     distance, capped at 1
//   - GradientAngular: (atan2(y-cy, x-cx) + π) / 2π, sweeping 0 → 1
//
// Linear and angular ratios are bounded by construction, so only the radial
// ratio is clamped.
func GradientRatio(mode GradientMode, x, y, w, h int) float64 {
	style := StyleConfig{Gradient: mode, Secondary: &RGB{}}
	return newColorMapper(style, w, h).ratio(x, y)
}

func radialRatio(dx, dy, maxDistance float64) float64 {
	if maxDistance == 0 {
		return 0
	}
	return math.Min(1, math.Hypot(dx, dy)/maxDistance)
}

func angularRatio(dx, dy float64) float64 {
	return (math.Atan2(dy, dx) + math.Pi) / (2 * math.Pi)
}

// MapColor returns the color of an ink pixel at (x, y) in a w×h raster.
//
// The style is not validated; a gradient without a secondary color falls
// back to the foreground color.
func MapColor(style StyleConfig, x, y, w, h int) RGB {
	return newColorMapper(style, w, h).at(x, y)
}

// Lerp interpolates channel-wise from c1 to c2: c1 + (c2-c1)*ratio, truncated
// toward zero.
func Lerp(c1, c2 RGB, ratio float64) RGB {
	return RGB{
		R: lerpChannel(c1.R, c2.R, ratio),
		G: lerpChannel(c1.G, c2.G, ratio),
		B: lerpChannel(c1.B, c2.B, ratio),
	}
}

func lerpChannel(a, b uint8, ratio float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*ratio)
}

// colorMapper holds per-raster constants so the recolor loop does no setup
// work per pixel.
type colorMapper struct {
	mode        GradientMode
	fg, bg      RGB
	blend       BlendSpace
	fgC, bgC    colorful.Color
	w, h        float64
	cx, cy      float64
	maxDistance float64
}

func newColorMapper(style StyleConfig, w, h int) *colorMapper {
	m := &colorMapper{
		mode:  style.Gradient,
		fg:    style.Foreground,
		blend: style.BlendSpace,
		w:     float64(w),
		h:     float64(h),
		cx:    float64(w) / 2,
		cy:    float64(h) / 2,
	}
	m.maxDistance = math.Hypot(m.cx, m.cy)
	if style.Secondary == nil {
		m.mode = GradientNone
	} else {
		m.bg = *style.Secondary
	}
	m.fgC = toColorful(m.fg)
	m.bgC = toColorful(m.bg)
	return m
}

func (m *colorMapper) ratio(x, y int) float64 {
	switch m.mode {
	case GradientLinear:
		return float64(y) / m.h
	case GradientRadial:
		return radialRatio(float64(x)-m.cx, float64(y)-m.cy, m.maxDistance)
	case GradientAngular:
		return angularRatio(float64(x)-m.cx, float64(y)-m.cy)
	}
	return 0
}

func (m *colorMapper) at(x, y int) RGB {
	if m.mode == GradientNone {
		return m.fg
	}
	t := m.ratio(x, y)
	switch m.blend {
	case BlendLab:
		return fromColorful(m.fgC.BlendLab(m.bgC, t))
	case BlendHCL:
		return fromColorful(m.fgC.BlendHcl(m.bgC, t))
	}
	return Lerp(m.fg, m.bg, t)
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
