package styling

import (
	"fmt"
	"image/color"
	"strings"
)

// TransparentAlpha is the alpha written to background pixels when a
// transparent background is requested.
//
// It is a 7-bit alpha of 127 (fully transparent on a 0..127 scale where 0
// is opaque) widened to 8 bits as 255-127*2, which leaves a single step of
// opacity. StyleConfig.BackgroundAlpha overrides it.
const TransparentAlpha uint8 = 1

// RGB is an opaque 8-bit color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// NRGBA returns the color with full opacity.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// GradientMode selects the function used to color ink pixels.
type GradientMode int

const (
	GradientNone GradientMode = iota
	GradientLinear
	GradientRadial
	GradientAngular
)

var gradientNames = map[GradientMode]string{
	GradientNone:    "none",
	GradientLinear:  "linear",
	GradientRadial:  "radial",
	GradientAngular: "angular",
}

func (m GradientMode) String() string {
	if name, ok := gradientNames[m]; ok {
		return name
	}
	return fmt.Sprintf("GradientMode(%d)", int(m))
}

// ParseGradientMode maps a user-facing name to a GradientMode.
//
// Accepted names are case-insensitive: "", "none", "solid", "linear",
// "radial", "angular" and "conical" (an alias for angular).
func ParseGradientMode(s string) (GradientMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "solid":
		return GradientNone, nil
	case "linear":
		return GradientLinear, nil
	case "radial":
		return GradientRadial, nil
	case "angular", "conical":
		return GradientAngular, nil
	}
	return GradientNone, fmt.Errorf("%w: unknown gradient mode %q", ErrInvalidStyleConfig, s)
}

// BlendSpace is the color space used to interpolate between the foreground
// and secondary colors once a gradient ratio is known.
type BlendSpace int

const (
	// BlendRGB interpolates each 8-bit channel linearly and truncates.
	BlendRGB BlendSpace = iota
	// BlendLab interpolates in CIE L*a*b*.
	BlendLab
	// BlendHCL interpolates in CIE LCh(ab), going the short way around hue.
	BlendHCL
)

func (b BlendSpace) String() string {
	switch b {
	case BlendRGB:
		return "rgb"
	case BlendLab:
		return "lab"
	case BlendHCL:
		return "hcl"
	}
	return fmt.Sprintf("BlendSpace(%d)", int(b))
}

// ParseBlendSpace maps "rgb" (or ""), "lab" and "hcl" to a BlendSpace.
func ParseBlendSpace(s string) (BlendSpace, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rgb":
		return BlendRGB, nil
	case "lab":
		return BlendLab, nil
	case "hcl":
		return BlendHCL, nil
	}
	return BlendRGB, fmt.Errorf("%w: unknown blend space %q", ErrInvalidStyleConfig, s)
}

// StyleConfig describes how a QR raster is restyled.
type StyleConfig struct {
	// Foreground colors every ink pixel when Gradient is GradientNone, and
	// is the gradient's starting color otherwise.
	Foreground RGB

	// Secondary is the gradient's end color. Required unless Gradient is
	// GradientNone.
	Secondary *RGB

	Gradient GradientMode

	// TransparentBackground replaces the alpha of background pixels with
	// the sentinel (TransparentAlpha unless BackgroundAlpha is set).
	TransparentBackground bool

	// BackgroundAlpha overrides TransparentAlpha. Nil keeps the default.
	BackgroundAlpha *uint8

	// BlendSpace defaults to BlendRGB.
	BlendSpace BlendSpace
}

// Validate reports whether the style can be rendered. Errors wrap
// ErrInvalidStyleConfig.
func (s StyleConfig) Validate() error {
	if _, ok := gradientNames[s.Gradient]; !ok {
		return fmt.Errorf("%w: unknown gradient mode %d", ErrInvalidStyleConfig, int(s.Gradient))
	}
	if s.Gradient != GradientNone && s.Secondary == nil {
		return fmt.Errorf("%w: %s gradient requires a secondary color", ErrInvalidStyleConfig, s.Gradient)
	}
	switch s.BlendSpace {
	case BlendRGB, BlendLab, BlendHCL:
	default:
		return fmt.Errorf("%w: unknown blend space %d", ErrInvalidStyleConfig, int(s.BlendSpace))
	}
	return nil
}

// backgroundAlpha returns the alpha written to transparent background pixels.
func (s StyleConfig) backgroundAlpha() uint8 {
	if s.BackgroundAlpha != nil {
		return *s.BackgroundAlpha
	}
	return TransparentAlpha
}
