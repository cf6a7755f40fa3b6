package styling

import "image/color"

// ApplyTransparency returns the background pixel px as it should appear in
// the output. With TransparentBackground unset the pixel is returned
// unchanged; otherwise only its alpha is replaced by the sentinel, and RGB is
// kept.
func ApplyTransparency(px color.NRGBA, style StyleConfig) color.NRGBA {
	if !style.TransparentBackground {
		return px
	}
	px.A = style.backgroundAlpha()
	return px
}
