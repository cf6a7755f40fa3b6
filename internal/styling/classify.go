package styling

// InkThreshold is the exclusive upper bound for every RGB channel of an ink
// pixel. QR encoders draw pure black on pure white, so a fixed midpoint is
// enough.
const InkThreshold = 128

// PixelClass is the result of classifying one source pixel.
type PixelClass int

const (
	Background PixelClass = iota
	Ink
)

func (c PixelClass) String() string {
	if c == Ink {
		return "ink"
	}
	return "background"
}

// Classify decides whether a pixel belongs to the code's dark modules.
func Classify(r, g, b uint8) PixelClass {
	if r < InkThreshold && g < InkThreshold && b < InkThreshold {
		return Ink
	}
	return Background
}
