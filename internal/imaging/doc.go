// Package imaging provides the image codecs and inspection helpers around the
// styling core.
//
// The styling package works on in-memory rasters only. Everything that turns
// bytes into rasters and back lives here: format detection, a decoder per
// supported format, PNG and JPEG encoders, hex color parsing, pixel
// sampling and region crops for inspecting rendered codes.
//
// # Formats
//
// The format of an input is detected from its content, never from a file
// extension. DetectFormat is the only place that does this; every caller goes
// through it and then dispatches on the returned Format:
//   - png, jpeg, gif: standard library decoders
//   - bmp, webp: golang.org/x/image decoders
//   - svg: rasterized with oksvg/rasterx at a configurable width
//
// Anything else fails with ErrUnsupportedFormat.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X growing
// rightward and Y growing downward.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Decoders and encoders are values
// without mutable state and may be shared between goroutines.
//
// # Color Representation
//
// Colors are reported as:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
package imaging
