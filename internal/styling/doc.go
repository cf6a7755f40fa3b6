// Package styling turns a monochrome QR raster into a styled image.
//
// The package is a set of pure transformations over image rasters: every
// operation reads its input, allocates a new *image.NRGBA for its output and
// never writes into the caller's image. Work is split into small stages that
// the Pipeline sequences:
//
//  1. Classify: each source pixel is ink (all RGB channels below 128) or
//     background.
//  2. Recolor: ink pixels take the foreground color or a gradient color
//     evaluated at their coordinates; background pixels are left alone or
//     given the transparency sentinel alpha.
//  3. Composite: an optional logo is resampled to one fifth of the raster
//     width, centred and blended over the recolored pixels.
//  4. Encode: the final raster is handed to an Encoder (PNG, JPEG).
//
// # Coordinate System
//
// Rasters are normalized so that (0,0) is the top-left pixel, X grows to the
// right and Y grows downward. Gradient functions are evaluated in the same
// space, with the centre at (W/2, H/2).
//
// # Pixel Format
//
// Output rasters use straight (non-premultiplied) alpha. This lets a nearly
// transparent background pixel keep its original RGB, which premultiplied
// storage cannot represent.
//
// # Gradients
//
//   - none: every ink pixel becomes the foreground color
//   - linear: top (foreground) to bottom (secondary), ratio = y / H
//   - radial: centre (foreground) to corners (secondary)
//   - angular: a full sweep around the centre starting at the left edge
//
// The angular sweep jumps from secondary back to foreground along the ray
// pointing left from the centre, where atan2 wraps from +π to -π. The seam is
// not smoothed.
//
// # Thread Safety
//
// Nothing in this package holds mutable state between calls. A Pipeline is
// read-only after construction and may serve concurrent Render calls, as long
// as each call owns its input images.
package styling
