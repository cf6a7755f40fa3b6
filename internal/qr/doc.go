// Package qr produces the monochrome QR rasters the styling pipeline starts
// from, builds the content strings encoded into them, and reads content back
// out of finished images.
//
// # Encoders
//
// Two interchangeable backends implement Encoder:
//   - "skip2": github.com/skip2/go-qrcode (default)
//   - "boombuler": github.com/boombuler/barcode/qr
//
// Both emit black modules on white, ModuleSize pixels per module, with an
// optional four-module quiet zone. The output is always a raster the
// styling classifier can split cleanly into ink and background.
//
// With ModuleCircle, data modules are drawn as discs of radius CircleRadius
// while finder and alignment patterns stay square.
//
// # Payloads
//
// Payload builds the content for the supported code types: plain URL, SMS
// ("SMSTO:<phone>:<message>"), vCard 3.0 contact, and geographic location
// ("geo:<lat>,<lng>").
//
// # Scanning
//
// Scan decodes a QR code from any image with gozxing. Transparent pixels read
// as white, so styled codes with a transparent background scan the same as
// opaque ones.
package qr
