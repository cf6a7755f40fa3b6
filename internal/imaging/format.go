package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for content that no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format identifies an image encoding by content.
type Format string

const (
	FormatPNG     Format = "png"
	FormatJPEG    Format = "jpeg"
	FormatGIF     Format = "gif"
	FormatBMP     Format = "bmp"
	FormatWebP    Format = "webp"
	FormatSVG     Format = "svg"
	FormatUnknown Format = "unknown"
)

// DefaultSVGWidth is the raster width used for SVG input when the Decoder
// does not set one.
const DefaultSVGWidth = 512

// mimeFormats maps detected MIME types to formats, in detection order.
var mimeFormats = []struct {
	mime   string
	format Format
}{
	{"image/png", FormatPNG},
	{"image/jpeg", FormatJPEG},
	{"image/gif", FormatGIF},
	{"image/bmp", FormatBMP},
	{"image/webp", FormatWebP},
	{"image/svg+xml", FormatSVG},
}

// DetectFormat sniffs data and returns its format, or FormatUnknown.
func DetectFormat(data []byte) Format {
	mt := mimetype.Detect(data)
	for _, mf := range mimeFormats {
		if mt.Is(mf.mime) {
			return mf.format
		}
	}
	return FormatUnknown
}

type decodeFunc func(r io.Reader) (image.Image, error)

var rasterDecoders = map[Format]decodeFunc{
	FormatPNG:  png.Decode,
	FormatJPEG: jpeg.Decode,
	FormatGIF:  gif.Decode,
	FormatBMP:  bmp.Decode,
	FormatWebP: webp.Decode,
}

// Decoder turns encoded bytes into an image, selecting the decoder from the
// detected format. The zero value is ready to use.
type Decoder struct {
	// SVGWidth is the width SVG input is rasterized at. Zero means
	// DefaultSVGWidth.
	SVGWidth int
}

// Decode implements the logo decoder used by the styling pipeline.
func (d Decoder) Decode(data []byte) (image.Image, error) {
	img, _, err := d.DecodeFormat(data)
	return img, err
}

// DecodeFormat decodes data and also reports the detected format.
//
// Errors:
//   - ErrUnsupportedFormat when the content is not a known image format
//   - a wrapped decoder error when the content is malformed
func (d Decoder) DecodeFormat(data []byte) (image.Image, Format, error) {
	if len(data) == 0 {
		return nil, FormatUnknown, fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	}

	format := DetectFormat(data)
	if format == FormatSVG {
		img, err := rasterizeSVG(bytes.NewReader(data), d.svgWidth())
		if err != nil {
			return nil, format, fmt.Errorf("failed to decode svg: %w", err)
		}
		return img, format, nil
	}

	decode, ok := rasterDecoders[format]
	if !ok {
		return nil, format, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimetype.Detect(data).String())
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode %s: %w", format, err)
	}
	return img, format, nil
}

func (d Decoder) svgWidth() int {
	if d.SVGWidth > 0 {
		return d.SVGWidth
	}
	return DefaultSVGWidth
}
