package qr

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNoCode is returned by Scan when no QR code can be decoded.
var ErrNoCode = errors.New("no QR code found in image")

// Scan decodes the first QR code found in img.
//
// The hybrid binarizer is tried first; the global histogram binarizer is the
// fallback for images with large flat areas, which gradient styling tends to
// produce.
func Scan(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", fmt.Errorf("%w: empty image", ErrNoCode)
	}

	src := gozxing.NewLuminanceSourceFromImage(img)
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	reader := qrcode.NewQRCodeReader()

	var lastErr error
	for _, binarizer := range []gozxing.Binarizer{
		gozxing.NewHybridBinarizer(src),
		gozxing.NewGlobalHistgramBinarizer(src),
	} {
		bmp, err := gozxing.NewBinaryBitmap(binarizer)
		if err != nil {
			lastErr = err
			continue
		}
		result, err := reader.Decode(bmp, hints)
		if err != nil {
			lastErr = err
			continue
		}
		return result.GetText(), nil
	}
	return "", fmt.Errorf("%w: %w", ErrNoCode, lastErr)
}
