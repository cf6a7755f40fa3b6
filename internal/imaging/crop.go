package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// MaxCropScale bounds the zoom factor of Crop.
const MaxCropScale = 20.0

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts the region (x1,y1)-(x2,y2) of img, scales it and returns it
// as a base64 PNG. Alpha is kept, so a transparent background stays
// transparent in the crop.
//
// Scaling uses nearest neighbour: zooming into a code should show module
// edges as they are, not smoothed. A scale of 0 means 1.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	if scale == 0 {
		scale = 1
	}
	if scale < 0 || scale > MaxCropScale {
		return nil, fmt.Errorf("scale %g outside (0, %g]", scale, MaxCropScale)
	}

	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))
	if scale != 1 {
		w := max(int(float64(cropped.Bounds().Dx())*scale), 1)
		h := max(int(float64(cropped.Bounds().Dy())*scale), 1)
		cropped = imaging.Resize(cropped, w, h, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	enc := PNGEncoder{}
	if err := enc.Encode(&buf, cropped); err != nil {
		return nil, err
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    enc.MimeType(),
	}, nil
}

// CropRegions lists the names accepted by RegionRect.
var CropRegions = []string{"top-left", "top-right", "bottom-left", "bottom-right", "center", "logo"}

// RegionRect returns the rectangle of a named region of bounds.
//
// The quadrants hold the three finder patterns and the bottom-right
// alignment area. "center" is the middle half on both axes. "logo" is the
// centred square one fifth of the width on each side, where a logo is
// composited.
func RegionRect(bounds image.Rectangle, region string) (image.Rectangle, error) {
	w, h := bounds.Dx(), bounds.Dy()
	midX, midY := w/2, h/2

	var r image.Rectangle
	switch strings.ToLower(region) {
	case "top-left":
		r = image.Rect(0, 0, midX, midY)
	case "top-right":
		r = image.Rect(midX, 0, w, midY)
	case "bottom-left":
		r = image.Rect(0, midY, midX, h)
	case "bottom-right":
		r = image.Rect(midX, midY, w, h)
	case "center":
		r = image.Rect(w/4, h/4, w-w/4, h-h/4)
	case "logo":
		side := max(w/5, 1)
		x0, y0 := (w-side)/2, (h-side)/2
		r = image.Rect(x0, y0, x0+side, y0+side).Intersect(image.Rect(0, 0, w, h))
	default:
		return image.Rectangle{}, fmt.Errorf("unknown region %q (want one of %s)", region, strings.Join(CropRegions, ", "))
	}
	return r.Add(bounds.Min), nil
}

// CropRegion crops a named region, see RegionRect.
func CropRegion(img image.Image, region string, scale float64) (*CropResult, error) {
	r, err := RegionRect(img.Bounds(), region)
	if err != nil {
		return nil, err
	}
	return Crop(img, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, scale)
}
