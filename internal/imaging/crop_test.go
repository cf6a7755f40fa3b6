package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func decodeCrop(t *testing.T, result *CropResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Crop(img, 0, 0, 50, 50, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	// Sample center pixel - should be red
	r, g, b, _ := decodeCrop(t, result).At(25, 25).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("cropped image color: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestCrop_Scale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name         string
		scale        float64
		wantW, wantH int
	}{
		{"zero means one", 0, 50, 50},
		{"identity", 1, 50, 50},
		{"zoom in", 2, 100, 100},
		{"zoom out", 0.5, 25, 25},
		{"tiny never empty", 0.001, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Crop(img, 0, 0, 50, 50, tt.scale)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("scaled dimensions: got %dx%d, want %dx%d", result.Width, result.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCrop_ZoomKeepsEdgesSharp(t *testing.T) {
	img := createPatternImage(4, 4)

	result, err := Crop(img, 0, 0, 4, 4, 10)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	out := decodeCrop(t, result)

	// Pixels either side of the red/green boundary stay pure.
	for _, tc := range []struct {
		x    int
		want color.NRGBA
	}{
		{19, color.NRGBA{255, 0, 0, 255}},
		{20, color.NRGBA{0, 255, 0, 255}},
	} {
		got := color.NRGBAModel.Convert(out.At(tc.x, 5)).(color.NRGBA)
		if got != tc.want {
			t.Errorf("pixel (%d,5): got %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestCrop_KeepsAlpha(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{255, 255, 255, 1})

	result, err := Crop(img, 0, 0, 10, 10, 1)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	got := color.NRGBAModel.Convert(decodeCrop(t, result).At(5, 5)).(color.NRGBA)
	if got.A != 1 || got.R != 255 {
		t.Errorf("crop pixel: got %v, want white with alpha 1", got)
	}
}

func TestCrop_Errors(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		scale          float64
	}{
		{"x1 negative", -1, 0, 50, 50, 1},
		{"y1 negative", 0, -1, 50, 50, 1},
		{"x2 too large", 0, 0, 101, 50, 1},
		{"y2 too large", 0, 0, 50, 101, 1},
		{"x1 >= x2", 50, 0, 50, 50, 1},
		{"y1 > y2", 0, 60, 50, 50, 1},
		{"negative scale", 0, 0, 50, 50, -1},
		{"scale too large", 0, 0, 50, 50, MaxCropScale + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2, tt.scale); err == nil {
				t.Error("Crop should fail")
			}
		})
	}
}

func TestRegionRect(t *testing.T) {
	bounds := image.Rect(0, 0, 250, 250)

	tests := []struct {
		region string
		want   image.Rectangle
	}{
		{"top-left", image.Rect(0, 0, 125, 125)},
		{"top-right", image.Rect(125, 0, 250, 125)},
		{"bottom-left", image.Rect(0, 125, 125, 250)},
		{"bottom-right", image.Rect(125, 125, 250, 250)},
		{"center", image.Rect(62, 62, 188, 188)},
		{"logo", image.Rect(100, 100, 150, 150)},
		{"LOGO", image.Rect(100, 100, 150, 150)},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			got, err := RegionRect(bounds, tt.region)
			if err != nil {
				t.Fatalf("RegionRect failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := RegionRect(bounds, "middle"); err == nil {
		t.Error("RegionRect should fail for an unknown region")
	}
}

func TestRegionRect_OffsetBounds(t *testing.T) {
	got, err := RegionRect(image.Rect(10, 20, 110, 120), "top-left")
	if err != nil {
		t.Fatalf("RegionRect failed: %v", err)
	}
	if want := image.Rect(10, 20, 60, 70); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCropRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		region  string
		wantHex string
	}{
		{"top-left", "#FF0000"},
		{"top-right", "#00FF00"},
		{"bottom-left", "#0000FF"},
		{"bottom-right", "#FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			result, err := CropRegion(img, tt.region, 1.0)
			if err != nil {
				t.Fatalf("CropRegion(%s) failed: %v", tt.region, err)
			}
			out := decodeCrop(t, result)
			c, err := SampleColor(out, result.Width/2, result.Height/2)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if c.Hex != tt.wantHex {
				t.Errorf("color in %s: got %s, want %s", tt.region, c.Hex, tt.wantHex)
			}
		})
	}

	if _, err := CropRegion(img, "nowhere", 1); err == nil {
		t.Error("CropRegion should fail for an unknown region")
	}
}
