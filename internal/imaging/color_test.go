package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.NRGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.NRGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.NRGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.NRGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FF0000", color.NRGBA{255, 0, 0, 255}, false},
		{"00ff00", color.NRGBA{0, 255, 0, 255}, false},
		{"#1a2B3c", color.NRGBA{0x1a, 0x2b, 0x3c, 255}, false},
		{"  #000000 ", color.NRGBA{0, 0, 0, 255}, false},
		{"#FFF", color.NRGBA{255, 255, 255, 255}, false},
		{"", color.NRGBA{}, true},
		{"#GG0000", color.NRGBA{}, true},
		{"red", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHexColor(%q) should fail, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB != (RGBColor{255, 128, 64}) {
		t.Errorf("RGB: got %+v, want (255,128,64)", result.RGB)
	}
	if result.RGBA != (RGBAColor{255, 128, 64, 255}) {
		t.Errorf("RGBA: got %+v, want (255,128,64,255)", result.RGBA)
	}
}

func TestSampleColor_Unpremultiplied(t *testing.T) {
	// A styled background pixel: white with the transparency sentinel alpha.
	img := createInMemoryImage(4, 4, color.NRGBA{255, 255, 255, 1})

	result, err := SampleColor(img, 1, 1)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#FFFFFF" {
		t.Errorf("Hex: got %s, want #FFFFFF", result.Hex)
	}
	if result.RGBA.A != 1 {
		t.Errorf("alpha: got %d, want 1", result.RGBA.A)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		color   color.NRGBA
		wantHex string
		wantHSL HSLColor
	}{
		{"pure red", color.NRGBA{255, 0, 0, 255}, "#FF0000", HSLColor{0, 100, 50}},
		{"pure green", color.NRGBA{0, 255, 0, 255}, "#00FF00", HSLColor{120, 100, 50}},
		{"pure blue", color.NRGBA{0, 0, 255, 255}, "#0000FF", HSLColor{240, 100, 50}},
		{"white", color.NRGBA{255, 255, 255, 255}, "#FFFFFF", HSLColor{0, 0, 100}},
		{"black", color.NRGBA{0, 0, 0, 255}, "#000000", HSLColor{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.color)
			result, err := SampleColor(img, 5, 5)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSL != tt.wantHSL {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.wantHSL)
			}
		})
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleColor(img, tt.x, tt.y); err == nil {
				t.Error("SampleColor should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestSampleColorsMulti(t *testing.T) {
	img := createPatternImage(100, 100)

	points := []LabeledPoint{
		{X: 10, Y: 10, Label: "red"},
		{X: 90, Y: 10, Label: "green"},
		{X: 10, Y: 90, Label: "blue"},
		{X: 90, Y: 90},
	}

	result, err := SampleColorsMulti(img, points)
	if err != nil {
		t.Fatalf("SampleColorsMulti failed: %v", err)
	}
	if len(result.Samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(result.Samples))
	}

	wantHex := []string{"#FF0000", "#00FF00", "#0000FF", "#FFFFFF"}
	for i, s := range result.Samples {
		if s.Color.Hex != wantHex[i] {
			t.Errorf("sample %d: got %s, want %s", i, s.Color.Hex, wantHex[i])
		}
		if s.Label != points[i].Label {
			t.Errorf("sample %d: label %q, want %q", i, s.Label, points[i].Label)
		}
	}
}

func TestSampleColorsMulti_OutOfBounds(t *testing.T) {
	img := createPatternImage(10, 10)
	points := []LabeledPoint{{X: 1, Y: 1}, {X: 10, Y: 1}}

	result, err := SampleColorsMulti(img, points)
	if err == nil {
		t.Error("SampleColorsMulti should fail when a point is out of bounds")
	}
	if result != nil {
		t.Error("no partial result expected on error")
	}
}

func TestDominantColors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			switch {
			case y < 6:
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			case y < 9:
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 1})
			default:
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}

	result, err := DominantColors(img, 5)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(result.Colors) != 3 {
		t.Fatalf("expected 3 colors, got %d", len(result.Colors))
	}

	want := []struct {
		hex   string
		alpha uint8
		pct   float64
	}{
		{"#000000", 255, 60},
		{"#FFFFFF", 1, 30},
		{"#FFFFFF", 255, 10},
	}
	for i, w := range want {
		got := result.Colors[i]
		if got.Hex != w.hex || got.Alpha != w.alpha || math.Abs(got.Percentage-w.pct) > 1e-9 {
			t.Errorf("color %d: got %s a=%d %.1f%%, want %s a=%d %.1f%%",
				i, got.Hex, got.Alpha, got.Percentage, w.hex, w.alpha, w.pct)
		}
	}
}

func TestDominantColors_Limit(t *testing.T) {
	img := createPatternImage(10, 10)

	result, err := DominantColors(img, 2)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(result.Colors) != 2 {
		t.Errorf("expected 2 colors, got %d", len(result.Colors))
	}
	// Four equal quadrants tie; ties are ordered by hex.
	if result.Colors[0].Hex != "#0000FF" || result.Colors[1].Hex != "#00FF00" {
		t.Errorf("unexpected order: %s, %s", result.Colors[0].Hex, result.Colors[1].Hex)
	}
}

func TestDominantColors_InvalidCount(t *testing.T) {
	img := createPatternImage(4, 4)
	if _, err := DominantColors(img, 0); err == nil {
		t.Error("DominantColors should reject count 0")
	}
}

func TestRgbToHSL(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSLColor
	}{
		{"red", 255, 0, 0, HSLColor{0, 100, 50}},
		{"yellow", 255, 255, 0, HSLColor{60, 100, 50}},
		{"cyan", 0, 255, 255, HSLColor{180, 100, 50}},
		{"magenta", 255, 0, 255, HSLColor{300, 100, 50}},
		{"black", 0, 0, 0, HSLColor{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rgbToHSL(tt.r, tt.g, tt.b)
			if abs(got.H-tt.want.H) > 1 || abs(got.S-tt.want.S) > 1 || abs(got.L-tt.want.L) > 1 {
				t.Errorf("rgbToHSL(%d,%d,%d) = %+v, want %+v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
