package styling

import (
	"errors"
	"testing"
)

func TestParseGradientMode(t *testing.T) {
	tests := []struct {
		in   string
		want GradientMode
	}{
		{"", GradientNone},
		{"none", GradientNone},
		{"Solid", GradientNone},
		{"linear", GradientLinear},
		{" RADIAL ", GradientRadial},
		{"angular", GradientAngular},
		{"conical", GradientAngular},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGradientMode(tt.in)
			if err != nil {
				t.Fatalf("ParseGradientMode(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := ParseGradientMode("diagonal"); !errors.Is(err, ErrInvalidStyleConfig) {
		t.Errorf("unknown mode: got %v, want ErrInvalidStyleConfig", err)
	}
}

func TestParseBlendSpace(t *testing.T) {
	for in, want := range map[string]BlendSpace{"": BlendRGB, "rgb": BlendRGB, "LAB": BlendLab, "hcl": BlendHCL} {
		got, err := ParseBlendSpace(in)
		if err != nil || got != want {
			t.Errorf("ParseBlendSpace(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseBlendSpace("cmyk"); !errors.Is(err, ErrInvalidStyleConfig) {
		t.Errorf("unknown space: got %v", err)
	}
}

func TestStyleConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		style   StyleConfig
		wantErr bool
	}{
		{"zero value", StyleConfig{}, false},
		{"solid with secondary", StyleConfig{Secondary: rgbPtr(1, 1, 1)}, false},
		{"linear with secondary", StyleConfig{Gradient: GradientLinear, Secondary: rgbPtr(1, 1, 1)}, false},
		{"linear without secondary", StyleConfig{Gradient: GradientLinear}, true},
		{"radial without secondary", StyleConfig{Gradient: GradientRadial}, true},
		{"angular without secondary", StyleConfig{Gradient: GradientAngular}, true},
		{"unknown gradient", StyleConfig{Gradient: GradientMode(-1)}, true},
		{"unknown blend space", StyleConfig{BlendSpace: BlendSpace(9)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.style.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStyleConfig) {
					t.Errorf("got %v, want ErrInvalidStyleConfig", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRGB_Hex(t *testing.T) {
	if got := (RGB{255, 128, 0}).Hex(); got != "#FF8000" {
		t.Errorf("Hex: got %s, want #FF8000", got)
	}
}

func TestGradientMode_String(t *testing.T) {
	if GradientAngular.String() != "angular" {
		t.Errorf("got %s", GradientAngular.String())
	}
	if GradientMode(7).String() != "GradientMode(7)" {
		t.Errorf("got %s", GradientMode(7).String())
	}
}
