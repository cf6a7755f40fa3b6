// Package config loads style definitions and process settings for qrstyle.
//
// Styles can be written as YAML files or passed as JSON tool arguments; both
// map onto StyleSpec, whose fields are the human-facing string forms of
// styling.StyleConfig. Process settings come from QRSTYLE_* environment
// variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/qrstyle/internal/imaging"
	"github.com/ironsheep/qrstyle/internal/styling"
)

// DefaultForeground is used when a StyleSpec leaves Foreground empty.
const DefaultForeground = "#000000"

// StyleSpec is the serialized form of a style.
type StyleSpec struct {
	Foreground            string `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Secondary             string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Gradient              string `json:"gradient,omitempty" yaml:"gradient,omitempty"`
	TransparentBackground bool   `json:"transparent_background,omitempty" yaml:"transparent_background,omitempty"`
	BackgroundAlpha       *int   `json:"background_alpha,omitempty" yaml:"background_alpha,omitempty"`
	BlendSpace            string `json:"blend_space,omitempty" yaml:"blend_space,omitempty"`
}

// StyleConfig converts s into a validated styling.StyleConfig.
// Every error wraps styling.ErrInvalidStyleConfig.
func (s StyleSpec) StyleConfig() (styling.StyleConfig, error) {
	var cfg styling.StyleConfig

	fg := s.Foreground
	if strings.TrimSpace(fg) == "" {
		fg = DefaultForeground
	}
	c, err := parseRGB("foreground", fg)
	if err != nil {
		return cfg, err
	}
	cfg.Foreground = c

	if strings.TrimSpace(s.Secondary) != "" {
		sc, err := parseRGB("secondary", s.Secondary)
		if err != nil {
			return cfg, err
		}
		cfg.Secondary = &sc
	}

	if cfg.Gradient, err = styling.ParseGradientMode(s.Gradient); err != nil {
		return cfg, err
	}
	if cfg.BlendSpace, err = styling.ParseBlendSpace(s.BlendSpace); err != nil {
		return cfg, err
	}

	cfg.TransparentBackground = s.TransparentBackground
	if s.BackgroundAlpha != nil {
		a := *s.BackgroundAlpha
		if a < 0 || a > 255 {
			return cfg, fmt.Errorf("%w: background_alpha %d outside 0-255", styling.ErrInvalidStyleConfig, a)
		}
		alpha := uint8(a)
		cfg.BackgroundAlpha = &alpha
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseRGB(field, hex string) (styling.RGB, error) {
	c, err := imaging.ParseHexColor(hex)
	if err != nil {
		return styling.RGB{}, fmt.Errorf("%w: %s: %w", styling.ErrInvalidStyleConfig, field, err)
	}
	return styling.RGB{R: c.R, G: c.G, B: c.B}, nil
}

// Merge returns s with every field set in override replacing its own.
// Booleans can only be switched on by an override.
func (s StyleSpec) Merge(override StyleSpec) StyleSpec {
	out := s
	if override.Foreground != "" {
		out.Foreground = override.Foreground
	}
	if override.Secondary != "" {
		out.Secondary = override.Secondary
	}
	if override.Gradient != "" {
		out.Gradient = override.Gradient
	}
	if override.TransparentBackground {
		out.TransparentBackground = true
	}
	if override.BackgroundAlpha != nil {
		out.BackgroundAlpha = override.BackgroundAlpha
	}
	if override.BlendSpace != "" {
		out.BlendSpace = override.BlendSpace
	}
	return out
}

// ErrStyleFile wraps every failure to read or parse a style file.
var ErrStyleFile = errors.New("invalid style file")

// LoadStyleFile reads a YAML style file. Unknown keys are rejected so a typo
// does not silently fall back to a default.
func LoadStyleFile(path string) (StyleSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StyleSpec{}, fmt.Errorf("%w: %w", ErrStyleFile, err)
	}
	return ParseStyle(data)
}

// ParseStyle decodes a YAML (or JSON, which YAML accepts) style document.
// An empty document yields the zero StyleSpec.
func ParseStyle(data []byte) (StyleSpec, error) {
	var spec StyleSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return StyleSpec{}, fmt.Errorf("%w: %w", ErrStyleFile, err)
	}
	return spec, nil
}

// Env holds process settings read from the environment.
type Env struct {
	LogLevel   string // QRSTYLE_LOG_LEVEL, default "info"
	ModuleSize int    // QRSTYLE_MODULE_SIZE, 0 when unset
	Backend    string // QRSTYLE_BACKEND, empty when unset
	Parallel   bool   // QRSTYLE_PARALLEL
}

// FromEnv reads Env using getenv, normally os.Getenv. Malformed numeric or
// boolean values are reported rather than ignored.
func FromEnv(getenv func(string) string) (Env, error) {
	env := Env{
		LogLevel: strings.TrimSpace(getenv("QRSTYLE_LOG_LEVEL")),
		Backend:  strings.TrimSpace(getenv("QRSTYLE_BACKEND")),
	}
	if env.LogLevel == "" {
		env.LogLevel = "info"
	}

	if v := strings.TrimSpace(getenv("QRSTYLE_MODULE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return env, fmt.Errorf("QRSTYLE_MODULE_SIZE must be a positive integer, got %q", v)
		}
		env.ModuleSize = n
	}

	if v := strings.TrimSpace(getenv("QRSTYLE_PARALLEL")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return env, fmt.Errorf("QRSTYLE_PARALLEL must be a boolean, got %q", v)
		}
		env.Parallel = b
	}

	return env, nil
}

// SetupLogging configures the standard logrus logger: text output with full
// timestamps written to w, at the named level.
func SetupLogging(level string, w io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
