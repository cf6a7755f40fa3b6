package qr

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/boombuler/barcode"
	bqr "github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrUnknownBackend is returned by NewEncoder for an unrecognized name.
	ErrUnknownBackend = errors.New("unknown qr backend")

	// ErrInvalidLevel is returned by ParseLevel for an unrecognized level.
	ErrInvalidLevel = errors.New("invalid error correction level")

	// ErrEncode wraps failures of the underlying QR library, typically
	// content too long for the chosen level.
	ErrEncode = errors.New("qr encode failed")
)

const (
	// DefaultModuleSize is the width in pixels of one module.
	DefaultModuleSize = 10

	// QuietZoneModules is the width of the quiet zone in modules.
	QuietZoneModules = 4

	// MaxModuleSize bounds ModuleSize so a single request cannot allocate an
	// unbounded raster.
	MaxModuleSize = 100
)

// Level is the error correction level of a code.
type Level int

const (
	LevelL Level = iota // ~7% recovery
	LevelM              // ~15% recovery
	LevelQ              // ~25% recovery
	LevelH              // ~30% recovery
)

var levelNames = map[Level]string{
	LevelL: "L",
	LevelM: "M",
	LevelQ: "Q",
	LevelH: "H",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel parses "L", "M", "Q" or "H" (case-insensitive). Empty input
// yields LevelM.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return LevelM, nil
	case "L", "LOW":
		return LevelL, nil
	case "M", "MEDIUM":
		return LevelM, nil
	case "Q", "QUARTILE":
		return LevelQ, nil
	case "H", "HIGH":
		return LevelH, nil
	}
	return LevelM, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// EncodeOptions controls raster generation.
type EncodeOptions struct {
	Level      Level
	ModuleSize int  // pixels per module; zero means DefaultModuleSize
	QuietZone  bool // add a QuietZoneModules-wide white border

	// ModuleStyle is the shape of dark data modules; zero draws squares.
	ModuleStyle ModuleStyle
}

// DefaultEncodeOptions returns level M, DefaultModuleSize and a quiet zone.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Level:      LevelM,
		ModuleSize: DefaultModuleSize,
		QuietZone:  true,
	}
}

func (o EncodeOptions) moduleSize() (int, error) {
	switch {
	case o.ModuleSize == 0:
		return DefaultModuleSize, nil
	case o.ModuleSize < 0 || o.ModuleSize > MaxModuleSize:
		return 0, fmt.Errorf("module size must be between 1 and %d, got %d", MaxModuleSize, o.ModuleSize)
	}
	return o.ModuleSize, nil
}

func (o EncodeOptions) check() (int, error) {
	if err := o.ModuleStyle.validate(); err != nil {
		return 0, err
	}
	return o.moduleSize()
}

// Encoder renders content as a black-on-white QR raster.
type Encoder interface {
	Encode(content string, opts EncodeOptions) (image.Image, error)
	Name() string
}

// Backends lists the encoder names accepted by NewEncoder.
var Backends = []string{"skip2", "boombuler"}

// NewEncoder returns the encoder backend called name. Empty name selects
// skip2.
func NewEncoder(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "skip2":
		return Skip2Encoder{}, nil
	case "boombuler":
		return BoombulerEncoder{}, nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, name, strings.Join(Backends, ", "))
}

// Skip2Encoder renders with github.com/skip2/go-qrcode.
type Skip2Encoder struct{}

func (Skip2Encoder) Name() string { return "skip2" }

func (Skip2Encoder) Encode(content string, opts EncodeOptions) (image.Image, error) {
	if content == "" {
		return nil, ErrEmptyPayload
	}
	ms, err := opts.check()
	if err != nil {
		return nil, err
	}

	q, err := qrcode.New(content, skip2Level(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if opts.ModuleStyle == ModuleCircle {
		q.DisableBorder = true
		return drawCircleModules(q.Bitmap(), ms, opts.QuietZone), nil
	}
	q.ForegroundColor = color.Black
	q.BackgroundColor = color.White
	q.DisableBorder = !opts.QuietZone

	// A negative size is interpreted as pixels per module.
	return q.Image(-ms), nil
}

func skip2Level(l Level) qrcode.RecoveryLevel {
	switch l {
	case LevelL:
		return qrcode.Low
	case LevelQ:
		return qrcode.High
	case LevelH:
		return qrcode.Highest
	}
	return qrcode.Medium
}

// BoombulerEncoder renders with github.com/boombuler/barcode/qr. The
// library emits one pixel per module with no border, so the result is
// scaled and the quiet zone added here.
type BoombulerEncoder struct{}

func (BoombulerEncoder) Name() string { return "boombuler" }

func (BoombulerEncoder) Encode(content string, opts EncodeOptions) (image.Image, error) {
	if content == "" {
		return nil, ErrEmptyPayload
	}
	ms, err := opts.check()
	if err != nil {
		return nil, err
	}

	code, err := bqr.Encode(content, boombulerLevel(opts.Level), bqr.Auto)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	modules := code.Bounds().Dx()
	if opts.ModuleStyle == ModuleCircle {
		return drawCircleModules(boombulerMatrix(code), ms, opts.QuietZone), nil
	}
	scaled, err := barcode.Scale(code, modules*ms, modules*ms)
	if err != nil {
		return nil, fmt.Errorf("%w: scale: %w", ErrEncode, err)
	}
	if !opts.QuietZone {
		return imaging.Clone(scaled), nil
	}

	border := QuietZoneModules * ms
	side := modules*ms + 2*border
	canvas := imaging.New(side, side, color.White)
	return imaging.Paste(canvas, scaled, image.Pt(border, border)), nil
}

func boombulerMatrix(code barcode.Barcode) [][]bool {
	b := code.Bounds()
	matrix := make([][]bool, b.Dy())
	for y := range matrix {
		matrix[y] = make([]bool, b.Dx())
		for x := range matrix[y] {
			r, _, _, _ := code.At(b.Min.X+x, b.Min.Y+y).RGBA()
			matrix[y][x] = r < 0x8000
		}
	}
	return matrix
}

func boombulerLevel(l Level) bqr.ErrorCorrectionLevel {
	switch l {
	case LevelL:
		return bqr.L
	case LevelQ:
		return bqr.Q
	case LevelH:
		return bqr.H
	}
	return bqr.M
}
