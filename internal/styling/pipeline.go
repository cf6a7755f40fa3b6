package styling

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// LogoDecoder turns raw logo bytes into an image. Implementations pick a
// decoder from the detected format.
type LogoDecoder interface {
	Decode(data []byte) (image.Image, error)
}

// Encoder serializes a finished raster.
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
}

// LogoAsset is an optional logo for one render. Image takes precedence; Data
// is only decoded when Image is nil.
type LogoAsset struct {
	Image image.Image
	Data  []byte
}

// RenderRequest is everything a single render needs. The Pipeline keeps no
// reference to it after Render returns.
type RenderRequest struct {
	QR    image.Image
	Style StyleConfig
	Logo  *LogoAsset
}

// Result is the output of a render.
type Result struct {
	Image *image.NRGBA

	// LogoRect is the area the logo was written to; empty when no logo was
	// applied.
	LogoRect    image.Rectangle
	LogoApplied bool

	// LogoErr explains why a supplied logo was skipped. It wraps
	// ErrLogoDecode and never causes Render itself to fail.
	LogoErr error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogoDecoder sets the decoder used for LogoAsset.Data.
func WithLogoDecoder(d LogoDecoder) Option {
	return func(p *Pipeline) { p.decoder = d }
}

// WithLogger sets the log entry used for warnings and timings.
func WithLogger(l *logrus.Entry) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithParallel splits the recolor pass across goroutines by row range.
func WithParallel(on bool) Option {
	return func(p *Pipeline) { p.parallel = on }
}

// WithLogoFilter sets the filter used to resample logos.
func WithLogoFilter(f imaging.ResampleFilter) Option {
	return func(p *Pipeline) { p.filter = f }
}

// Pipeline runs Recolor and then, when a logo is supplied, CompositeLogo.
// It is immutable after NewPipeline and safe for concurrent use.
type Pipeline struct {
	decoder  LogoDecoder
	log      *logrus.Entry
	parallel bool
	filter   imaging.ResampleFilter
}

// NewPipeline builds a Pipeline. Without WithLogoDecoder, logos must be
// supplied pre-decoded.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		log:    logrus.WithField("component", "pipeline"),
		filter: DefaultLogoFilter,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render styles req.QR and overlays the logo, if any.
//
// Style and raster problems fail before any pixel work. A logo that cannot be
// decoded or composited is skipped: the recolored raster is returned and
// Result.LogoErr records why.
func (p *Pipeline) Render(req RenderRequest) (*Result, error) {
	start := time.Now()

	if err := req.Style.Validate(); err != nil {
		return nil, err
	}
	recolored, err := recolor(req.QR, req.Style, p.parallel)
	if err != nil {
		return nil, fmt.Errorf("recolor: %w", err)
	}

	res := &Result{Image: recolored}
	if req.Logo != nil {
		p.applyLogo(res, req.Logo)
	}

	p.log.WithFields(logrus.Fields{
		"width":    recolored.Rect.Dx(),
		"height":   recolored.Rect.Dy(),
		"gradient": req.Style.Gradient.String(),
		"logo":     res.LogoApplied,
		"elapsed":  time.Since(start).String(),
	}).Debug("rendered")
	return res, nil
}

func (p *Pipeline) applyLogo(res *Result, asset *LogoAsset) {
	logo, err := p.decodeLogo(asset)
	if err == nil {
		var out *image.NRGBA
		var rect image.Rectangle
		out, rect, err = CompositeLogo(res.Image, logo, p.filter)
		if err == nil {
			res.Image, res.LogoRect, res.LogoApplied = out, rect, true
			return
		}
		if !errors.Is(err, ErrLogoDecode) {
			err = fmt.Errorf("%w: %w", ErrLogoDecode, err)
		}
	}
	res.LogoErr = err
	p.log.WithError(err).Warn("logo skipped")
}

func (p *Pipeline) decodeLogo(asset *LogoAsset) (image.Image, error) {
	if asset.Image != nil {
		return asset.Image, nil
	}
	if len(asset.Data) == 0 {
		return nil, fmt.Errorf("%w: empty logo data", ErrLogoDecode)
	}
	if p.decoder == nil {
		return nil, fmt.Errorf("%w: no logo decoder configured", ErrLogoDecode)
	}
	img, err := p.decoder.Decode(asset.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogoDecode, err)
	}
	return img, nil
}

// RenderTo renders req and writes the result with enc.
func (p *Pipeline) RenderTo(w io.Writer, enc Encoder, req RenderRequest) (*Result, error) {
	res, err := p.Render(req)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(w, res.Image); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return res, nil
}
