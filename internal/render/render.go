// Package render runs a complete styled-code job: encode content as a QR
// raster, restyle it, composite an optional logo, serialize it, and
// optionally read it back to confirm it still scans.
//
// The CLI and the MCP server both go through Run so their output is the
// same for the same inputs.
package render

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/qrstyle/internal/imaging"
	"github.com/ironsheep/qrstyle/internal/qr"
	"github.com/ironsheep/qrstyle/internal/styling"
)

// Options describes one render job.
type Options struct {
	Content string
	Style   styling.StyleConfig

	// Logo holds encoded logo bytes in any format imaging.Decoder accepts.
	// Nil means no logo.
	Logo []byte

	Backend string // qr encoder backend, see qr.NewEncoder
	QR      qr.EncodeOptions
	Format  string // output format, see imaging.NewEncoder

	// Verify scans the finished image and compares it with Content.
	Verify bool
}

// Result is the output of Run.
type Result struct {
	Data      []byte
	MimeType  string
	Extension string // file extension for MimeType, with the dot
	Width     int
	Height    int

	LogoApplied bool
	LogoErr     error

	// Verified is set only when Options.Verify was requested and the
	// scanned text matched Content. Decoded holds whatever was read.
	Verified bool
	Decoded  string
	ScanErr  error
}

// Renderer ties a styling pipeline to the qr and imaging packages.
// It is safe for concurrent use.
type Renderer struct {
	pipeline *styling.Pipeline
	log      *logrus.Entry
}

// New returns a Renderer using pipeline. A nil log uses the standard logger.
func New(pipeline *styling.Pipeline, log *logrus.Entry) *Renderer {
	if log == nil {
		log = logrus.WithField("component", "render")
	}
	return &Renderer{pipeline: pipeline, log: log}
}

// NewDefault returns a Renderer over a pipeline that decodes logos with
// imaging.Decoder.
func NewDefault(parallel bool, log *logrus.Entry) *Renderer {
	opts := []styling.Option{
		styling.WithLogoDecoder(imaging.Decoder{}),
		styling.WithParallel(parallel),
	}
	if log != nil {
		opts = append(opts, styling.WithLogger(log))
	}
	return New(styling.NewPipeline(opts...), log)
}

// Run executes the job: qr encode → style → encode output → verify.
//
// Content, backend, format and style problems fail the job. A logo that
// cannot be used is reported in Result.LogoErr, and a failed verification
// in Result.ScanErr; neither fails the job.
func (r *Renderer) Run(opts Options) (*Result, error) {
	if opts.Content == "" {
		return nil, qr.ErrEmptyPayload
	}
	if err := opts.Style.Validate(); err != nil {
		return nil, err
	}

	qrEnc, err := qr.NewEncoder(opts.Backend)
	if err != nil {
		return nil, err
	}
	outEnc, err := imaging.NewEncoder(opts.Format)
	if err != nil {
		return nil, err
	}

	raw, err := qrEnc.Encode(opts.Content, opts.QR)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}

	req := styling.RenderRequest{QR: raw, Style: opts.Style}
	if opts.Logo != nil {
		req.Logo = &styling.LogoAsset{Data: opts.Logo}
	}

	var buf bytes.Buffer
	styled, err := r.pipeline.RenderTo(&buf, outEnc, req)
	if err != nil {
		return nil, fmt.Errorf("style: %w", err)
	}

	res := &Result{
		Data:        buf.Bytes(),
		MimeType:    outEnc.MimeType(),
		Extension:   outEnc.Extension(),
		Width:       styled.Image.Rect.Dx(),
		Height:      styled.Image.Rect.Dy(),
		LogoApplied: styled.LogoApplied,
		LogoErr:     styled.LogoErr,
	}

	if opts.Verify {
		res.Decoded, res.ScanErr = qr.Scan(styled.Image)
		res.Verified = res.ScanErr == nil && res.Decoded == opts.Content
		if !res.Verified {
			r.log.WithFields(logrus.Fields{
				"backend": qrEnc.Name(),
				"decoded": res.Decoded,
			}).WithError(res.ScanErr).Warn("styled code did not read back")
		}
	}

	r.log.WithFields(logrus.Fields{
		"backend": qrEnc.Name(),
		"level":   opts.QR.Level.String(),
		"format":  outEnc.MimeType(),
		"bytes":   len(res.Data),
	}).Debug("render complete")

	return res, nil
}
