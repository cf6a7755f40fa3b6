package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ironsheep/qrstyle/internal/config"
	"github.com/ironsheep/qrstyle/internal/imaging"
	"github.com/ironsheep/qrstyle/internal/qr"
	"github.com/ironsheep/qrstyle/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "qr_render", "qr_verify").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithField("tool", params.Name).WithError(err).Warn("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Generation
	case "qr_render":
		return s.handleQRRender(args)
	case "qr_payload":
		return s.handleQRPayload(args)

	// Inspection
	case "qr_verify":
		return s.handleQRVerify(args)
	case "qr_inspect":
		return s.handleQRInspect(args)
	case "qr_sample_color":
		return s.handleQRSampleColor(args)
	case "qr_crop":
		return s.handleQRCrop(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Generation Handlers ===

type qrRenderArgs struct {
	Content string      `json:"content"`
	Payload *qr.Payload `json:"payload"`

	Style     config.StyleSpec `json:"style"`
	StyleFile string           `json:"style_file"`

	LogoPath string `json:"logo_path"`

	Level       string `json:"level"`
	ModuleSize  int    `json:"module_size"`
	ModuleStyle string `json:"module_style"`
	Backend     string `json:"backend"`
	NoQuiet     bool   `json:"no_quiet_zone"`

	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
	Verify     *bool  `json:"verify"`
}

type qrRenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	MimeType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
	Content     string `json:"content"`
	LogoApplied bool   `json:"logo_applied"`
	LogoWarning string `json:"logo_warning,omitempty"`
	Verified    *bool  `json:"verified,omitempty"`
	ScanWarning string `json:"scan_warning,omitempty"`
}

func (s *Server) handleQRRender(args json.RawMessage) (interface{}, error) {
	var a qrRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	content, err := resolveContent(a.Content, a.Payload)
	if err != nil {
		return nil, err
	}

	spec := a.Style
	if a.StyleFile != "" {
		base, err := config.LoadStyleFile(a.StyleFile)
		if err != nil {
			return nil, err
		}
		spec = base.Merge(a.Style)
	}
	style, err := spec.StyleConfig()
	if err != nil {
		return nil, err
	}

	level, err := qr.ParseLevel(a.Level)
	if err != nil {
		return nil, err
	}
	moduleStyle, err := qr.ParseModuleStyle(a.ModuleStyle)
	if err != nil {
		return nil, err
	}

	opts := render.Options{
		Content: content,
		Style:   style,
		Backend: a.Backend,
		QR: qr.EncodeOptions{
			Level:       level,
			ModuleSize:  a.ModuleSize,
			QuietZone:   !a.NoQuiet,
			ModuleStyle: moduleStyle,
		},
		Format: a.Format,
		Verify: a.Verify == nil || *a.Verify,
	}
	if opts.Backend == "" {
		opts.Backend = s.backend
	}
	if opts.QR.ModuleSize == 0 {
		opts.QR.ModuleSize = s.moduleSize
	}
	if a.LogoPath != "" {
		data, err := os.ReadFile(a.LogoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read logo: %w", err)
		}
		opts.Logo = data
	}

	res, err := s.renderer.Run(opts)
	if err != nil {
		return nil, err
	}

	out := qrRenderResult{
		Width:       res.Width,
		Height:      res.Height,
		MimeType:    res.MimeType,
		Content:     content,
		LogoApplied: res.LogoApplied,
	}
	if res.LogoErr != nil {
		out.LogoWarning = res.LogoErr.Error()
	}
	if opts.Verify {
		verified := res.Verified
		out.Verified = &verified
		if !verified {
			out.ScanWarning = scanWarning(res)
		}
	}

	if a.OutputPath != "" {
		if err := os.WriteFile(a.OutputPath, res.Data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		s.cache.Evict(a.OutputPath)
		out.OutputPath = a.OutputPath
	} else {
		out.ImageBase64 = base64.StdEncoding.EncodeToString(res.Data)
	}
	return out, nil
}

func scanWarning(res *render.Result) string {
	if res.ScanErr != nil {
		return res.ScanErr.Error()
	}
	return fmt.Sprintf("decoded %q does not match content", res.Decoded)
}

// resolveContent returns content when set, otherwise the payload's content.
// Supplying both is rejected so the caller's intent is never guessed.
func resolveContent(content string, payload *qr.Payload) (string, error) {
	switch {
	case content != "" && payload != nil:
		return "", errors.New("provide either content or payload, not both")
	case payload != nil:
		return payload.Content()
	case strings.TrimSpace(content) == "":
		return "", qr.ErrEmptyPayload
	}
	return content, nil
}

type qrPayloadResult struct {
	Type    qr.PayloadType `json:"type"`
	Content string         `json:"content"`
}

func (s *Server) handleQRPayload(args json.RawMessage) (interface{}, error) {
	var p qr.Payload
	if err := json.Unmarshal(args, &p); err != nil {
		return nil, err
	}
	t, err := qr.ParsePayloadType(string(p.Type))
	if err != nil {
		return nil, err
	}
	p.Type = t

	content, err := p.Content()
	if err != nil {
		return nil, err
	}
	return qrPayloadResult{Type: t, Content: content}, nil
}

// === Inspection Handlers ===

type qrVerifyArgs struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
}

type qrVerifyResult struct {
	Content string `json:"content"`
	Matches *bool  `json:"matches,omitempty"`
}

func (s *Server) handleQRVerify(args json.RawMessage) (interface{}, error) {
	var a qrVerifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	text, err := qr.Scan(img)
	if err != nil {
		return nil, err
	}

	res := qrVerifyResult{Content: text}
	if a.Expected != "" {
		m := text == a.Expected
		res.Matches = &m
	}
	return res, nil
}

type qrInspectArgs struct {
	Path   string `json:"path"`
	Colors int    `json:"colors"`
}

type qrInspectResult struct {
	*imaging.ImageInfo
	Colors []imaging.ColorFrequency `json:"colors"`
}

func (s *Server) handleQRInspect(args json.RawMessage) (interface{}, error) {
	var a qrInspectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Colors == 0 {
		a.Colors = 5
	}

	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	dominant, err := imaging.DominantColors(img, a.Colors)
	if err != nil {
		return nil, err
	}
	return qrInspectResult{ImageInfo: info, Colors: dominant.Colors}, nil
}

type samplePoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label"`
}

type qrSampleColorArgs struct {
	Path   string        `json:"path"`
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Points []samplePoint `json:"points"`
}

func (s *Server) handleQRSampleColor(args json.RawMessage) (interface{}, error) {
	var a qrSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	if len(a.Points) == 0 {
		return imaging.SampleColor(img, a.X, a.Y)
	}
	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

type qrCropArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	X1     *int    `json:"x1"`
	Y1     *int    `json:"y1"`
	X2     *int    `json:"x2"`
	Y2     *int    `json:"y2"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleQRCrop(args json.RawMessage) (interface{}, error) {
	var a qrCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	coords := a.X1 != nil || a.Y1 != nil || a.X2 != nil || a.Y2 != nil
	switch {
	case a.Region != "" && coords:
		return nil, errors.New("provide either region or x1/y1/x2/y2, not both")
	case a.Region != "":
		return imaging.CropRegion(img, a.Region, a.Scale)
	case a.X1 == nil || a.Y1 == nil || a.X2 == nil || a.Y2 == nil:
		return nil, errors.New("region or all of x1, y1, x2, y2 are required")
	}
	return imaging.Crop(img, *a.X1, *a.Y1, *a.X2, *a.Y2, a.Scale)
}
