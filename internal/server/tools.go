package server

import (
	"github.com/ironsheep/qrstyle/internal/imaging"
	"github.com/ironsheep/qrstyle/internal/qr"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func payloadProperties() map[string]interface{} {
	str := func(desc string) map[string]interface{} {
		return map[string]interface{}{"type": "string", "description": desc}
	}
	return map[string]interface{}{
		"type": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"url", "sms", "vcard", "geo"},
			"description": "Payload type (default: url)",
		},
		"url":     str("URL or free text (url)"),
		"phone":   str("Phone number (sms, vcard)"),
		"message": str("Message body (sms)"),
		"name":    str("Full name (vcard, required)"),
		"email":   str("Email address (vcard)"),
		"org":     str("Organization (vcard)"),
		"lat":     str("Latitude in decimal degrees, -90 to 90 (geo)"),
		"lng":     str("Longitude in decimal degrees, -180 to 180 (geo)"),
	}
}

func styleSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Color styling applied to the code",
		"properties": map[string]interface{}{
			"foreground": map[string]interface{}{
				"type":        "string",
				"description": "Module color as #RRGGBB (default: #000000)",
			},
			"secondary": map[string]interface{}{
				"type":        "string",
				"description": "Gradient end color as #RRGGBB; required when gradient is not none",
			},
			"gradient": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"none", "linear", "radial", "angular"},
				"description": "Gradient mode (default: none)",
			},
			"transparent_background": map[string]interface{}{
				"type":        "boolean",
				"description": "Make light background pixels nearly transparent",
			},
			"background_alpha": map[string]interface{}{
				"type":        "integer",
				"description": "Alpha (0-255) written to transparent background pixels (default: 1)",
			},
			"blend_space": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"rgb", "lab", "hcl"},
				"description": "Color space used to blend gradient colors (default: rgb)",
			},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Generation
		{
			Name:        "qr_render",
			Description: "Render a styled QR code: solid or gradient module colors, optional transparent background and a centred logo. Returns the image as base64 or writes it to output_path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"content": map[string]interface{}{
						"type":        "string",
						"description": "Text to encode. Mutually exclusive with payload.",
					},
					"payload": map[string]interface{}{
						"type":        "object",
						"description": "Structured content (SMS, contact card, location) built into the encoded text",
						"properties":  payloadProperties(),
					},
					"style": styleSchema(),
					"style_file": map[string]interface{}{
						"type":        "string",
						"description": "YAML style file; fields in style override it",
					},
					"logo_path": map[string]interface{}{
						"type":        "string",
						"description": "Logo image (png, jpeg, gif, bmp, webp or svg) placed at the centre, 1/5 of the code width",
					},
					"level": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"L", "M", "Q", "H"},
						"description": "Error correction level (default: M). Use H with a logo.",
					},
					"module_size": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per module (default: 10)",
					},
					"module_style": map[string]interface{}{
						"type":        "string",
						"enum":        qr.ModuleStyles,
						"description": "Data module shape (default: square). Finder and alignment patterns stay square.",
					},
					"backend": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"skip2", "boombuler"},
						"description": "QR encoder backend (default: skip2)",
					},
					"no_quiet_zone": map[string]interface{}{
						"type":        "boolean",
						"description": "Omit the 4-module white border",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg"},
						"description": "Output format (default: png). JPEG is flattened onto white.",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Write the image here instead of returning base64",
					},
					"verify": map[string]interface{}{
						"type":        "boolean",
						"description": "Scan the result and report whether it decodes to the content (default: true)",
					},
				},
			},
		},
		{
			Name:        "qr_payload",
			Description: "Build the text encoded for a structured payload: SMSTO for SMS, vCard 3.0 for contacts, geo: URI for locations.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": payloadProperties(),
				"required":   []string{"type"},
			},
		},

		// Inspection
		{
			Name:        "qr_verify",
			Description: "Decode the QR code in an image file and return its text. Use it to confirm a styled code still scans.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"expected": map[string]interface{}{
						"type":        "string",
						"description": "Optional expected text; the result reports whether it matches",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "qr_inspect",
			Description: "Report an image's dimensions, detected format, bit depth, alpha and most frequent colors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"colors": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to return (default: 5)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "qr_sample_color",
			Description: "Get the color at a pixel, or at several labeled pixels, as hex, RGB, RGBA and HSL. Alpha is reported unpremultiplied.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Sample these points instead of x/y",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "qr_crop",
			Description: "Crop part of an image and return it as base64 PNG, optionally zoomed. Named regions cover the finder pattern quadrants, the centre and the logo area.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        imaging.CropRegions,
						"description": "Named region; use instead of x1/y1/x2/y2",
					},
					"x1": map[string]interface{}{"type": "integer", "description": "Left edge (inclusive)"},
					"y1": map[string]interface{}{"type": "integer", "description": "Top edge (inclusive)"},
					"x2": map[string]interface{}{"type": "integer", "description": "Right edge (exclusive)"},
					"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge (exclusive)"},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Zoom factor, nearest neighbour (default: 1, max: 20)",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
