// Package server implements the MCP (Model Context Protocol) server for
// styled QR code tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Logs go to stderr through logrus; stdout carries only protocol messages.
//
// # Available Tools
//
// Generation:
//   - qr_render: Encode content, restyle it, add a logo, return or save it
//   - qr_payload: Build SMS, vCard or geo content strings
//
// Inspection:
//   - qr_verify: Decode a QR code from an image file
//   - qr_inspect: Dimensions, format, depth, alpha and dominant colors
//   - qr_sample_color: Color at one or more pixels
//   - qr_crop: Zoom into a region such as a finder pattern or the logo
//
// A logo that cannot be decoded does not fail qr_render; the code is
// returned without it and logo_warning explains why.
//
// # Image Caching
//
// Inspection tools share an in-memory cache of decoded images keyed by path.
// qr_render evicts its output_path so a later inspection of the same file
// sees the new image.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed params) or
//     -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithBackend("skip2"))
//	if err := srv.Run(); err != nil {
//	    logrus.Fatal(err)
//	}
package server
