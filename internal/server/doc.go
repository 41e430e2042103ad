// Package server implements the MCP (Model Context Protocol) server that exposes
// the Doubao image generation API as a single tool.
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
// Messages are handled one at a time in arrival order. Messages without an id
// are notifications and never get a response.
//
// # Available Tools
//
//   - generate_image: Generate images from a text prompt and optional
//     reference images
//
// # Error Handling
//
// Every tools/call response is a successful JSON-RPC result whose content is
// exactly one text block. Failures are written into that block as
// "Error: <message>":
//   - DOUBAO_KEY is not set in the environment
//   - arguments are missing, not an object, or fail schema validation
//   - a local reference image cannot be read
//   - the service answers with a non-success status
//   - the network call fails or the response is not JSON
//
// Calls naming any other tool yield "Unknown tool: <name>". JSON-RPC error
// objects are reserved for unknown methods (-32601) and tools/call params
// that cannot be decoded (-32602).
//
// # Usage
//
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
