package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/doubao-image-mcp/internal/config"
	"github.com/ironsheep/doubao-image-mcp/internal/doubao"
	"github.com/ironsheep/doubao-image-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke.
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// TextContent is a text content block of a tool result.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the result of a tools/call request.
type ToolResult struct {
	Content []TextContent `json:"content"`
}

func textResult(text string) *ToolResult {
	return &ToolResult{
		Content: []TextContent{
			{Type: "text", Text: text},
		},
	}
}

func errorResult(err error) *ToolResult {
	msg := "Unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return textResult("Error: " + msg)
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The result is always a single text block:
//
//	{
//	  "content": [{"type": "text", "text": "..."}]
//	}
//
// Failures of the tool itself (missing key, bad arguments, remote errors) are
// reported as "Error: ..." text in a successful response. Only params that
// cannot be decoded at all produce a JSON-RPC error.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  s.executeTool(ctx, params.Name, params.Arguments),
	}
}

// executeTool dispatches a call to the handler registered for name.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) *ToolResult {
	switch name {
	case ToolGenerateImage:
		return s.handleGenerateImage(ctx, args)
	default:
		return textResult(fmt.Sprintf("Unknown tool: %s", name))
	}
}

// handleGenerateImage runs one generation call:
//  1. Checks that DOUBAO_KEY is set
//  2. Validates and translates the arguments
//  3. Inlines local reference images as data URIs
//  4. Posts the request and relays the response body
func (s *Server) handleGenerateImage(ctx context.Context, args json.RawMessage) *ToolResult {
	client, err := doubao.New(config.APIKey(),
		doubao.WithURL(s.cfg.Endpoint),
		doubao.WithClient(s.httpClient),
	)
	if err != nil {
		return errorResult(err)
	}

	req, err := s.translator.Translate(args)
	if err != nil {
		return errorResult(err)
	}

	if err := s.prepareReferences(req); err != nil {
		return errorResult(err)
	}

	start := time.Now()
	resp, err := client.Generate(ctx, req)

	if s.cfg.Debug {
		log.Printf("tool=%s model=%s status=%d elapsed=%s err=%v",
			ToolGenerateImage, req.Model, responseStatus(resp, err), time.Since(start).Round(time.Millisecond), err)
	}

	if err != nil {
		return errorResult(err)
	}

	text, err := resp.Indent()
	if err != nil {
		return errorResult(err)
	}

	return textResult(text)
}

// responseStatus returns the HTTP status of a Generate outcome, or 0 when no
// response arrived.
func responseStatus(resp *doubao.GenerationResponse, err error) int {
	if resp != nil {
		return resp.StatusCode
	}

	var apiErr *doubao.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// prepareReferences replaces local reference images with data URIs.
func (s *Server) prepareReferences(req *doubao.GenerationRequest) error {
	if req.Image == nil {
		return nil
	}

	for i, ref := range req.Image.Values {
		prepared, err := imaging.PrepareReference(ref, s.cfg.ReferenceMaxSide)
		if err != nil {
			return err
		}

		if prepared.Local && s.cfg.Debug {
			log.Printf("inlined reference image %d (%dx%d)", i, prepared.Width, prepared.Height)
		}

		req.Image.Values[i] = prepared.URI
	}

	return nil
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
