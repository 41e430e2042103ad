package server

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolGenerateImage is the name of the single tool this server exposes.
const ToolGenerateImage = "generate_image"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions(defaultModel string) []Tool {
	return []Tool{
		{
			Name:        ToolGenerateImage,
			Description: "Generate images using Doubao image generation API",
			InputSchema: generateImageSchema(defaultModel),
		},
	}
}

func generateImageSchema(defaultModel string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"model": {
				Type:        "string",
				Description: "Model ID or Endpoint ID for image generation",
				Default:     rawDefault(defaultModel),
			},
			"prompt": {
				Type:        "string",
				Description: "Text prompt for image generation (supports Chinese and English)",
			},
			"image": {
				OneOf: []*jsonschema.Schema{
					{Type: "string"},
					{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
				},
				Description: "Reference image(s) as URL, Base64 data URI, or absolute local file path",
			},
			"size": {
				Type:        "string",
				Description: "Image size",
				Enum:        []any{"1K", "2K", "4K"},
				Default:     rawDefault("2K"),
			},
			"seed": {
				Type:        "integer",
				Description: "Random seed for controlling generation randomness",
				Minimum:     jsonschema.Ptr(-1.0),
				Maximum:     jsonschema.Ptr(2147483647.0),
				Default:     rawDefault(-1),
			},
			"sequential_image_generation": {
				Type:        "string",
				Description: "Control multi-image generation mode",
				Enum:        []any{"auto", "disabled"},
				Default:     rawDefault("disabled"),
			},
			"sequential_image_generation_options": {
				Type:        "object",
				Description: "Options for multi-image generation, passed to the service as-is. Supports max_images (1-15), e.g. {\"max_images\": 4}",
			},
			"stream": {
				Type:        "boolean",
				Description: "Enable streaming output",
				Default:     rawDefault(false),
			},
			"guidance_scale": {
				Type:        "number",
				Description: "Guidance scale for prompt adherence",
				Minimum:     jsonschema.Ptr(1.0),
				Maximum:     jsonschema.Ptr(10.0),
			},
			"response_format": {
				Type:        "string",
				Description: "Response format for generated images",
				Enum:        []any{"url", "b64_json"},
				Default:     rawDefault("url"),
			},
			"watermark": {
				Type:        "boolean",
				Description: "Add watermark to generated images",
				Default:     rawDefault(true),
			},
		},
		PropertyOrder: []string{
			"model",
			"prompt",
			"image",
			"size",
			"seed",
			"sequential_image_generation",
			"sequential_image_generation_options",
			"stream",
			"guidance_scale",
			"response_format",
			"watermark",
		},
		Required: []string{"prompt"},
	}
}

func rawDefault(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": s.tools,
		},
	}
}
