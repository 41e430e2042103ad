package doubao

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// GenerationRequest is the body of a POST to the generations endpoint.
type GenerationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`

	Image *ImageRefs `json:"image,omitempty"`
	Size  *string    `json:"size,omitempty"`
	Seed  *int64     `json:"seed,omitempty"`

	SequentialImageGeneration        *string         `json:"sequential_image_generation,omitempty"`
	SequentialImageGenerationOptions json.RawMessage `json:"sequential_image_generation_options,omitempty"`

	Stream         *bool    `json:"stream,omitempty"`
	GuidanceScale  *float64 `json:"guidance_scale,omitempty"`
	ResponseFormat *string  `json:"response_format,omitempty"`
	Watermark      *bool    `json:"watermark,omitempty"`
}

// ImageRefs holds one or more reference images (URLs or data URIs).
//
// The service accepts either a single string or an array of strings. List
// records which of the two shapes was supplied so it survives a round trip.
type ImageRefs struct {
	Values []string
	List   bool
}

// SingleImage returns an ImageRefs that serializes as a plain string.
func SingleImage(ref string) *ImageRefs {
	return &ImageRefs{Values: []string{ref}}
}

// ImageList returns an ImageRefs that serializes as an array.
func ImageList(refs ...string) *ImageRefs {
	return &ImageRefs{Values: refs, List: true}
}

func (r ImageRefs) MarshalJSON() ([]byte, error) {
	if !r.List && len(r.Values) == 1 {
		return json.Marshal(r.Values[0])
	}

	if r.Values == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(r.Values)
}

func (r *ImageRefs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ImageRefs{Values: []string{s}}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("image must be a string or an array of strings")
	}

	*r = ImageRefs{Values: list, List: true}
	return nil
}

// GenerationResponse is the body returned by the generations endpoint.
type GenerationResponse struct {
	Model   string      `json:"model,omitempty"`
	Created int64       `json:"created,omitempty"`
	Data    []ImageData `json:"data,omitempty"`
	Usage   *Usage      `json:"usage,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`

	// StatusCode is the HTTP status the body arrived with.
	StatusCode int `json:"-"`

	raw []byte
}

// ImageData is a single generated image. With sequential generation a
// failed item carries Error instead of image content.
type ImageData struct {
	URL           string     `json:"url,omitempty"`
	B64JSON       string     `json:"b64_json,omitempty"`
	Size          string     `json:"size,omitempty"`
	RevisedPrompt string     `json:"revised_prompt,omitempty"`
	Error         *ErrorInfo `json:"error,omitempty"`
}

// Usage is the accounting record of a generation call.
type Usage struct {
	GeneratedImages  int `json:"generated_images,omitempty"`
	OutputTokens     int `json:"output_tokens,omitempty"`
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ErrorInfo is the error descriptor the service returns on failure.
type ErrorInfo struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Raw returns the response body exactly as received.
func (r *GenerationResponse) Raw() []byte {
	return r.raw
}

// Indent returns the response body pretty-printed with two-space
// indentation. Key order and fields not modeled by GenerationResponse are
// preserved.
func (r *GenerationResponse) Indent() (string, error) {
	if len(r.raw) == 0 {
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(r.raw), "", "  "); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ParseResponse decodes a response body, keeping a copy of the raw bytes.
//
// Only malformed JSON is an error. A body whose fields do not match the
// modeled types is still accepted: the typed fields are left empty, the
// error descriptor is recovered leniently, and Indent relays the body as-is.
func ParseResponse(body []byte) (*GenerationResponse, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	resp := &GenerationResponse{raw: bytes.Clone(body)}

	if err := json.Unmarshal(body, resp); err != nil {
		*resp = GenerationResponse{raw: resp.raw}
		resp.Error = lenientError(doc)
	}

	return resp, nil
}

// lenientError extracts the error descriptor from a decoded body whose
// shape differs from ErrorInfo, e.g. a numeric code.
func lenientError(doc any) *ErrorInfo {
	obj, _ := doc.(map[string]any)

	e, ok := obj["error"].(map[string]any)
	if !ok {
		return nil
	}

	info := &ErrorInfo{}
	info.Message, _ = e["message"].(string)

	switch code := e["code"].(type) {
	case string:
		info.Code = code
	case float64:
		info.Code = strconv.FormatFloat(code, 'f', -1, 64)
	}

	return info
}
