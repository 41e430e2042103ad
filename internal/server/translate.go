package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/ironsheep/doubao-image-mcp/internal/doubao"
)

// ErrInvalidArguments is returned when a call carries no argument object.
var ErrInvalidArguments = errors.New("Missing or invalid arguments")

// ValidationError reports arguments that do not satisfy the tool schema.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid arguments: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Translator maps generate_image arguments onto a doubao.GenerationRequest.
//
// Arguments are validated against the same schema advertised by tools/list.
// Schema defaults are documentation only; apart from the model, nothing the
// caller omitted is added to the request.
type Translator struct {
	schema *jsonschema.Resolved
	model  string
}

// NewTranslator resolves schema and returns a Translator that fills in model
// when a call does not name one.
func NewTranslator(schema *jsonschema.Schema, model string) (*Translator, error) {
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tool schema: %w", err)
	}

	return &Translator{
		schema: resolved,
		model:  model,
	}, nil
}

// Translate builds a request from raw tool arguments.
//
// It returns ErrInvalidArguments when args is absent or not a JSON object,
// and a *ValidationError when the object does not match the schema.
func (t *Translator) Translate(args json.RawMessage) (*doubao.GenerationRequest, error) {
	args = bytes.TrimSpace(args)

	if len(args) == 0 || args[0] != '{' {
		return nil, ErrInvalidArguments
	}

	var instance map[string]any
	if err := json.Unmarshal(args, &instance); err != nil {
		return nil, ErrInvalidArguments
	}

	if err := t.schema.Validate(instance); err != nil {
		return nil, &ValidationError{Err: err}
	}

	var req doubao.GenerationRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if req.Model == "" {
		req.Model = t.model
	}

	return &req, nil
}
