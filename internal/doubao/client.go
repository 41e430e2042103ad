package doubao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultURL is the public generations endpoint.
const DefaultURL = "https://ark.cn-beijing.volces.com/api/v3/images/generations"

// fallbackMessage is reported when a failed response carries no message.
const fallbackMessage = "Failed to generate image"

var (
	// ErrMissingKey is returned by New when no API key is supplied.
	ErrMissingKey = errors.New("DOUBAO_KEY environment variable is not set")
)

// APIError is returned by Generate when the service answers with a
// non-success status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fallbackMessage
}

// Client posts generation requests to the service.
type Client struct {
	client *http.Client

	url   string
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithClient sets the HTTP client used for requests.
func WithClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithURL overrides the generations endpoint.
func WithURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.url = url
		}
	}
}

// New creates a Client authenticating with token.
func New(token string, options ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingKey
	}

	c := &Client{
		client: http.DefaultClient,

		url:   DefaultURL,
		token: token,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// Generate performs a single generation call.
//
// The body is decoded as JSON whatever the status. A non-2xx status yields an
// *APIError built from the decoded error descriptor. Transport failures and
// undecodable bodies are returned as-is.
func (c *Client) Generate(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(r)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	result, err := ParseResponse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid response body (status %d): %w", resp.StatusCode, err)
	}

	result.StatusCode = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		if result.Error != nil {
			apiErr.Code = result.Error.Code
			apiErr.Message = result.Error.Message
		}

		return nil, apiErr
	}

	return result, nil
}
