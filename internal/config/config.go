// Package config loads the server configuration from the process environment.
//
// The API key is deliberately absent from Config: it is looked up on every
// tool invocation so that a missing key is reported to the caller instead of
// preventing the server from starting.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvAPIKey           = "DOUBAO_KEY"
	EnvEndpoint         = "DOUBAO_ENDPOINT"
	EnvModel            = "DOUBAO_MODEL"
	EnvReferenceMaxSide = "DOUBAO_REFERENCE_MAX_SIDE"
	EnvLogLevel         = "DOUBAO_IMAGE_MCP_LOG_LEVEL"
)

// Defaults used when the corresponding variable is unset.
const (
	DefaultEndpoint         = "https://ark.cn-beijing.volces.com/api/v3/images/generations"
	DefaultModel            = "doubao-seedream-4-0-250828"
	DefaultReferenceMaxSide = 4096
)

// Config holds the runtime settings of the server.
type Config struct {
	// Endpoint is the image generations URL requests are POSTed to.
	Endpoint string

	// Model is sent when a caller does not name one.
	Model string

	// ReferenceMaxSide bounds the longest side, in pixels, of reference
	// images read from local files. Zero disables downscaling.
	ReferenceMaxSide int

	// Debug enables per-call logging on stderr.
	Debug bool
}

// Default returns the configuration used when no variables are set.
func Default() *Config {
	return &Config{
		Endpoint:         DefaultEndpoint,
		Model:            DefaultModel,
		ReferenceMaxSide: DefaultReferenceMaxSide,
	}
}

// Load builds a Config from the process environment.
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to resolve variables.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvEndpoint); ok && strings.TrimSpace(v) != "" {
		cfg.Endpoint = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvModel); ok && strings.TrimSpace(v) != "" {
		cfg.Model = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvReferenceMaxSide); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvReferenceMaxSide, v, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid %s %q: must not be negative", EnvReferenceMaxSide, v)
		}
		cfg.ReferenceMaxSide = n
	}

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Debug = strings.EqualFold(strings.TrimSpace(v), "debug")
	}

	return cfg, nil
}

// APIKey returns the API key from the environment, or "" when unset.
func APIKey() string {
	return os.Getenv(EnvAPIKey)
}
