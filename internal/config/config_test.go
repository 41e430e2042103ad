package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultReferenceMaxSide, cfg.ReferenceMaxSide)
	assert.False(t, cfg.Debug)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		EnvEndpoint:         " http://localhost:9999/images ",
		EnvModel:            "ep-20250101-abc",
		EnvReferenceMaxSide: "0",
		EnvLogLevel:         "DEBUG",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/images", cfg.Endpoint)
	assert.Equal(t, "ep-20250101-abc", cfg.Model)
	assert.Equal(t, 0, cfg.ReferenceMaxSide)
	assert.True(t, cfg.Debug)
}

func TestFromLookup_BlankValuesKeepDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		EnvEndpoint: "  ",
		EnvModel:    "",
	}))
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestFromLookup_InvalidMaxSide(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "big"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(map[string]string{EnvReferenceMaxSide: tt.value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), EnvReferenceMaxSide)
		})
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "secret")
	assert.Equal(t, "secret", APIKey())

	t.Setenv(EnvAPIKey, "")
	assert.Equal(t, "", APIKey())
}
