package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Version(t *testing.T) {
	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "doubao-image-mcp "+Version)
	assert.Contains(t, out.String(), "Git commit: "+GitCommit)
}

func TestRootCmd_Help(t *testing.T) {
	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "DOUBAO_KEY")
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"serve"})

	assert.Error(t, cmd.Execute())
}

func TestRootCmd_PositionalForms(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"version command", []string{"version"}, "Git commit: " + GitCommit},
		{"short version flag", []string{"-v"}, "doubao-image-mcp " + Version},
		{"help command", []string{"help"}, "DOUBAO_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("DOUBAO_REFERENCE_MAX_SIDE", "huge")

	err := run(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start server")
}
