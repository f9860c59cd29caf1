package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/unbridge/graphql"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("UNRAID_API_URL", "https://tower.local/graphql")
	t.Setenv("UNRAID_API_KEY", "secret")
}

func TestFromEnvMissingRequired(t *testing.T) {
	t.Setenv("UNRAID_API_URL", "")
	t.Setenv("UNRAID_API_KEY", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Equal(t, graphql.KindConfig, graphql.KindOf(err))

	t.Setenv("UNRAID_API_URL", "https://tower.local/graphql")
	_, err = FromEnv()
	require.Error(t, err, "key alone missing is still fatal")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("UNRAID_VERIFY_SSL", "")
	t.Setenv("UNRAID_TIMEOUT", "")
	t.Setenv("UNRAID_MCP_HOST", "")
	t.Setenv("UNRAID_MCP_PORT", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://tower.local/graphql", cfg.APIURL)
	assert.True(t, cfg.VerifySSL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "0.0.0.0:6970", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("UNRAID_VERIFY_SSL", "no")
	t.Setenv("UNRAID_TIMEOUT", "10s")
	t.Setenv("UNRAID_MCP_HOST", "127.0.0.1")
	t.Setenv("UNRAID_MCP_PORT", "8080")
	t.Setenv("UNRAID_MCP_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.VerifySSL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnvBadValues(t *testing.T) {
	setRequired(t)

	t.Setenv("UNRAID_TIMEOUT", "banana")
	_, err := FromEnv()
	require.Error(t, err)

	t.Setenv("UNRAID_TIMEOUT", "30s")
	t.Setenv("UNRAID_MCP_PORT", "99999")
	_, err = FromEnv()
	require.Error(t, err)
}

func TestParseBool(t *testing.T) {
	tests := map[string]bool{
		"true":  true,
		"TRUE":  true,
		"yes":   true,
		"":      true,
		"false": false,
		"FALSE": false,
		"0":     false,
		"no":    false,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseBool(in), "parseBool(%q)", in)
	}
}
