package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.False(t, cfg.Graph.InMemory)
	assert.True(t, cfg.Graph.BreakerEnabled)
	assert.Equal(t, 10, cfg.Engine.DefaultLimit)
	assert.Equal(t, 0.0, cfg.Engine.DefaultMinSimilarity)
}

func TestLoadInMemoryGraphFlag(t *testing.T) {
	t.Setenv("GRAPH_IN_MEMORY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Graph.InMemory)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "2s")
	t.Setenv("GRAPH_BREAKER_ENABLED", "false")
	t.Setenv("ENGINE_MIN_SIMILARITY", "0.25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.HTTP.RequestTimeout)
	assert.False(t, cfg.Graph.BreakerEnabled)
	assert.Equal(t, 0.25, cfg.Engine.DefaultMinSimilarity)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}
