package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	result, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, DefaultConfig(), result.Config)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complete.yaml")
	content := []byte("host: tcp://10.0.0.5:2375\nlogLevel: debug\nhistory: true\nfuzzyFallback: true\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	result, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "tcp://10.0.0.5:2375", result.Config.Host)
	assert.Equal(t, "debug", result.Config.LogLevel)
	assert.True(t, result.Config.History)
	assert.True(t, result.Config.FuzzyFallback)
}

func TestLoadFromFileMalformedFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complete.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unterminated"), 0644))

	result, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Errors)
	assert.Equal(t, DefaultConfig().LogLevel, result.Config.LogLevel)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complete.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: tcp://file:2375\n"), 0644))

	t.Setenv(EnvHost, "unix:///tmp/env.sock")
	t.Setenv(EnvLogLevel, "warn")

	result, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "unix:///tmp/env.sock", result.Config.Host)
	assert.Equal(t, "warn", result.Config.LogLevel)
}
