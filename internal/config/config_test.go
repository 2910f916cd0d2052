package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(PathEnv, path)
	return path
}

func TestLoadOrCreateWithDefaults(t *testing.T) {
	useTempConfig(t)

	cfg, err := LoadOrCreate()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Origin)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.HTTP.RetryAttempts)
	assert.Equal(t, time.Second, cfg.HTTP.RetryDelay)
	assert.Equal(t, 0.0, cfg.HTTP.RequestsPerSecond)
}

func TestLoadRequiresFile(t *testing.T) {
	useTempConfig(t)

	_, err := Load()
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := useTempConfig(t)
	data, err := json.Marshal(map[string]any{
		"origin": "https://sponsors.example.com",
		"http":   map[string]any{"retryattempts": 5},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://sponsors.example.com", cfg.Origin)
	assert.Equal(t, 5, cfg.HTTP.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"debug": false, "http": {"timeout": "10s"}}`), 0600))

	t.Setenv("SPONSORCTL_DEBUG", "true")
	t.Setenv("SPONSORCTL_HTTP_TIMEOUT", "45s")
	t.Setenv("SPONSORCTL_HTTP_REQUESTSPERSECOND", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 45*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 2.5, cfg.HTTP.RequestsPerSecond)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"http": {"retryattempts": 0}}`), 0600))

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"origin": [`), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := useTempConfig(t)

	cfg, err := LoadOrCreate()
	require.NoError(t, err)
	require.NoError(t, cfg.Set("origin", "https://sponsors.example.com/"))
	require.NoError(t, cfg.Set("http.retrydelay", "250ms"))
	require.NoError(t, cfg.Set("debug", "true"))
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://sponsors.example.com", reloaded.Origin)
	assert.Equal(t, 250*time.Millisecond, reloaded.HTTP.RetryDelay)
	assert.True(t, reloaded.Debug)
	assert.Equal(t, cfg.Values(), reloaded.Values())
}

func TestSetRejectsBadInput(t *testing.T) {
	useTempConfig(t)
	cfg, err := LoadOrCreate()
	require.NoError(t, err)

	tests := []struct {
		key   string
		value string
	}{
		{"nope", "x"},
		{"debug", "maybe"},
		{"http.timeout", "soon"},
		{"http.timeout", "0s"},
		{"http.retryattempts", "0"},
		{"http.requestspersecond", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := cfg.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout, "failed sets leave the value unchanged")
	assert.Equal(t, 3, cfg.HTTP.RetryAttempts)
}

func TestGetConfigDir(t *testing.T) {
	path := useTempConfig(t)
	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(path), dir)
}
