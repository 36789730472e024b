package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envFrom(nil))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, int64(DefaultQuotaBytes), cfg.Storage.QuotaBytes)
	require.Equal(t, TransportStdio, cfg.Transport.Mode)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 0.0.0.0
  port: 9000
transport:
  mode: http
storage:
  quota_bytes: 1024
ai:
  model: file-model
geocode:
  user_agent: file-agent
`), 0o644))

	cfg, err := load(envFrom(map[string]string{
		"SOUNDXCAPE_CONFIG_PATH": path,
		"SOUNDXCAPE_SERVER_PORT": "9100",
		"GEMINI_API_KEY":         "gemini-key",
		"API_KEY":                "fallback-key",
	}))
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, int64(1024), cfg.Storage.QuotaBytes)
	require.Equal(t, "file-model", cfg.AI.Model)
	require.Equal(t, "gemini-key", cfg.AI.APIKey)
	require.Equal(t, "file-agent", cfg.Geocode.UserAgent)
	require.Equal(t, "soundxcape.db", cfg.DB.Path)
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := load(envFrom(map[string]string{"SOUNDXCAPE_SERVER_PORT": "eighty"}))
	require.Error(t, err)

	_, err = load(envFrom(map[string]string{"SOUNDXCAPE_STORAGE_QUOTA": "lots"}))
	require.Error(t, err)

	_, err = load(envFrom(map[string]string{"SOUNDXCAPE_TRANSPORT": "carrier-pigeon"}))
	require.Error(t, err)

	_, err = load(envFrom(map[string]string{"SOUNDXCAPE_CONFIG_PATH": filepath.Join(t.TempDir(), "missing.yaml")}))
	require.Error(t, err)

	_, err = load(envFrom(map[string]string{"SOUNDXCAPE_AI_MAX_RETRIES": "often"}))
	require.Error(t, err)
}

func TestLoad_MaxRetries(t *testing.T) {
	cfg, err := load(envFrom(map[string]string{"SOUNDXCAPE_AI_MAX_RETRIES": "3"}))
	require.NoError(t, err)
	require.Equal(t, 3, cfg.AI.MaxRetries)

	_, err = load(envFrom(map[string]string{"SOUNDXCAPE_AI_MAX_RETRIES": "-1"}))
	require.ErrorContains(t, err, "max_retries")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  max_retries: -2\n"), 0o644))
	_, err = load(envFrom(map[string]string{"SOUNDXCAPE_CONFIG_PATH": path}))
	require.ErrorContains(t, err, "must not be negative")
}
