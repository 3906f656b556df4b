package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/panel-console/internal/config"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"APP_NAME", "ENV", "PANEL_LOG_LEVEL", "PANEL_HOST", "PANEL_API_URL", "PANEL_TOKEN_FILE", "PANEL_TOKEN_PASSPHRASE"} {
		t.Setenv(v, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, "/api/v1", c.GetAPIURL())
	require.Equal(t, "http://localhost:8000", c.GetPanelHost())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, "PROD", c.GetEnv())

	baseURL, err := c.GetBaseURL()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000/api/v1", baseURL)
	require.Equal(t, "tokens.json", filepath.Base(c.GetTokenFile()))
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := "panel_host: https://panel.example.com\napi_url: /api/v2\nlog_level: debug\ntoken_file: /tmp/panel-tokens.json\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o600))

	t.Run("file overrides defaults", func(t *testing.T) {
		c, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "debug", c.GetLogLevel())
		require.Equal(t, "/tmp/panel-tokens.json", c.GetTokenFile())

		baseURL, err := c.GetBaseURL()
		require.NoError(t, err)
		require.Equal(t, "https://panel.example.com/api/v2", baseURL)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("PANEL_API_URL", "https://other.example.com/api/v1")
		t.Setenv("PANEL_LOG_LEVEL", "warn")

		c, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "warn", c.GetLogLevel())

		baseURL, err := c.GetBaseURL()
		require.NoError(t, err)
		require.Equal(t, "https://other.example.com/api/v1", baseURL)
	})
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("panel_host: [unterminated"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestGetBaseURL_RelativeHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("PANEL_HOST", "not-a-url")

	c, err := config.Load("")
	require.NoError(t, err)

	_, err = c.GetBaseURL()
	require.Error(t, err)
}
