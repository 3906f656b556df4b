package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	appNameVar        = "APP_NAME"
	envVar            = "ENV"
	logLevelVar       = "PANEL_LOG_LEVEL"
	panelHostVar      = "PANEL_HOST"
	apiURLVar         = "PANEL_API_URL"
	tokenFileVar      = "PANEL_TOKEN_FILE"
	tokenPassphrase   = "PANEL_TOKEN_PASSPHRASE"
	configFileVar     = "PANELCTL_CONFIG"
	defaultAPIURL     = "/api/v1"
	defaultPanelHost  = "http://localhost:8000"
	defaultConfigDir  = ".panelctl"
	defaultTokenFile  = "tokens.json"
	defaultConfigName = "config.yaml"
)

type EnvVars struct {
	file fileValues
}

var _ EnvConfig = EnvVars{}
var _ ClientConfig = EnvVars{}
var _ StorageConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return GetEnv(appNameVar, firstNonEmpty(e.file.AppName, "Panel Console"))
}

func (e EnvVars) GetEnv() string {
	env := os.Getenv(envVar)
	if env == "" {
		return firstNonEmpty(e.file.Env, "PROD")
	}
	return env
}

func (e EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, firstNonEmpty(e.file.LogLevel, "info"))
}

// GetPanelHost returns the scheme and host of the panel (e.g. "https://panel.example.com")
func (e EnvVars) GetPanelHost() string {
	return strings.TrimRight(GetEnv(panelHostVar, firstNonEmpty(e.file.PanelHost, defaultPanelHost)), "/")
}

// GetAPIURL returns the configured API base, which may be relative ("/api/v1")
func (e EnvVars) GetAPIURL() string {
	return GetEnv(apiURLVar, firstNonEmpty(e.file.APIURL, defaultAPIURL))
}

// GetBaseURL resolves the API URL against the panel host when it is relative.
func (e EnvVars) GetBaseURL() (string, error) {
	apiURL, err := url.Parse(e.GetAPIURL())
	if err != nil {
		return "", fmt.Errorf("[config GetBaseURL] api url: %w", err)
	}
	if apiURL.IsAbs() {
		return apiURL.String(), nil
	}
	host, err := url.Parse(e.GetPanelHost())
	if err != nil || !host.IsAbs() {
		return "", fmt.Errorf("[config GetBaseURL] panel host %q is not an absolute url", e.GetPanelHost())
	}
	return host.ResolveReference(apiURL).String(), nil
}

func (e EnvVars) GetTokenFile() string {
	return GetEnv(tokenFileVar, firstNonEmpty(e.file.TokenFile, filepath.Join(homeDir(), defaultConfigDir, defaultTokenFile)))
}

func (e EnvVars) GetTokenPassphrase() string {
	return GetEnv(tokenPassphrase, e.file.TokenPassphrase)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func defaultConfigFile() string {
	return filepath.Join(homeDir(), defaultConfigDir, defaultConfigName)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
