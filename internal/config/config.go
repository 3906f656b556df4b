package config

import (
	"fmt"
)

type Config interface {
	EnvConfig
	ClientConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type ClientConfig interface {
	GetPanelHost() string
	GetAPIURL() string
	GetBaseURL() (string, error)
}

type StorageConfig interface {
	GetTokenFile() string
	GetTokenPassphrase() string
}

type mainConfig struct {
	EnvVars
}

// New loads the optional YAML file named by PANELCTL_CONFIG (or the default
// location) and layers the environment on top of it.
func New() (Config, error) {
	return Load(GetEnv(configFileVar, defaultConfigFile()))
}

// Load builds a Config from the YAML file at path. A missing file yields the
// built-in defaults.
func Load(path string) (Config, error) {
	fv, err := readFileValues(path)
	if err != nil {
		return nil, fmt.Errorf("[config Load] %s: %w", path, err)
	}
	return mainConfig{EnvVars: EnvVars{file: fv}}, nil
}
