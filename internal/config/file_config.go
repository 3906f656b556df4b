package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// fileValues mirrors ~/.panelctl/config.yaml. Empty fields fall through to defaults.
type fileValues struct {
	AppName         string `yaml:"app_name"`
	Env             string `yaml:"env"`
	LogLevel        string `yaml:"log_level"`
	PanelHost       string `yaml:"panel_host"`
	APIURL          string `yaml:"api_url"`
	TokenFile       string `yaml:"token_file"`
	TokenPassphrase string `yaml:"token_passphrase"`
}

func readFileValues(path string) (fileValues, error) {
	var fv fileValues
	if path == "" {
		return fv, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fv, nil
	}
	if err != nil {
		return fv, err
	}

	if err := yaml.Unmarshal(data, &fv); err != nil {
		return fv, err
	}
	return fv, nil
}
