package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/quarrysec/quarry/pkg/errors"
)

// Dump renders a resolved configuration as TOML.
func Dump(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot render configuration")
	}
	return string(data), nil
}

// WriteDefault writes the default configuration to the user config path,
// creating parent directories. It refuses to overwrite an existing file.
func WriteDefault() (string, error) {
	path := UserConfigPath()
	if _, err := os.Stat(path); err == nil {
		return "", errors.Newf(errors.ErrConfigLoad, "configuration file already exists at %s", path).
			WithDetail("path", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot create configuration directory for %s", path).
			WithDetail("path", path)
	}
	if err := os.WriteFile(path, defaultConfig, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot write configuration file %s", path).
			WithDetail("path", path)
	}

	return path, nil
}
