// Package config loads quarry's configuration: embedded defaults first,
// then the user config file, then an explicit --config path when given.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/quarrysec/quarry/pkg/errors"
)

// Config is quarry's resolved configuration.
type Config struct {
	Rules RulesConfig `koanf:"rules"`
}

// RulesConfig controls where rule definitions are loaded from.
type RulesConfig struct {
	// Builtin enables the rule set embedded in the binary.
	Builtin bool `koanf:"builtin"`
	// Paths lists extra rule files or directories loaded after the
	// builtins, in order.
	Paths []string `koanf:"paths"`
}

// UserConfigPath returns the path of the user configuration file.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "quarry", "quarry.toml")
}

// Load resolves the configuration. When explicit is non-empty it must
// exist and overrides the user config file; otherwise the user config
// file is merged in if present.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	path := explicit
	if path == "" {
		path = UserConfigPath()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load configuration from %s", path).
				WithDetail("path", path)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "invalid configuration")
	}

	return &cfg, nil
}
