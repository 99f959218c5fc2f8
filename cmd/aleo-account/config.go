package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btclog"
	"gopkg.in/yaml.v3"

	"github.com/suffix-labs/aleo-account/pkg/account"
)

const (
	defaultConfigFilename = "aleo-account.yaml"
	defaultLogLevel       = "info"
)

var (
	defaultAppDir     = btcutil.AppDataDir("aleo-account", false)
	defaultConfigFile = filepath.Join(defaultAppDir, defaultConfigFilename)
)

// config is the on-disk configuration. Command line flags override it.
type config struct {
	LogLevel string            `yaml:"log_level"`
	KDF      account.KDFParams `yaml:"kdf"`
}

func defaultConfig() *config {
	return &config{
		LogLevel: defaultLogLevel,
		KDF:      account.DefaultKDFParams(),
	}
}

// loadConfig reads the YAML file at path on top of the defaults. A missing
// file is only tolerated at the default location.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == defaultConfigFile:
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) validate() error {
	if _, ok := btclog.LevelFromString(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return c.KDF.Validate()
}
