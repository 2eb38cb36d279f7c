package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are fatal and reported with "did you
// mean?" suggestions.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns a
// Config populated with all default values.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolved is a fully layered configuration together with the file it was
// read from.
type Resolved struct {
	*Config

	// Path is the config file consulted, whether or not it exists.
	Path string
}

// Resolve loads configuration and applies the override chain:
// defaults -> config file -> environment variables -> CLI flags.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Resolved, error) {
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	if env.StorePath != "" {
		cfg.StorePath = env.StorePath
	}

	if cli.StorePath != nil {
		cfg.StorePath = *cli.StorePath
	}

	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath()
	}

	cfg.StorePath = expandTilde(cfg.StorePath)

	if err := ValidateResolved(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &Resolved{Config: cfg, Path: cfgPath}, nil
}

// ValidateResolved checks constraints that only apply after overrides.
func ValidateResolved(cfg *Config) error {
	if cfg.StorePath == "" {
		return errors.New("store_path: no default location available; set store_path or " + EnvStore)
	}

	if !filepath.IsAbs(cfg.StorePath) {
		return fmt.Errorf("store_path: must be absolute after expansion, got %q", cfg.StorePath)
	}

	return nil
}
