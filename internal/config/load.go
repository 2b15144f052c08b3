package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docxbuilder/internal/errors"
)

// Load reads a configuration file. A missing file is not an error: the
// defaults are returned so the server can start without any configuration.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}

	data, err := os.ReadFile(configPath)
	if stderrors.Is(err, fs.ErrNotExist) {
		slog.Debug("Configuration file not found, using defaults", "path", configPath)
		return Default(), nil
	}
	if err != nil {
		return nil, errors.ConfigInvalid("failed to read config file", err).WithContext("path", configPath)
	}

	return Parse(data)
}

// Parse decodes configuration YAML after expanding environment variables,
// then normalizes, defaults and validates it.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.ConfigInvalid("failed to unmarshal config", err)
	}

	for _, w := range NormalizeConfig(&cfg).Warnings {
		slog.Warn("config normalization", "warning", w)
	}
	ApplyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New(errors.CategoryConfig, errors.SeverityError,
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath))
	}

	example := Default()
	example.Documents.Root = "./manuscript"
	example.Metrics.Enabled = false

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.FileSystemError("write config", err).WithContext("path", configPath)
	}
	return nil
}
