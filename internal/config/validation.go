package config

import (
	"fmt"
	"net"

	"git.home.luguber.info/inful/docxbuilder/internal/errors"
)

// ValidateConfig checks a normalized, defaulted configuration.
func ValidateConfig(cfg *Config) error {
	if cfg.Version != CurrentVersion {
		return errors.ValidationFailed("version",
			fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion))
	}
	if cfg.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Address); err != nil {
			return errors.ValidationFailed("metrics.address", err.Error())
		}
	}
	return nil
}
