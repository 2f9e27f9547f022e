package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that the loaded configuration is coherent. A missing
// provider key is deliberately not rejected here.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("server port %q is not a number", cfg.ServerPort)
	}

	switch cfg.PriceSource {
	case "mock", "live":
	default:
		return fmt.Errorf("price source must be \"mock\" or \"live\", got %q", cfg.PriceSource)
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be \"json\" or \"console\", got %q", cfg.LogFormat)
	}

	return nil
}
