package config

import (
	"fmt"

	"github.com/watzon/hookline/internal/codes"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535", ErrInvalidConfig)
	}

	switch cfg.Store.Driver {
	case "redis":
		if cfg.Store.URL == "" {
			return fmt.Errorf("%w: store.url is required for the redis driver", ErrMissingRequired)
		}
	case "memory":
		if cfg.Store.SweepSchedule == "" {
			return fmt.Errorf("%w: store.sweep_schedule is required for the memory driver", ErrMissingRequired)
		}
	default:
		return fmt.Errorf("%w: store.driver must be redis or memory, got %q", ErrInvalidConfig, cfg.Store.Driver)
	}

	if cfg.Webhook.CodeLength < 1 || cfg.Webhook.CodeLength > codes.MaxLength {
		return fmt.Errorf("%w: webhook.code_length must be between 1 and %d", ErrInvalidConfig, codes.MaxLength)
	}

	if cfg.Webhook.ExpiryDays < 1 {
		return fmt.Errorf("%w: webhook.expiry_days must be at least 1", ErrInvalidConfig)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn, or error", ErrInvalidConfig)
	}

	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json", ErrInvalidConfig)
	}

	return nil
}
