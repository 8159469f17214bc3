package config

import "time"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3089,
			CORS: CORSConfig{
				Enabled:        false,
				AllowedOrigins: []string{"*"},
				MaxAge:         5 * time.Minute,
			},
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
			MaxBodySize:  10 * 1024 * 1024,
		},
		Store: StoreConfig{
			Driver:        "redis",
			URL:           "redis://localhost:6379/0",
			SweepSchedule: "@every 1m",
		},
		Webhook: WebhookConfig{
			CodeLength: 8,
			ExpiryDays: 7,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Dev: DevConfig{
			Enabled: false,
		},
	}
}
