package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrMissingRequired = errors.New("missing required configuration")
)

type LoadOptions struct {
	ConfigFile string
	EnvPrefix  string
	Defaults   *Config
}

// Load reads configuration from the config file and HOOKLINE_* environment
// variables, layered over defaults.
func Load(opts LoadOptions) (*Config, error) {
	v := buildViper(opts)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	expandEnvInConfig(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration from the default search paths.
func LoadWithDefaults() (*Config, error) {
	return Load(LoadOptions{})
}

// Watch re-reads the config file whenever it changes and hands the freshly
// parsed config to onChange. Invalid updates are logged and skipped, the
// running config stays as it was.
func Watch(opts LoadOptions, onChange func(*Config)) error {
	v := buildViper(opts)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Nothing to watch without a file; env-only setups skip reload.
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("Ignoring config change, unmarshal failed")
			return
		}
		if err := Validate(cfg); err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("Ignoring config change, validation failed")
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()

	return nil
}

func buildViper(opts LoadOptions) *viper.Viper {
	v := viper.New()

	defaults := opts.Defaults
	if defaults == nil {
		defaults = Default()
	}
	setViperDefaults(v, defaults)

	if opts.EnvPrefix == "" {
		opts.EnvPrefix = "HOOKLINE"
	}
	v.SetEnvPrefix(opts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("hookline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hookline")
		v.AddConfigPath("/etc/hookline")
	}

	return v
}

func setViperDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.public_url", cfg.Server.PublicURL)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", cfg.Server.IdleTimeout)
	v.SetDefault("server.max_body_size", cfg.Server.MaxBodySize)

	v.SetDefault("server.cors.enabled", cfg.Server.CORS.Enabled)
	v.SetDefault("server.cors.allowed_origins", cfg.Server.CORS.AllowedOrigins)
	v.SetDefault("server.cors.max_age", cfg.Server.CORS.MaxAge)

	v.SetDefault("store.driver", cfg.Store.Driver)
	v.SetDefault("store.url", cfg.Store.URL)
	v.SetDefault("store.sweep_schedule", cfg.Store.SweepSchedule)

	v.SetDefault("webhook.code_length", cfg.Webhook.CodeLength)
	v.SetDefault("webhook.expiry_days", cfg.Webhook.ExpiryDays)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("dev.enabled", cfg.Dev.Enabled)
}

func expandEnvInConfig(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envVar := val[2 : len(val)-1]
			if envVal := os.Getenv(envVar); envVal != "" {
				v.Set(key, envVal)
			}
		}
	}
}
