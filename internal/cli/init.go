package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/watzon/hookline/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter hookline.yaml",
	Long: `Write a starter hookline.yaml with the default settings spelled out.

Edit the file, then start the server:
  hookline serve`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
}

// configFile mirrors the loader's keys so the generated file round-trips
// through viper untouched.
type configFile struct {
	Server struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		PublicURL string `yaml:"public_url,omitempty"`
		CORS      struct {
			Enabled        bool     `yaml:"enabled"`
			AllowedOrigins []string `yaml:"allowed_origins"`
			MaxAge         string   `yaml:"max_age"`
		} `yaml:"cors"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
		IdleTimeout  string `yaml:"idle_timeout"`
		MaxBodySize  int64  `yaml:"max_body_size"`
	} `yaml:"server"`
	Store struct {
		Driver        string `yaml:"driver"`
		URL           string `yaml:"url"`
		SweepSchedule string `yaml:"sweep_schedule"`
	} `yaml:"store"`
	Webhook struct {
		CodeLength int `yaml:"code_length"`
		ExpiryDays int `yaml:"expiry_days"`
	} `yaml:"webhook"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}

	path := filepath.Join(dir, "hookline.yaml")
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := renderConfig(config.Default())
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	log.Info().Str("file", path).Msg("Created")

	fmt.Println()
	fmt.Printf("✓ Wrote %s\n", path)
	fmt.Println()
	fmt.Println("Next steps:")
	if dir != "." {
		fmt.Printf("  cd %s\n", dir)
	}
	fmt.Println("  hookline serve    # Start the server")
	fmt.Println()

	return nil
}

func renderConfig(cfg *config.Config) ([]byte, error) {
	var out configFile

	out.Server.Host = cfg.Server.Host
	out.Server.Port = cfg.Server.Port
	out.Server.PublicURL = cfg.Server.PublicURL
	out.Server.CORS.Enabled = cfg.Server.CORS.Enabled
	out.Server.CORS.AllowedOrigins = cfg.Server.CORS.AllowedOrigins
	out.Server.CORS.MaxAge = formatDuration(cfg.Server.CORS.MaxAge)
	out.Server.ReadTimeout = formatDuration(cfg.Server.ReadTimeout)
	out.Server.WriteTimeout = formatDuration(cfg.Server.WriteTimeout)
	out.Server.IdleTimeout = formatDuration(cfg.Server.IdleTimeout)
	out.Server.MaxBodySize = cfg.Server.MaxBodySize

	out.Store.Driver = cfg.Store.Driver
	out.Store.URL = cfg.Store.URL
	out.Store.SweepSchedule = cfg.Store.SweepSchedule

	out.Webhook.CodeLength = cfg.Webhook.CodeLength
	out.Webhook.ExpiryDays = cfg.Webhook.ExpiryDays

	out.Logging.Level = cfg.Logging.Level
	out.Logging.Format = cfg.Logging.Format

	body, err := yaml.Marshal(&out)
	if err != nil {
		return nil, err
	}

	header := "# Hookline configuration\n" +
		"# Values can also be set via HOOKLINE_* environment variables,\n" +
		"# e.g. HOOKLINE_SERVER_PORT=8080 or HOOKLINE_STORE_URL=redis://...\n\n"

	return append([]byte(header), body...), nil
}

func formatDuration(d time.Duration) string {
	return d.String()
}
