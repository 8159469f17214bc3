// Package cli implements the hookline command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/watzon/hookline/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hookline",
	Short: "A webhook relay with disposable callback URLs",
	Long: `Hookline issues unique webhook URLs and relays anything posted to them
to realtime subscribers over WebSocket.

  - Request a URL, hand it to a webhook producer, subscribe to the code
  - Optional password gating for later retrieval of the URL
  - Records expire after a sliding inactivity window

Start the server:
  hookline serve

Write a starter config file:
  hookline init`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./hookline.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version())
		},
	})
}

// setupLogging configures zerolog before any config file is read; serve
// reconfigures it from the loaded config.
func setupLogging() {
	output := zerolog.ConsoleWriter{Out: os.Stderr}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// applyLogConfig reconfigures the global logger from loaded settings. The
// --verbose flag wins over the configured level.
func applyLogConfig(cfg *config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
}

// Version returns the version string.
func Version() string {
	return fmt.Sprintf("hookline version %s", "0.1.0-dev")
}
