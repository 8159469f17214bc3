package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/watzon/hookline/internal/config"
	"github.com/watzon/hookline/internal/endpoints"
	"github.com/watzon/hookline/internal/server"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hookline server",
	Long: `Start the hookline server.

The server will:
  - Issue webhook URLs on POST /api/v1/get-url
  - Relay anything sent to /{code}/webhook to WebSocket subscribers
  - Refresh record expiry on authentication and inbound webhooks
  - Reload logging settings when the config file changes`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 3089, "Port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := config.LoadOptions{ConfigFile: cfgFile}

	cfg, err := config.Load(opts)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}

	// Dev mode trades the external store for the in-process one and turns
	// the log level up.
	if cfg.Dev.Enabled {
		cfg.Store.Driver = "memory"
		cfg.Logging.Level = "debug"
	}

	applyLogConfig(&cfg.Logging)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close store")
		}
	}()

	srv := server.New(cfg, store)

	// Logging settings can be changed without a restart; everything else
	// requires one.
	if err := config.Watch(opts, func(updated *config.Config) {
		log.Info().Str("level", updated.Logging.Level).Msg("Config file changed, reloading log settings")
		applyLogConfig(&updated.Logging)
	}); err != nil {
		log.Warn().Err(err).Msg("Config watching disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Shutdown signal received")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
		}
	}()

	logServerInfo(cfg)

	if err := srv.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
		return err
	}

	<-ctx.Done()
	return nil
}

func openStore(cfg *config.Config) (endpoints.Store, error) {
	switch cfg.Store.Driver {
	case "redis":
		store, err := endpoints.NewRedisStore(cfg.Store.URL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		log.Info().Str("url", cfg.Store.URL).Msg("Using redis store")
		return store, nil

	case "memory":
		store := endpoints.NewMemoryStore()
		if err := store.StartSweeper(cfg.Store.SweepSchedule); err != nil {
			return nil, fmt.Errorf("starting expiry sweeper: %w", err)
		}
		log.Info().Str("sweep", cfg.Store.SweepSchedule).Msg("Using in-memory store")
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

func logServerInfo(cfg *config.Config) {
	log.Info().
		Str("url", "http://"+cfg.Server.Address()).
		Msg("Server started")

	log.Info().
		Str("endpoint", "http://"+cfg.Server.Address()+"/api/v1/get-url").
		Msg("Webhook URL issuance")

	log.Info().
		Str("ws", "ws://"+cfg.Server.Address()+"/api/realtime").
		Msg("Realtime WebSocket endpoint")
}
