// Package server wires the HTTP surface of hookline together.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/watzon/hookline/internal/config"
	"github.com/watzon/hookline/internal/endpoints"
	"github.com/watzon/hookline/internal/realtime"
)

type Server struct {
	cfg        *config.Config
	store      endpoints.Store
	service    *endpoints.Service
	broker     *realtime.Broker
	httpServer *http.Server
	router     *Router
}

func New(cfg *config.Config, store endpoints.Store) *Server {
	srv := &Server{
		cfg:   cfg,
		store: store,
		service: endpoints.NewService(store, endpoints.ServiceConfig{
			CodeLength: cfg.Webhook.CodeLength,
			TTL:        cfg.Webhook.TTL(),
		}),
		broker: realtime.NewBroker(),
	}

	srv.router = NewRouter(srv)
	srv.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      srv.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return srv
}

func (s *Server) Start(ctx context.Context) error {
	log.Info().
		Str("addr", s.cfg.Server.Address()).
		Msg("Starting server")

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down server")

	s.broker.Stop()
	log.Info().Msg("Realtime broker stopped")

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Config() *config.Config {
	return s.cfg
}

func (s *Server) Store() endpoints.Store {
	return s.store
}

func (s *Server) Service() *endpoints.Service {
	return s.service
}

func (s *Server) Broker() *realtime.Broker {
	return s.broker
}
