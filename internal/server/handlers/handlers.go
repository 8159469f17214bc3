// Package handlers implements hookline's HTTP endpoints.
package handlers

import (
	"net/http"

	"github.com/watzon/hookline/internal/config"
	"github.com/watzon/hookline/internal/endpoints"
	"github.com/watzon/hookline/internal/realtime"
)

type Handlers struct {
	endpoints *endpoints.Service
	broker    *realtime.Broker
	cfg       *config.Config
}

func New(service *endpoints.Service, broker *realtime.Broker, cfg *config.Config) *Handlers {
	return &Handlers{
		endpoints: service,
		broker:    broker,
		cfg:       cfg,
	}
}

// NotFound is the fallback for unrecognized paths.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, http.StatusNotFound, "specified url not found")
}

// baseURL resolves the scheme+host callback URLs are built from: the
// configured public URL when set, otherwise the inbound request's.
func (h *Handlers) baseURL(r *http.Request) string {
	if h.cfg.Server.PublicURL != "" {
		return h.cfg.Server.PublicURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host
}
