package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/watzon/hookline/internal/endpoints"
	"github.com/watzon/hookline/internal/realtime"
)

const (
	HealthStatusHealthy  = "healthy"
	HealthStatusDegraded = "degraded"
)

type HealthHandler struct {
	store  endpoints.Store
	broker *realtime.Broker
}

type HealthResponse struct {
	Status   string               `json:"status"`
	Store    string               `json:"store"`
	Realtime realtime.BrokerStats `json:"realtime"`
}

func NewHealthHandler(store endpoints.Store, broker *realtime.Broker) *HealthHandler {
	return &HealthHandler{store: store, broker: broker}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:   HealthStatusHealthy,
		Store:    "ok",
		Realtime: h.broker.Stats(),
	}

	status := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		resp.Status = HealthStatusDegraded
		resp.Store = "unreachable"
		status = http.StatusServiceUnavailable
	}

	JSON(w, status, resp)
}
