package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/watzon/hookline/internal/endpoints"
	"github.com/watzon/hookline/internal/metrics"
	"github.com/watzon/hookline/internal/relay"
)

const touchTimeout = 5 * time.Second

type relayResponse struct {
	Message *relay.Event `json:"message"`
}

// Relay accepts any HTTP request on /{code}/webhook, broadcasts the
// captured call to subscribers of the code's topic, and acks the caller
// immediately. Delivery is fire-and-forget: the response never depends on
// whether anyone was listening, and the code does not have to be
// registered.
func (h *Handlers) Relay(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	event, err := relay.Capture(r, code)
	if err != nil {
		log.Warn().Err(err).Str("code", code).Msg("Failed to capture webhook request")
		BadRequest(w, "failed to read request body")
		return
	}

	delivered := h.broker.Publish(code, event)
	metrics.RecordRelayEvent(delivered)

	// Best-effort TTL refresh for registered codes; never lets a store
	// problem fail the inbound call.
	go h.touch(code)

	JSON(w, http.StatusOK, relayResponse{Message: event})
}

func (h *Handlers) touch(code string) {
	ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
	defer cancel()

	if err := h.endpoints.Touch(ctx, code); err != nil && !errors.Is(err, endpoints.ErrNotFound) {
		log.Warn().Err(err).Str("code", code).Msg("Failed to refresh endpoint TTL after relay")
	}
}
