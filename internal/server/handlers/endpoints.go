package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/watzon/hookline/internal/endpoints"
	"github.com/watzon/hookline/internal/metrics"
)

type createURLResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

type authenticateResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	URL     string `json:"url"`
}

// CreateURL registers a fresh webhook endpoint. The password is optional;
// an absent body counts as no password.
func (h *Handlers) CreateURL(w http.ResponseWriter, r *http.Request) {
	var input endpoints.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(w, "invalid json body")
		return
	}

	endpoint, err := h.endpoints.Register(r.Context(), input.Password, h.baseURL(r))
	if err != nil {
		log.Error().Err(err).Msg("Failed to register endpoint")
		InternalError(w)
		return
	}

	metrics.RecordEndpointRegistered()

	JSON(w, http.StatusCreated, createURLResponse{
		Message: "webhook url created successfully",
		URL:     endpoint.URL,
	})
}

// Authenticate validates a code/password pair and returns the endpoint URL.
func (h *Handlers) Authenticate(w http.ResponseWriter, r *http.Request) {
	var input endpoints.AuthenticateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(w, "invalid json body")
		return
	}

	endpoint, err := h.endpoints.Authenticate(r.Context(), input.Code, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, endpoints.ErrCodeRequired):
			BadRequest(w, "code is required")
		case errors.Is(err, endpoints.ErrPasswordRequired):
			BadRequest(w, "password is required")
		case errors.Is(err, endpoints.ErrNotFound):
			NotFound(w, "code not found")
		case errors.Is(err, endpoints.ErrInvalidCredentials):
			Unauthorized(w, "invalid code or password")
		default:
			log.Error().Err(err).Msg("Failed to authenticate")
			InternalError(w)
		}
		return
	}

	JSON(w, http.StatusOK, authenticateResponse{
		Message: "authenticated successfully",
		Code:    endpoint.Code,
		URL:     endpoint.URL,
	})
}
