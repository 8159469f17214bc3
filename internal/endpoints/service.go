package endpoints

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/watzon/hookline/internal/auth"
	"github.com/watzon/hookline/internal/codes"
)

var (
	ErrCodeRequired       = errors.New("code is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid code or password")
)

// ServiceConfig holds the tunables for endpoint lifecycle.
type ServiceConfig struct {
	// CodeLength is the number of hex characters in a generated code.
	CodeLength int

	// TTL is the sliding expiry window applied on writes and refreshes.
	TTL time.Duration
}

// Service provides endpoint registration and authentication over a Store.
type Service struct {
	store      Store
	codeLength int
	ttl        time.Duration
}

// NewService creates an endpoint service.
func NewService(store Store, cfg ServiceConfig) *Service {
	return &Service{
		store:      store,
		codeLength: cfg.CodeLength,
		ttl:        cfg.TTL,
	}
}

// TTL returns the configured sliding expiry window.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Register creates a fresh endpoint: a new code every call, never
// get-or-create. The password may be empty; it is hashed either way so
// unprotected endpoints are indistinguishable in the store.
func (s *Service) Register(ctx context.Context, password, baseURL string) (*Endpoint, error) {
	code, err := codes.Generate(s.codeLength)
	if err != nil {
		return nil, fmt.Errorf("generating code: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	endpoint := &Endpoint{
		Code:         code,
		URL:          strings.TrimSuffix(baseURL, "/") + "/" + code + "/webhook",
		PasswordHash: hash,
	}

	if err := s.store.Put(ctx, code, endpoint, s.ttl); err != nil {
		return nil, fmt.Errorf("persisting endpoint: %w", err)
	}

	log.Info().Str("code", code).Msg("Endpoint registered")
	return endpoint, nil
}

// Authenticate validates a code/password pair. A successful read refreshes
// the record's TTL; failed attempts leave the expiry untouched.
func (s *Service) Authenticate(ctx context.Context, code, password string) (*Endpoint, error) {
	if code == "" {
		return nil, ErrCodeRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	endpoint, err := s.store.Get(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading endpoint: %w", err)
	}

	if err := auth.VerifyPassword(password, endpoint.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordHashMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("verifying password: %w", err)
	}

	if err := s.store.RefreshTTL(ctx, code, s.ttl); err != nil {
		// The credential check already passed; an expiry bookkeeping
		// failure is not worth failing the login over.
		log.Warn().Err(err).Str("code", code).Msg("Failed to refresh endpoint TTL after authentication")
	}

	return endpoint, nil
}

// Touch resets the TTL for a registered code. Returns ErrNotFound for
// unregistered codes so callers can decide how loudly to care.
func (s *Service) Touch(ctx context.Context, code string) error {
	return s.store.RefreshTTL(ctx, code, s.ttl)
}
