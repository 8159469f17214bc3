package endpoints

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when no record exists for a code. It is
// a normal outcome, not a transient failure.
var ErrNotFound = errors.New("endpoint not found")

// Store is a TTL-capable key-value store for endpoint records. Every write
// sets a fresh TTL window; RefreshTTL resets it without touching the value.
type Store interface {
	// Put upserts the record under code with the given TTL, overwriting any
	// existing value.
	Put(ctx context.Context, code string, endpoint *Endpoint, ttl time.Duration) error

	// Get returns the record for code, or ErrNotFound. Reading does not
	// refresh the TTL; callers refresh explicitly once they decide to.
	Get(ctx context.Context, code string) (*Endpoint, error)

	// RefreshTTL resets the record's expiry to a full TTL window. Returns
	// ErrNotFound if no record exists.
	RefreshTTL(ctx context.Context, code string, ttl time.Duration) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
