package endpoints

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	endpoint := &Endpoint{URL: "http://example.com/abcd1234/webhook", PasswordHash: "hash"}
	if err := store.Put(ctx, "abcd1234", endpoint, time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "abcd1234")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Code != "abcd1234" {
		t.Errorf("Get returned code %q, want %q", got.Code, "abcd1234")
	}
	if got.URL != endpoint.URL {
		t.Errorf("Get returned url %q, want %q", got.URL, endpoint.URL)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get(context.Background(), "zzzz0000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	endpoint := &Endpoint{URL: "http://example.com/a/webhook"}
	if err := store.Put(ctx, "a", endpoint, 50*time.Millisecond); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after expiry error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreRefreshTTL(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	endpoint := &Endpoint{URL: "http://example.com/a/webhook"}
	if err := store.Put(ctx, "a", endpoint, 200*time.Millisecond); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if err := store.RefreshTTL(ctx, "a", time.Minute); err != nil {
		t.Fatalf("RefreshTTL failed: %v", err)
	}

	time.Sleep(150 * time.Millisecond)

	if _, err := store.Get(ctx, "a"); err != nil {
		t.Errorf("Get after refresh failed: %v", err)
	}
}

func TestMemoryStoreRefreshTTLMissing(t *testing.T) {
	store := NewMemoryStore()

	if err := store.RefreshTTL(context.Background(), "missing", time.Minute); !errors.Is(err, ErrNotFound) {
		t.Errorf("RefreshTTL error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "old", &Endpoint{}, 10*time.Millisecond); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "new", &Endpoint{}, time.Minute); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	store.sweep()

	store.mu.RLock()
	_, oldExists := store.entries["old"]
	_, newExists := store.entries["new"]
	store.mu.RUnlock()

	if oldExists {
		t.Error("sweep left expired entry in place")
	}
	if !newExists {
		t.Error("sweep removed live entry")
	}
}
