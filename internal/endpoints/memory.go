package endpoints

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type memoryEntry struct {
	endpoint  Endpoint
	expiresAt time.Time
}

// MemoryStore is an in-process Store for development and tests. Expired
// entries are dropped lazily on read and swept periodically by a cron job.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	cron    *cron.Cron
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// StartSweeper schedules periodic removal of expired entries. The schedule
// is a cron expression ("@every 1m" style descriptors included).
func (m *MemoryStore) StartSweeper(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, m.sweep); err != nil {
		return err
	}
	c.Start()

	m.mu.Lock()
	m.cron = c
	m.mu.Unlock()

	log.Debug().Str("schedule", schedule).Msg("Memory store sweeper started")
	return nil
}

func (m *MemoryStore) Put(_ context.Context, code string, endpoint *Endpoint, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[code] = memoryEntry{
		endpoint:  *endpoint,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, code string) (*Endpoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[code]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, code)
		return nil, ErrNotFound
	}

	endpoint := entry.endpoint
	endpoint.Code = code
	return &endpoint, nil
}

func (m *MemoryStore) RefreshTTL(_ context.Context, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[code]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(m.entries, code)
		return ErrNotFound
	}

	entry.expiresAt = time.Now().Add(ttl)
	m.entries[code] = entry
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cron != nil {
		m.cron.Stop()
		m.cron = nil
	}
	m.entries = make(map[string]memoryEntry)
	return nil
}

func (m *MemoryStore) sweep() {
	now := time.Now()

	m.mu.Lock()
	removed := 0
	for code, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, code)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Swept expired endpoints")
	}
}
