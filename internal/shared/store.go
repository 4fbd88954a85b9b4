package shared

import (
	"context"
	"log/slog"
	"sync"

	"github.com/graffic/quotie/internal/storage"
)

// Store is the small key/value area shared with the widget. Each slot holds
// at most one value and every publish replaces it.
type Store interface {
	Publish(ctx context.Context, slot Slot, q SharedQuote) error
	// Read returns nil, nil when the slot has never been published.
	Read(ctx context.Context, slot Slot) (*SharedQuote, error)
	// Clear empties a slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context, slot Slot) error
}

// DefaultsStore keeps slots in the shared app group suite
type DefaultsStore struct {
	defaults *storage.Defaults
	logger   *slog.Logger
}

// NewDefaultsStore creates a store over defaults, which should be scoped to
// storage.SuiteGroup
func NewDefaultsStore(defaults *storage.Defaults, logger *slog.Logger) *DefaultsStore {
	return &DefaultsStore{defaults: defaults, logger: logger}
}

// Publish implements Store
func (s *DefaultsStore) Publish(ctx context.Context, slot Slot, q SharedQuote) error {
	return s.defaults.Set(ctx, string(slot), q)
}

// Read implements Store. A record that cannot be decoded reads as absent.
func (s *DefaultsStore) Read(ctx context.Context, slot Slot) (*SharedQuote, error) {
	var q SharedQuote
	found, err := s.defaults.Get(ctx, string(slot), &q)
	if err != nil {
		s.logger.Warn("failed to read shared quote", "suite", s.defaults.Suite(), "slot", slot, "error", err)
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	return &q, nil
}

// Clear implements Store
func (s *DefaultsStore) Clear(ctx context.Context, slot Slot) error {
	return s.defaults.Remove(ctx, string(slot))
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[Slot]SharedQuote
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[Slot]SharedQuote)}
}

// Publish implements Store
func (s *MemoryStore) Publish(_ context.Context, slot Slot, q SharedQuote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = q
	return nil
}

// Read implements Store
func (s *MemoryStore) Read(_ context.Context, slot Slot) (*SharedQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.slots[slot]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

// Clear implements Store
func (s *MemoryStore) Clear(_ context.Context, slot Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}
