package widget

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/graffic/quotie/internal/shared"
)

// ErrReadOnly is returned by writes to the widget's view of the shared store
var ErrReadOnly = errors.New("widget store is read-only")

// OpenFunc opens the shared store. The closer releases whatever the store
// holds open and may be nil.
type OpenFunc func() (shared.Store, io.Closer, error)

// LazyStore opens the shared store on first successful use. Until the app
// has created it, every read tries again and reports the slot as empty.
type LazyStore struct {
	mu     sync.Mutex
	open   OpenFunc
	store  shared.Store
	closer io.Closer
	logger *slog.Logger
}

// NewLazyStore creates a store that opens through open when first read
func NewLazyStore(open OpenFunc, logger *slog.Logger) *LazyStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LazyStore{open: open, logger: logger}
}

func (s *LazyStore) current() shared.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return s.store
	}
	store, closer, err := s.open()
	if err != nil {
		s.logger.Debug("shared storage unavailable", "error", err)
		return nil
	}
	s.store, s.closer = store, closer
	s.logger.Debug("shared storage opened")
	return s.store
}

// Read implements shared.Store
func (s *LazyStore) Read(ctx context.Context, slot shared.Slot) (*shared.SharedQuote, error) {
	store := s.current()
	if store == nil {
		return nil, nil
	}
	return store.Read(ctx, slot)
}

// Publish implements shared.Store. The widget never writes.
func (s *LazyStore) Publish(context.Context, shared.Slot, shared.SharedQuote) error {
	return ErrReadOnly
}

// Clear implements shared.Store. The widget never writes.
func (s *LazyStore) Clear(context.Context, shared.Slot) error {
	return ErrReadOnly
}

// Close releases the underlying store if it was opened
func (s *LazyStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.store, s.closer = nil, nil
	return err
}
