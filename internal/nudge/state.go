package nudge

import (
	"context"
	"fmt"
	"time"

	"github.com/graffic/quotie/internal/storage"
)

// Keys in the private app suite
const (
	KeyLastNudgeDate    = "memmi.lastNudgeDate"
	KeyLastMessageIndex = "memmi.lastNudgeMessageIndex"
)

// State is the nudge bookkeeping that survives restarts
type State struct {
	LastNudgeDate    *time.Time
	LastMessageIndex int
}

// StateStore persists State in the private key/value suite
type StateStore struct {
	defaults *storage.Defaults
}

// NewStateStore creates a store over defaults
func NewStateStore(defaults *storage.Defaults) *StateStore {
	return &StateStore{defaults: defaults}
}

// Load returns the stored state; absent keys read as zero values
func (s *StateStore) Load(ctx context.Context) (State, error) {
	last, err := s.defaults.Time(ctx, KeyLastNudgeDate)
	if err != nil {
		return State{}, err
	}
	index, err := s.defaults.Int(ctx, KeyLastMessageIndex)
	if err != nil {
		return State{}, err
	}
	return State{LastNudgeDate: last, LastMessageIndex: index}, nil
}

// SetMessageIndex records the message that was last used
func (s *StateStore) SetMessageIndex(ctx context.Context, index int) error {
	if err := s.defaults.Set(ctx, KeyLastMessageIndex, index); err != nil {
		return fmt.Errorf("failed to save message index: %w", err)
	}
	return nil
}

// MarkSent records at as the day's nudge
func (s *StateStore) MarkSent(ctx context.Context, at time.Time) error {
	if err := s.defaults.Set(ctx, KeyLastNudgeDate, at); err != nil {
		return fmt.Errorf("failed to save nudge date: %w", err)
	}
	return nil
}
