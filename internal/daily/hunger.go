package daily

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/graffic/quotie/internal/storage"
	"github.com/rivo/uniseg"
)

const (
	// MaxHunger is the top of the hunger scale
	MaxHunger = 5
	// FeedBonusThreshold is the text length, in characters, that earns the
	// larger feeding
	FeedBonusThreshold = 77
	// HungerDangerThreshold is the highest level at which Memmi asks to be fed
	HungerDangerThreshold = 3
)

// Keys in the private app suite
const (
	KeyHungerLevel = "hungerLevel"
	KeyLastFedDate = "lastFedDate"
)

// HungerState is Memmi's fullness. Higher is better fed.
type HungerState struct {
	Level       int
	LastFedDate time.Time
}

// Decay lowers the level by one per calendar day since the last feeding.
// It reports false, leaving state untouched, when no day has passed.
func Decay(state HungerState, now time.Time, loc *time.Location) (HungerState, bool) {
	days := DaysBetween(state.LastFedDate, now, loc)
	if days <= 0 {
		return state, false
	}

	state.Level = max(state.Level-days, 0)
	state.LastFedDate = now
	return state, true
}

// FeedAmount is how much a quote with text is worth. Length counts
// user-perceived characters, so an emoji sequence or an accented letter
// built from combining marks is one character.
func FeedAmount(text string) int {
	if uniseg.GraphemeClusterCount(text) >= FeedBonusThreshold {
		return 2
	}
	return 1
}

// Feed adds the worth of text to the level, capped at MaxHunger
func Feed(state HungerState, text string, now time.Time) HungerState {
	state.Level = min(state.Level+FeedAmount(text), MaxHunger)
	state.LastFedDate = now
	return state
}

// HungerStore persists HungerState in the private key/value suite
type HungerStore struct {
	defaults *storage.Defaults
	clock    Clock
	logger   *slog.Logger
}

// NewHungerStore creates a store over defaults
func NewHungerStore(defaults *storage.Defaults, clock Clock, logger *slog.Logger) *HungerStore {
	if clock == nil {
		clock = time.Now
	}
	return &HungerStore{defaults: defaults, clock: clock, logger: logger}
}

// Load returns the persisted state. The first run creates {0, now}.
func (s *HungerStore) Load(ctx context.Context) (HungerState, error) {
	var state HungerState

	found, err := s.defaults.Get(ctx, KeyLastFedDate, &state.LastFedDate)
	if err != nil {
		return HungerState{}, err
	}
	if !found {
		state = HungerState{Level: 0, LastFedDate: s.clock()}
		s.logger.Info("initializing hunger state")
		if err := s.Save(ctx, state); err != nil {
			return HungerState{}, err
		}
		return state, nil
	}

	if state.Level, err = s.defaults.Int(ctx, KeyHungerLevel); err != nil {
		return HungerState{}, err
	}
	state.Level = min(max(state.Level, 0), MaxHunger)
	return state, nil
}

// Save writes state, replacing both records
func (s *HungerStore) Save(ctx context.Context, state HungerState) error {
	if err := s.defaults.Set(ctx, KeyHungerLevel, state.Level); err != nil {
		return fmt.Errorf("failed to save hunger level: %w", err)
	}
	if err := s.defaults.Set(ctx, KeyLastFedDate, state.LastFedDate); err != nil {
		return fmt.Errorf("failed to save last fed date: %w", err)
	}
	return nil
}
