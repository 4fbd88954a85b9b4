// Package journal composes the quote repository with the derived daily
// state: feeding Memmi, the evening nudge and the widget projection.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/graffic/quotie/internal/daily"
	"github.com/graffic/quotie/internal/enrich"
	"github.com/graffic/quotie/internal/nudge"
	"github.com/graffic/quotie/internal/quotes"
)

// ErrEmptyText is returned when adding a quote with no text
var ErrEmptyText = errors.New("quote text is empty")

// NudgeRefresher re-evaluates the evening nudge for a hunger level
type NudgeRefresher interface {
	Refresh(ctx context.Context, hungerLevel int) (nudge.Outcome, error)
}

// HungerStore persists Memmi's hunger
type HungerStore interface {
	Load(ctx context.Context) (daily.HungerState, error)
	Save(ctx context.Context, state daily.HungerState) error
}

// TodayPublisher publishes the quote of the day for the widget
type TodayPublisher interface {
	PublishToday(ctx context.Context, collection []quotes.Quote) error
}

// Options configures a Service
type Options struct {
	Repository *quotes.Repository
	Hunger     HungerStore
	Nudge      NudgeRefresher
	Publisher  TodayPublisher
	// Enricher is optional.
	Enricher      enrich.Enricher
	EnrichTimeout time.Duration
	Clock         daily.Clock
	Location      *time.Location
	Logger        *slog.Logger
}

// Service runs the user-facing journal operations
type Service struct {
	repo          *quotes.Repository
	hunger        HungerStore
	nudge         NudgeRefresher
	publisher     TodayPublisher
	enricher      enrich.Enricher
	enrichTimeout time.Duration
	clock         daily.Clock
	loc           *time.Location
	logger        *slog.Logger
}

// NewService creates a journal service
func NewService(opts Options) *Service {
	s := &Service{
		repo:          opts.Repository,
		hunger:        opts.Hunger,
		nudge:         opts.Nudge,
		publisher:     opts.Publisher,
		enricher:      opts.Enricher,
		enrichTimeout: opts.EnrichTimeout,
		clock:         opts.Clock,
		loc:           opts.Location,
		logger:        opts.Logger,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.enrichTimeout <= 0 {
		s.enrichTimeout = 5 * time.Second
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Quotes returns the underlying repository
func (s *Service) Quotes() *quotes.Repository {
	return s.repo
}

// AddResult describes what adding a quote did
type AddResult struct {
	Quote  quotes.Quote
	Hunger daily.HungerState
	Nudge  nudge.Outcome
	// Reaction is Memmi's remark from the enrichment service, if any.
	Reaction string
}

// AddQuote saves a new quote and feeds Memmi once. A failure to persist is
// returned after the rest of the flow has run; the quote stays in memory.
func (s *Service) AddQuote(ctx context.Context, in quotes.NewQuote) (AddResult, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Author = strings.TrimSpace(in.Author)
	in.Source = strings.TrimSpace(in.Source)
	if in.Text == "" {
		return AddResult{}, ErrEmptyText
	}

	q, persistErr := s.repo.Add(ctx, in)
	if persistErr != nil && !errors.Is(persistErr, quotes.ErrPersist) {
		return AddResult{}, persistErr
	}
	result := AddResult{Quote: q}

	state, err := s.hunger.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load hunger: %w", err)
	}
	state = daily.Feed(state, q.Text, s.clock())
	if err := s.hunger.Save(ctx, state); err != nil {
		return result, fmt.Errorf("failed to save hunger: %w", err)
	}
	result.Hunger = state
	s.logger.Info("memmi fed", "quote_id", q.ID, "hunger", state.Level)

	result.Nudge = s.refreshNudge(ctx, state.Level)

	if reaction, ok := s.enrichQuote(ctx, q); ok {
		result.Reaction = reaction
		if updated, found := s.repo.Get(q.ID); found {
			result.Quote = updated
		}
	}

	return result, persistErr
}

// AddSnack adds a library quote; see AddQuote
func (s *Service) AddSnack(ctx context.Context, in quotes.NewQuote) (AddResult, error) {
	return s.AddQuote(ctx, in)
}

// ApplyDailyDecay lowers hunger for every calendar day since Memmi was
// last fed. It reports whether anything changed.
func (s *Service) ApplyDailyDecay(ctx context.Context) (daily.HungerState, bool, error) {
	state, err := s.hunger.Load(ctx)
	if err != nil {
		return daily.HungerState{}, false, fmt.Errorf("failed to load hunger: %w", err)
	}

	decayed, changed := daily.Decay(state, s.clock(), s.loc)
	if !changed {
		return state, false, nil
	}
	if err := s.hunger.Save(ctx, decayed); err != nil {
		return state, false, fmt.Errorf("failed to save hunger: %w", err)
	}

	s.logger.Info("hunger decayed", "from", state.Level, "to", decayed.Level)
	s.refreshNudge(ctx, decayed.Level)
	return decayed, true, nil
}

// Hunger returns the current hunger state without applying decay
func (s *Service) Hunger(ctx context.Context) (daily.HungerState, error) {
	return s.hunger.Load(ctx)
}

// QuoteOfTheDay returns today's quote, or nil for an empty journal
func (s *Service) QuoteOfTheDay() *quotes.Quote {
	return daily.QuoteOfTheDay(s.repo.All(), s.clock().In(s.loc))
}

// UpdateWidgetQuoteOfTheDay publishes today's quote for the widget and
// asks it to reload
func (s *Service) UpdateWidgetQuoteOfTheDay(ctx context.Context) error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.PublishToday(ctx, s.repo.All())
}

// OnLaunch runs the start-of-session pass: decay, the widget quote of the
// day and a nudge check for the current hunger.
func (s *Service) OnLaunch(ctx context.Context) error {
	state, changed, err := s.ApplyDailyDecay(ctx)
	if err != nil {
		return err
	}
	if err := s.UpdateWidgetQuoteOfTheDay(ctx); err != nil {
		s.logger.Error("failed to update widget quote of the day", "error", err)
	}
	if !changed {
		s.refreshNudge(ctx, state.Level)
	}
	return nil
}

func (s *Service) refreshNudge(ctx context.Context, level int) nudge.Outcome {
	if s.nudge == nil {
		return ""
	}
	outcome, err := s.nudge.Refresh(ctx, level)
	if err != nil {
		s.logger.Error("failed to refresh nudge", "hunger", level, "error", err)
		return ""
	}
	s.logger.Debug("nudge refreshed", "hunger", level, "outcome", outcome)
	return outcome
}

// enrichQuote asks the enrichment service for Memmi's reaction and stores
// it on the quote. Failures are logged and never surface to the caller.
func (s *Service) enrichQuote(ctx context.Context, q quotes.Quote) (string, bool) {
	if s.enricher == nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
	defer cancel()

	resp, err := s.enricher.Enrich(ctx, q.Text)
	if err != nil {
		s.logger.Warn("quote enrichment failed", "quote_id", q.ID, "error", err)
		return "", false
	}
	reaction := strings.TrimSpace(resp.Memmi)
	if reaction == "" {
		return "", false
	}

	current, ok := s.repo.Get(q.ID)
	if !ok {
		return "", false
	}
	current.MemmiReaction = &reaction
	if _, err := s.repo.Update(ctx, current); err != nil {
		s.logger.Warn("failed to save memmi reaction", "quote_id", q.ID, "error", err)
	}
	return reaction, true
}
