package nudge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/graffic/quotie/internal/daily"
)

// NotificationID is the stable identity of the hungry nudge. Scheduling
// under it replaces the previous one.
const NotificationID = "memmi.hungry.nudge"

// DebugNotificationPrefix prefixes the ids of one-off test notifications
const DebugNotificationPrefix = "memmi.debug.test."

// Messages is the rotation pool, in order
var Messages = []string{
	"Getting hungry... read anything good lately?",
	"Feeling snackish... hear anything good lately?",
	"I could eat... see anything good lately?",
	"My quote tank’s looking low... got any good lines for me?",
	"Little hungry over here… find anything worth saving today?",
}

// ErrNotAuthorized is returned by ScheduleTest when notifications are off
var ErrNotAuthorized = errors.New("notifications not authorized")

// Outcome is what a Refresh ended up doing
type Outcome string

const (
	OutcomeCanceled    Outcome = "canceled"
	OutcomeDenied      Outcome = "denied"
	OutcomeAlreadySent Outcome = "already_sent"
	OutcomeScheduled   Outcome = "scheduled"
)

// Config controls when and how the nudge fires
type Config struct {
	Hour     int
	Minute   int
	Title    string
	Location *time.Location
}

// Scheduler decides whether Memmi should ask to be fed tonight
type Scheduler struct {
	center NotificationCenter
	state  *StateStore
	config Config
	clock  daily.Clock
	logger *slog.Logger
}

// NewScheduler creates a scheduler
func NewScheduler(center NotificationCenter, state *StateStore, config Config, clock daily.Clock, logger *slog.Logger) *Scheduler {
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Title == "" {
		config.Title = "Memmi"
	}
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{
		center: center,
		state:  state,
		config: config,
		clock:  clock,
		logger: logger,
	}
}

// FireTime returns today at hour:minute in loc, or tomorrow when that
// moment is not after now
func FireTime(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	target := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if now.Before(target) {
		return target
	}
	return time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
}

// NextMessageIndex returns the index after last in a pool of size n
func NextMessageIndex(last, n int) int {
	if n <= 0 {
		return 0
	}
	next := (last + 1) % n
	if next < 0 {
		next += n
	}
	return next
}

// Refresh re-evaluates the nudge for hungerLevel. It is called whenever
// hunger changes and on launch.
func (s *Scheduler) Refresh(ctx context.Context, hungerLevel int) (Outcome, error) {
	if hungerLevel > daily.HungerDangerThreshold {
		if err := s.center.Cancel(ctx, NotificationID); err != nil {
			return "", fmt.Errorf("failed to cancel nudge: %w", err)
		}
		s.logger.Debug("hunger satisfied, nudge canceled", "hunger", hungerLevel)
		return OutcomeCanceled, nil
	}

	granted, err := s.authorize(ctx)
	if err != nil {
		return "", err
	}
	if !granted {
		s.logger.Info("notifications not authorized, skipping nudge")
		return OutcomeDenied, nil
	}

	state, err := s.state.Load(ctx)
	if err != nil {
		return "", err
	}

	now := s.clock()
	if state.LastNudgeDate != nil && daily.SameDay(*state.LastNudgeDate, now, s.config.Location) {
		return OutcomeAlreadySent, nil
	}

	body, err := s.nextMessage(ctx, state.LastMessageIndex)
	if err != nil {
		return "", err
	}

	req := Request{
		ID:     NotificationID,
		FireAt: FireTime(now, s.config.Hour, s.config.Minute, s.config.Location),
		Title:  s.config.Title,
		Body:   body,
	}
	if err := s.center.Cancel(ctx, NotificationID); err != nil {
		return "", fmt.Errorf("failed to cancel nudge: %w", err)
	}
	if err := s.center.Schedule(ctx, req); err != nil {
		return "", fmt.Errorf("failed to schedule nudge: %w", err)
	}

	// Counts as sent as soon as it is scheduled.
	if err := s.state.MarkSent(ctx, now); err != nil {
		return "", err
	}

	s.logger.Info("nudge scheduled", "fire_at", req.FireAt, "hunger", hungerLevel)
	return OutcomeScheduled, nil
}

// CancelNudge removes any pending hungry nudge
func (s *Scheduler) CancelNudge(ctx context.Context) error {
	return s.center.Cancel(ctx, NotificationID)
}

// ScheduleTest schedules the next rotation message after delay under the
// stable identity. The day's dedup record is left alone.
func (s *Scheduler) ScheduleTest(ctx context.Context, delay time.Duration) (Request, error) {
	granted, err := s.authorize(ctx)
	if err != nil {
		return Request{}, err
	}
	if !granted {
		return Request{}, ErrNotAuthorized
	}

	state, err := s.state.Load(ctx)
	if err != nil {
		return Request{}, err
	}
	body, err := s.nextMessage(ctx, state.LastMessageIndex)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		ID:     NotificationID,
		FireAt: s.clock().Add(delay),
		Title:  s.config.Title,
		Body:   body,
	}
	if err := s.center.Schedule(ctx, req); err != nil {
		return Request{}, fmt.Errorf("failed to schedule test nudge: %w", err)
	}
	return req, nil
}

// Debug schedules a one-off notification with a fresh id, at least one
// second from now. It touches no nudge state.
func (s *Scheduler) Debug(ctx context.Context, delay time.Duration) (Request, error) {
	req := Request{
		ID:     DebugNotificationPrefix + uuid.NewString(),
		FireAt: s.clock().Add(max(delay, time.Second)),
		Title:  s.config.Title,
		Body:   Messages[0],
	}
	if err := s.center.Schedule(ctx, req); err != nil {
		return Request{}, fmt.Errorf("failed to schedule debug notification: %w", err)
	}
	s.logger.Info("debug notification scheduled", "id", req.ID, "fire_at", req.FireAt)
	return req, nil
}

func (s *Scheduler) authorize(ctx context.Context) (bool, error) {
	status, err := s.center.AuthorizationStatus(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read notification permission: %w", err)
	}

	switch status {
	case StatusAuthorized:
		return true, nil
	case StatusNotDetermined:
		granted, err := s.center.RequestAuthorization(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to request notification permission: %w", err)
		}
		return granted, nil
	default:
		return false, nil
	}
}

// nextMessage advances the rotation and persists the new index
func (s *Scheduler) nextMessage(ctx context.Context, last int) (string, error) {
	next := NextMessageIndex(last, len(Messages))
	if err := s.state.SetMessageIndex(ctx, next); err != nil {
		return "", err
	}
	return Messages[next], nil
}
