package notify

import (
	"context"
	"log/slog"
	"time"
)

// Sender delivers a notification to the user
type Sender interface {
	Send(ctx context.Context, title, body string) error
}

// Config holds dispatcher configuration
type Config struct {
	Interval time.Duration
}

// Dispatcher periodically delivers due notifications
type Dispatcher struct {
	center *Center
	sender Sender
	config Config
	clock  func() time.Time
	logger *slog.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(center *Center, sender Sender, config Config, clock func() time.Time, logger *slog.Logger) *Dispatcher {
	if clock == nil {
		clock = time.Now
	}
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}
	return &Dispatcher{
		center: center,
		sender: sender,
		config: config,
		clock:  clock,
		logger: logger,
	}
}

// Start begins the periodic dispatch loop
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info("starting notification dispatcher", "interval", d.config.Interval)

	if _, err := d.DispatchOnce(ctx); err != nil {
		d.logger.Error("initial notification dispatch failed", "error", err)
	}

	ticker := time.NewTicker(d.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("stopping notification dispatcher")
			return ctx.Err()
		case <-ticker.C:
			if _, err := d.DispatchOnce(ctx); err != nil {
				d.logger.Error("notification dispatch failed", "error", err)
			}
		}
	}
}

// DispatchOnce sends every due notification and returns how many were
// delivered. A failed send stays pending for the next run.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	now := d.clock()
	due, err := d.center.Due(ctx, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, n := range due {
		if err := d.sender.Send(ctx, n.Title, n.Body); err != nil {
			d.logger.Warn("failed to deliver notification", "id", n.ID, "error", err)
			continue
		}
		if err := d.center.delivered(ctx, n, now); err != nil {
			d.logger.Error("failed to remove delivered notification", "id", n.ID, "error", err)
			continue
		}
		sent++
	}

	if len(due) > 0 {
		d.logger.Info("notification dispatch completed", "due", len(due), "sent", sent)
	}
	return sent, nil
}
