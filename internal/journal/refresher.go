package journal

import (
	"context"
	"log/slog"
	"time"
)

// RefresherConfig holds refresher configuration
type RefresherConfig struct {
	Interval time.Duration
}

// Refresher periodically applies hunger decay and republishes the quote
// of the day, so both roll over at midnight while serving
type Refresher struct {
	service *Service
	config  RefresherConfig
	logger  *slog.Logger
}

// NewRefresher creates a new daily refresher
func NewRefresher(service *Service, config RefresherConfig, logger *slog.Logger) *Refresher {
	if config.Interval <= 0 {
		config.Interval = 30 * time.Minute
	}
	return &Refresher{
		service: service,
		config:  config,
		logger:  logger,
	}
}

// Start begins the periodic refresh process
func (r *Refresher) Start(ctx context.Context) error {
	r.logger.Info("starting daily refresher", "interval", r.config.Interval)

	if err := r.service.OnLaunch(ctx); err != nil {
		r.logger.Error("initial daily refresh failed", "error", err)
	}

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping daily refresher")
			return ctx.Err()
		case <-ticker.C:
			r.RefreshOnce(ctx)
		}
	}
}

// RefreshOnce performs a single decay and publish pass
func (r *Refresher) RefreshOnce(ctx context.Context) {
	r.logger.Debug("running daily refresh")

	if _, _, err := r.service.ApplyDailyDecay(ctx); err != nil {
		r.logger.Error("hunger decay failed", "error", err)
	}
	if err := r.service.UpdateWidgetQuoteOfTheDay(ctx); err != nil {
		r.logger.Error("quote of the day publish failed", "error", err)
	}
}
