package shared

import (
	"context"

	"github.com/graffic/quotie/internal/storage"
)

// KeyWidgetDailyQuotes toggles the quote of the day in widgets
const KeyWidgetDailyQuotes = "widgetDailyQuotesEnabled"

// Settings are the user preferences visible to the widget
type Settings struct {
	defaults *storage.Defaults
}

// NewSettings creates settings over the shared suite
func NewSettings(defaults *storage.Defaults) *Settings {
	return &Settings{defaults: defaults}
}

// DailyQuotesEnabled reports whether widgets show the quote of the day.
// It defaults to true.
func (s *Settings) DailyQuotesEnabled(ctx context.Context) (bool, error) {
	return s.defaults.Bool(ctx, KeyWidgetDailyQuotes, true)
}

// SetDailyQuotesEnabled stores the preference
func (s *Settings) SetDailyQuotesEnabled(ctx context.Context, enabled bool) error {
	return s.defaults.Set(ctx, KeyWidgetDailyQuotes, enabled)
}
