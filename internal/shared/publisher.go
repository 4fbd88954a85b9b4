package shared

import (
	"context"
	"log/slog"
	"time"

	"github.com/graffic/quotie/internal/daily"
	"github.com/graffic/quotie/internal/quotes"
)

// Reloader asks the widget process to re-render soon. It is fire and
// forget: the widget decides when to actually refresh.
type Reloader interface {
	ReloadAllTimelines(ctx context.Context) error
}

// DailyToggle reports whether the quote of the day should be published
type DailyToggle interface {
	DailyQuotesEnabled(ctx context.Context) (bool, error)
}

// Publisher keeps the shared slots in step with the quote collection. It is
// registered as a repository observer.
type Publisher struct {
	store    Store
	reloader Reloader
	settings DailyToggle
	clock    daily.Clock
	logger   *slog.Logger
}

// NewPublisher creates a publisher. settings may be nil, in which case the
// quote of the day is always published.
func NewPublisher(store Store, reloader Reloader, settings DailyToggle, clock daily.Clock, logger *slog.Logger) *Publisher {
	if clock == nil {
		clock = time.Now
	}
	return &Publisher{
		store:    store,
		reloader: reloader,
		settings: settings,
		clock:    clock,
		logger:   logger,
	}
}

// QuotesChanged implements quotes.Observer. Failures are logged; the
// widget catches up on the next successful publish.
func (p *Publisher) QuotesChanged(ctx context.Context, change quotes.Change) {
	now := p.clock()

	if change.LastAdded != nil {
		if err := p.store.Publish(ctx, SlotLatest, Project(*change.LastAdded, now)); err != nil {
			p.logger.Error("failed to publish latest quote", "quote_id", change.LastAdded.ID, "error", err)
		}
	} else {
		p.refreshSlot(ctx, SlotLatest, change.Quotes, now)
	}

	if err := p.publishToday(ctx, change.Quotes, now); err != nil {
		p.logger.Error("failed to publish quote of the day", "error", err)
	}

	p.Reload(ctx)
}

// PublishToday publishes the quote of the day for collection and signals
// the widget
func (p *Publisher) PublishToday(ctx context.Context, collection []quotes.Quote) error {
	err := p.publishToday(ctx, collection, p.clock())
	p.Reload(ctx)
	return err
}

// Reload fires the widget reload signal
func (p *Publisher) Reload(ctx context.Context) {
	if p.reloader == nil {
		return
	}
	if err := p.reloader.ReloadAllTimelines(ctx); err != nil {
		p.logger.Warn("failed to signal widget reload", "error", err)
	}
}

func (p *Publisher) publishToday(ctx context.Context, collection []quotes.Quote, now time.Time) error {
	if p.settings != nil {
		enabled, err := p.settings.DailyQuotesEnabled(ctx)
		if err != nil {
			return err
		}
		if !enabled {
			return p.store.Clear(ctx, SlotToday)
		}
	}

	today := daily.QuoteOfTheDay(collection, now)
	if today == nil {
		return p.store.Clear(ctx, SlotToday)
	}

	return p.store.Publish(ctx, SlotToday, Project(*today, now))
}

// refreshSlot re-projects the quote held in slot from collection, so edits
// made by any process reach the widget. The slot is cleared when its quote
// is no longer in the collection.
func (p *Publisher) refreshSlot(ctx context.Context, slot Slot, collection []quotes.Quote, now time.Time) {
	current, err := p.store.Read(ctx, slot)
	if err != nil || current == nil {
		return
	}

	for _, q := range collection {
		if q.ID != current.ID {
			continue
		}
		projected := Project(q, now)
		if sameContent(*current, projected) {
			return
		}
		if err := p.store.Publish(ctx, slot, projected); err != nil {
			p.logger.Error("failed to refresh shared quote", "slot", slot, "quote_id", q.ID, "error", err)
		}
		return
	}

	if err := p.store.Clear(ctx, slot); err != nil {
		p.logger.Error("failed to clear shared quote", "slot", slot, "error", err)
	}
}

// sameContent compares what the widget shows, ignoring the publish time
func sameContent(a, b SharedQuote) bool {
	return a.ID == b.ID &&
		a.Text == b.Text &&
		a.AuthorName() == b.AuthorName() &&
		a.ColorStyleRaw == b.ColorStyleRaw
}
