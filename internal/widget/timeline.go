package widget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/graffic/quotie/internal/daily"
	"github.com/graffic/quotie/internal/shared"
)

// Empty state copy
const (
	EmptyTitle    = "No quote yet"
	EmptySubtitle = "Open Quotie and pick a quote for your widget."
)

// RefreshDelay is how long after midnight the timeline asks to be rebuilt
const RefreshDelay = 5 * time.Minute

// Entry is what the widget shows at a point in time
type Entry struct {
	Date  time.Time
	Quote *shared.SharedQuote
}

// Timeline is a single entry plus the time the widget should ask again
type Timeline struct {
	Entry     Entry
	RefreshAt time.Time
}

// Provider builds widget timelines from the shared store
type Provider struct {
	store shared.Store
	clock daily.Clock
	loc   *time.Location
}

// NewProvider creates a provider over store
func NewProvider(store shared.Store, clock daily.Clock, loc *time.Location) *Provider {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Provider{store: store, clock: clock, loc: loc}
}

// Placeholder is the entry shown while the widget is being set up
func (p *Provider) Placeholder() Entry {
	author := "Quotie"
	now := p.clock()
	return Entry{
		Date: now,
		Quote: &shared.SharedQuote{
			ID:            uuid.Nil,
			Text:          "Your next favorite quote will show up here.",
			Author:        &author,
			CreatedAt:     now,
			ColorStyleRaw: "mint",
		},
	}
}

// Snapshot returns the current entry. The quote of the day is preferred;
// otherwise the latest added quote is shown. Read failures yield the empty
// state.
func (p *Provider) Snapshot(ctx context.Context) Entry {
	entry := Entry{Date: p.clock()}
	for _, slot := range shared.Slots {
		q, err := p.store.Read(ctx, slot)
		if err == nil && q != nil {
			entry.Quote = q
			break
		}
	}
	return entry
}

// Timeline returns the current entry, refreshed shortly after midnight
func (p *Provider) Timeline(ctx context.Context) Timeline {
	entry := p.Snapshot(ctx)
	return Timeline{Entry: entry, RefreshAt: NextRefresh(entry.Date, p.loc)}
}

// NextRefresh returns 00:05 of the day after now in loc
func NextRefresh(now time.Time, loc *time.Location) time.Time {
	start := daily.StartOfDay(now, loc)
	tomorrow := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, loc)
	return tomorrow.Add(RefreshDelay)
}

// Render returns the text the widget displays for entry
func Render(entry Entry) string {
	if entry.Quote == nil {
		return EmptyTitle + "\n" + EmptySubtitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "“%s”", entry.Quote.Text)
	if author := strings.TrimSpace(entry.Quote.AuthorName()); author != "" {
		fmt.Fprintf(&b, "\n— %s", author)
	}
	return b.String()
}
