package journal

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/graffic/quotie/internal/daily"
	"github.com/graffic/quotie/internal/enrich"
	"github.com/graffic/quotie/internal/notify"
	"github.com/graffic/quotie/internal/nudge"
	"github.com/graffic/quotie/internal/quotes"
	"github.com/graffic/quotie/internal/shared"
	"github.com/graffic/quotie/internal/storage"
	"github.com/graffic/quotie/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEnricher struct {
	mock.Mock
}

func (m *mockEnricher) Enrich(ctx context.Context, text string) (enrich.Response, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(enrich.Response), args.Error(1)
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

type readOnlyStorage struct{}

func (readOnlyStorage) Read(context.Context) ([]byte, error) { return nil, os.ErrNotExist }
func (readOnlyStorage) Write(context.Context, []byte) error  { return errors.New("read-only file system") }

type fixture struct {
	service *Service
	repo    *quotes.Repository
	store   *shared.MemoryStore
	center  *notify.Center
	clock   *clock
}

func newFixture(t *testing.T, backend quotes.Storage, enricher enrich.Enricher) *fixture {
	t.Helper()
	ctx := context.Background()

	db := testutils.NewTestDB(t, notify.Models()...)
	app := storageDefaults(db)
	clk := &clock{now: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}

	if backend == nil {
		fs := quotes.NewFileStorage(filepath.Join(t.TempDir(), "quotes.json"))
		data, err := quotes.Encode(nil)
		require.NoError(t, err)
		require.NoError(t, fs.Write(ctx, data))
		backend = fs
	}

	sharedStore := shared.NewMemoryStore()
	publisher := shared.NewPublisher(sharedStore, nil, nil, clk.Now, slog.Default())
	repo := quotes.NewRepository(quotes.Options{
		Storage:   backend,
		Clock:     clk.Now,
		Observers: []quotes.Observer{publisher},
	})
	repo.Load(ctx)

	center := notify.NewCenter(db.DB, app, true)
	scheduler := nudge.NewScheduler(center, nudge.NewStateStore(app), nudge.Config{Hour: 18, Location: time.UTC}, clk.Now, slog.Default())

	service := NewService(Options{
		Repository: repo,
		Hunger:     daily.NewHungerStore(app, clk.Now, slog.Default()),
		Nudge:      scheduler,
		Publisher:  publisher,
		Enricher:   enricher,
		Clock:      clk.Now,
		Location:   time.UTC,
		Logger:     slog.Default(),
	})

	return &fixture{service: service, repo: repo, store: sharedStore, center: center, clock: clk}
}

func storageDefaults(db *storage.DB) *storage.Defaults {
	return storage.NewDefaults(db.DB, storage.SuiteApp)
}

func TestService_EndToEndHunger(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)
	require.Zero(t, f.repo.Count())

	result, err := f.service.AddQuote(ctx, quotes.NewQuote{Text: "short"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Hunger.Level)
	assert.Equal(t, nudge.OutcomeScheduled, result.Nudge)

	long := strings.Repeat("x", 80)
	result, err = f.service.AddQuote(ctx, quotes.NewQuote{Text: long})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Hunger.Level)
	assert.Equal(t, nudge.OutcomeAlreadySent, result.Nudge)

	f.clock.now = f.clock.now.AddDate(0, 0, 5)
	state, changed, err := f.service.ApplyDailyDecay(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, state.Level)

	persisted, err := f.service.Hunger(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, persisted.Level)
	assert.True(t, f.clock.now.Equal(persisted.LastFedDate))
}

func TestService_AddPublishesLatest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	result, err := f.service.AddQuote(ctx, quotes.NewQuote{Text: "  hello  ", Author: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Quote.Text)

	latest, err := f.store.Read(ctx, shared.SlotLatest)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, result.Quote.ID, latest.ID)
	assert.Equal(t, "Ann", latest.AuthorName())

	today, err := f.store.Read(ctx, shared.SlotToday)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, result.Quote.ID, today.ID)
}

func TestService_AddRejectsEmptyText(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.service.AddQuote(context.Background(), quotes.NewQuote{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Zero(t, f.repo.Count())
}

func TestService_EnrichmentStoresReaction(t *testing.T) {
	ctx := context.Background()
	enricher := &mockEnricher{}
	enricher.On("Enrich", mock.Anything, "a good line").
		Return(enrich.Response{Received: "a good line", Memmi: "Yum!", Source: "model"}, nil)
	f := newFixture(t, nil, enricher)

	result, err := f.service.AddQuote(ctx, quotes.NewQuote{Text: "a good line"})
	require.NoError(t, err)
	assert.Equal(t, "Yum!", result.Reaction)
	require.NotNil(t, result.Quote.MemmiReaction)
	assert.Equal(t, "Yum!", *result.Quote.MemmiReaction)

	stored, ok := f.repo.Get(result.Quote.ID)
	require.True(t, ok)
	require.NotNil(t, stored.MemmiReaction)
	enricher.AssertExpectations(t)
}

func TestService_EnrichmentFailureKeepsQuote(t *testing.T) {
	ctx := context.Background()
	enricher := &mockEnricher{}
	enricher.On("Enrich", mock.Anything, mock.Anything).Return(enrich.Response{}, enrich.ErrBadResponse)
	f := newFixture(t, nil, enricher)

	result, err := f.service.AddQuote(ctx, quotes.NewQuote{Text: "still saved"})
	require.NoError(t, err)
	assert.Empty(t, result.Reaction)
	assert.Equal(t, 1, result.Hunger.Level)

	stored, ok := f.repo.Get(result.Quote.ID)
	require.True(t, ok)
	assert.Nil(t, stored.MemmiReaction)
}

func TestService_PersistFailureStillFeeds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, readOnlyStorage{}, nil)
	before := f.repo.Count()

	result, err := f.service.AddQuote(ctx, quotes.NewQuote{Text: "unsaved"})
	require.Error(t, err)
	assert.ErrorIs(t, err, quotes.ErrPersist)
	assert.Equal(t, 1, result.Hunger.Level)
	assert.Equal(t, before+1, f.repo.Count())
}

func TestService_DecayWithoutDaysIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	_, err := f.service.AddQuote(ctx, quotes.NewQuote{Text: "one"})
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(3 * time.Hour)
	state, changed, err := f.service.ApplyDailyDecay(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, state.Level)
}

func TestService_SatisfiedCancelsNudge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	result, err := f.service.AddQuote(ctx, quotes.NewQuote{Text: strings.Repeat("y", 90)})
	require.NoError(t, err)
	require.Equal(t, 2, result.Hunger.Level)

	pending, err := f.center.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	result, err = f.service.AddQuote(ctx, quotes.NewQuote{Text: strings.Repeat("y", 90)})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Hunger.Level)
	assert.Equal(t, nudge.OutcomeCanceled, result.Nudge)

	pending, err = f.center.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	result, err = f.service.AddQuote(ctx, quotes.NewQuote{Text: strings.Repeat("y", 90)})
	require.NoError(t, err)
	assert.Equal(t, daily.MaxHunger, result.Hunger.Level)
}

func TestService_OnLaunch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	_, err := f.service.AddQuote(ctx, quotes.NewQuote{Text: "one"})
	require.NoError(t, err)
	require.NoError(t, f.store.Clear(ctx, shared.SlotToday))

	f.clock.now = f.clock.now.AddDate(0, 0, 1)
	require.NoError(t, f.service.OnLaunch(ctx))

	state, err := f.service.Hunger(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Level)

	today, err := f.store.Read(ctx, shared.SlotToday)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, "one", today.Text)

	pending, err := f.center.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, time.Date(2025, 5, 2, 18, 0, 0, 0, time.UTC).Equal(pending[0].FireAt))
}

func TestRefresher_RefreshOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	_, err := f.service.AddQuote(ctx, quotes.NewQuote{Text: strings.Repeat("z", 100)})
	require.NoError(t, err)

	f.clock.now = f.clock.now.AddDate(0, 0, 1)
	refresher := NewRefresher(f.service, RefresherConfig{Interval: time.Hour}, slog.Default())
	refresher.RefreshOnce(ctx)

	state, err := f.service.Hunger(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Level)
}
