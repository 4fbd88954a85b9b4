package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/graffic/quotie/internal/daily"
	"github.com/graffic/quotie/internal/journal"
	"github.com/graffic/quotie/internal/quotes"
	"github.com/graffic/quotie/internal/snacks"
	"github.com/graffic/quotie/internal/storage"
	"github.com/graffic/quotie/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReplier is a mock for the Replier interface
type MockReplier struct {
	mock.Mock
}

func (m *MockReplier) SendText(ctx context.Context, chatID int64, text string) (*models.Message, error) {
	args := m.Called(ctx, chatID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

type firstRandom struct{}

func (firstRandom) IntN(int) int { return 0 }

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newService(t *testing.T) *journal.Service {
	t.Helper()
	ctx := context.Background()
	clock := testutils.FixedClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	fs := quotes.NewFileStorage(filepath.Join(t.TempDir(), "quotes.json"))
	data, err := quotes.Encode(nil)
	require.NoError(t, err)
	require.NoError(t, fs.Write(ctx, data))

	repo := quotes.NewRepository(quotes.Options{Storage: fs, Random: firstRandom{}, Clock: clock, Logger: discard})
	repo.Load(ctx)

	db := testutils.NewTestDB(t)
	return journal.NewService(journal.Options{
		Repository: repo,
		Hunger:     daily.NewHungerStore(storage.NewDefaults(db.DB, storage.SuiteApp), clock, discard),
		Clock:      clock,
		Location:   time.UTC,
		Logger:     discard,
	})
}

func newDispatcher(t *testing.T, replier Replier) (*Dispatcher, *journal.Service) {
	t.Helper()
	service := newService(t)
	registry := NewRegistry()
	NewHandlers(service, firstRandom{}, discard).Register(registry)
	return NewDispatcher(registry, replier, discard), service
}

func textUpdate(chatID int64, text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   1,
			Chat: models.Chat{ID: chatID, Type: "private"},
			Text: text,
		},
	}
}

func TestExtractCommand(t *testing.T) {
	tests := []struct {
		text     string
		wantName string
		wantArgs string
	}{
		{"/add hello there", "add", "hello there"},
		{"/today", "today", ""},
		{"/Recent@quotie_bot 3", "recent", "3"},
		{"  /fav   abc  ", "fav", "abc"},
		{"/add\nmultiline", "add", "multiline"},
		{"hello", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, args := extractCommand(tt.text)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestParseQuote(t *testing.T) {
	tests := []struct {
		name string
		args string
		want quotes.NewQuote
	}{
		{"text only", "Be kind", quotes.NewQuote{Text: "Be kind"}},
		{"author", "Be kind — Ann", quotes.NewQuote{Text: "Be kind", Author: "Ann"}},
		{"author and source", "Be kind — Ann | Letters", quotes.NewQuote{Text: "Be kind", Author: "Ann", Source: "Letters"}},
		{"double dash", "Be kind -- Ann", quotes.NewQuote{Text: "Be kind", Author: "Ann"}},
		{"source only", "Be kind | Letters", quotes.NewQuote{Text: "Be kind", Source: "Letters"}},
		{"curly quotes", "“Be kind” — Ann", quotes.NewQuote{Text: "Be kind", Author: "Ann"}},
		{"straight quotes", `"Be kind"`, quotes.NewQuote{Text: "Be kind"}},
		{"empty", "   ", quotes.NewQuote{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuote(tt.args))
		})
	}
}

func TestRegistry_Help(t *testing.T) {
	registry := NewRegistry()
	NewDispatcher(registry, &MockReplier{}, discard)
	NewHandlers(nil, nil, discard).Register(registry)

	help := registry.Help()
	for _, name := range []string{"add", "resurface", "today", "recent", "fav", "delete", "hunger", "snack", "help"} {
		assert.True(t, registry.Has(name), name)
		assert.Contains(t, help, "/"+name+" ")
	}
	assert.Equal(t, "add", registry.List()[0])
}

func TestDispatcher_AddReplies(t *testing.T) {
	replier := &MockReplier{}
	replier.On("SendText", mock.Anything, int64(7), mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "Saved #") &&
			strings.Contains(text, "“Stay curious”\n— Ann") &&
			strings.Contains(text, "1/5")
	})).Return(&models.Message{ID: 2}, nil)

	d, service := newDispatcher(t, replier)
	d.HandleUpdate(context.Background(), textUpdate(7, "/add Stay curious — Ann"))

	replier.AssertExpectations(t)
	assert.Equal(t, 1, service.Quotes().Count())
}

func TestDispatcher_UnknownAndPlainText(t *testing.T) {
	replier := &MockReplier{}
	replier.On("SendText", mock.Anything, int64(7), replyUnknown).Return(&models.Message{ID: 2}, nil)

	d, _ := newDispatcher(t, replier)
	d.HandleUpdate(context.Background(), textUpdate(7, "/nope"))
	d.HandleUpdate(context.Background(), textUpdate(7, "just chatting"))
	d.HandleUpdate(context.Background(), &models.Update{ID: 3})

	replier.AssertExpectations(t)
	replier.AssertNumberOfCalls(t, "SendText", 1)
}

func TestDispatcher_CommandFailure(t *testing.T) {
	replier := &MockReplier{}
	replier.On("SendText", mock.Anything, int64(7), replyFailed).Return(nil, errors.New("telegram down"))

	registry := NewRegistry()
	registry.Register("boom", "", CommandFunc(func(context.Context, string) (string, error) {
		return "", errors.New("boom")
	}))
	NewDispatcher(registry, replier, discard).HandleUpdate(context.Background(), textUpdate(7, "/boom"))

	replier.AssertExpectations(t)
}

func TestHandlers_EmptyJournal(t *testing.T) {
	ctx := context.Background()
	h := NewHandlers(newService(t), firstRandom{}, discard)

	for name, cmd := range map[string]CommandFunc{"today": h.Today, "resurface": h.Resurface, "recent": h.Recent} {
		reply, err := cmd(ctx, "")
		require.NoError(t, err, name)
		assert.Equal(t, replyEmptyJournal, reply, name)
	}
}

func TestHandlers_FavoriteAndDelete(t *testing.T) {
	ctx := context.Background()
	service := newService(t)
	h := NewHandlers(service, firstRandom{}, discard)

	result, err := service.AddQuote(ctx, quotes.NewQuote{Text: "keep me"})
	require.NoError(t, err)
	short := quotes.ShortID(result.Quote.ID)

	reply, err := h.Favorite(ctx, "#"+short)
	require.NoError(t, err)
	assert.Contains(t, reply, "is now a favorite")

	reply, err = h.Favorite(ctx, short)
	require.NoError(t, err)
	assert.Contains(t, reply, "no longer a favorite")

	reply, err = h.Favorite(ctx, "zzzz")
	require.NoError(t, err)
	assert.Contains(t, reply, "No single quote matches")

	reply, err = h.Delete(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Usage: /delete <id>", reply)

	reply, err = h.Delete(ctx, short)
	require.NoError(t, err)
	assert.Equal(t, "Deleted #"+short, reply)
	assert.Zero(t, service.Quotes().Count())
}

func TestHandlers_RecentAndSearch(t *testing.T) {
	ctx := context.Background()
	service := newService(t)
	h := NewHandlers(service, firstRandom{}, discard)

	for _, text := range []string{"first", "second", "third"} {
		_, err := service.AddQuote(ctx, quotes.NewQuote{Text: text})
		require.NoError(t, err)
	}

	reply, err := h.Recent(ctx, "2")
	require.NoError(t, err)
	assert.Contains(t, reply, "third")
	assert.Contains(t, reply, "second")
	assert.NotContains(t, reply, "first")

	reply, err = h.Recent(ctx, "-1")
	require.NoError(t, err)
	assert.Equal(t, "Usage: /recent [n]", reply)

	reply, err = h.Search(ctx, "SEC")
	require.NoError(t, err)
	assert.Contains(t, reply, "second")

	reply, err = h.Today(ctx, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "Quote of the day\n#"))
}

func TestHandlers_SnackAndHunger(t *testing.T) {
	ctx := context.Background()
	service := newService(t)
	h := NewHandlers(service, firstRandom{}, discard)

	reply, err := h.Snack(ctx, "cartoons")
	require.NoError(t, err)
	assert.Contains(t, reply, "Unknown snack source")

	reply, err = h.Snack(ctx, "songs")
	require.NoError(t, err)
	assert.Contains(t, reply, "Saved #")

	added := service.Quotes().Recent(1)
	require.Len(t, added, 1)
	first := snacks.BySource(snacks.SourceSongs)[0]
	assert.Equal(t, first.Text, added[0].Text)
	assert.Equal(t, first.Origin, added[0].Source)
	assert.Equal(t, quotes.ColorMint, added[0].ColorStyle)

	reply, err = h.Hunger(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, reply, "Memmi is hungry!")
}
