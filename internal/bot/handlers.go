package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/graffic/quotie/internal/daily"
	"github.com/graffic/quotie/internal/journal"
	"github.com/graffic/quotie/internal/quotes"
	"github.com/graffic/quotie/internal/snacks"
)

// DefaultRecent is how many quotes /recent shows without an argument
const DefaultRecent = 5

const (
	replyEmptyJournal = "Your journal is empty. Add a quote with /add."
	replyUnsaved      = "Saved for now, but writing the journal to disk failed."
)

// Handlers implements the journal commands on top of a journal.Service
type Handlers struct {
	service *journal.Service
	random  quotes.Random
	logger  *slog.Logger
}

// NewHandlers creates the journal command handlers
func NewHandlers(service *journal.Service, random quotes.Random, logger *slog.Logger) *Handlers {
	if random == nil {
		random = quotes.DefaultRandom
	}
	return &Handlers{service: service, random: random, logger: logger}
}

// Register adds every journal command to registry
func (h *Handlers) Register(registry *Registry) {
	registry.Register("add", "<text> — <author> | <source> - save a quote and feed Memmi", CommandFunc(h.Add))
	registry.Register("resurface", "- bring back an old quote", CommandFunc(h.Resurface))
	registry.Register("today", "- show the quote of the day", CommandFunc(h.Today))
	registry.Register("recent", "[n] - list the latest quotes", CommandFunc(h.Recent))
	registry.Register("search", "<term> - find quotes", CommandFunc(h.Search))
	registry.Register("fav", "<id> - toggle a favorite", CommandFunc(h.Favorite))
	registry.Register("delete", "<id> - delete a quote", CommandFunc(h.Delete))
	registry.Register("hunger", "- how hungry is Memmi", CommandFunc(h.Hunger))
	registry.Register("snack", "[books|songs|movies|podcasts] - feed Memmi from the library", CommandFunc(h.Snack))
}

// Add handles /add
func (h *Handlers) Add(ctx context.Context, args string) (string, error) {
	in := ParseQuote(args)
	if in.Text == "" {
		return "Usage: /add <text> — <author> | <source>", nil
	}

	result, err := h.service.AddQuote(ctx, in)
	return h.addReply(result, err)
}

// Snack handles /snack
func (h *Handlers) Snack(ctx context.Context, args string) (string, error) {
	var pool []snacks.Snack
	if args = strings.TrimSpace(args); args != "" {
		src, ok := snacks.ParseSource(args)
		if !ok {
			return fmt.Sprintf("Unknown snack source %q. Pick one of books, songs, movies or podcasts.", args), nil
		}
		pool = snacks.BySource(src)
	} else {
		pool = snacks.Recommended(h.random, snacks.RecommendedCount)
	}
	if len(pool) == 0 {
		return "The snack shelf is empty.", nil
	}

	snack := pool[h.random.IntN(len(pool))]
	result, err := h.service.AddSnack(ctx, snack.NewQuote())
	return h.addReply(result, err)
}

func (h *Handlers) addReply(result journal.AddResult, err error) (string, error) {
	var b strings.Builder
	switch {
	case errors.Is(err, journal.ErrEmptyText):
		return "A quote needs some text.", nil
	case errors.Is(err, quotes.ErrPersist):
		h.logger.Warn("quote kept in memory only", "quote_id", result.Quote.ID, "error", err)
		b.WriteString(replyUnsaved + "\n")
	case err != nil:
		return "", err
	}

	fmt.Fprintf(&b, "Saved #%s\n%s\n%s", quotes.ShortID(result.Quote.ID),
		quotes.Render(result.Quote, quotes.RenderOptions{}), hungerLine(result.Hunger))
	if result.Reaction != "" {
		fmt.Fprintf(&b, "\nMemmi: %s", result.Reaction)
	}
	return b.String(), nil
}

// Resurface handles /resurface
func (h *Handlers) Resurface(ctx context.Context, _ string) (string, error) {
	q, err := h.service.Quotes().Resurface(ctx)
	if err != nil && !errors.Is(err, quotes.ErrPersist) {
		return "", err
	}
	if q == nil {
		return replyEmptyJournal, nil
	}
	return quotes.Render(*q, quotes.RenderOptions{IncludeID: true, IncludeReaction: true}), nil
}

// Today handles /today
func (h *Handlers) Today(context.Context, string) (string, error) {
	q := h.service.QuoteOfTheDay()
	if q == nil {
		return replyEmptyJournal, nil
	}
	return "Quote of the day\n" + quotes.Render(*q, quotes.RenderOptions{IncludeID: true}), nil
}

// Recent handles /recent
func (h *Handlers) Recent(_ context.Context, args string) (string, error) {
	n := DefaultRecent
	if args = strings.TrimSpace(args); args != "" {
		parsed, err := strconv.Atoi(args)
		if err != nil || parsed <= 0 {
			return "Usage: /recent [n]", nil
		}
		n = parsed
	}

	list := h.service.Quotes().Recent(n)
	if len(list) == 0 {
		return replyEmptyJournal, nil
	}
	return quotes.RenderList(list), nil
}

// Search handles /search
func (h *Handlers) Search(_ context.Context, args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return "Usage: /search <term>", nil
	}
	found := h.service.Quotes().Search(args)
	if len(found) == 0 {
		return fmt.Sprintf("Nothing matches %q.", args), nil
	}
	return quotes.RenderList(found), nil
}

// Favorite handles /fav
func (h *Handlers) Favorite(ctx context.Context, args string) (string, error) {
	q, reply := h.lookup(args, "fav")
	if q == nil {
		return reply, nil
	}

	updated, err := h.service.Quotes().ToggleFavorite(ctx, q.ID)
	if err != nil && !errors.Is(err, quotes.ErrPersist) {
		return "", err
	}
	if updated == nil {
		return fmt.Sprintf("No quote matches %q.", args), nil
	}
	if updated.IsFavorite {
		return fmt.Sprintf("#%s is now a favorite ★", quotes.ShortID(updated.ID)), nil
	}
	return fmt.Sprintf("#%s is no longer a favorite", quotes.ShortID(updated.ID)), nil
}

// Delete handles /delete
func (h *Handlers) Delete(ctx context.Context, args string) (string, error) {
	q, reply := h.lookup(args, "delete")
	if q == nil {
		return reply, nil
	}

	deleted, err := h.service.Quotes().Delete(ctx, q.ID)
	if err != nil && !errors.Is(err, quotes.ErrPersist) {
		return "", err
	}
	if !deleted {
		return fmt.Sprintf("No quote matches %q.", args), nil
	}
	return fmt.Sprintf("Deleted #%s", quotes.ShortID(q.ID)), nil
}

// Hunger handles /hunger
func (h *Handlers) Hunger(ctx context.Context, _ string) (string, error) {
	state, _, err := h.service.ApplyDailyDecay(ctx)
	if err != nil {
		return "", err
	}
	return hungerLine(state), nil
}

func (h *Handlers) lookup(args, command string) (*quotes.Quote, string) {
	prefix := strings.TrimPrefix(strings.TrimSpace(args), "#")
	if prefix == "" {
		return nil, fmt.Sprintf("Usage: /%s <id>", command)
	}
	q, ok := h.service.Quotes().FindByPrefix(prefix)
	if !ok {
		return nil, fmt.Sprintf("No single quote matches %q.", prefix)
	}
	return &q, ""
}

func hungerLine(state daily.HungerState) string {
	meter := strings.Repeat("●", state.Level) + strings.Repeat("○", daily.MaxHunger-state.Level)
	mood := "Memmi is full and happy."
	if state.Level <= daily.HungerDangerThreshold {
		mood = "Memmi is hungry!"
	}
	return fmt.Sprintf("Hunger %s %d/%d. %s", meter, state.Level, daily.MaxHunger, mood)
}

// ParseQuote reads "text — author | source". Author and source are
// optional; "--" may stand in for the dash.
func ParseQuote(args string) quotes.NewQuote {
	var in quotes.NewQuote
	text := args

	if i := strings.LastIndex(text, "|"); i >= 0 {
		in.Source = strings.TrimSpace(text[i+1:])
		text = text[:i]
	}
	for _, sep := range []string{"—", "--"} {
		if i := strings.LastIndex(text, sep); i >= 0 {
			in.Author = strings.TrimSpace(text[i+len(sep):])
			text = text[:i]
			break
		}
	}

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(strings.TrimSuffix(text, "”"), "“")
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	in.Text = strings.TrimSpace(text)
	return in
}
