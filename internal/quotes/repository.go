package quotes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPersist wraps failures to write the collection. The in-memory change
// is kept when it is returned.
var ErrPersist = errors.New("failed to persist quotes")

// Random picks indexes for resurfacing
type Random interface {
	// IntN returns a value in [0, n)
	IntN(n int) int
}

type defaultRandom struct{}

func (defaultRandom) IntN(n int) int { return rand.IntN(n) }

// DefaultRandom draws from math/rand/v2
var DefaultRandom Random = defaultRandom{}

// ChangeKind names the mutation that produced a Change
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "added"
	ChangeFavorite  ChangeKind = "favorite"
	ChangeDeleted   ChangeKind = "deleted"
	ChangeUpdated   ChangeKind = "updated"
	ChangeResurface ChangeKind = "resurfaced"
)

// Change describes a completed mutation
type Change struct {
	Kind ChangeKind
	// Quotes is a snapshot of the collection after the mutation.
	Quotes []Quote
	// LastAdded is the most recently added quote still in the collection.
	LastAdded *Quote
}

// Observer is told about every mutation after it has been persisted.
// Observers run while the repository is locked and must not call back
// into it.
type Observer interface {
	QuotesChanged(ctx context.Context, change Change)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, change Change)

// QuotesChanged implements Observer
func (f ObserverFunc) QuotesChanged(ctx context.Context, change Change) {
	f(ctx, change)
}

// Options configures a Repository
type Options struct {
	Storage   Storage
	Random    Random
	Clock     func() time.Time
	NewID     func() uuid.UUID
	Logger    *slog.Logger
	Observers []Observer
}

// Repository owns the quote collection. Mutations are serialized and
// written through to storage before they return.
type Repository struct {
	mu        sync.Mutex
	storage   Storage
	random    Random
	clock     func() time.Time
	newID     func() uuid.UUID
	logger    *slog.Logger
	observers []Observer

	quotes      []Quote
	lastAddedID *uuid.UUID
}

// NewRepository creates a repository. Call Load before using it.
func NewRepository(opts Options) *Repository {
	r := &Repository{
		storage:   opts.Storage,
		random:    opts.Random,
		clock:     opts.Clock,
		newID:     opts.NewID,
		logger:    opts.Logger,
		observers: opts.Observers,
	}
	if r.random == nil {
		r.random = defaultRandom{}
	}
	if r.clock == nil {
		r.clock = time.Now
	}
	if r.newID == nil {
		r.newID = uuid.New
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// AddObserver registers an observer for subsequent mutations
func (r *Repository) AddObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// Load reads the collection from storage. It always yields a usable
// collection: unreadable or undecodable data falls back to the samples.
func (r *Repository) Load(ctx context.Context) []Quote {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.storage.Read(ctx)
	if err != nil && !IsNotExist(err) {
		r.logger.Warn("failed to read quotes, using samples", "error", err)
	}

	result := Decode(data)
	r.logger.Debug("quotes loaded", "source", result.Source, "count", len(result.Quotes))

	r.quotes = make([]Quote, 0, len(result.Quotes))
	for _, q := range result.Quotes {
		r.quotes = append(r.quotes, q.withDefaults())
	}
	r.lastAddedID = nil
	return r.snapshot()
}

// All returns a copy of the collection in insertion order
func (r *Repository) All() []Quote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// Count returns the number of quotes
func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.quotes)
}

// Get returns the quote with id
func (r *Repository) Get(id uuid.UUID) (Quote, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		return r.quotes[i], true
	}
	return Quote{}, false
}

// FindByPrefix returns the single quote whose id starts with prefix
func (r *Repository) FindByPrefix(prefix string) (Quote, bool) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return Quote{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var found []Quote
	for _, q := range r.quotes {
		if strings.HasPrefix(q.ID.String(), prefix) {
			found = append(found, q)
		}
	}
	if len(found) != 1 {
		return Quote{}, false
	}
	return found[0], true
}

// Recent returns up to n quotes, newest first. n <= 0 returns all of them.
func (r *Repository) Recent(n int) []Quote {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || n > len(r.quotes) {
		n = len(r.quotes)
	}
	recent := make([]Quote, 0, n)
	for i := len(r.quotes) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, r.quotes[i])
	}
	return recent
}

// Favorites returns the favorite quotes in insertion order
func (r *Repository) Favorites() []Quote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return favorites(r.quotes)
}

// Search returns quotes whose text, author or source contain term,
// ignoring case. An empty term matches everything.
func (r *Repository) Search(term string) []Quote {
	term = strings.ToLower(strings.TrimSpace(term))

	r.mu.Lock()
	defer r.mu.Unlock()

	if term == "" {
		return r.snapshot()
	}
	var matches []Quote
	for _, q := range r.quotes {
		if strings.Contains(strings.ToLower(q.Text), term) ||
			strings.Contains(strings.ToLower(q.Author), term) ||
			strings.Contains(strings.ToLower(q.Source), term) {
			matches = append(matches, q)
		}
	}
	return matches
}

// LastAddedID returns the id of the last quote added in this process
func (r *Repository) LastAddedID() (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastAddedID == nil {
		return uuid.Nil, false
	}
	return *r.lastAddedID, true
}

// Add appends a new quote and persists the collection. The quote is
// returned even if persisting fails.
func (r *Repository) Add(ctx context.Context, in NewQuote) (Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := Quote{
		ID:         r.newID(),
		Text:       in.Text,
		Author:     in.Author,
		Source:     in.Source,
		ColorStyle: in.ColorStyle,
		FontStyle:  in.FontStyle,
	}.withDefaults()

	r.quotes = append(r.quotes, q)
	id := q.ID
	r.lastAddedID = &id

	r.logger.Info("quote added", "quote_id", q.ID, "length", len([]rune(q.Text)))
	return q, r.commit(ctx, ChangeAdded)
}

// ToggleFavorite flips the favorite flag. It returns nil without error when
// no quote has id.
func (r *Repository) ToggleFavorite(ctx context.Context, id uuid.UUID) (*Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	r.quotes[i].IsFavorite = !r.quotes[i].IsFavorite
	updated := r.quotes[i]
	return &updated, r.commit(ctx, ChangeFavorite)
}

// Delete removes the quote with id. It reports false when there was none.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.quotes = append(r.quotes[:i], r.quotes[i+1:]...)
	return true, r.commit(ctx, ChangeDeleted)
}

// Update replaces the quote with the same id. Callers pass the complete
// entity. It reports false when there was none.
func (r *Repository) Update(ctx context.Context, q Quote) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(q.ID)
	if i < 0 {
		return false, nil
	}
	r.quotes[i] = q.withDefaults()
	return true, r.commit(ctx, ChangeUpdated)
}

// Resurface picks a random quote, preferring favorites, and records that
// it was shown. It returns nil for an empty collection.
func (r *Repository) Resurface(ctx context.Context) (*Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pool := make([]int, 0, len(r.quotes))
	for i, q := range r.quotes {
		if q.IsFavorite {
			pool = append(pool, i)
		}
	}
	if len(pool) == 0 {
		for i := range r.quotes {
			pool = append(pool, i)
		}
	}
	if len(pool) == 0 {
		return nil, nil
	}

	i := pool[r.random.IntN(len(pool))]
	now := r.clock()
	r.quotes[i].TimesResurfaced++
	r.quotes[i].LastResurfacedAt = &now
	chosen := r.quotes[i]

	r.logger.Debug("quote resurfaced", "quote_id", chosen.ID, "times", chosen.TimesResurfaced)
	return &chosen, r.commit(ctx, ChangeResurface)
}

// commit persists the collection and notifies observers. Callers hold mu.
func (r *Repository) commit(ctx context.Context, kind ChangeKind) error {
	var persistErr error
	data, err := Encode(r.quotes)
	if err == nil {
		err = r.storage.Write(ctx, data)
	}
	if err != nil {
		r.logger.Error("failed to save quotes", "change", kind, "error", err)
		persistErr = fmt.Errorf("%w: %w", ErrPersist, err)
	}

	change := Change{Kind: kind, Quotes: r.snapshot()}
	if r.lastAddedID != nil {
		if i := r.indexOf(*r.lastAddedID); i >= 0 {
			last := r.quotes[i]
			change.LastAdded = &last
		}
	}
	for _, o := range r.observers {
		o.QuotesChanged(ctx, change)
	}

	return persistErr
}

func (r *Repository) indexOf(id uuid.UUID) int {
	for i := range r.quotes {
		if r.quotes[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) snapshot() []Quote {
	out := make([]Quote, len(r.quotes))
	copy(out, r.quotes)
	return out
}

func favorites(quotes []Quote) []Quote {
	var out []Quote
	for _, q := range quotes {
		if q.IsFavorite {
			out = append(out, q)
		}
	}
	return out
}
