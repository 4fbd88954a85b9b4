// Package snacks is the curated library of quotes Memmi can be fed when
// the user has nothing of their own to add.
package snacks

import (
	"strings"

	"github.com/graffic/quotie/internal/quotes"
)

// Source groups snacks by where they come from
type Source string

const (
	SourceBooks    Source = "Books"
	SourceSongs    Source = "Songs"
	SourceMovies   Source = "Movies"
	SourcePodcasts Source = "Podcasts"
)

// Sources lists every source in display order
var Sources = []Source{SourceBooks, SourceSongs, SourceMovies, SourcePodcasts}

// ParseSource matches s against the source names, ignoring case
func ParseSource(s string) (Source, bool) {
	for _, src := range Sources {
		if strings.EqualFold(string(src), strings.TrimSpace(s)) {
			return src, true
		}
	}
	return "", false
}

// RecommendedCount is how many snacks are suggested when no source is picked
const RecommendedCount = 10

// Snack is a library quote
type Snack struct {
	Text   string
	Author string
	// Origin is the work it comes from, e.g. the book or song title.
	Origin string
	Source Source
}

// All returns a copy of the library
func All() []Snack {
	out := make([]Snack, len(library))
	copy(out, library)
	return out
}

// BySource returns the snacks from src in library order
func BySource(src Source) []Snack {
	var out []Snack
	for _, s := range library {
		if s.Source == src {
			out = append(out, s)
		}
	}
	return out
}

// Recommended returns up to n distinct snacks in random order
func Recommended(random quotes.Random, n int) []Snack {
	pool := All()
	if n <= 0 || n > len(pool) {
		n = len(pool)
	}
	// Partial Fisher-Yates: the first n slots end up shuffled.
	for i := 0; i < n; i++ {
		j := i + random.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// NewQuote converts a snack into the input for adding it to the journal
func (s Snack) NewQuote() quotes.NewQuote {
	return quotes.NewQuote{
		Text:       s.Text,
		Author:     s.Author,
		Source:     s.Origin,
		ColorStyle: quotes.ColorMint,
		FontStyle:  quotes.FontRounded,
	}
}
