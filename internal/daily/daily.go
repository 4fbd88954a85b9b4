// Package daily derives the per-day state of the journal: the quote of the
// day and Memmi's hunger.
package daily

import (
	"time"

	"github.com/graffic/quotie/internal/quotes"
)

// Clock returns the current time
type Clock func() time.Time

// DayOfYear returns the 1-based ordinal day of t within its year
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// QuoteOfTheDayIndex returns dayOfYear(t) mod n. It reports false when
// there is nothing to choose from.
func QuoteOfTheDayIndex(t time.Time, n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	return DayOfYear(t) % n, true
}

// QuoteOfTheDay picks the quote for the calendar date of t. It returns nil
// for an empty collection.
func QuoteOfTheDay(collection []quotes.Quote, t time.Time) *quotes.Quote {
	i, ok := QuoteOfTheDayIndex(t, len(collection))
	if !ok {
		return nil
	}
	q := collection[i]
	return &q
}

// StartOfDay returns midnight of t's date in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar date in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// DaysBetween counts the calendar date boundaries crossed between from and
// to in loc. It never returns a negative value.
func DaysBetween(from, to time.Time, loc *time.Location) int {
	a := StartOfDay(from, loc)
	b := StartOfDay(to, loc)
	if !b.After(a) {
		return 0
	}

	// Walk whole dates so daylight saving transitions do not skew the count.
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 12, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 12, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()) / 24
}
