// Package shared holds the read-optimized projection of quotes that the
// main process publishes for the widget process.
package shared

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/graffic/quotie/internal/quotes"
)

// Slot names one published projection
type Slot string

const (
	SlotLatest Slot = "latestQuote"
	SlotToday  Slot = "quoteOfTheDay"
)

// Slots lists every slot in use, in the order the widget prefers them
var Slots = []Slot{SlotToday, SlotLatest}

// SharedQuote is the widget's view of a quote
type SharedQuote struct {
	ID            uuid.UUID `json:"id"`
	Text          string    `json:"text"`
	Author        *string   `json:"author,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	ColorStyleRaw string    `json:"colorStyleRaw"`
}

// Project builds the projection of q published at now. A blank author is
// left out.
func Project(q quotes.Quote, now time.Time) SharedQuote {
	sq := SharedQuote{
		ID:            q.ID,
		Text:          q.Text,
		CreatedAt:     now,
		ColorStyleRaw: string(q.ColorStyle),
	}
	if author := strings.TrimSpace(q.Author); author != "" {
		sq.Author = &author
	}
	return sq
}

// AuthorName returns the author or an empty string
func (q SharedQuote) AuthorName() string {
	if q.Author == nil {
		return ""
	}
	return *q.Author
}
