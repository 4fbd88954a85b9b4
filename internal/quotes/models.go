package quotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ColorStyle is the pastel card color a quote is rendered with
type ColorStyle string

const (
	ColorMint   ColorStyle = "mint"
	ColorBlush  ColorStyle = "blush"
	ColorLilac  ColorStyle = "lilac"
	ColorSky    ColorStyle = "sky"
	ColorPeach  ColorStyle = "peach"
	ColorButter ColorStyle = "butter"
)

// ColorStyles lists every color style in display order
var ColorStyles = []ColorStyle{ColorMint, ColorBlush, ColorLilac, ColorSky, ColorPeach, ColorButter}

// ParseColorStyle returns the style named s
func ParseColorStyle(s string) (ColorStyle, bool) {
	for _, c := range ColorStyles {
		if string(c) == s {
			return c, true
		}
	}
	return ColorMint, false
}

// UnmarshalJSON decodes a color style; unknown values fall back to mint
func (c *ColorStyle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c, _ = ParseColorStyle(s)
	return nil
}

// FontStyle is the typeface family a quote is rendered with
type FontStyle string

const (
	FontStandard FontStyle = "standard"
	FontSerif    FontStyle = "serif"
	FontRounded  FontStyle = "rounded"
)

// FontStyles lists every font style in display order
var FontStyles = []FontStyle{FontStandard, FontSerif, FontRounded}

// ParseFontStyle returns the style named s
func ParseFontStyle(s string) (FontStyle, bool) {
	for _, f := range FontStyles {
		if string(f) == s {
			return f, true
		}
	}
	return FontRounded, false
}

// UnmarshalJSON decodes a font style; unknown values fall back to rounded
func (f *FontStyle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f, _ = ParseFontStyle(s)
	return nil
}

// Quote is a single saved quote
type Quote struct {
	ID               uuid.UUID  `json:"id"`
	Text             string     `json:"text"`
	Author           string     `json:"author"`
	Source           string     `json:"source"`
	IsFavorite       bool       `json:"isFavorite"`
	ColorStyle       ColorStyle `json:"colorStyle"`
	TimesResurfaced  int        `json:"timesResurfaced"`
	LastResurfacedAt *time.Time `json:"lastResurfacedAt,omitempty"`
	FontStyle        FontStyle  `json:"fontStyle"`
	MemmiReaction    *string    `json:"memmiReaction,omitempty"`
}

// NewQuote holds the user supplied fields of a quote being added
type NewQuote struct {
	Text       string
	Author     string
	Source     string
	ColorStyle ColorStyle
	FontStyle  FontStyle
}

var errMissingField = errors.New("missing required field")

// referenceDate is the epoch of timestamps written as plain numbers by
// older builds of the app.
var referenceDate = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// UnmarshalJSON decodes a quote, applying defaults for optional fields
func (q *Quote) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID               *uuid.UUID      `json:"id"`
		Text             *string         `json:"text"`
		Author           *string         `json:"author"`
		Source           *string         `json:"source"`
		IsFavorite       *bool           `json:"isFavorite"`
		ColorStyle       *ColorStyle     `json:"colorStyle"`
		TimesResurfaced  *int            `json:"timesResurfaced"`
		LastResurfacedAt json.RawMessage `json:"lastResurfacedAt"`
		FontStyle        *FontStyle      `json:"fontStyle"`
		MemmiReaction    *string         `json:"memmiReaction"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.ID == nil:
		return fmt.Errorf("%w: id", errMissingField)
	case raw.Text == nil:
		return fmt.Errorf("%w: text", errMissingField)
	case raw.Author == nil:
		return fmt.Errorf("%w: author", errMissingField)
	case raw.Source == nil:
		return fmt.Errorf("%w: source", errMissingField)
	}

	decoded := Quote{
		ID:            *raw.ID,
		Text:          *raw.Text,
		Author:        *raw.Author,
		Source:        *raw.Source,
		ColorStyle:    ColorMint,
		FontStyle:     FontRounded,
		MemmiReaction: raw.MemmiReaction,
	}
	if raw.IsFavorite != nil {
		decoded.IsFavorite = *raw.IsFavorite
	}
	if raw.ColorStyle != nil {
		decoded.ColorStyle = *raw.ColorStyle
	}
	if raw.TimesResurfaced != nil {
		decoded.TimesResurfaced = *raw.TimesResurfaced
	}
	if raw.FontStyle != nil {
		decoded.FontStyle = *raw.FontStyle
	}

	at, err := decodeTimestamp(raw.LastResurfacedAt)
	if err != nil {
		return fmt.Errorf("lastResurfacedAt: %w", err)
	}
	decoded.LastResurfacedAt = at

	*q = decoded
	return nil
}

// decodeTimestamp accepts an ISO8601 string or a number of seconds since
// the reference date. null and absent decode to nil.
func decodeTimestamp(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}

	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err != nil {
		return nil, err
	}
	t := referenceDate.Add(time.Duration(seconds * float64(time.Second)))
	return &t, nil
}

// withDefaults fills unset styles
func (q Quote) withDefaults() Quote {
	if _, ok := ParseColorStyle(string(q.ColorStyle)); !ok {
		q.ColorStyle = ColorMint
	}
	if _, ok := ParseFontStyle(string(q.FontStyle)); !ok {
		q.FontStyle = FontRounded
	}
	return q
}
