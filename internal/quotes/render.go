package quotes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ShortIDLength is how many characters of an id are shown to users
const ShortIDLength = 8

// ShortID returns the id prefix users type to refer to a quote
func ShortID(id uuid.UUID) string {
	return id.String()[:ShortIDLength]
}

// RenderOptions controls how a quote is rendered as text
type RenderOptions struct {
	IncludeID       bool
	IncludeReaction bool
}

// Render formats a quote as readable text.
// Format: “text” followed by "— author, source" when either is set.
func Render(q Quote, opts RenderOptions) string {
	var b strings.Builder

	if opts.IncludeID {
		fmt.Fprintf(&b, "#%s", ShortID(q.ID))
		if q.IsFavorite {
			b.WriteString(" ★")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "“%s”", q.Text)

	var credit []string
	if author := strings.TrimSpace(q.Author); author != "" {
		credit = append(credit, author)
	}
	if source := strings.TrimSpace(q.Source); source != "" {
		credit = append(credit, source)
	}
	if len(credit) > 0 {
		fmt.Fprintf(&b, "\n— %s", strings.Join(credit, ", "))
	}

	if opts.IncludeReaction && q.MemmiReaction != nil && *q.MemmiReaction != "" {
		fmt.Fprintf(&b, "\nMemmi: %s", *q.MemmiReaction)
	}

	return b.String()
}

// RenderList renders quotes one per paragraph, with ids
func RenderList(list []Quote) string {
	parts := make([]string, 0, len(list))
	for _, q := range list {
		parts = append(parts, Render(q, RenderOptions{IncludeID: true}))
	}
	return strings.Join(parts, "\n\n")
}
