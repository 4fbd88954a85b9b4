package quotes

import "github.com/google/uuid"

// SampleQuotes returns the built-in collection shown before anything has
// been saved. Every call hands out fresh ids.
func SampleQuotes() []Quote {
	return []Quote{
		{
			ID:         uuid.New(),
			Text:       "You don’t have to feel ready to start, you just have to start.",
			Author:     "S.C. Says",
			Source:     "Keynote",
			IsFavorite: true,
			ColorStyle: ColorPeach,
			FontStyle:  FontRounded,
		},
		{
			ID:         uuid.New(),
			Text:       "Be kind, for everyone you meet is fighting a hard battle.",
			Author:     "Ian Maclaren (attributed)",
			Source:     "Conversation",
			ColorStyle: ColorLilac,
			FontStyle:  FontSerif,
		},
		{
			ID:         uuid.New(),
			Text:       "Attention is the rarest and purest form of generosity.",
			Author:     "Simone Weil",
			Source:     "Book",
			ColorStyle: ColorSky,
			FontStyle:  FontStandard,
		},
	}
}
