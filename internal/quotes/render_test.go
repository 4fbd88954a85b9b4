package quotes

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	id := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	reaction := "Crunchy!"

	tests := []struct {
		name  string
		quote Quote
		opts  RenderOptions
		want  string
	}{
		{
			name:  "text only",
			quote: Quote{ID: id, Text: "Hello"},
			want:  "“Hello”",
		},
		{
			name:  "author and source",
			quote: Quote{ID: id, Text: "Hello", Author: "Ann", Source: "Notes"},
			want:  "“Hello”\n— Ann, Notes",
		},
		{
			name:  "blank author is skipped",
			quote: Quote{ID: id, Text: "Hello", Author: "  ", Source: "Notes"},
			want:  "“Hello”\n— Notes",
		},
		{
			name:  "with id and favorite",
			quote: Quote{ID: id, Text: "Hello", IsFavorite: true},
			opts:  RenderOptions{IncludeID: true},
			want:  "#0f8fad5b ★\n“Hello”",
		},
		{
			name:  "with reaction",
			quote: Quote{ID: id, Text: "Hello", MemmiReaction: &reaction},
			opts:  RenderOptions{IncludeReaction: true},
			want:  "“Hello”\nMemmi: Crunchy!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.quote, tt.opts))
		})
	}
}

func TestRenderList(t *testing.T) {
	a := Quote{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Text: "a"}
	b := Quote{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Text: "b"}

	assert.Equal(t, "#11111111\n“a”\n\n#22222222\n“b”", RenderList([]Quote{a, b}))
	assert.Empty(t, RenderList(nil))
}
