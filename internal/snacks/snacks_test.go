package snacks

import (
	"math/rand/v2"
	"testing"

	"github.com/graffic/quotie/internal/quotes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seededRandom struct {
	r *rand.Rand
}

func (s seededRandom) IntN(n int) int { return s.r.IntN(n) }

func TestBySource(t *testing.T) {
	total := 0
	for _, src := range Sources {
		got := BySource(src)
		assert.Len(t, got, 20, "source %s", src)
		for _, s := range got {
			assert.Equal(t, src, s.Source)
		}
		total += len(got)
	}
	assert.Equal(t, len(All()), total)
}

func TestParseSource(t *testing.T) {
	src, ok := ParseSource(" songs ")
	require.True(t, ok)
	assert.Equal(t, SourceSongs, src)

	_, ok = ParseSource("radio")
	assert.False(t, ok)
}

func TestRecommended_Distinct(t *testing.T) {
	random := seededRandom{r: rand.New(rand.NewPCG(1, 2))}

	got := Recommended(random, RecommendedCount)
	require.Len(t, got, RecommendedCount)

	seen := map[string]bool{}
	for _, s := range got {
		assert.False(t, seen[s.Text], "duplicate snack %q", s.Text)
		seen[s.Text] = true
	}

	assert.Len(t, Recommended(random, 0), len(All()))
	assert.Len(t, Recommended(random, 1000), len(All()))
}

func TestRecommended_DoesNotMutateLibrary(t *testing.T) {
	before := All()
	Recommended(seededRandom{r: rand.New(rand.NewPCG(3, 4))}, 5)
	assert.Equal(t, before, All())
}

func TestSnack_NewQuote(t *testing.T) {
	snack := BySource(SourceMovies)[3]
	in := snack.NewQuote()

	assert.Equal(t, "Just keep swimming.", in.Text)
	assert.Equal(t, "Dory", in.Author)
	assert.Equal(t, "Finding Nemo", in.Source)
	assert.Equal(t, quotes.ColorMint, in.ColorStyle)
	assert.Equal(t, quotes.FontRounded, in.FontStyle)
}
