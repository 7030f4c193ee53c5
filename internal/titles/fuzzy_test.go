package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchForm(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"The Matrix", "matrix"},
		{"Léon: The Professional", "leon professional"},
		{"Rocky IV", "rocky 4"},
		{"VII Days", "vii days"},
		{"American History X", "american history x"},
		{"Spider-Man: No Way Home", "spider man no way home"},
		{"Dr. Strangelove", "dr strangelove"},
		{"Fast & Furious", "fast and furious"},
		{"Schindler's List", "schindlers list"},
		{"  Amélie  ", "amelie"},
		{"기생충", "기생충"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, searchForm(tt.in), "searchForm(%q)", tt.in)
	}
}

func TestAdjustForSequel(t *testing.T) {
	assert.InDelta(t, 0.9, adjustForSequel(0.9, "alien", "alien 3"), 1e-9, "no number in query")
	assert.InDelta(t, 0.945, adjustForSequel(0.9, "alien 3", "alien 3"), 1e-9)
	assert.InDelta(t, 1.0, adjustForSequel(0.99, "alien 3", "alien 3"), 1e-9, "capped")
	assert.InDelta(t, 0.81, adjustForSequel(0.9, "alien 3", "alien 2"), 1e-9)
	assert.InDelta(t, 0.765, adjustForSequel(0.9, "alien 3", "aliens"), 1e-9)
}

func TestSuggest_IgnoresArticlesAndAccents(t *testing.T) {
	x := Build([]Record{
		{ID: "tt0211915", PrimaryTitle: "Amélie", OriginalTitle: "Le fabuleux destin d'Amélie Poulain", StartYear: 2001},
		{ID: "tt0084787", PrimaryTitle: "The Thing", OriginalTitle: "The Thing", StartYear: 1982},
	})

	matches := x.Suggest("amelie", 5)
	require.NotEmpty(t, matches)
	assert.Equal(t, "tt0211915", matches[0].Record.ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)

	matches = x.Suggest("thing", 5)
	require.NotEmpty(t, matches)
	assert.Equal(t, "tt0084787", matches[0].Record.ID)

	_, ok := x.Find("thing")
	assert.False(t, ok, "Find stays exact")
}

func TestSuggest_PrefersMatchingSequel(t *testing.T) {
	x := Build([]Record{
		{ID: "tt0090605", PrimaryTitle: "Aliens", OriginalTitle: "Aliens", StartYear: 1986},
		{ID: "tt0103644", PrimaryTitle: "Alien 3", OriginalTitle: "Alien³", StartYear: 1992},
	})

	matches := x.Suggest("alien 3", 2)
	require.NotEmpty(t, matches)
	assert.Equal(t, "tt0103644", matches[0].Record.ID)
}
