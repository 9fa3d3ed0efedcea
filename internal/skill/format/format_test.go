package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"discogs-explorer/internal/common/discogs"
)

func TestReleaseForSpeech(t *testing.T) {
	tests := []struct {
		name   string
		record discogs.Record
		want   string
	}{
		{"title and year", discogs.Record{Title: "Abbey Road", Year: 1969}, "Abbey Road from 1969"},
		{"no year", discogs.Record{Title: "X"}, "X"},
		{"no title", discogs.Record{Year: 1987}, "Unknown Title from 1987"},
		{"empty record", discogs.Record{}, "Unknown Title"},
		{"blank title", discogs.Record{Title: "  "}, "Unknown Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReleaseForSpeech(tt.record)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ReleaseForSpeech(tt.record), "must be deterministic")
		})
	}
}

func TestArtistForSpeech(t *testing.T) {
	assert.Equal(t, "The Beatles", ArtistForSpeech(discogs.Record{Title: "The Beatles"}))
	assert.Equal(t, "Miles Davis", ArtistForSpeech(discogs.Record{Name: "Miles Davis"}))
	assert.Equal(t, "Title Wins", ArtistForSpeech(discogs.Record{Title: "Title Wins", Name: "Name"}))
	assert.Equal(t, UnknownArtist, ArtistForSpeech(discogs.Record{}))
}

func TestArtistCredits(t *testing.T) {
	tests := []struct {
		name    string
		artists []discogs.ArtistCredit
		want    string
	}{
		{"none", nil, "Unknown Artist"},
		{"single", []discogs.ArtistCredit{{Name: "Rick Astley"}}, "Rick Astley"},
		{"several", []discogs.ArtistCredit{{Name: "Simon"}, {Name: "Garfunkel"}}, "Simon, Garfunkel"},
		{"unnamed credit", []discogs.ArtistCredit{{Name: "Daft Punk"}, {}}, "Daft Punk, Unknown Artist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArtistCredits(discogs.Record{Artists: tt.artists}))
		})
	}
}

func TestClauses(t *testing.T) {
	assert.Equal(t, " from 1959", YearClause(discogs.Record{Year: 1959}))
	assert.Empty(t, YearClause(discogs.Record{}))
	assert.Equal(t, " in the Jazz genre", GenreClause(discogs.Record{Genres: []string{"Jazz"}}))
	assert.Equal(t, " in the Electronic, Pop genre", GenreClause(discogs.Record{Genres: []string{"Electronic", "Pop"}}))
	assert.Empty(t, GenreClause(discogs.Record{}))
}

func TestSplitCombinedTitle(t *testing.T) {
	artist, ok := SplitCombinedTitle("The Beatles - Abbey Road")
	assert.True(t, ok)
	assert.Equal(t, "The Beatles", artist)

	_, ok = SplitCombinedTitle("Abbey Road")
	assert.False(t, ok)

	_, ok = SplitCombinedTitle("Jay-Z")
	assert.False(t, ok, "hyphen without spaces is not a separator")

	// Known limitation: an album name containing the separator is mis-split.
	artist, ok = SplitCombinedTitle("Kind of Blue - Legacy Edition")
	assert.True(t, ok)
	assert.Equal(t, "Kind of Blue", artist)

	artist, ok = SplitCombinedTitle("Miles Davis - Kind of Blue - Legacy Edition")
	assert.True(t, ok)
	assert.Equal(t, "Miles Davis", artist)
}

func TestJoin(t *testing.T) {
	items := []string{"a", "b", "c"}
	assert.Equal(t, "a, b, c", JoinSpeech(items))
	assert.Equal(t, "a\nb\nc", JoinCard(items))
	assert.Empty(t, JoinSpeech(nil))
}
