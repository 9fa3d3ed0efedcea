// Package format turns catalog records into speech and card text. Every
// function is pure and tolerates sparse records.
package format

import (
	"strconv"
	"strings"

	"discogs-explorer/internal/common/discogs"
)

const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"

	combinedTitleSeparator = " - "
)

// Title returns the record title or UnknownTitle.
func Title(r discogs.Record) string {
	if strings.TrimSpace(r.Title) == "" {
		return UnknownTitle
	}
	return r.Title
}

// ReleaseForSpeech renders "{title} from {year}", or just the title when the
// year is unknown.
func ReleaseForSpeech(r discogs.Record) string {
	return Title(r) + YearClause(r)
}

// ArtistForSpeech returns the artist display name. Search results carry it in
// title; artist resources in name.
func ArtistForSpeech(r discogs.Record) string {
	if name := strings.TrimSpace(r.Title); name != "" {
		return r.Title
	}
	if name := strings.TrimSpace(r.Name); name != "" {
		return r.Name
	}
	return UnknownArtist
}

// ArtistCredits joins the credited artist names.
func ArtistCredits(r discogs.Record) string {
	if len(r.Artists) == 0 {
		return UnknownArtist
	}
	names := make([]string, len(r.Artists))
	for i, a := range r.Artists {
		if strings.TrimSpace(a.Name) == "" {
			names[i] = UnknownArtist
			continue
		}
		names[i] = a.Name
	}
	return JoinSpeech(names)
}

func YearClause(r discogs.Record) string {
	if r.Year <= 0 {
		return ""
	}
	return " from " + strconv.Itoa(int(r.Year))
}

func GenreClause(r discogs.Record) string {
	if len(r.Genres) == 0 {
		return ""
	}
	return " in the " + JoinSpeech(r.Genres) + " genre"
}

// SplitCombinedTitle extracts the artist from an "Artist - Title" search
// title. Album names that themselves contain " - " are split too, so
// "Kind of Blue - Legacy Edition" yields "Kind of Blue".
func SplitCombinedTitle(raw string) (string, bool) {
	artist, _, found := strings.Cut(raw, combinedTitleSeparator)
	if !found {
		return "", false
	}
	return artist, true
}

func JoinSpeech(items []string) string {
	return strings.Join(items, ", ")
}

func JoinCard(items []string) string {
	return strings.Join(items, "\n")
}
