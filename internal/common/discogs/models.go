package discogs

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Year is a release year. Search results carry it as a string, release
// resources as a number; anything unparsable decodes to 0 (absent).
type Year int

func (y *Year) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*y = 0
		return nil
	}

	var n json.Number
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*y = 0
			return nil
		}
		n = json.Number(strings.TrimSpace(s))
	} else {
		n = json.Number(b)
	}

	v, err := strconv.Atoi(n.String())
	if err != nil || v < 0 {
		*y = 0
		return nil
	}
	*y = Year(v)
	return nil
}

// ArtistCredit is one credited artist on a release.
type ArtistCredit struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// Record is an artist or release as returned by the catalog. Every field is
// optional; zero values mean the catalog did not supply it.
type Record struct {
	ID      int64          `json:"id"`
	Type    string         `json:"type,omitempty"`
	Title   string         `json:"title"`
	Name    string         `json:"name,omitempty"`
	Year    Year           `json:"year"`
	Genres  []string       `json:"genres,omitempty"`
	Artists []ArtistCredit `json:"artists,omitempty"`
}

// UnmarshalJSON merges the "genre" array used by search results into Genres.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	var raw struct {
		plain
		Genre []string `json:"genre"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Record(raw.plain)
	if len(r.Genres) == 0 && len(raw.Genre) > 0 {
		r.Genres = raw.Genre
	}
	return nil
}

// IsEmpty reports whether the record carries neither an id nor a title, as
// decoded from a `null` or `{}` body.
func (r Record) IsEmpty() bool {
	return r.ID == 0 && r.Title == ""
}

type searchResponse struct {
	Results []Record `json:"results"`
}

type artistReleasesResponse struct {
	Releases []Record `json:"releases"`
}
