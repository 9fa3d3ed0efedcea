package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discogs-explorer/pkg/manifest"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"TrackList", []string{"Track", "List"}},
		{"Random", []string{"Random"}},
		{"LPTracks", []string{"LP", "Tracks"}},
		{"Top10Albums", []string{"Top10", "Albums"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitWords(tt.in))
		})
	}
}

func TestNewIntentData(t *testing.T) {
	data := newIntentData(manifest.Intent{
		Name:  "TrackListIntent",
		Slots: []manifest.IntentSlot{{Name: "release", Type: "AMAZON.MusicAlbum"}},
	})

	assert.Equal(t, IntentData{
		IntentName:  "TrackListIntent",
		PackageName: "tracklist",
		Dir:         "track-list",
		Title:       "Track List",
		Slot:        "release",
		SlotConst:   "SlotRelease",
		PromptConst: "PromptRelease",
	}, data)

	noSlot := newIntentData(manifest.Intent{Name: "NewArrivalsIntent"})
	assert.Equal(t, "newarrivals", noSlot.PackageName)
	assert.Empty(t, noSlot.Slot)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		intent manifest.Intent
		want   []string
	}{
		{
			name: "with slot",
			intent: manifest.Intent{
				Name:  "TrackListIntent",
				Slots: []manifest.IntentSlot{{Name: "release"}},
			},
			want: []string{"SlotRelease", "PromptRelease", "TestHandler_MissingSlotPrompts"},
		},
		{
			name:   "without slot",
			intent: manifest.Intent{Name: "NewArrivalsIntent"},
			want:   []string{"PendingSpeech"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := newIntentData(tt.intent)
			files, err := render(data)
			require.NoError(t, err)
			require.Len(t, files, 3)

			combined := ""
			for name, src := range files {
				assert.Contains(t, string(src), "package "+data.PackageName, name)
				assert.Contains(t, string(src), "internal/handlers/catalog/"+data.Dir+"/"+name, name)
				combined += string(src)
			}
			for _, w := range tt.want {
				assert.Contains(t, combined, w)
			}
			if data.Slot == "" {
				assert.NotContains(t, combined, "SlotValue")
			}
		})
	}
}

func TestWriteScaffold(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "track-list")
	files := map[string][]byte{"config.go": []byte("package tracklist\n")}

	require.NoError(t, writeScaffold(dir, files, false))
	data, err := os.ReadFile(filepath.Join(dir, "config.go"))
	require.NoError(t, err)
	assert.Equal(t, "package tracklist\n", string(data))

	err = writeScaffold(dir, files, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.NoError(t, writeScaffold(dir, files, true))
}

func TestFindIntent(t *testing.T) {
	model, err := manifest.LoadInteractionModel(filepath.Join("..", "..", "..", manifest.InteractionModelPath))
	require.NoError(t, err)

	intent, ok := findIntent(model, "ListReleasesIntent")
	require.True(t, ok)
	assert.Equal(t, "artist", intent.Slots[0].Name)

	_, ok = findIntent(model, "TrackListIntent")
	assert.False(t, ok)
}
