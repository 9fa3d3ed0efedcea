// internal/handlers/catalog/list-releases/handler.go
package listreleases

import (
	"context"
	"fmt"

	"discogs-explorer/internal/common/discogs"
	apperrors "discogs-explorer/internal/common/errors"
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
	"discogs-explorer/internal/skill/format"
)

const (
	IntentName = "ListReleasesIntent"
	SlotArtist = "artist"
	CardTitle  = "Discogs Releases"

	PromptArtist = "Please tell me which artist you'd like to hear releases from. For example, say 'list releases by The Beatles'."
	ErrorSpeech  = "Sorry, I had trouble finding releases for that artist. Please try again later."
)

type Catalog interface {
	SearchArtists(ctx context.Context, name string, limit int) ([]discogs.Record, error)
	GetArtistReleases(ctx context.Context, artistID int64, limit int) ([]discogs.Record, error)
}

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

type Handler struct {
	config  *Config
	catalog Catalog
	logger  Logger
}

func NewHandler(config *Config, catalog Catalog, log Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		config:  config,
		catalog: catalog,
		logger:  log,
	}
}

func (h *Handler) Name() string { return IntentName }

func (h *Handler) CanHandle(in *skill.Input) bool {
	return skill.IsIntentName(IntentName)(in)
}

func (h *Handler) Handle(ctx context.Context, in *skill.Input) (*models.Response, error) {
	log := h.loggerFor(in)

	artistName, ok := in.SlotValue(SlotArtist)
	if !ok {
		return models.NewResponseBuilder().
			Speak(PromptArtist).
			Reprompt(PromptArtist).
			Build(), nil
	}

	log.Info("listing releases", map[string]interface{}{"artist": artistName})

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	artists, err := h.catalog.SearchArtists(ctx, artistName, h.config.ArtistSearchLimit)
	if err != nil {
		return h.failure(log, "search artists", err), nil
	}
	if len(artists) == 0 {
		return models.NewResponseBuilder().
			Speak(fmt.Sprintf("I couldn't find any artist named %s. Please try a different artist name.", artistName)).
			Build(), nil
	}

	// First match only; same-named artists are not disambiguated.
	artist := artists[0]
	displayName := format.ArtistForSpeech(artist)

	releases, err := h.catalog.GetArtistReleases(ctx, artist.ID, h.config.ReleaseLimit)
	if err != nil {
		return h.failure(log, "get artist releases", err), nil
	}
	if len(releases) == 0 {
		return models.NewResponseBuilder().
			Speak(fmt.Sprintf("I found %s, but couldn't find any releases for them.", displayName)).
			Build(), nil
	}

	if limit := h.config.ReleaseLimit; limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}
	entries := make([]string, len(releases))
	for i, r := range releases {
		entries[i] = format.ReleaseForSpeech(r)
	}

	log.Info("releases listed", map[string]interface{}{
		"artistId":     artist.ID,
		"releaseCount": len(entries),
	})

	return models.NewResponseBuilder().
		Speak(fmt.Sprintf("Here are some releases by %s: %s.", displayName, format.JoinSpeech(entries))).
		SimpleCard(CardTitle, fmt.Sprintf("Releases by %s:\n%s", displayName, format.JoinCard(entries))).
		Build(), nil
}

func (h *Handler) failure(log Logger, step string, err error) *models.Response {
	stdErr := apperrors.Normalize(err)
	log.Error("catalog request failed", map[string]interface{}{
		"step":      step,
		"errorCode": string(stdErr.Code),
		"error":     err.Error(),
	})
	return models.NewResponseBuilder().Speak(ErrorSpeech).Build()
}

func (h *Handler) loggerFor(in *skill.Input) Logger {
	if in != nil && in.Logger != nil {
		return in.Logger
	}
	return h.logger
}
