// internal/handlers/catalog/search-release/handler.go
package searchrelease

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
	IntentName  = "SearchReleaseIntent"
	SlotRelease = "release"
	CardTitle   = "Discogs Search Results"

	PromptRelease = "Please tell me which album or release you'd like to search for. For example, say 'search for Abbey Road'."
	ErrorSpeech   = "Sorry, I had trouble searching for that release. Please try again later."
)

type Catalog interface {
	SearchReleases(ctx context.Context, query string, limit int) ([]discogs.Record, error)
}

type Logger interface {
	Info(msg string, fields map[string]interface{})
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
	log := h.logger
	if in.Logger != nil {
		log = in.Logger
	}

	query, ok := in.SlotValue(SlotRelease)
	if !ok {
		return models.NewResponseBuilder().
			Speak(PromptRelease).
			Reprompt(PromptRelease).
			Build(), nil
	}

	log.Info("searching releases", map[string]interface{}{"query": query})

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	releases, err := h.catalog.SearchReleases(ctx, query, h.config.ResultLimit)
	if err != nil {
		stdErr := apperrors.Normalize(err)
		log.Error("catalog request failed", map[string]interface{}{
			"step":      "search releases",
			"errorCode": string(stdErr.Code),
			"error":     err.Error(),
		})
		return models.NewResponseBuilder().Speak(ErrorSpeech).Build(), nil
	}
	if len(releases) == 0 {
		return models.NewResponseBuilder().
			Speak(fmt.Sprintf("I couldn't find any releases matching '%s'. Please try a different search term.", query)).
			Build(), nil
	}

	if limit := h.config.ResultLimit; limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}
	entries := make([]string, len(releases))
	for i, r := range releases {
		entries[i] = describe(r)
	}

	log.Info("releases found", map[string]interface{}{"resultCount": len(entries)})

	return models.NewResponseBuilder().
		Speak(fmt.Sprintf("I found these releases matching '%s': %s.", query, format.JoinSpeech(entries))).
		SimpleCard(CardTitle, fmt.Sprintf("Search results for '%s':\n%s", query, format.JoinCard(entries))).
		Build(), nil
}

// describe renders a search hit. Search titles usually read "Artist - Title";
// the part before the separator is appended as the artist.
func describe(r discogs.Record) string {
	entry := format.ReleaseForSpeech(r)
	if artist, ok := format.SplitCombinedTitle(r.Title); ok {
		entry += " by " + artist
	}
	return entry
}
