// internal/handlers/catalog/random-release/handler.go
package randomrelease

import (
	"context"
	"fmt"

	"discogs-explorer/internal/common/discogs"
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/common/metrics"
	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
	"discogs-explorer/internal/skill/format"
)

const (
	IntentName = "RandomReleaseIntent"
	CardTitle  = "Random Discogs Release"

	NotFoundSpeech = "Sorry, I couldn't find a random release right now. Please try again later."
)

// Catalog looks up a release by random id. A miss is reported as absent,
// never as an error.
type Catalog interface {
	GetRandomRelease(ctx context.Context) (*discogs.Record, bool)
}

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
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
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
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

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	release, attempts := h.lookup(ctx)
	metrics.RandomReleaseAttempts.Observe(float64(attempts))

	if release == nil {
		log.Warn("no random release found", map[string]interface{}{
			"attempts":    attempts,
			"maxAttempts": h.config.MaxAttempts,
			"timedOut":    ctx.Err() != nil,
		})
		return models.NewResponseBuilder().Speak(NotFoundSpeech).Build(), nil
	}

	log.Info("random release found", map[string]interface{}{
		"releaseId": release.ID,
		"attempts":  attempts,
	})

	title := format.Title(*release)
	details := format.ArtistCredits(*release) + format.YearClause(*release) + format.GenreClause(*release)

	return models.NewResponseBuilder().
		Speak(fmt.Sprintf("Here's a random release for you: '%s' by %s.", title, details)).
		SimpleCard(CardTitle, fmt.Sprintf("%s\nby %s", title, details)).
		Build(), nil
}

// lookup retries sparse-id misses up to MaxAttempts times. A cancelled
// context ends the loop early and counts as exhausted.
func (h *Handler) lookup(ctx context.Context) (*discogs.Record, int) {
	attempts := 0
	for attempts < h.config.MaxAttempts {
		if ctx.Err() != nil {
			break
		}
		release, ok := h.catalog.GetRandomRelease(ctx)
		attempts++
		if ok && release != nil {
			return release, attempts
		}
	}
	return nil, attempts
}
