// Package handlers assembles the skill's request handlers into a dispatcher.
package handlers

import (
	"context"

	"discogs-explorer/internal/common/config"
	"discogs-explorer/internal/common/discogs"
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/handlers/builtin"
	listreleases "discogs-explorer/internal/handlers/catalog/list-releases"
	randomrelease "discogs-explorer/internal/handlers/catalog/random-release"
	searchrelease "discogs-explorer/internal/handlers/catalog/search-release"
	"discogs-explorer/internal/skill"
)

// Catalog is everything the catalog handlers need from the Discogs client.
type Catalog interface {
	SearchArtists(ctx context.Context, name string, limit int) ([]discogs.Record, error)
	GetArtistReleases(ctx context.Context, artistID int64, limit int) ([]discogs.Record, error)
	SearchReleases(ctx context.Context, query string, limit int) ([]discogs.Record, error)
	GetRandomRelease(ctx context.Context) (*discogs.Record, bool)
}

// CustomIntents lists the custom intents this skill implements.
var CustomIntents = []string{
	listreleases.IntentName,
	searchrelease.IntentName,
	randomrelease.IntentName,
}

// NewDispatcher registers the handlers in priority order. The intent
// reflector accepts any intent and therefore comes after every specific
// handler. Disabled custom intents fall through to the reflector.
func NewDispatcher(cfg *config.Config, catalog Catalog, log logger.Logger, opts ...skill.Option) (*skill.Dispatcher, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	d := skill.NewDispatcher(log, opts...)
	d.AddRequestHandlers(builtin.NewLaunchHandler(cfg.Skill.Name))

	if config.IsIntentEnabled(cfg, config.IntentListReleases) {
		d.AddRequestHandlers(listreleases.NewHandler(&listreleases.Config{
			ArtistSearchLimit: cfg.Skill.ArtistSearchLimit,
			ReleaseLimit:      cfg.Skill.ListReleasesLimit,
			Timeout:           config.GetDuration(cfg.Discogs.Timeout) * 2,
		}, catalog, log))
	}
	if config.IsIntentEnabled(cfg, config.IntentSearchRelease) {
		d.AddRequestHandlers(searchrelease.NewHandler(&searchrelease.Config{
			ResultLimit: cfg.Skill.SearchReleaseLimit,
			Timeout:     config.GetDuration(cfg.Discogs.Timeout),
		}, catalog, log))
	}
	if config.IsIntentEnabled(cfg, config.IntentRandomRelease) {
		d.AddRequestHandlers(randomrelease.NewHandler(&randomrelease.Config{
			MaxAttempts: cfg.Skill.RandomMaxAttempts,
			Timeout:     config.GetDuration(cfg.Discogs.Timeout) * 2,
		}, catalog, log))
	}

	d.AddRequestHandlers(
		builtin.NewHelpHandler(),
		builtin.NewCancelStopHandler(),
		builtin.NewFallbackHandler(),
		builtin.NewSessionEndedHandler(),
		builtin.NewIntentReflectorHandler(),
	)
	d.AddExceptionHandlers(builtin.NewCatchAllExceptionHandler(log))

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
