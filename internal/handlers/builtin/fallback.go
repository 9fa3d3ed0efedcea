package builtin

import (
	"context"

	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

const FallbackSpeech = "Sorry, I don't know about that. You can ask me to list releases by an artist, " +
	"search for an album, or get a random music recommendation. What would you like to try?"

type FallbackHandler struct{}

func NewFallbackHandler() *FallbackHandler { return &FallbackHandler{} }

func (h *FallbackHandler) Name() string { return models.IntentFallback }

func (h *FallbackHandler) CanHandle(in *skill.Input) bool {
	return skill.IsIntentName(models.IntentFallback)(in)
}

func (h *FallbackHandler) Handle(ctx context.Context, in *skill.Input) (*models.Response, error) {
	return models.NewResponseBuilder().
		Speak(FallbackSpeech).
		Reprompt(FallbackSpeech).
		Build(), nil
}
