package builtin

import (
	"context"

	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

const GoodbyeSpeech = "Thanks for using Discogs Explorer. Goodbye!"

// CancelStopHandler ends the session for both cancel and stop.
type CancelStopHandler struct{}

func NewCancelStopHandler() *CancelStopHandler { return &CancelStopHandler{} }

func (h *CancelStopHandler) Name() string { return "CancelOrStopIntent" }

func (h *CancelStopHandler) CanHandle(in *skill.Input) bool {
	return skill.IsIntentName(models.IntentCancel, models.IntentStop)(in)
}

func (h *CancelStopHandler) Handle(ctx context.Context, in *skill.Input) (*models.Response, error) {
	return models.NewResponseBuilder().Speak(GoodbyeSpeech).Build(), nil
}
