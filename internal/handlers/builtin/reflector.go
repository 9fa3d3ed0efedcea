package builtin

import (
	"context"
	"fmt"

	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

// IntentReflectorHandler echoes any intent request back to the user. It
// accepts every intent, so it must be registered after the specific handlers.
type IntentReflectorHandler struct{}

func NewIntentReflectorHandler() *IntentReflectorHandler { return &IntentReflectorHandler{} }

func (h *IntentReflectorHandler) Name() string { return "IntentReflector" }

func (h *IntentReflectorHandler) CanHandle(in *skill.Input) bool {
	return skill.IsRequestType(models.RequestTypeIntent)(in)
}

func (h *IntentReflectorHandler) Handle(ctx context.Context, in *skill.Input) (*models.Response, error) {
	return models.NewResponseBuilder().
		Speak(fmt.Sprintf("You just triggered %s", in.IntentName())).
		Build(), nil
}
