package builtin

import (
	"context"

	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

const HelpSpeech = "I can help you explore music using the Discogs database. Here are some things you can ask me: " +
	"'List releases by The Beatles', 'Search for Abbey Road', or 'Give me a random release'. " +
	"What would you like to try?"

type HelpHandler struct{}

func NewHelpHandler() *HelpHandler { return &HelpHandler{} }

func (h *HelpHandler) Name() string { return models.IntentHelp }

func (h *HelpHandler) CanHandle(in *skill.Input) bool {
	return skill.IsIntentName(models.IntentHelp)(in)
}

func (h *HelpHandler) Handle(ctx context.Context, in *skill.Input) (*models.Response, error) {
	return models.NewResponseBuilder().
		Speak(HelpSpeech).
		Reprompt(HelpSpeech).
		Build(), nil
}
