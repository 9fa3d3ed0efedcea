package builtin

import (
	"context"

	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

const (
	LaunchSpeech   = "Welcome to Discogs Explorer! You can ask me to list releases by an artist, search for a specific album, or get a random music recommendation. What would you like to do?"
	LaunchReprompt = "You can say things like 'list releases by The Beatles' or 'search for Dark Side of the Moon' or 'give me a random release'."
	LaunchCardText = "Welcome! Ask me about music releases, artists, or get random recommendations."
)

// LaunchHandler greets the user when the skill is opened without an intent.
type LaunchHandler struct {
	skillName string
}

func NewLaunchHandler(skillName string) *LaunchHandler {
	if skillName == "" {
		skillName = "Discogs Explorer"
	}
	return &LaunchHandler{skillName: skillName}
}

func (h *LaunchHandler) Name() string { return models.RequestTypeLaunch }

func (h *LaunchHandler) CanHandle(in *skill.Input) bool {
	return skill.IsRequestType(models.RequestTypeLaunch)(in)
}

func (h *LaunchHandler) Handle(ctx context.Context, in *skill.Input) (*models.Response, error) {
	return models.NewResponseBuilder().
		Speak(LaunchSpeech).
		Reprompt(LaunchReprompt).
		SimpleCard(h.skillName, LaunchCardText).
		Build(), nil
}
