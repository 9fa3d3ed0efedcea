package builtin

import (
	"context"

	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

// SessionEndedHandler acknowledges the end of a session. The platform
// ignores any speech here, so the response is empty.
type SessionEndedHandler struct{}

func NewSessionEndedHandler() *SessionEndedHandler { return &SessionEndedHandler{} }

func (h *SessionEndedHandler) Name() string { return models.RequestTypeSessionEnded }

func (h *SessionEndedHandler) CanHandle(in *skill.Input) bool {
	return skill.IsRequestType(models.RequestTypeSessionEnded)(in)
}

func (h *SessionEndedHandler) Handle(ctx context.Context, in *skill.Input) (*models.Response, error) {
	req := in.Envelope.Request
	fields := map[string]interface{}{"reason": req.Reason}
	if req.Error != nil {
		fields["errorType"] = req.Error.Type
		fields["errorMessage"] = req.Error.Message
	}
	if in.Logger != nil {
		in.Logger.Info("session ended", fields)
	}
	return models.NewResponseBuilder().Build(), nil
}
