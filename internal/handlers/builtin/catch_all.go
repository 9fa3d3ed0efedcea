package builtin

import (
	"context"

	apperrors "discogs-explorer/internal/common/errors"
	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

const ApologySpeech = "Sorry, I had trouble doing what you asked. Please try again."

// CatchAllExceptionHandler accepts every error. Details go to the log only;
// the user hears a generic apology and the session stays open.
type CatchAllExceptionHandler struct {
	errors *apperrors.ErrorHandler
}

func NewCatchAllExceptionHandler(log apperrors.Logger) *CatchAllExceptionHandler {
	return &CatchAllExceptionHandler{errors: apperrors.NewErrorHandler(log)}
}

func (h *CatchAllExceptionHandler) CanHandle(in *skill.Input, err error) bool {
	return true
}

func (h *CatchAllExceptionHandler) Handle(ctx context.Context, in *skill.Input, err error) (*models.Response, error) {
	fields := map[string]interface{}{
		"requestId":   in.RequestID,
		"requestType": in.RequestType(),
	}
	if intent := in.IntentName(); intent != "" {
		fields["intent"] = intent
	}
	h.errors.HandleRequestError(err, fields)

	return models.NewResponseBuilder().
		Speak(ApologySpeech).
		Reprompt(ApologySpeech).
		Build(), nil
}
