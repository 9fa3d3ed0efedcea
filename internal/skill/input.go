package skill

import (
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/models"
)

// Input is the per-request view handed to handlers. It is never shared
// between requests.
type Input struct {
	Envelope  *models.RequestEnvelope
	Logger    logger.Logger
	RequestID string
}

func (in *Input) RequestType() string {
	return in.Envelope.RequestType()
}

func (in *Input) IntentName() string {
	return in.Envelope.IntentName()
}

func (in *Input) SlotValue(name string) (string, bool) {
	return in.Envelope.SlotValue(name)
}

// Predicate decides whether a handler accepts an input.
type Predicate func(in *Input) bool

func IsRequestType(requestType string) Predicate {
	return func(in *Input) bool {
		return in.RequestType() == requestType
	}
}

// IsIntentName matches intent requests for any of the given names.
func IsIntentName(names ...string) Predicate {
	return func(in *Input) bool {
		if in.RequestType() != models.RequestTypeIntent {
			return false
		}
		intent := in.IntentName()
		for _, name := range names {
			if intent == name {
				return true
			}
		}
		return false
	}
}
