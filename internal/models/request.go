package models

import "strings"

// Request types sent by the voice platform.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// Built-in intent names.
const (
	IntentHelp     = "AMAZON.HelpIntent"
	IntentCancel   = "AMAZON.CancelIntent"
	IntentStop     = "AMAZON.StopIntent"
	IntentFallback = "AMAZON.FallbackIntent"
)

// RequestEnvelope is the JSON body the platform posts for every invocation.
type RequestEnvelope struct {
	Version string                 `json:"version"`
	Session *Session               `json:"session,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
	Request Request                `json:"request"`
}

type Request struct {
	Type      string        `json:"type"`
	RequestID string        `json:"requestId"`
	Timestamp string        `json:"timestamp,omitempty"`
	Locale    string        `json:"locale,omitempty"`
	Intent    *Intent       `json:"intent,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Error     *RequestError `json:"error,omitempty"`
}

type Intent struct {
	Name               string          `json:"name"`
	ConfirmationStatus string          `json:"confirmationStatus,omitempty"`
	Slots              map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// RequestError accompanies a SessionEndedRequest whose reason is ERROR.
type RequestError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *RequestEnvelope) RequestType() string {
	return e.Request.Type
}

// IntentName returns the intent name for intent requests and "" otherwise.
func (e *RequestEnvelope) IntentName() string {
	if e.Request.Type != RequestTypeIntent || e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Name
}

// SlotValue returns the trimmed value of a slot. Missing, empty and
// whitespace-only values are reported as absent.
func (e *RequestEnvelope) SlotValue(name string) (string, bool) {
	if e.Request.Intent == nil {
		return "", false
	}
	slot, ok := e.Request.Intent.Slots[name]
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(slot.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// SessionAttributes returns the attributes to echo back, never nil.
func (e *RequestEnvelope) SessionAttributes() map[string]interface{} {
	if e.Session == nil || e.Session.Attributes == nil {
		return map[string]interface{}{}
	}
	return e.Session.Attributes
}
