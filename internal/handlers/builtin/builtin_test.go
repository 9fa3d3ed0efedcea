package builtin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "discogs-explorer/internal/common/errors"
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

type logEntry struct {
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{msg: msg, fields: fields})
}

func input(t *testing.T, requestType, intent string) *skill.Input {
	env := &models.RequestEnvelope{
		Version: "1.0",
		Request: models.Request{Type: requestType, RequestID: "req-7"},
	}
	if intent != "" {
		env.Request.Intent = &models.Intent{Name: intent}
	}
	return &skill.Input{Envelope: env, Logger: logger.NewTestLogger(t), RequestID: "req-7"}
}

func assertOpen(t *testing.T, resp *models.Response, wantReprompt string) {
	t.Helper()
	reprompt, open := resp.RepromptText()
	assert.True(t, open, "session must stay open")
	assert.Equal(t, wantReprompt, reprompt)
}

func assertClosed(t *testing.T, resp *models.Response) {
	t.Helper()
	_, open := resp.RepromptText()
	assert.False(t, open, "session must end")
}

func TestLaunchHandler(t *testing.T) {
	h := NewLaunchHandler("")
	in := input(t, models.RequestTypeLaunch, "")

	require.True(t, h.CanHandle(in))
	assert.False(t, h.CanHandle(input(t, models.RequestTypeIntent, "AMAZON.HelpIntent")))

	resp, err := h.Handle(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, LaunchSpeech, resp.SpeechText())
	assertOpen(t, resp, LaunchReprompt)
	assert.Equal(t, "Discogs Explorer", resp.CardTitle())
	assert.Equal(t, LaunchCardText, resp.CardContent())
}

func TestHelpHandler(t *testing.T) {
	h := NewHelpHandler()
	in := input(t, models.RequestTypeIntent, models.IntentHelp)

	require.True(t, h.CanHandle(in))
	resp, err := h.Handle(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, HelpSpeech, resp.SpeechText())
	assertOpen(t, resp, HelpSpeech)
}

func TestCancelStopHandler(t *testing.T) {
	h := NewCancelStopHandler()

	for _, intent := range []string{models.IntentCancel, models.IntentStop} {
		t.Run(intent, func(t *testing.T) {
			in := input(t, models.RequestTypeIntent, intent)
			require.True(t, h.CanHandle(in))

			resp, err := h.Handle(context.Background(), in)
			require.NoError(t, err)

			assert.Equal(t, GoodbyeSpeech, resp.SpeechText())
			assertClosed(t, resp)
		})
	}
	assert.False(t, h.CanHandle(input(t, models.RequestTypeIntent, models.IntentHelp)))
}

func TestFallbackHandler(t *testing.T) {
	h := NewFallbackHandler()
	in := input(t, models.RequestTypeIntent, models.IntentFallback)

	require.True(t, h.CanHandle(in))
	resp, err := h.Handle(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, FallbackSpeech, resp.SpeechText())
	assertOpen(t, resp, FallbackSpeech)
}

func TestSessionEndedHandler(t *testing.T) {
	h := NewSessionEndedHandler()
	in := input(t, models.RequestTypeSessionEnded, "")
	in.Envelope.Request.Reason = "ERROR"
	in.Envelope.Request.Error = &models.RequestError{Type: "INVALID_RESPONSE", Message: "bad speech"}

	require.True(t, h.CanHandle(in))
	resp, err := h.Handle(context.Background(), in)
	require.NoError(t, err)

	assert.Empty(t, resp.SpeechText())
	assertClosed(t, resp)
	_, set := resp.EndsSession()
	assert.False(t, set, "session-ended responses carry no session flag")
}

func TestIntentReflectorHandler(t *testing.T) {
	h := NewIntentReflectorHandler()
	in := input(t, models.RequestTypeIntent, "UnknownIntent")

	require.True(t, h.CanHandle(in))
	assert.False(t, h.CanHandle(input(t, models.RequestTypeLaunch, "")))

	resp, err := h.Handle(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "You just triggered UnknownIntent", resp.SpeechText())
	assertClosed(t, resp)
}

func TestCatchAllExceptionHandler(t *testing.T) {
	log := &recordingLogger{}
	h := NewCatchAllExceptionHandler(log)
	in := input(t, models.RequestTypeIntent, "ListReleasesIntent")

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"catalog failure", apperrors.NewCatalogUnavailableError("search_artists", errors.New("dial tcp: refused")), "CATALOG_UNAVAILABLE"},
		{"panic", apperrors.NewHandlerPanicError("ListReleasesIntent", "nil map"), "HANDLER_PANIC"},
		{"plain error", errors.New("boom"), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, h.CanHandle(in, tt.err))

			resp, err := h.Handle(context.Background(), in, tt.err)
			require.NoError(t, err)

			assert.Equal(t, ApologySpeech, resp.SpeechText())
			assertOpen(t, resp, ApologySpeech)

			last := log.entries[len(log.entries)-1]
			assert.Equal(t, tt.wantCode, last.fields["errorCode"])
			assert.Equal(t, "req-7", last.fields["requestId"])
			assert.Equal(t, "ListReleasesIntent", last.fields["intent"])
		})
	}
}
