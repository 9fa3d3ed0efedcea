// cmd/tools/intent-generator/templates.go
package main

const configTemplate = `// internal/handlers/catalog/{{ .Dir }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
`

const handlerTemplate = `// internal/handlers/catalog/{{ .Dir }}/handler.go
package {{ .PackageName }}

import (
	"context"

	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

const (
	IntentName = "{{ .IntentName }}"
{{- if .Slot }}
	{{ .SlotConst }} = "{{ .Slot }}"
	{{ .PromptConst }} = "Please tell me the {{ .Slot }} you're interested in."
{{- end }}
	CardTitle = "{{ .Title }}"

	PendingSpeech = "Sorry, {{ .Title }} is not available yet."
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
}

type Handler struct {
	config *Config
	logger Logger
}

func NewHandler(config *Config, log Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		config: config,
		logger: log,
	}
}

func (h *Handler) Name() string { return IntentName }

func (h *Handler) CanHandle(in *skill.Input) bool {
	return skill.IsIntentName(IntentName)(in)
}

func (h *Handler) Handle(ctx context.Context, in *skill.Input) (*models.Response, error) {
	log := h.logger
	if in.Logger != nil {
		log = in.Logger
	}
{{ if .Slot }}
	value, ok := in.SlotValue({{ .SlotConst }})
	if !ok {
		return models.NewResponseBuilder().
			Speak({{ .PromptConst }}).
			Reprompt({{ .PromptConst }}).
			Build(), nil
	}
	log.Info("handling {{ .Title }}", map[string]interface{}{"{{ .Slot }}": value})
{{ else }}
	log.Info("handling {{ .Title }}", nil)
{{ end }}
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	// TODO: query the catalog with ctx and render the result through internal/skill/format.
	return models.NewResponseBuilder().Speak(PendingSpeech).Build(), nil
}
`

const testTemplate = `// internal/handlers/catalog/{{ .Dir }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

func createInput(t *testing.T, slots map[string]models.Slot) *skill.Input {
	return &skill.Input{
		Envelope: &models.RequestEnvelope{
			Version: "1.0",
			Request: models.Request{
				Type:   models.RequestTypeIntent,
				Intent: &models.Intent{Name: IntentName, Slots: slots},
			},
		},
		Logger: logger.NewTestLogger(t),
	}
}

func TestHandler_CanHandle(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	assert.True(t, h.CanHandle(createInput(t, nil)))
	assert.Equal(t, IntentName, h.Name())
}
{{ if .Slot }}
func TestHandler_MissingSlotPrompts(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	resp, err := h.Handle(context.Background(), createInput(t, nil))
	require.NoError(t, err)

	assert.Equal(t, {{ .PromptConst }}, resp.SpeechText())
	reprompt, open := resp.RepromptText()
	assert.True(t, open)
	assert.Equal(t, {{ .PromptConst }}, reprompt)
}
{{ end }}
func TestHandler_Pending(t *testing.T) {
	h := NewHandler(nil, nil)
{{- if .Slot }}
	in := createInput(t, map[string]models.Slot{ {{- .SlotConst }}: {Name: {{ .SlotConst }}, Value: "example"}})
{{- else }}
	in := createInput(t, nil)
{{- end }}

	resp, err := h.Handle(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, PendingSpeech, resp.SpeechText())
}
`
