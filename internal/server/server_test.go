package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"discogs-explorer/internal/common/config"
	apperrors "discogs-explorer/internal/common/errors"
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/common/validation"
	"discogs-explorer/internal/models"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, env *models.RequestEnvelope) (*models.Response, error) {
	args := m.Called(ctx, env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

const launchBody = `{
	"version": "1.0",
	"session": {
		"sessionId": "s-1",
		"new": true,
		"application": {"applicationId": "amzn1.ask.skill.test"},
		"attributes": {"lastIntent": "HelpIntent"}
	},
	"request": {"type": "LaunchRequest", "requestId": "req-1", "locale": "en-US"}
}`

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "discogs-explorer", Version: "test"},
		Server: config.ServerConfig{Port: 8080, SkillPath: "/alexa"},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, d Dispatcher) *Server {
	t.Helper()
	v, err := validation.NewEnvelopeValidator("")
	require.NoError(t, err)
	return New(cfg, d, v, logger.NewTestLogger(t))
}

func post(t *testing.T, s *Server, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/alexa", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestSkillEndpoint_Dispatches(t *testing.T) {
	d := new(MockDispatcher)
	d.On("Dispatch", mock.Anything, mock.MatchedBy(func(env *models.RequestEnvelope) bool {
		return env.RequestType() == models.RequestTypeLaunch && env.Request.RequestID == "req-1"
	})).Return(models.NewResponseBuilder().Speak("Welcome").Reprompt("Go on").Build(), nil)

	s := newTestServer(t, testConfig(), d)
	resp, out := post(t, s, launchBody)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.0", out["version"])
	assert.Equal(t, map[string]interface{}{"lastIntent": "HelpIntent"}, out["sessionAttributes"])

	body := out["response"].(map[string]interface{})
	assert.Equal(t, "Welcome", body["outputSpeech"].(map[string]interface{})["text"])
	assert.Equal(t, false, body["shouldEndSession"])
	d.AssertExpectations(t)
}

func TestSkillEndpoint_RejectsBadEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"version": "1.0", "request": `},
		{"missing request", `{"version": "1.0"}`},
		{"missing request type", `{"version": "1.0", "request": {"requestId": "r"}}`},
		{"intent request without intent", `{"version": "1.0", "request": {"type": "IntentRequest"}}`},
		{"non-string slot value", `{"version": "1.0", "request": {"type": "IntentRequest", "intent": {"name": "SearchReleaseIntent", "slots": {"release": {"name": "release", "value": 7}}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(MockDispatcher)
			s := newTestServer(t, testConfig(), d)

			resp, out := post(t, s, tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			errBody := out["error"].(map[string]interface{})
			assert.Equal(t, string(apperrors.ErrCodeInvalidRequest), errBody["code"])
			d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
		})
	}
}

func TestSkillEndpoint_ApplicationIDMismatch(t *testing.T) {
	cfg := testConfig()
	cfg.Skill.ApplicationID = "amzn1.ask.skill.other"
	d := new(MockDispatcher)

	s := newTestServer(t, cfg, d)
	resp, _ := post(t, s, launchBody)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	d.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestSkillEndpoint_ApplicationIDMatch(t *testing.T) {
	cfg := testConfig()
	cfg.Skill.ApplicationID = "amzn1.ask.skill.test"
	d := new(MockDispatcher)
	d.On("Dispatch", mock.Anything, mock.Anything).Return(&models.Response{}, nil)

	s := newTestServer(t, cfg, d)
	resp, _ := post(t, s, launchBody)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSkillEndpoint_DispatchFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"internal", errors.New("no exception handler accepted the error"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"catalog", apperrors.NewCatalogUnavailableError("search_releases", errors.New("status 503")), http.StatusBadGateway, "CATALOG_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := new(MockDispatcher)
			d.On("Dispatch", mock.Anything, mock.Anything).Return(nil, tt.err)

			s := newTestServer(t, testConfig(), d)
			resp, out := post(t, s, launchBody)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			errBody := out["error"].(map[string]interface{})
			assert.Equal(t, tt.wantCode, errBody["code"])
			assert.NotContains(t, errBody["message"], "503")
		})
	}
}

func TestSkillEndpoint_PanicIsRecovered(t *testing.T) {
	d := new(MockDispatcher)
	d.On("Dispatch", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("dispatcher exploded")
	}).Return(nil, nil)

	s := newTestServer(t, testConfig(), d)
	resp, out := post(t, s, launchBody)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", out["error"].(map[string]interface{})["code"])
}

func TestHealthAndReadiness(t *testing.T) {
	s := newTestServer(t, testConfig(), new(MockDispatcher))

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "discogs-explorer", health["service"])

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.draining.Store(true)
	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	d := new(MockDispatcher)
	s := newTestServer(t, testConfig(), d)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, testConfig(), new(MockDispatcher))

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
