// internal/handlers/catalog/random-release/handler_test.go
package randomrelease

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"discogs-explorer/internal/common/discogs"
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/models"
	"discogs-explorer/internal/skill"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetRandomRelease(ctx context.Context) (*discogs.Record, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*discogs.Record), args.Bool(1)
}

func createInput(t *testing.T) *skill.Input {
	return &skill.Input{
		Envelope: &models.RequestEnvelope{
			Version: "1.0",
			Request: models.Request{
				Type:   models.RequestTypeIntent,
				Intent: &models.Intent{Name: IntentName},
			},
		},
		Logger: logger.NewTestLogger(t),
	}
}

func kindOfBlue() *discogs.Record {
	return &discogs.Record{
		ID:      42,
		Title:   "Kind of Blue",
		Year:    1959,
		Genres:  []string{"Jazz"},
		Artists: []discogs.ArtistCredit{{Name: "Miles Davis"}},
	}
}

func TestHandler_SucceedsOnFifthAttempt(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("GetRandomRelease", mock.Anything).Return(nil, false).Times(4)
	catalog.On("GetRandomRelease", mock.Anything).Return(kindOfBlue(), true).Once()

	h := NewHandler(LoadConfig(), catalog, logger.NewTestLogger(t))
	resp, err := h.Handle(context.Background(), createInput(t))
	require.NoError(t, err)

	assert.Equal(t, "Here's a random release for you: 'Kind of Blue' by Miles Davis from 1959 in the Jazz genre.", resp.SpeechText())
	assert.Equal(t, CardTitle, resp.CardTitle())
	assert.Equal(t, "Kind of Blue\nby Miles Davis from 1959 in the Jazz genre", resp.CardContent())
	catalog.AssertNumberOfCalls(t, "GetRandomRelease", 5)
}

func TestHandler_ApologizesAfterFiveMisses(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("GetRandomRelease", mock.Anything).Return(nil, false)

	h := NewHandler(LoadConfig(), catalog, logger.NewTestLogger(t))
	resp, err := h.Handle(context.Background(), createInput(t))
	require.NoError(t, err)

	assert.Equal(t, NotFoundSpeech, resp.SpeechText())
	_, open := resp.RepromptText()
	assert.False(t, open)
	assert.Empty(t, resp.CardTitle())
	catalog.AssertNumberOfCalls(t, "GetRandomRelease", 5)
}

func TestHandler_StopsAtFirstHit(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("GetRandomRelease", mock.Anything).Return(kindOfBlue(), true)

	h := NewHandler(LoadConfig(), catalog, logger.NewTestLogger(t))
	_, err := h.Handle(context.Background(), createInput(t))
	require.NoError(t, err)

	catalog.AssertNumberOfCalls(t, "GetRandomRelease", 1)
}

func TestHandler_SparseRecord(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("GetRandomRelease", mock.Anything).Return(&discogs.Record{ID: 7}, true)

	h := NewHandler(nil, catalog, nil)
	resp, err := h.Handle(context.Background(), createInput(t))
	require.NoError(t, err)

	assert.Equal(t, "Here's a random release for you: 'Unknown Title' by Unknown Artist.", resp.SpeechText())
	assert.Equal(t, "Unknown Title\nby Unknown Artist", resp.CardContent())
}

func TestHandler_MultipleArtistsAndGenres(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("GetRandomRelease", mock.Anything).Return(&discogs.Record{
		Title:   "Bridge over Troubled Water",
		Artists: []discogs.ArtistCredit{{Name: "Simon"}, {Name: "Garfunkel"}},
		Genres:  []string{"Rock", "Folk, World, & Country"},
	}, true)

	h := NewHandler(LoadConfig(), catalog, logger.NewTestLogger(t))
	resp, err := h.Handle(context.Background(), createInput(t))
	require.NoError(t, err)

	assert.Equal(t,
		"Here's a random release for you: 'Bridge over Troubled Water' by Simon, Garfunkel in the Rock, Folk, World, & Country genre.",
		resp.SpeechText())
}

func TestHandler_CustomAttemptLimit(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("GetRandomRelease", mock.Anything).Return(nil, false)

	h := NewHandler(&Config{MaxAttempts: 2}, catalog, logger.NewTestLogger(t))
	_, err := h.Handle(context.Background(), createInput(t))
	require.NoError(t, err)

	catalog.AssertNumberOfCalls(t, "GetRandomRelease", 2)
}

func TestHandler_CancelledContextStopsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	catalog := new(MockCatalog)
	catalog.On("GetRandomRelease", mock.Anything).Return(nil, false).Run(func(mock.Arguments) {
		cancel()
	})

	h := NewHandler(LoadConfig(), catalog, logger.NewTestLogger(t))
	resp, err := h.Handle(ctx, createInput(t))
	require.NoError(t, err)

	assert.Equal(t, NotFoundSpeech, resp.SpeechText())
	catalog.AssertNumberOfCalls(t, "GetRandomRelease", 1)
}

func TestHandler_TimeoutBoundsRetries(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("GetRandomRelease", mock.Anything).Return(nil, false).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		<-ctx.Done()
	})

	h := NewHandler(&Config{MaxAttempts: 5, Timeout: 20 * time.Millisecond}, catalog, logger.NewTestLogger(t))

	start := time.Now()
	resp, err := h.Handle(context.Background(), createInput(t))
	require.NoError(t, err)

	assert.Equal(t, NotFoundSpeech, resp.SpeechText())
	assert.Less(t, time.Since(start), time.Second)
	catalog.AssertNumberOfCalls(t, "GetRandomRelease", 1)
}
