package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kisansetu/kisan-voice-backend/logger"
	"github.com/kisansetu/kisan-voice-backend/middleware"
	"github.com/kisansetu/kisan-voice-backend/services"
	"github.com/kisansetu/kisan-voice-backend/store"
	"github.com/kisansetu/kisan-voice-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMarketplaceClient struct {
	mock.Mock
}

func (m *MockMarketplaceClient) CreateOrder(ctx context.Context, order types.OrderCreate) (*types.MarketplaceResponse, error) {
	args := m.Called(ctx, order)
	if resp := args.Get(0); resp != nil {
		return resp.(*types.MarketplaceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMarketplaceClient) CreateListing(ctx context.Context, listing types.ListingCreate) (*types.MarketplaceResponse, error) {
	args := m.Called(ctx, listing)
	if resp := args.Get(0); resp != nil {
		return resp.(*types.MarketplaceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type handlerFixture struct {
	router      *gin.Engine
	history     *store.MemoryCommandStore
	marketplace *MockMarketplaceClient
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.IsTest = true
	logger.InitLogger()

	history := store.NewMemoryCommandStore()
	marketplace := new(MockMarketplaceClient)
	voiceService := services.NewVoiceService(types.DefaultLanguage)
	recorder := services.NewClientRecorder()
	session := services.NewVoiceSession(recorder, voiceService, history)
	confirmation := services.NewConfirmationService(marketplace)

	h := NewVoiceHandler(voiceService, session, recorder, confirmation, history)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	v1 := r.Group("/v1/voice")
	{
		v1.POST("/process", h.ProcessHandler)
		v1.POST("/confirm", h.ConfirmHandler)
		v1.GET("/history", h.HistoryHandler)
		v1.POST("/session/start", h.SessionStartHandler)
		v1.POST("/session/stop", h.SessionStopHandler)
		v1.POST("/session/reset", h.SessionResetHandler)
	}

	return &handlerFixture{router: r, history: history, marketplace: marketplace}
}

func (f *handlerFixture) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestProcessHandler_SellCommand(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.post(t, "/v1/voice/process", types.TranscriptionInput{
		Text: "I want to sell 50 kg tomatoes at 30 rupees",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result types.VoiceResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Data)
	assert.Equal(t, types.ActionCreateListing, result.Data.ExtractedData.Action)
	assert.Equal(t, "tomato", result.Data.ExtractedData.CropType)
	assert.True(t, result.Data.CanCreateListing)

	commands, err := f.history.List(context.Background())
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, types.ActionCreateListing, commands[0].Action)
}

func TestProcessHandler_EmptyTranscription(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.post(t, "/v1/voice/process", types.TranscriptionInput{Text: "   "})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var result types.VoiceResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "No transcription provided", result.Error)

	// Failed interpretations are still part of the history.
	commands, err := f.history.List(context.Background())
	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, types.ActionUnknown, commands[0].Action)
}

func TestProcessHandler_InvalidBody(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/voice/process", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmHandler_CreateListing(t *testing.T) {
	f := newHandlerFixture(t)
	f.marketplace.On("CreateListing", mock.Anything, mock.AnythingOfType("types.ListingCreate")).
		Return(&types.MarketplaceResponse{ID: "listing-42"}, nil)

	w := f.post(t, "/v1/voice/confirm", types.ConfirmationRequest{
		Action: types.ConfirmCreateListing,
		Intent: types.ExtractedIntent{
			Action:   types.ActionCreateListing,
			CropType: "tomato",
			Quantity: types.IntPtr(50),
			Unit:     "kg",
			Price:    types.IntPtr(30),
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var outcome types.ConfirmationOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.True(t, outcome.Success)
	assert.Equal(t, "listing-42", outcome.ListingID)
	f.marketplace.AssertExpectations(t)
}

func TestConfirmHandler_IncompleteIntent(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.post(t, "/v1/voice/confirm", types.ConfirmationRequest{
		Action: types.ConfirmCreateListing,
		Intent: types.ExtractedIntent{Action: types.ActionCreateListing, CropType: "tomato"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.marketplace.AssertNotCalled(t, "CreateListing", mock.Anything, mock.Anything)
}

func TestHistoryHandler_MostRecentFirst(t *testing.T) {
	f := newHandlerFixture(t)

	f.post(t, "/v1/voice/process", types.TranscriptionInput{Text: "sell 50 kg tomato at 30 rupees"})
	f.post(t, "/v1/voice/process", types.TranscriptionInput{Text: "buy onion"})

	req := httptest.NewRequest(http.MethodGet, "/v1/voice/history", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    []types.VoiceCommand `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, types.ActionSearchListings, resp.Data[0].Action)
	assert.Equal(t, types.ActionCreateListing, resp.Data[1].Action)
}

func TestSessionHandlers_FullCycle(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.post(t, "/v1/voice/session/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.post(t, "/v1/voice/session/stop", types.TranscriptionInput{
		Text: "What is the price of onion?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		State  types.SessionState `json:"state"`
		Result types.VoiceResult  `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.SessionSuccess, resp.State)
	require.NotNil(t, resp.Result.Data)
	assert.Equal(t, types.ActionCheckPrices, resp.Result.Data.ExtractedData.Action)

	w = f.post(t, "/v1/voice/session/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reset struct {
		State types.SessionState `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reset))
	assert.Equal(t, types.SessionIdle, reset.State)
}

func TestSessionStopHandler_WithoutStart(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.post(t, "/v1/voice/session/stop", types.TranscriptionInput{Text: "buy rice"})

	assert.Equal(t, http.StatusConflict, w.Code)
}
