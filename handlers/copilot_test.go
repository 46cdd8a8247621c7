package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"realfun/models"
	"realfun/services/copilot"
	"realfun/services/jamai"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCopilotService implements copilot.CopilotService for testing.
type fakeCopilotService struct {
	lastSessionID string
	lastStudent   string
	lastLevel     string
	lastMode      string
	lastSlot      string
	lastRequest   string
	lastNotes     string

	response *models.CopilotResponse
	err      error

	cached    *models.CopilotResponse
	cachedErr error
}

func (f *fakeCopilotService) ProcessParentRequest(ctx context.Context, studentName, studentLevel, currentMode, currentSlot, rawRequest, notes string) (*models.CopilotResponse, error) {
	return f.GenerateForSession(ctx, "", studentName, studentLevel, currentMode, currentSlot, rawRequest, notes)
}

func (f *fakeCopilotService) GenerateForSession(ctx context.Context, sessionID, studentName, studentLevel, currentMode, currentSlot, rawRequest, notes string) (*models.CopilotResponse, error) {
	f.lastSessionID = sessionID
	f.lastStudent = studentName
	f.lastLevel = studentLevel
	f.lastMode = currentMode
	f.lastSlot = currentSlot
	f.lastRequest = rawRequest
	f.lastNotes = notes
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeCopilotService) CachedResponse(ctx context.Context, sessionID string) (*models.CopilotResponse, error) {
	f.lastSessionID = sessionID
	return f.cached, f.cachedErr
}

func newCopilotRouter(svc copilot.CopilotService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &CopilotHandler{Service: svc}
	r := gin.New()
	r.POST("/api/copilot/generate", h.GenerateHandler)
	r.GET("/api/copilot/session/:id", h.SessionResponseHandler)
	return r
}

func postGenerate(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/copilot/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGenerateHandlerSuccess(t *testing.T) {
	svc := &fakeCopilotService{
		response: &models.CopilotResponse{
			Intent:           "reschedule",
			Summary:          "Move to Sunday.",
			RecommendedSlots: []models.RecommendedSlot{{Label: "Sun 10am"}},
			WhatsappMessage:  "Hi parent.",
			Warnings:         []string{},
		},
	}
	r := newCopilotRouter(svc)

	rec := postGenerate(t, r, gin.H{
		"session_id":    "sess-1",
		"student_name":  "Aisyah",
		"student_level": "Form 4",
		"current_mode":  "online",
		"current_slot":  "Sat 1-2.30 pm",
		"raw_request":   "move class please",
		"notes":         "vip",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-1", svc.lastSessionID)
	assert.Equal(t, "Aisyah", svc.lastStudent)
	assert.Equal(t, "Form 4", svc.lastLevel)
	assert.Equal(t, "online", svc.lastMode)
	assert.Equal(t, "Sat 1-2.30 pm", svc.lastSlot)
	assert.Equal(t, "move class please", svc.lastRequest)
	assert.Equal(t, "vip", svc.lastNotes)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "reschedule", body["intent"])
	assert.Equal(t, "Move to Sunday.", body["summary"])
}

func TestGenerateHandlerMalformedJSON(t *testing.T) {
	r := newCopilotRouter(&fakeCopilotService{})

	req := httptest.NewRequest(http.MethodPost, "/api/copilot/generate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation error",
			err:        copilot.NewValidationError("student_name", "Student name is required."),
			wantStatus: http.StatusBadRequest,
			wantError:  "Student name is required.",
		},
		{
			name:       "session busy",
			err:        copilot.ErrSessionBusy,
			wantStatus: http.StatusConflict,
			wantError:  "A request for this session is still running. Please wait for it to finish.",
		},
		{
			name:       "upstream failure",
			err:        jamai.NewParsingError("JamAI response contains no rows."),
			wantStatus: http.StatusBadGateway,
			wantError:  "JamAI request failed",
		},
		{
			name:       "unknown error",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newCopilotRouter(&fakeCopilotService{err: tc.err})

			rec := postGenerate(t, r, gin.H{
				"student_name":  "Aisyah",
				"student_level": "Form 4",
				"raw_request":   "move class",
			})

			require.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantError, body["error"])
		})
	}
}

func TestGenerateHandlerValidationFieldIncluded(t *testing.T) {
	r := newCopilotRouter(&fakeCopilotService{
		err: copilot.NewValidationError("raw_request", "Parent request cannot be empty."),
	})

	rec := postGenerate(t, r, gin.H{"student_name": "Aisyah"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "raw_request", body["field"])
}

func TestSessionResponseHandler(t *testing.T) {
	t.Run("returns cached response", func(t *testing.T) {
		svc := &fakeCopilotService{
			cached: &models.CopilotResponse{Intent: "reschedule", Summary: "s", WhatsappMessage: "m"},
		}
		r := newCopilotRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/copilot/session/sess-9", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "sess-9", svc.lastSessionID)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "reschedule", body["intent"])
	})

	t.Run("missing session yields 404", func(t *testing.T) {
		r := newCopilotRouter(&fakeCopilotService{})

		req := httptest.NewRequest(http.MethodGet, "/api/copilot/session/sess-9", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure yields 500", func(t *testing.T) {
		r := newCopilotRouter(&fakeCopilotService{cachedErr: assert.AnError})

		req := httptest.NewRequest(http.MethodGet, "/api/copilot/session/sess-9", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
