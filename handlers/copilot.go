package handlers

import (
	"errors"
	"net/http"

	"realfun/services/copilot"
	"realfun/services/jamai"
	"realfun/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest is the expected input structure for copilot generations.
type GenerateRequest struct {
	SessionID    string `json:"session_id"`
	StudentName  string `json:"student_name"`
	StudentLevel string `json:"student_level"`
	CurrentMode  string `json:"current_mode"`
	CurrentSlot  string `json:"current_slot"`
	RawRequest   string `json:"raw_request"`
	Notes        string `json:"notes"`
}

// CopilotHandler groups the copilot endpoints around a shared service.
type CopilotHandler struct {
	Service copilot.CopilotService
}

// GenerateHandler handles POST /api/copilot/generate.
func (h *CopilotHandler) GenerateHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid copilot generate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	resp, err := h.Service.GenerateForSession(
		c.Request.Context(),
		req.SessionID,
		req.StudentName,
		req.StudentLevel,
		req.CurrentMode,
		req.CurrentSlot,
		req.RawRequest,
		req.Notes,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SessionResponseHandler handles GET /api/copilot/session/:id.
// It returns the last generated response for the session, if one is cached.
func (h *CopilotHandler) SessionResponseHandler(c *gin.Context) {
	logger := utils.GetLogger()
	sessionID := c.Param("id")

	resp, err := h.Service.CachedResponse(c.Request.Context(), sessionID)
	if err != nil {
		logger.Error("Failed to load cached copilot response", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session response"})
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No response recorded for this session"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writeServiceError translates copilot service failures into HTTP replies.
func writeServiceError(c *gin.Context, err error) {
	logger := utils.GetLogger()

	if vErr, ok := err.(*copilot.ValidationError); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
		return
	}
	if errors.Is(err, copilot.ErrSessionBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": "A request for this session is still running. Please wait for it to finish."})
		return
	}
	if rErr, ok := err.(*jamai.ResponseError); ok {
		logger.Error("JamAI request failed", zap.String("kind", rErr.Kind), zap.String("message", rErr.Message))
		c.JSON(http.StatusBadGateway, gin.H{"error": "JamAI request failed", "details": rErr.Message})
		return
	}

	logger.Error("Copilot generation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}
