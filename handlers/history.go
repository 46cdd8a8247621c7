package handlers

import (
	"errors"
	"net/http"
	"strconv"

	historyRepo "realfun/database/repository/history"
	"realfun/models"
	"realfun/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// HistoryHandler exposes read and cleanup endpoints over stored copilot records.
type HistoryHandler struct {
	Repo historyRepo.CopilotRecordRepository
}

// ListHandler handles GET /api/copilot/history.
// Supports ?student=<name> to filter and ?limit=<n> to bound the page size.
func (h *HistoryHandler) ListHandler(c *gin.Context) {
	logger := getLogger(c)

	limit := int64(defaultHistoryLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit parameter", "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var (
		records []models.CopilotRecord
		err     error
	)
	if student := c.Query("student"); student != "" {
		records, err = h.Repo.GetByStudentName(c.Request.Context(), student, limit)
	} else {
		records, err = h.Repo.GetRecent(c.Request.Context(), limit)
	}
	if err != nil {
		logger.Error("Failed to list copilot records", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list records", err.Error())
		return
	}
	if records == nil {
		records = []models.CopilotRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

// GetHandler handles GET /api/copilot/history/:id.
func (h *HistoryHandler) GetHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	record, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, historyRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Record not found", id)
			return
		}
		logger.Error("Failed to fetch copilot record", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch record", err.Error())
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteHandler handles DELETE /api/copilot/history/:id.
func (h *HistoryHandler) DeleteHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.Repo.DeleteByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, historyRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Record not found", id)
			return
		}
		logger.Error("Failed to delete copilot record", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete record", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}
