package copilot

import (
	"context"

	historyRepo "realfun/database/repository/history"
	"realfun/models"
)

// CopilotService defines the interface for handling parent scheduling requests.
type CopilotService interface {
	ProcessParentRequest(ctx context.Context, studentName, studentLevel, currentMode, currentSlot, rawRequest, notes string) (*models.CopilotResponse, error)
	GenerateForSession(ctx context.Context, sessionID, studentName, studentLevel, currentMode, currentSlot, rawRequest, notes string) (*models.CopilotResponse, error)
	CachedResponse(ctx context.Context, sessionID string) (*models.CopilotResponse, error)
}

// ActionTableClient is the slice of the JamAI client this service depends on.
type ActionTableClient interface {
	AddActionRow(ctx context.Context, req models.CopilotRequest) (*models.CopilotResponse, error)
}

// DefaultCopilotService implements CopilotService.
type DefaultCopilotService struct {
	TableClient ActionTableClient
	Sessions    *SessionStore
	HistoryRepo historyRepo.CopilotRecordRepository
}
