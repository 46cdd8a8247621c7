package copilot

import (
	"context"
	"strings"
	"time"

	"realfun/models"
	"realfun/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProcessParentRequest validates the raw form input, builds the normalized
// request and runs one action table call.
func (s *DefaultCopilotService) ProcessParentRequest(ctx context.Context, studentName, studentLevel, currentMode, currentSlot, rawRequest, notes string) (*models.CopilotResponse, error) {
	return s.process(ctx, "", studentName, studentLevel, currentMode, currentSlot, rawRequest, notes)
}

// GenerateForSession runs the same flow under a per-session guard: while one
// call is outstanding a second submission for the same session is rejected
// with ErrSessionBusy, and the successful response is cached for replay.
func (s *DefaultCopilotService) GenerateForSession(ctx context.Context, sessionID, studentName, studentLevel, currentMode, currentSlot, rawRequest, notes string) (*models.CopilotResponse, error) {
	if sessionID == "" || s.Sessions == nil {
		return s.process(ctx, sessionID, studentName, studentLevel, currentMode, currentSlot, rawRequest, notes)
	}

	acquired, err := s.Sessions.AcquireBusy(ctx, sessionID)
	if err != nil {
		// The guard is advisory; a broken Redis must not block submissions.
		utils.GetLogger().Warn("Session guard unavailable", zap.String("sessionID", sessionID), zap.Error(err))
	} else if !acquired {
		return nil, ErrSessionBusy
	} else {
		defer s.Sessions.ReleaseBusy(ctx, sessionID)
	}

	resp, err := s.process(ctx, sessionID, studentName, studentLevel, currentMode, currentSlot, rawRequest, notes)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.SaveResponse(ctx, sessionID, resp); err != nil {
		utils.GetLogger().Warn("Failed to cache session response", zap.String("sessionID", sessionID), zap.Error(err))
	}
	return resp, nil
}

// CachedResponse re-serves the session's last successful response, or nil when
// the session has none on record.
func (s *DefaultCopilotService) CachedResponse(ctx context.Context, sessionID string) (*models.CopilotResponse, error) {
	if s.Sessions == nil {
		return nil, nil
	}
	return s.Sessions.LastResponse(ctx, sessionID)
}

func (s *DefaultCopilotService) process(ctx context.Context, sessionID, studentName, studentLevel, currentMode, currentSlot, rawRequest, notes string) (*models.CopilotResponse, error) {
	logger := utils.GetLogger()

	name := strings.TrimSpace(studentName)
	level := strings.TrimSpace(studentLevel)
	request := strings.TrimSpace(rawRequest)

	if name == "" {
		return nil, NewValidationError("student_name", "Student name is required.")
	}
	if level == "" {
		return nil, NewValidationError("student_level", "Student level is required.")
	}
	if request == "" {
		return nil, NewValidationError("raw_request", "Parent request cannot be empty.")
	}

	req := models.CopilotRequest{
		StudentName:  name,
		StudentLevel: level,
		CurrentMode:  strings.TrimSpace(currentMode),
		CurrentSlot:  strings.TrimSpace(currentSlot),
		RawRequest:   request,
	}
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		req.Notes = &trimmed
	}

	logger.Debug("Sending CopilotRequest to JamAI",
		zap.String("studentName", req.StudentName),
		zap.String("studentLevel", req.StudentLevel),
		zap.String("currentMode", req.CurrentMode))

	resp, err := s.TableClient.AddActionRow(ctx, req)
	if err != nil {
		return nil, err
	}

	s.recordInteraction(ctx, sessionID, req, resp)
	return resp, nil
}

// recordInteraction persists the exchange for later admin review. Failures
// only log; the caller still gets its response.
func (s *DefaultCopilotService) recordInteraction(ctx context.Context, sessionID string, req models.CopilotRequest, resp *models.CopilotResponse) {
	if s.HistoryRepo == nil {
		return
	}
	record := models.CopilotRecord{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Request:   req,
		Response:  *resp,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.HistoryRepo.Create(ctx, record); err != nil {
		utils.GetLogger().Warn("Failed to persist copilot record", zap.String("recordID", record.ID), zap.Error(err))
	}
}
