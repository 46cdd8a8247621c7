// File: services/copilot/session.go
package copilot

import (
	"context"
	"encoding/json"
	"time"

	"realfun/models"
	"realfun/utils"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps per-session state in Redis: a short lived busy guard that
// enforces one outstanding call per session, and the last successful response
// so a reloaded form can render it again.
type SessionStore struct {
	client      *redis.Client
	responseTTL time.Duration
	busyTTL     time.Duration
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client:      client,
		responseTTL: utils.SessionResponseTTL,
		busyTTL:     utils.SessionBusyTTL,
	}
}

// AcquireBusy marks the session as having a call in flight. It returns false
// when another call already holds the guard.
func (s *SessionStore) AcquireBusy(ctx context.Context, sessionID string) (bool, error) {
	return s.client.SetNX(ctx, utils.SessionBusyPrefix+sessionID, "1", s.busyTTL).Result()
}

// ReleaseBusy clears the in-flight guard.
func (s *SessionStore) ReleaseBusy(ctx context.Context, sessionID string) {
	s.client.Del(ctx, utils.SessionBusyPrefix+sessionID)
}

// SaveResponse caches the session's latest successful response.
func (s *SessionStore) SaveResponse(ctx context.Context, sessionID string, resp *models.CopilotResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, utils.SessionResponsePrefix+sessionID, b, s.responseTTL).Err()
}

// LastResponse returns the cached response, or nil when the session has none.
func (s *SessionStore) LastResponse(ctx context.Context, sessionID string) (*models.CopilotResponse, error) {
	data, err := s.client.Get(ctx, utils.SessionResponsePrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp models.CopilotResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
