package models

import "time"

// CopilotRecord is the persisted audit trail of one copilot interaction. Records
// let admins review what was asked and what the AI recommended; they are pruned
// by a TTL index on createdAt.
type CopilotRecord struct {
	ID        string          `bson:"id" json:"id"`
	SessionID string          `bson:"sessionId,omitempty" json:"session_id,omitempty"`
	Request   CopilotRequest  `bson:"request" json:"request"`
	Response  CopilotResponse `bson:"response" json:"response"`
	CreatedAt time.Time       `bson:"createdAt" json:"created_at"`
}
