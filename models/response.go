package models

// RecommendedSlot is one candidate timing option parsed from the action table
// output. Label is always set; the internal code and confidence are optional
// because the backend only sometimes emits them. Confidence is expected in
// [0,1] but is stored as returned, not clamped.
type RecommendedSlot struct {
	Label        string   `bson:"label" json:"label"`
	InternalCode *string  `bson:"internalCode,omitempty" json:"internal_code,omitempty"`
	Confidence   *float64 `bson:"confidence,omitempty" json:"confidence,omitempty"`
}

// CodeOrEmpty returns the internal code with nil mapped to "".
func (s RecommendedSlot) CodeOrEmpty() string {
	if s.InternalCode == nil {
		return ""
	}
	return *s.InternalCode
}

// CopilotResponse is the structured result of one action table row, ready for
// the admin UI: classified intent, a one-line summary, the slot candidates, an
// optional chosen slot, the outbound WhatsApp draft and any follow-up warnings.
type CopilotResponse struct {
	Intent           string            `bson:"intent" json:"intent"`
	Summary          string            `bson:"summary" json:"summary"`
	RecommendedSlots []RecommendedSlot `bson:"recommendedSlots" json:"recommended_slots"`
	ChosenSlot       *RecommendedSlot  `bson:"chosenSlot,omitempty" json:"chosen_slot,omitempty"`
	WhatsappMessage  string            `bson:"whatsappMessage" json:"whatsapp_message"`
	Warnings         []string          `bson:"warnings" json:"warnings"`
}
