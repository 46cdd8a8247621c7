package models

// CopilotRequest is the normalized representation of a parent's scheduling
// request, built once per submission after validation. Name, level and the raw
// request text are guaranteed non-empty by the copilot service; mode and slot
// may be empty strings.
type CopilotRequest struct {
	StudentName  string  `bson:"studentName" json:"student_name"`
	StudentLevel string  `bson:"studentLevel" json:"student_level"`
	CurrentMode  string  `bson:"currentMode" json:"current_mode"`   // online / physical / mixed / unknown
	CurrentSlot  string  `bson:"currentSlot" json:"current_slot"`   // free text, e.g. "Sat 1-2.30 pm"
	RawRequest   string  `bson:"rawRequest" json:"raw_request"`     // the parent's original message
	Notes        *string `bson:"notes,omitempty" json:"notes,omitempty"` // internal context, nil when blank
}

// NotesOrEmpty returns the notes value with nil mapped to "".
func (r CopilotRequest) NotesOrEmpty() string {
	if r.Notes == nil {
		return ""
	}
	return *r.Notes
}
