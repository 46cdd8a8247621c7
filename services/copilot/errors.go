package copilot

import "errors"

// ValidationError reports a mandatory request field that is missing or blank.
// It is raised before any network call happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// ErrSessionBusy signals that the session already has a call in flight.
var ErrSessionBusy = errors.New("a request is already running for this session")
