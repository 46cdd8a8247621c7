package jamai

import "fmt"

// ResponseError reports an upstream call whose result could not be turned into
// a usable CopilotResponse: transport failures, malformed bodies and rows that
// violate the table contract all surface as this one kind.
type ResponseError struct {
	Kind    string
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewParsingError(msg string) error {
	return &ResponseError{
		Kind:    "parsingError",
		Message: msg,
	}
}
