package jamai

import (
	"encoding/json"
	"strings"
)

// ParseWarnings flattens the warnings column into clean display strings. The
// column shows up as a real list, a JSON encoded list, or freeform multi-line
// text; elements that simplify to nothing are dropped.
func ParseWarnings(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return simplifyAll(v)
	case string:
		cleaned := SimplifyWarningText(v)
		if cleaned == "" {
			return nil
		}
		var parsed any
		if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
			return splitWarningLines(cleaned)
		}
		if list, ok := parsed.([]any); ok {
			return simplifyAll(list)
		}
		return []string{cleaned}
	default:
		if cleaned := SimplifyWarningText(raw); cleaned != "" {
			return []string{cleaned}
		}
		return nil
	}
}

func simplifyAll(items []any) []string {
	var warnings []string
	for _, item := range items {
		if cleaned := SimplifyWarningText(item); cleaned != "" {
			warnings = append(warnings, cleaned)
		}
	}
	return warnings
}

func splitWarningLines(text string) []string {
	var warnings []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if line = strings.TrimSpace(line); line != "" {
			warnings = append(warnings, line)
		}
	}
	return warnings
}
