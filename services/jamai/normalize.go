package jamai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	completionContentRe     = regexp.MustCompile(`(?s)content='(.*?)'`)
	completionJSONContentRe = regexp.MustCompile(`"content":\s*"([^"]+)"`)
	completionFragmentRe    = regexp.MustCompile(`ChatCompletion\w*\([^)]*\)`)
)

// NormalizeText coerces an action table column value into a clean string.
// Columns come back as plain strings, chat-completion chunk objects, or verbose
// object dumps leaked by the upstream SDK; all of them reduce to the text the
// model actually produced. Total function, idempotent on plain strings.
func NormalizeText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return normalizeString(v)
	case map[string]any:
		return normalizeObject(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func normalizeString(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return ""
	}
	if extracted, ok := extractCompletionContent(text); ok {
		return strings.TrimSpace(extracted)
	}
	// A ChatCompletion repr keeps the useful text before its usage/metadata tail.
	if strings.Contains(text, "ChatCompletion") || strings.Contains(text, "chatcmpl") {
		text = strings.TrimSpace(strings.SplitN(text, "usage=", 2)[0])
		text = strings.ReplaceAll(text, "choices=[", "")
		text = strings.ReplaceAll(text, "message=", "")
		text = completionFragmentRe.ReplaceAllString(text, "")
		text = strings.Trim(text, " ,[]")
	}
	return text
}

// normalizeObject digs the assistant content out of a decoded chat-completion
// chunk. Unknown object shapes re-serialize to compact JSON rather than a Go
// map dump.
func normalizeObject(value map[string]any) string {
	if choices, ok := value["choices"].([]any); ok && len(choices) > 0 {
		if first, ok := choices[0].(map[string]any); ok {
			if message, ok := first["message"].(map[string]any); ok {
				if content := NormalizeText(message["content"]); content != "" {
					return content
				}
			}
			if text := NormalizeText(first["text"]); text != "" {
				return text
			}
		}
	}
	if text := NormalizeText(value["text"]); text != "" {
		return text
	}
	return compactJSON(value)
}

// extractCompletionContent pulls the assistant message out of a completion dump,
// from either the repr form (content='...') or the JSON form ("content": "...").
func extractCompletionContent(text string) (string, bool) {
	if m := completionContentRe.FindStringSubmatch(text); m != nil {
		return m[1], m[1] != ""
	}
	if m := completionJSONContentRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// compactJSON renders a decoded value back to one-line JSON without HTML
// escaping, as a display string of last resort.
func compactJSON(value any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return strings.TrimSpace(fmt.Sprint(value))
	}
	return strings.TrimSpace(buf.String())
}

// LooksLikeCompletionBlob reports whether text still reads as a leaked
// completion object dump rather than content safe to forward to a parent.
func LooksLikeCompletionBlob(text string) bool {
	lowered := strings.ToLower(text)
	if !strings.Contains(lowered, "chatcompletion") && !strings.Contains(lowered, "chatcmpl") {
		return false
	}
	return strings.Contains(lowered, "id=") || strings.Contains(lowered, "object=")
}

const maxWarningLen = 400

// SimplifyWarningText normalizes a warning value and caps it at 400 characters
// so oversized blobs stay readable in the admin view.
func SimplifyWarningText(value any) string {
	text := NormalizeText(value)
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxWarningLen {
		return text
	}
	return strings.TrimRightFunc(string(runes[:maxWarningLen]), unicode.IsSpace) + "..."
}
