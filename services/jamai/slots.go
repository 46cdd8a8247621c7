package jamai

import (
	"encoding/json"
	"strconv"
	"strings"

	"realfun/models"
)

// ParseRecommendedSlots turns the slot_options column into typed candidates.
// The backend emits three shapes: a JSON array (of strings or objects), a single
// JSON object, and freeform bullet text. Freeform text is never split into
// lines; it becomes one undifferentiated candidate so nothing is lost.
func ParseRecommendedSlots(raw string) []models.RecommendedSlot {
	if raw == "" {
		return nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return slotFromText(raw)
	}

	var slots []models.RecommendedSlot
	switch v := parsed.(type) {
	case []any:
		for _, item := range v {
			switch entry := item.(type) {
			case string:
				slots = append(slots, models.RecommendedSlot{Label: entry})
			case map[string]any:
				slots = append(slots, slotFromObject(entry, compactJSON(entry)))
			}
		}
	case map[string]any:
		slots = append(slots, slotFromObject(v, strings.TrimSpace(raw)))
	}
	if len(slots) > 0 {
		return slots
	}
	return slotFromText(raw)
}

// ParseChosenSlot resolves the chosen_slot column against the parsed
// candidates. A bare string matching a candidate's label or internal code
// returns that candidate with its confidence intact; an unmatched string
// becomes a bare slot; values that decode to a number, list or null mean the
// backend chose nothing.
func ParseChosenSlot(raw string, options []models.RecommendedSlot) *models.RecommendedSlot {
	if raw == "" {
		return nil
	}
	cleaned := NormalizeText(raw)
	if cleaned == "" {
		return nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		parsed = cleaned
	}

	switch v := parsed.(type) {
	case map[string]any:
		slot := slotFromObject(v, cleaned)
		return &slot
	case string:
		for i := range options {
			if v == options[i].Label || (options[i].InternalCode != nil && v == *options[i].InternalCode) {
				match := options[i]
				return &match
			}
		}
		return &models.RecommendedSlot{Label: v}
	default:
		return nil
	}
}

func slotFromText(raw string) []models.RecommendedSlot {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil
	}
	return []models.RecommendedSlot{{Label: cleaned}}
}

// slotFromObject builds a slot from a decoded JSON object. Label resolves from
// "label" then "name"; fallbackLabel covers objects with neither.
func slotFromObject(obj map[string]any, fallbackLabel string) models.RecommendedSlot {
	label := stringField(obj, "label", "name")
	if label == "" {
		label = fallbackLabel
	}
	slot := models.RecommendedSlot{Label: label}
	if code := stringField(obj, "internal_code", "code"); code != "" {
		slot.InternalCode = &code
	}
	if conf, ok := coerceFloat(obj["confidence"]); ok {
		slot.Confidence = &conf
	}
	return slot
}

func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// coerceFloat mirrors the loose confidence typing seen in practice: numbers and
// numeric strings pass through, everything else is dropped rather than failing.
func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
