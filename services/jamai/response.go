package jamai

import (
	"fmt"
	"strings"

	"realfun/models"
)

// TableRow is one generated row of an action table response.
type TableRow struct {
	Columns map[string]any `json:"columns"`
}

// TableRowsResponse is the decoded body of a gen_tables rows/add call.
type TableRowsResponse struct {
	Rows []TableRow `json:"rows"`
}

// ExtractColumns validates the row shape and returns the first row's columns.
func ExtractColumns(resp *TableRowsResponse) (map[string]any, error) {
	if resp == nil || len(resp.Rows) == 0 {
		return nil, NewParsingError("JamAI response contains no rows.")
	}
	columns := resp.Rows[0].Columns
	if columns == nil {
		return nil, NewParsingError("JamAI row missing 'columns' mapping.")
	}
	return columns, nil
}

// BuildResponse assembles a CopilotResponse from one row's columns. Intent and
// summary are the non-negotiable part of the table contract; everything else
// degrades through its parser. A missing or leaked whatsapp_message is replaced
// with a synthesized draft so raw backend internals never reach a parent.
func BuildResponse(columns map[string]any) (*models.CopilotResponse, error) {
	intent := NormalizeText(columns["intent"])
	summary := NormalizeText(columns["summary"])
	slotOptionsRaw := NormalizeText(columns["slot_options"])
	chosenSlotRaw := NormalizeText(columns["chosen_slot"])
	whatsappMessage := NormalizeText(columns["whatsapp_message"])

	if intent == "" || summary == "" {
		return nil, NewParsingError("JamAI response is missing required fields.")
	}

	recommended := ParseRecommendedSlots(slotOptionsRaw)
	chosen := ParseChosenSlot(chosenSlotRaw, recommended)
	warnings := ParseWarnings(columns["warnings"])

	if whatsappMessage == "" || LooksLikeCompletionBlob(whatsappMessage) {
		whatsappMessage = buildFallbackMessage(summary, recommended, chosen)
	}

	if recommended == nil {
		recommended = []models.RecommendedSlot{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return &models.CopilotResponse{
		Intent:           intent,
		Summary:          summary,
		RecommendedSlots: recommended,
		ChosenSlot:       chosen,
		WhatsappMessage:  whatsappMessage,
		Warnings:         warnings,
	}, nil
}

// buildFallbackMessage drafts a human friendly WhatsApp reply when the backend
// returned nothing usable for the outbound channel.
func buildFallbackMessage(summary string, slots []models.RecommendedSlot, chosen *models.RecommendedSlot) string {
	lines := []string{"Hi! Here is a quick summary and options based on your request:"}
	if summary != "" {
		lines = append(lines, "- Summary: "+summary)
	}
	if chosen != nil {
		lines = append(lines, "- Suggested slot: "+chosen.Label)
	} else if len(slots) > 0 {
		lines = append(lines, "- Recommended slots:")
		for i, slot := range slots {
			if i == 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, slot.Label))
		}
	}
	lines = append(lines, "Please reply with your preferred option (or share a new timing), and we will confirm with the teacher.")
	return strings.Join(lines, "\n")
}
