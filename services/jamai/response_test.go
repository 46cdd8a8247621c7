package jamai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractColumns(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		_, err := ExtractColumns(nil)
		require.Error(t, err)
		assert.EqualError(t, err, "parsingError: JamAI response contains no rows.")
	})

	t.Run("no rows", func(t *testing.T) {
		_, err := ExtractColumns(&TableRowsResponse{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contains no rows")
	})

	t.Run("row without columns", func(t *testing.T) {
		_, err := ExtractColumns(&TableRowsResponse{Rows: []TableRow{{}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing 'columns' mapping")
	})

	t.Run("first row wins", func(t *testing.T) {
		resp := &TableRowsResponse{Rows: []TableRow{
			{Columns: map[string]any{"intent": "reschedule"}},
			{Columns: map[string]any{"intent": "cancel"}},
		}}
		columns, err := ExtractColumns(resp)
		require.NoError(t, err)
		assert.Equal(t, "reschedule", columns["intent"])
	})
}

func TestBuildResponseCleanColumns(t *testing.T) {
	columns := map[string]any{
		"intent":           "reschedule",
		"summary":          "Move to a weekend slot.",
		"slot_options":     `[{"label":"Saturday 3-4.30 pm Online","internal_code":"SAT_1500_1630_ONLINE","confidence":0.9}]`,
		"chosen_slot":      `{"label":"Saturday 3-4.30 pm Online","internal_code":"SAT_1500_1630_ONLINE"}`,
		"whatsapp_message": "Hi parent, recommended new slot attached.",
		"warnings":         `["Confirm teacher availability"]`,
	}

	resp, err := BuildResponse(columns)
	require.NoError(t, err)

	assert.Equal(t, "reschedule", resp.Intent)
	assert.Equal(t, "Move to a weekend slot.", resp.Summary)
	require.Len(t, resp.RecommendedSlots, 1)
	assert.Equal(t, "SAT_1500_1630_ONLINE", resp.RecommendedSlots[0].CodeOrEmpty())
	require.NotNil(t, resp.ChosenSlot)
	assert.True(t, strings.HasPrefix(resp.ChosenSlot.Label, "Saturday"))
	assert.Equal(t, "Hi parent, recommended new slot attached.", resp.WhatsappMessage)
	assert.Equal(t, []string{"Confirm teacher availability"}, resp.Warnings)
}

func TestBuildResponseFreeformColumns(t *testing.T) {
	columns := map[string]any{
		"intent":           "reschedule",
		"summary":          "Parent asked for weekend options.",
		"slot_options":     "• Sat 2pm online\n• Sun 4pm physical",
		"chosen_slot":      "",
		"whatsapp_message": "Hi parent, options below.",
		"warnings":         "Double check teacher roster",
	}

	resp, err := BuildResponse(columns)
	require.NoError(t, err)

	require.Len(t, resp.RecommendedSlots, 1)
	assert.True(t, strings.HasPrefix(resp.RecommendedSlots[0].Label, "• Sat"))
	assert.Nil(t, resp.ChosenSlot)
	assert.Equal(t, []string{"Double check teacher roster"}, resp.Warnings)
}

func TestBuildResponseMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		columns map[string]any
	}{
		{
			name: "blank intent",
			columns: map[string]any{
				"intent":           "",
				"summary":          "Move to a weekend slot.",
				"whatsapp_message": "Hi parent.",
			},
		},
		{
			name: "missing summary",
			columns: map[string]any{
				"intent":           "reschedule",
				"whatsapp_message": "Hi parent.",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildResponse(tc.columns)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "missing required fields")
		})
	}
}

func TestBuildResponseReplacesLeakedMessage(t *testing.T) {
	columns := map[string]any{
		"intent":           "reschedule",
		"summary":          "Parent wants Saturday.",
		"slot_options":     `["Sat 2pm","Sun 4pm"]`,
		"chosen_slot":      "",
		"whatsapp_message": "chatcmpl-77 object=chat.completion leftover noise",
	}

	resp, err := BuildResponse(columns)
	require.NoError(t, err)

	assert.NotContains(t, resp.WhatsappMessage, "object=")
	assert.NotContains(t, resp.WhatsappMessage, "chatcmpl")
	assert.True(t, strings.HasPrefix(resp.WhatsappMessage, "Hi! Here is a quick summary and options based on your request:"))
	assert.Contains(t, resp.WhatsappMessage, "- Summary: Parent wants Saturday.")
	assert.Contains(t, resp.WhatsappMessage, "- Recommended slots:")
	assert.Contains(t, resp.WhatsappMessage, "  1. Sat 2pm")
	assert.Contains(t, resp.WhatsappMessage, "  2. Sun 4pm")
	assert.True(t, strings.HasSuffix(resp.WhatsappMessage, "Please reply with your preferred option (or share a new timing), and we will confirm with the teacher."))
}

func TestBuildResponseFallbackMessage(t *testing.T) {
	t.Run("empty message with chosen slot", func(t *testing.T) {
		columns := map[string]any{
			"intent":           "reschedule",
			"summary":          "Parent wants Saturday.",
			"slot_options":     `["Sat 2pm"]`,
			"chosen_slot":      "Sat 2pm",
			"whatsapp_message": "",
		}

		resp, err := BuildResponse(columns)
		require.NoError(t, err)

		assert.Contains(t, resp.WhatsappMessage, "- Suggested slot: Sat 2pm")
		assert.NotContains(t, resp.WhatsappMessage, "- Recommended slots:")
	})

	t.Run("slot list is capped at five", func(t *testing.T) {
		columns := map[string]any{
			"intent":           "general",
			"summary":          "Lots of options.",
			"slot_options":     `["a","b","c","d","e","f","g"]`,
			"whatsapp_message": "",
		}

		resp, err := BuildResponse(columns)
		require.NoError(t, err)

		assert.Contains(t, resp.WhatsappMessage, "  5. e")
		assert.NotContains(t, resp.WhatsappMessage, "  6. f")
	})
}

func TestBuildResponseEmptyCollections(t *testing.T) {
	columns := map[string]any{
		"intent":           "general_question",
		"summary":          "Parent asked about fees.",
		"whatsapp_message": "Hi parent, fees are unchanged this term.",
	}

	resp, err := BuildResponse(columns)
	require.NoError(t, err)

	assert.NotNil(t, resp.RecommendedSlots)
	assert.Empty(t, resp.RecommendedSlots)
	assert.NotNil(t, resp.Warnings)
	assert.Empty(t, resp.Warnings)
	assert.Nil(t, resp.ChosenSlot)
}
