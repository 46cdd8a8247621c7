package jamai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWarnings(t *testing.T) {
	t.Run("nil yields nothing", func(t *testing.T) {
		assert.Nil(t, ParseWarnings(nil))
	})

	t.Run("list keeps non empty entries", func(t *testing.T) {
		got := ParseWarnings([]any{"check roster", "", "  ", "slot may clash"})
		assert.Equal(t, []string{"check roster", "slot may clash"}, got)
	})

	t.Run("json encoded list is decoded", func(t *testing.T) {
		got := ParseWarnings(`["Confirm teacher availability","Fee changes apply"]`)
		assert.Equal(t, []string{"Confirm teacher availability", "Fee changes apply"}, got)
	})

	t.Run("multiline text splits into lines", func(t *testing.T) {
		got := ParseWarnings("first issue\nsecond issue\r\n\nthird issue")
		assert.Equal(t, []string{"first issue", "second issue", "third issue"}, got)
	})

	t.Run("single line text is one warning", func(t *testing.T) {
		got := ParseWarnings("Double check teacher roster")
		assert.Equal(t, []string{"Double check teacher roster"}, got)
	})

	t.Run("blank text yields nothing", func(t *testing.T) {
		assert.Nil(t, ParseWarnings("   "))
	})

	t.Run("json object string stays one warning", func(t *testing.T) {
		got := ParseWarnings(`{"note":"x"}`)
		assert.Equal(t, []string{`{"note":"x"}`}, got)
	})

	t.Run("decoded object renders as compact json", func(t *testing.T) {
		got := ParseWarnings(map[string]any{"note": "x"})
		assert.Equal(t, []string{`{"note":"x"}`}, got)
	})

	t.Run("oversized entries are capped", func(t *testing.T) {
		long := strings.Repeat("x", 500)
		got := ParseWarnings([]any{long})

		require.Len(t, got, 1)
		assert.True(t, strings.HasSuffix(got[0], "..."))
		assert.Equal(t, strings.Repeat("x", 400)+"...", got[0])
	})
}
