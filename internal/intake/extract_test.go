package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTaggedFence(t *testing.T) {
	text := "Here is your registry update.\n\n```json\n{\"guidance\": [\"pick a role\"]}\n```"

	narrative, structured := Extract(text)

	assert.Equal(t, "Here is your registry update.", narrative)
	require.NotNil(t, structured)
	assert.Equal(t, []any{"pick a role"}, structured["guidance"])
}

func TestExtractTaggedFencePriority(t *testing.T) {
	text := "Some context.\n" +
		"```python\nprint('noise')\n```\n" +
		"More prose.\n" +
		"```json\n{\"suggestions\": [\"add owners\"]}\n```"

	narrative, structured := Extract(text)

	require.NotNil(t, structured)
	assert.Equal(t, []any{"add owners"}, structured["suggestions"])
	assert.NotContains(t, narrative, "print")
	assert.NotContains(t, narrative, "suggestions")
	assert.Contains(t, narrative, "Some context.")
	assert.Contains(t, narrative, "More prose.")
}

func TestExtractBraceFallback(t *testing.T) {
	text := "Noted, updating now. {\"questions\": [\"Which country?\"]} Let me know."

	narrative, structured := Extract(text)

	require.NotNil(t, structured)
	assert.Equal(t, []any{"Which country?"}, structured["questions"])
	// Brace fallback does not rewrite the narrative; only fences are stripped.
	assert.Equal(t, text, narrative)
}

func TestExtractUntaggedFenceViaBraces(t *testing.T) {
	text := "Update:\n```\n{\"guidance\": [\"x\"]}\n```"

	narrative, structured := Extract(text)

	require.NotNil(t, structured)
	assert.Equal(t, []any{"x"}, structured["guidance"])
	assert.Equal(t, "Update:", narrative)
}

func TestExtractUnparsableIsNonFatal(t *testing.T) {
	text := "I could not produce data this time. {not: valid json"

	narrative, structured := Extract(text)

	assert.Nil(t, structured)
	assert.Equal(t, text, narrative)
}

func TestExtractPlainProse(t *testing.T) {
	narrative, structured := Extract("Just a friendly reply with no data.")

	assert.Nil(t, structured)
	assert.Equal(t, "Just a friendly reply with no data.", narrative)
}

func TestExtractEmpty(t *testing.T) {
	narrative, structured := Extract("")
	assert.Nil(t, structured)
	assert.Empty(t, narrative)
}

func TestExtractTrailingProseInsideFence(t *testing.T) {
	text := "Done.\n```json\n{\"guidance\": [\"ok\"]}\nThat is all.\n```"

	narrative, structured := Extract(text)

	require.NotNil(t, structured)
	assert.Equal(t, []any{"ok"}, structured["guidance"])
	assert.Equal(t, "Done.", narrative)
}

func TestExtractRepairsAlmostJSON(t *testing.T) {
	// Trailing comma: strict parsing fails, repair recovers it.
	text := "```json\n{\"guidance\": [\"a\", \"b\",]}\n```"

	_, structured := Extract(text)

	require.NotNil(t, structured)
	assert.Equal(t, []any{"a", "b"}, structured["guidance"])
}

func TestExtractNonObjectPayload(t *testing.T) {
	_, structured := Extract("```json\n[1, 2, 3]\n```")
	assert.Nil(t, structured)
}
