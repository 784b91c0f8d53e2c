package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testreport/internal/analyzer"
)

func TestParseAnalysisJSON(t *testing.T) {
	out, err := analyzer.ParseAnalysisJSON(`{"failure_reason": "sensör arızası", "suggested_fix": "sensörü değiştirin"}`, "claude")
	require.NoError(t, err)
	assert.Equal(t, "sensör arızası", out.FailureReason)
	assert.Equal(t, "sensörü değiştirin", out.SuggestedFix)
	assert.Equal(t, "claude", out.Provider)
}

func TestParseAnalysisJSON_CodeFence(t *testing.T) {
	raw := "```json\n{\"failure_reason\": \"r\", \"suggested_fix\": \"f\"}\n```"
	out, err := analyzer.ParseAnalysisJSON(raw, "openai")
	require.NoError(t, err)
	assert.Equal(t, "r", out.FailureReason)
	assert.Equal(t, "f", out.SuggestedFix)
}

func TestParseAnalysisJSON_ProseAroundObject(t *testing.T) {
	raw := `Here is the analysis: {"failure_reason": "r", "suggested_fix": "f"} hope this helps`
	out, err := analyzer.ParseAnalysisJSON(raw, "gemini")
	require.NoError(t, err)
	assert.Equal(t, "r", out.FailureReason)
}

func TestParseAnalysisJSON_Errors(t *testing.T) {
	_, err := analyzer.ParseAnalysisJSON(`{"failure_reason": "", "suggested_fix": ""}`, "claude")
	assert.ErrorContains(t, err, "empty analysis fields")

	_, err = analyzer.ParseAnalysisJSON("not json at all", "claude")
	assert.ErrorContains(t, err, "parsing analysis JSON")
}
