package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"testreport/internal/domain"
)

// ParseAnalysisJSON decodes the {"failure_reason","suggested_fix"} object
// a provider returns, tolerating markdown code fences around it.
func ParseAnalysisJSON(text, provider string) (*domain.FailureAnalysis, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	// Some models pad the object with prose. Take the outermost braces.
	if start := strings.Index(cleaned, "{"); start > 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	var parsed struct {
		FailureReason string `json:"failure_reason"`
		SuggestedFix  string `json:"suggested_fix"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("parsing analysis JSON: %w (raw: %s)", err, truncate(text, 500))
	}
	if parsed.FailureReason == "" && parsed.SuggestedFix == "" {
		return nil, fmt.Errorf("empty analysis fields in response")
	}

	return &domain.FailureAnalysis{
		FailureReason: parsed.FailureReason,
		SuggestedFix:  parsed.SuggestedFix,
		Provider:      provider,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
