package port

import (
	"context"

	"testreport/internal/domain"
)

// FailureInput carries the data needed to analyze one failed test.
type FailureInput struct {
	TestName     string
	ErrorMessage string
	// Context is the full document text the failure was parsed from.
	Context string
}

// FailureAnalyzer abstracts failure-cause analysis for FAIL records.
// Implementations may call hosted AI services; the rule-based
// implementation is total and is always the last link of the chain, so
// callers can treat a non-nil result as guaranteed after fallback.
type FailureAnalyzer interface {
	Analyze(ctx context.Context, input FailureInput) (*domain.FailureAnalysis, error)
}
