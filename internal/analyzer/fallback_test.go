package analyzer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"testreport/internal/analyzer"
	"testreport/internal/config"
	"testreport/internal/domain"
	"testreport/internal/port"
	"testreport/mocks"
)

func failureInput() port.FailureInput {
	return port.FailureInput{TestName: "Fren Testi", ErrorMessage: "kuvvet sınırı aşıldı"}
}

func TestFallback_FirstProviderWins(t *testing.T) {
	first := new(mocks.MockFailureAnalyzer)
	second := new(mocks.MockFailureAnalyzer)
	first.On("Analyze", mock.Anything, mock.Anything).
		Return(&domain.FailureAnalysis{FailureReason: "r", SuggestedFix: "f", Provider: "claude"}, nil)

	fb := analyzer.NewFallback([]port.FailureAnalyzer{first, second}, []string{"claude", "openai"})

	out, err := fb.Analyze(context.Background(), failureInput())
	require.NoError(t, err)
	assert.Equal(t, "claude", out.Provider)
	second.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestFallback_MovesToNextProviderOnError(t *testing.T) {
	first := new(mocks.MockFailureAnalyzer)
	second := new(mocks.MockFailureAnalyzer)
	first.On("Analyze", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	second.On("Analyze", mock.Anything, mock.Anything).
		Return(&domain.FailureAnalysis{FailureReason: "r", SuggestedFix: "f", Provider: "openai"}, nil)

	fb := analyzer.NewFallback([]port.FailureAnalyzer{first, second}, []string{"claude", "openai"})

	out, err := fb.Analyze(context.Background(), failureInput())
	require.NoError(t, err)
	assert.Equal(t, "openai", out.Provider)
}

func TestFallback_RateLimitOpensCircuit(t *testing.T) {
	first := new(mocks.MockFailureAnalyzer)
	second := new(mocks.MockFailureAnalyzer)
	first.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, analyzer.NewRateLimitError("claude", errors.New("status 429"), 120))
	second.On("Analyze", mock.Anything, mock.Anything).
		Return(&domain.FailureAnalysis{FailureReason: "r", SuggestedFix: "f", Provider: "openai"}, nil)

	fb := analyzer.NewFallback([]port.FailureAnalyzer{first, second}, []string{"claude", "openai"})

	for i := 0; i < 2; i++ {
		out, err := fb.Analyze(context.Background(), failureInput())
		require.NoError(t, err)
		assert.Equal(t, "openai", out.Provider)
	}

	// The rate-limited provider is hit once, then skipped while its
	// circuit is open.
	first.AssertNumberOfCalls(t, "Analyze", 1)
	second.AssertNumberOfCalls(t, "Analyze", 2)

	statuses := fb.Status()
	require.Len(t, statuses, 3)
	assert.Equal(t, "claude", statuses[0].Name)
	assert.True(t, statuses[0].CircuitOpen)
	assert.False(t, statuses[0].ResetAt.IsZero())
	assert.False(t, statuses[1].CircuitOpen)
	assert.Equal(t, "rule-based", statuses[2].Name)
}

func TestFallback_SettlesOnRuleBased(t *testing.T) {
	first := new(mocks.MockFailureAnalyzer)
	first.On("Analyze", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	fb := analyzer.NewFallback([]port.FailureAnalyzer{first}, []string{"claude"})

	out, err := fb.Analyze(context.Background(), failureInput())
	require.NoError(t, err)
	assert.Equal(t, "rule-based", out.Provider)
	assert.NotEmpty(t, out.FailureReason)
}

func TestFallback_EmptyChain(t *testing.T) {
	fb := analyzer.NewFallback(nil, nil)

	out, err := fb.Analyze(context.Background(), port.FailureInput{ErrorMessage: "timeout exceeded"})
	require.NoError(t, err)
	assert.Equal(t, "rule-based", out.Provider)
	assert.Equal(t, "Test zaman aşımına uğradı", out.FailureReason)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := analyzer.New(&config.AnalyzerProviderConfig{Provider: "mistral"})
	assert.ErrorContains(t, err, "unknown analyzer provider")
}
