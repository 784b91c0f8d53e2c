package claude_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testreport/internal/analyzer"
	"testreport/internal/analyzer/claude"
	"testreport/internal/config"
	"testreport/internal/port"
)

func TestClaudeAnalyzer_Analyze(t *testing.T) {
	var gotKey, gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		w.Write([]byte(`{"content": [{"type": "text", "text": "{\"failure_reason\": \"sensör sürücüsü hatası\", \"suggested_fix\": \"sürücüyü güncelleyin\"}"}], "stop_reason": "end_turn"}`))
	}))
	defer server.Close()

	a := claude.NewAnalyzerWithEndpoint(&config.AnalyzerProviderConfig{APIKey: "key"}, server.URL)

	out, err := a.Analyze(context.Background(), port.FailureInput{TestName: "Sensör Testi", ErrorMessage: "driver fault"})
	require.NoError(t, err)
	assert.Equal(t, "sensör sürücüsü hatası", out.FailureReason)
	assert.Equal(t, "sürücüyü güncelleyin", out.SuggestedFix)
	assert.Equal(t, "claude", out.Provider)
	assert.Equal(t, "key", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)
}

func TestClaudeAnalyzer_Analyze_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	a := claude.NewAnalyzerWithEndpoint(&config.AnalyzerProviderConfig{APIKey: "key"}, server.URL)

	_, err := a.Analyze(context.Background(), port.FailureInput{ErrorMessage: "x"})
	var rlErr *analyzer.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, 5*time.Second, rlErr.RetryAfter)
}

func TestClaudeAnalyzer_Analyze_Truncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": [{"type": "text", "text": "{\"failure_reason\": \"r"}], "stop_reason": "max_tokens"}`))
	}))
	defer server.Close()

	a := claude.NewAnalyzerWithEndpoint(&config.AnalyzerProviderConfig{APIKey: "key"}, server.URL)

	_, err := a.Analyze(context.Background(), port.FailureInput{ErrorMessage: "x"})
	assert.ErrorContains(t, err, "max_tokens")
}

func TestClaudeAnalyzer_Analyze_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer server.Close()

	a := claude.NewAnalyzerWithEndpoint(&config.AnalyzerProviderConfig{APIKey: "key"}, server.URL)

	_, err := a.Analyze(context.Background(), port.FailureInput{ErrorMessage: "x"})
	assert.ErrorContains(t, err, "status 500")
}
