package translate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testreport/internal/config"
	"testreport/internal/domain"
	"testreport/internal/translate"
)

func anthropicReply(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	require.NoError(t, err)
	return body
}

func TestAITranslator_Translate(t *testing.T) {
	var gotVersion, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")
		w.Write(anthropicReply(t, `{"en": "Test passed", "de": "Test bestanden"}`))
	}))
	defer server.Close()

	tr := translate.NewAITranslatorWithEndpoint(&config.AnalyzerProviderConfig{APIKey: "key"}, server.URL)
	out, err := tr.Translate(context.Background(), "Test başarılı", domain.LangTR, []domain.Language{domain.LangEN, domain.LangDE})
	require.NoError(t, err)

	assert.Equal(t, "Test passed", out[domain.LangEN])
	assert.Equal(t, "Test bestanden", out[domain.LangDE])
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "key", gotKey)
}

func TestAITranslator_Translate_FencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(anthropicReply(t, "```json\n{\"en\": \"Measurement complete\"}\n```"))
	}))
	defer server.Close()

	tr := translate.NewAITranslatorWithEndpoint(&config.AnalyzerProviderConfig{APIKey: "key"}, server.URL)
	out, err := tr.Translate(context.Background(), "Ölçüm tamamlandı", domain.LangTR, []domain.Language{domain.LangEN})
	require.NoError(t, err)
	assert.Equal(t, "Measurement complete", out[domain.LangEN])
}

func TestAITranslator_Translate_MissingTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(anthropicReply(t, `{"en": "only english"}`))
	}))
	defer server.Close()

	tr := translate.NewAITranslatorWithEndpoint(&config.AnalyzerProviderConfig{APIKey: "key"}, server.URL)
	_, err := tr.Translate(context.Background(), "metin", domain.LangTR, []domain.Language{domain.LangEN, domain.LangDE})
	assert.ErrorContains(t, err, "missing from response")
}

func TestAITranslator_Translate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tr := translate.NewAITranslatorWithEndpoint(&config.AnalyzerProviderConfig{APIKey: "key"}, server.URL)
	_, err := tr.Translate(context.Background(), "metin", domain.LangTR, []domain.Language{domain.LangEN})
	assert.ErrorContains(t, err, "status 503")
}

func TestAITranslator_Translate_NoKey(t *testing.T) {
	tr := translate.NewAITranslatorWithEndpoint(&config.AnalyzerProviderConfig{}, "http://unused")
	_, err := tr.Translate(context.Background(), "metin", domain.LangTR, []domain.Language{domain.LangEN})
	assert.ErrorIs(t, err, domain.ErrAIDisabled)

	tr = translate.NewAITranslatorWithEndpoint(&config.AnalyzerProviderConfig{APIKey: "key"}, "http://unused")
	_, err = tr.Translate(context.Background(), "   ", domain.LangTR, []domain.Language{domain.LangEN})
	assert.ErrorIs(t, err, domain.ErrEmptyText)
}
