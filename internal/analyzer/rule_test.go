package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testreport/internal/analyzer"
	"testreport/internal/port"
)

func TestRuleBased_Analyze_KeywordMatches(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantReason string
	}{
		{"timeout", "Request timeout after 30s", "Test zaman aşımına uğradı"},
		{"network", "Network unreachable during handshake", "Bağlantı veya ağ hatası"},
		{"null", "NullPointerException in sensor driver", "Boş/None değer kullanımı"},
		{"permission", "Permission denied on /dev/can0", "Yetki hatası"},
		{"auth", "Auth token expired", "Kimlik doğrulama başarısız"},
		{"assertion", "AssertionError: expected 12.5 got 14.1", "Beklenen koşul sağlanamadı"},
	}

	rule := analyzer.NewRuleBased()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := rule.Analyze(context.Background(), port.FailureInput{ErrorMessage: tt.message})
			require.NoError(t, err)
			assert.Equal(t, tt.wantReason, out.FailureReason)
			assert.NotEmpty(t, out.SuggestedFix)
			assert.Equal(t, "rule-based", out.Provider)
		})
	}
}

func TestRuleBased_Analyze_Generic(t *testing.T) {
	rule := analyzer.NewRuleBased()

	out, err := rule.Analyze(context.Background(), port.FailureInput{ErrorMessage: "kuvvet sınırı aşıldı"})
	require.NoError(t, err)
	assert.Equal(t, "Hata mesajını inceleyerek detaylı kök neden analizi yapın.", out.FailureReason)
	assert.Equal(t, "İlgili log kayıtlarını ve stack trace'i kontrol edin.", out.SuggestedFix)
	assert.Equal(t, "rule-based", out.Provider)
}
