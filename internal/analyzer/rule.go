package analyzer

import (
	"context"
	"strings"

	"testreport/internal/domain"
	"testreport/internal/port"
)

// RuleBased maps error messages to canned Turkish explanations. It is the
// terminal analyzer of every chain and never returns an error.
type RuleBased struct{}

func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

type cannedPair struct {
	keywords []string
	reason   string
	fix      string
}

var cannedAnalyses = []cannedPair{
	{
		keywords: []string{"timeout"},
		reason:   "Test zaman aşımına uğradı",
		fix:      "Zaman aşımı limitini artırın veya performans darboğazlarını araştırın.",
	},
	{
		keywords: []string{"connection", "network"},
		reason:   "Bağlantı veya ağ hatası",
		fix:      "Servislerin ve ağ bağlantısının çalıştığını doğrulayın.",
	},
	{
		keywords: []string{"null", "none"},
		reason:   "Boş/None değer kullanımı",
		fix:      "Null kontrolleri ekleyin ve gerekli verilerin sağlandığından emin olun.",
	},
	{
		keywords: []string{"permission"},
		reason:   "Yetki hatası",
		fix:      "Kullanıcı veya servis hesabına gerekli izinleri tanımlayın.",
	},
	{
		keywords: []string{"authentication", "auth"},
		reason:   "Kimlik doğrulama başarısız",
		fix:      "Kimlik doğrulama bilgilerini ve token geçerliliğini kontrol edin.",
	},
	{
		keywords: []string{"assertion"},
		reason:   "Beklenen koşul sağlanamadı",
		fix:      "Testteki beklenen değerleri veya uygulama mantığını gözden geçirin.",
	},
}

// Analyze matches the message against the keyword table, falling back to
// a generic inspect-the-logs pair.
func (r *RuleBased) Analyze(_ context.Context, in port.FailureInput) (*domain.FailureAnalysis, error) {
	message := strings.ToLower(in.ErrorMessage)

	for _, canned := range cannedAnalyses {
		for _, kw := range canned.keywords {
			if strings.Contains(message, kw) {
				return &domain.FailureAnalysis{
					FailureReason: canned.reason,
					SuggestedFix:  canned.fix,
					Provider:      "rule-based",
				}, nil
			}
		}
	}

	return &domain.FailureAnalysis{
		FailureReason: "Hata mesajını inceleyerek detaylı kök neden analizi yapın.",
		SuggestedFix:  "İlgili log kayıtlarını ve stack trace'i kontrol edin.",
		Provider:      "rule-based",
	}, nil
}
