package analyzer

import (
	"fmt"
	"strings"

	"testreport/internal/port"
)

// contextRuneLimit bounds how much surrounding document text goes into a
// prompt. Larger excerpts do not improve failure analysis and cost tokens.
const contextRuneLimit = 4000

// BuildFailurePrompt renders the Turkish analysis prompt asking for a
// strict JSON answer.
func BuildFailurePrompt(in port.FailureInput) string {
	var b strings.Builder
	b.WriteString("Aşağıdaki test başarısızlığını analiz et ve nedenini açıkla. ")
	b.WriteString("Yanıtta yalnızca JSON formatı döndür.\n\n")
	fmt.Fprintf(&b, "Test adı: %s\n", in.TestName)
	fmt.Fprintf(&b, "Hata mesajı: %s", in.ErrorMessage)

	if ctx := strings.TrimSpace(in.Context); ctx != "" {
		if runes := []rune(ctx); len(runes) > contextRuneLimit {
			ctx = string(runes[:contextRuneLimit])
		}
		fmt.Fprintf(&b, "\nTest bağlamı:\n%s", ctx)
	}

	b.WriteString("\n\nLütfen şu JSON formatında ve Türkçe yanıt ver:\n")
	b.WriteString("{\n")
	b.WriteString("  \"failure_reason\": \"<kısa açıklama>\",\n")
	b.WriteString("  \"suggested_fix\": \"<önerilen çözüm>\"\n")
	b.WriteString("}")
	return b.String()
}
