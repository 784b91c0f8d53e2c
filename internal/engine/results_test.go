package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"testreport/internal/domain"
	"testreport/internal/engine"
	"testreport/mocks"
)

func analysisFor(provider string) *domain.FailureAnalysis {
	return &domain.FailureAnalysis{
		FailureReason: "Bağlantı zaman aşımına uğradı.",
		SuggestedFix:  "Ağ yapılandırmasını kontrol edin.",
		Provider:      provider,
	}
}

func TestResultParser_LabeledEntries(t *testing.T) {
	analyzer := new(mocks.MockFailureAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(analysisFor("claude"), nil)

	text := `Test Raporu
Toplam 3 test yapıldı

Test 1: Motor Kontrolü
Sonuç: Başarılı

Test 2: Fren Sistemi
Sonuç: Başarısız
Hata: Connection timeout

3. Sensör Kalibrasyonu - PASS
`

	parser := engine.NewResultParser(analyzer)
	records := parser.Parse(context.Background(), text)

	require.Len(t, records, 3)

	assert.Equal(t, "Motor Kontrolü", records[0].TestName)
	assert.Equal(t, domain.StatusPass, records[0].Status)
	assert.Empty(t, records[0].FailureReason)

	assert.Equal(t, "Fren Sistemi", records[1].TestName)
	assert.Equal(t, domain.StatusFail, records[1].Status)
	assert.Equal(t, "Connection timeout", records[1].ErrorMessage)
	assert.Equal(t, "Bağlantı zaman aşımına uğradı.", records[1].FailureReason)
	assert.Equal(t, "claude", records[1].AIProvider)

	assert.Equal(t, "Sensör Kalibrasyonu", records[2].TestName)
	assert.Equal(t, domain.StatusPass, records[2].Status)

	analyzer.AssertNumberOfCalls(t, "Analyze", 1)
}

func TestResultParser_SingleLineWithSeparator(t *testing.T) {
	parser := engine.NewResultParser(nil)

	records := parser.Parse(context.Background(), "FAIL - Oturma Dayanımı : kuvvet sınırı aşıldı\n")

	require.Len(t, records, 1)
	assert.Equal(t, "Oturma Dayanımı", records[0].TestName)
	assert.Equal(t, domain.StatusFail, records[0].Status)
	assert.Equal(t, "kuvvet sınırı aşıldı", records[0].ErrorMessage)
}

func TestResultParser_ContinuationLines(t *testing.T) {
	parser := engine.NewResultParser(nil)

	text := `Kapı Kilidi Testi FAILED
zaman aşımı beklenirken bağlantı koptu
tekrar denendi, aynı sonuç

`
	records := parser.Parse(context.Background(), text)

	require.Len(t, records, 1)
	assert.Equal(t, "Kapı Kilidi Testi", records[0].TestName)
	assert.Equal(t, domain.StatusFail, records[0].Status)
	assert.Equal(t, "zaman aşımı beklenirken bağlantı koptu tekrar denendi, aynı sonuç", records[0].ErrorMessage)
}

func TestResultParser_AnalyzerError_FallsBackToGenericPair(t *testing.T) {
	analyzer := new(mocks.MockFailureAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(nil, errors.New("provider down"))

	parser := engine.NewResultParser(analyzer)
	records := parser.Parse(context.Background(), "Direksiyon Testi FAILED\n")

	require.Len(t, records, 1)
	assert.Equal(t, domain.StatusFail, records[0].Status)
	assert.Equal(t, "Hata mesajını inceleyerek detaylı kök neden analizi yapın.", records[0].FailureReason)
	assert.Equal(t, "İlgili log kayıtlarını ve stack trace'i kontrol edin.", records[0].SuggestedFix)
	assert.Equal(t, "rule-based", records[0].AIProvider)
}

func TestResultParser_GermanAndSymbols(t *testing.T) {
	parser := engine.NewResultParser(nil)

	text := `Bremsentest FEHLGESCHLAGEN

Türverriegelung BESTANDEN
`
	records := parser.Parse(context.Background(), text)

	require.Len(t, records, 2)
	assert.Equal(t, "Bremsentest", records[0].TestName)
	assert.Equal(t, domain.StatusFail, records[0].Status)
	assert.Equal(t, "Türverriegelung", records[1].TestName)
	assert.Equal(t, domain.StatusPass, records[1].Status)
}

func TestResultParser_HintWithBareStatusLine(t *testing.T) {
	parser := engine.NewResultParser(nil)

	text := `Senaryo: Şerit Takip Asistanı
✓
`
	records := parser.Parse(context.Background(), text)

	require.Len(t, records, 1)
	assert.Equal(t, "Şerit Takip Asistanı", records[0].TestName)
	assert.Equal(t, domain.StatusPass, records[0].Status)
}

func TestResultParser_HintFailureWithoutDetail(t *testing.T) {
	parser := engine.NewResultParser(nil)

	text := "Test: Far Yüksekliği\nSonuç: KALDI\n\nsonraki bölüm"
	records := parser.Parse(context.Background(), text)

	require.Len(t, records, 1)
	assert.Equal(t, "Far Yüksekliği", records[0].TestName)
	assert.Equal(t, domain.StatusFail, records[0].Status)
	assert.Equal(t, "no detail", records[0].ErrorMessage)
}

func TestResultParser_SummaryLinesSkipped(t *testing.T) {
	parser := engine.NewResultParser(nil)

	text := `Toplam: 5 test, 4 başarılı, 1 başarısız
Motor Testi PASSED
`
	records := parser.Parse(context.Background(), text)

	require.Len(t, records, 1)
	assert.Equal(t, "Motor Testi", records[0].TestName)
}

func TestResultParser_PipeTableRows(t *testing.T) {
	parser := engine.NewResultParser(nil)

	text := `| Test Adı | Durum | Açıklama |
| Motor Testi | PASS | |
| Fren Testi | FAIL | aşırı ısınma |
`
	records := parser.Parse(context.Background(), text)

	require.Len(t, records, 2)
	assert.Equal(t, "Motor Testi", records[0].TestName)
	assert.Equal(t, domain.StatusPass, records[0].Status)
	assert.Equal(t, "Fren Testi", records[1].TestName)
	assert.Equal(t, domain.StatusFail, records[1].Status)
}

func TestResultParser_NoStatusTokens(t *testing.T) {
	parser := engine.NewResultParser(nil)

	assert.Empty(t, parser.Parse(context.Background(), "Bu metinde sonuç bilgisi yok.\nSadece açıklama var.\n"))
	assert.Empty(t, parser.Parse(context.Background(), "   "))
}
