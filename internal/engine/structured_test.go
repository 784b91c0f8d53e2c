package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"testreport/internal/domain"
	"testreport/internal/engine"
)

func TestParseKeyValuePairs(t *testing.T) {
	text := "Examiner: Dipl.-Ing. Weber\nDatum: 15.03.2023\nTemperatur: 23 C"

	pairs := engine.ParseKeyValuePairs(text)

	assert.Equal(t, "15.03.2023", pairs["datum"])
	assert.Equal(t, "23 C", pairs["temperatur"])
}

func TestParseKeyValuePairs_SkipsShortValues(t *testing.T) {
	pairs := engine.ParseKeyValuePairs("Not: -\nSeri: A")
	assert.NotContains(t, pairs, "not")
	assert.NotContains(t, pairs, "seri")
}

func TestParseTestConditions(t *testing.T) {
	text := `Test Conditions
Standard: UN-R80 Annex 4
Test vehicle: Mercedes Sprinter 516 CDI
Examiner: Dipl.-Ing. Weber
Test seat: Row 2, left
File: PB-2023-0117.pdf
Datum: 15.03.2023
`
	cond := engine.ParseTestConditions(text)

	assert.Equal(t, "UN-R80", cond.Standard)
	assert.Equal(t, "15.03.2023", cond.Date)
	assert.Equal(t, "Mercedes Sprinter 516 CDI", cond.TestVehicle)
	assert.Equal(t, "Dipl.-Ing. Weber", cond.Examiner)
	assert.Equal(t, "Row 2, left", cond.TestSeat)
	assert.Equal(t, "PB-2023-0117.pdf", cond.File)
	assert.NotEmpty(t, cond.RawText)
}

func TestParseTestConditions_Empty(t *testing.T) {
	cond := engine.ParseTestConditions("   ")
	assert.Empty(t, cond.RawText)
	assert.Empty(t, cond.Standard)
}

func TestFormatStructuredData(t *testing.T) {
	cond := engine.ParseTestConditions("Standard: UN-R80\nTest vehicle: Mercedes Sprinter kamyonet\nDatum: 15.03.2023")
	tables := []domain.TableRecord{
		{Page: 3, Index: 1, Rows: [][]string{{"Messwert", "Einheit"}, {"Kopf", "g"}}},
	}

	out := engine.FormatStructuredData(cond, tables)

	assert.Contains(t, out, "=== TEST KOŞULLARI (YAPILANDIRILMIŞ) ===")
	assert.Contains(t, out, "Standard: UN-R80")
	assert.Contains(t, out, "Date: 15.03.2023")
	assert.Contains(t, out, "=== TABLO VERİLERİ ===")
	assert.Contains(t, out, "Sayfa 3, Tablo 1:")
	assert.Contains(t, out, "Messwert | Einheit")
}

func TestFormatStructuredData_Empty(t *testing.T) {
	assert.Equal(t, "", engine.FormatStructuredData(engine.TestConditions{}, nil))
}
