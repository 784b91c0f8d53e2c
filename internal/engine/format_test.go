package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"testreport/internal/domain"
	"testreport/internal/engine"
)

func TestDetectFormat_Kielt(t *testing.T) {
	texts := []string{
		"Prüfbericht Nr. 12345",
		"TUV Rheinland test report",
		"NOSAB 16140 Bursa",
		"Testbedingungen:\nTemperatur 23 C",
		"Schlittenverzögerung: 12,5 g",
	}
	for _, text := range texts {
		assert.Equal(t, domain.FormatKielt, engine.DetectFormat(text), "text: %s", text)
	}
}

func TestDetectFormat_JUnit(t *testing.T) {
	assert.Equal(t, domain.FormatJUnit, engine.DetectFormat(`<testsuite name="api" tests="12">`))
	assert.Equal(t, domain.FormatJUnit, engine.DetectFormat("JUnit test execution report"))
}

func TestDetectFormat_Generic(t *testing.T) {
	assert.Equal(t, domain.FormatGeneric, engine.DetectFormat("Sıradan bir test raporu metni"))
	assert.Equal(t, domain.FormatGeneric, engine.DetectFormat(""))
}

func TestDetectFormat_CaseInsensitive(t *testing.T) {
	assert.Equal(t, domain.FormatKielt, engine.DetectFormat("PRÜFBERICHT 9"))
}
