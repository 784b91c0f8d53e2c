package engine

import (
	"strings"

	"testreport/internal/domain"
)

// kieltKeywords identify the TÜV/Kielt sled-test layout. Substring
// containment on the lowercased text, no fuzzy matching.
var kieltKeywords = []string{
	"nosab 16140",
	"tuv rheinland",
	"tüv rheinland",
	"kielt",
	"prüfbericht",
	"testbedingungen",
	"belastungswerte",
	"schlittenverzögerung",
}

// DetectFormat classifies raw report text into one of the known document
// layouts. It is total: any input maps to exactly one FormatKey.
func DetectFormat(text string) domain.FormatKey {
	lower := strings.ToLower(text)

	for _, keyword := range kieltKeywords {
		if strings.Contains(lower, keyword) {
			return domain.FormatKielt
		}
	}

	if strings.Contains(lower, "junit") || strings.Contains(lower, "<testsuite") {
		return domain.FormatJUnit
	}

	return domain.FormatGeneric
}
