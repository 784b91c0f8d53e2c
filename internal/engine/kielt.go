package engine

import (
	"regexp"
	"strings"

	"testreport/internal/domain"
)

// Anchored field extractors for the TÜV/Kielt layout. Each body runs from
// its heading to the next known heading (or end of text) and is capped to
// bound downstream prompt and storage size.
var (
	kieltTestCondRe = regexp.MustCompile(`(?is)(?:Test\s*Conditions?|Testbedingungen|Test\s*Koşulları)[:\s]+(.+?)(?:Schlittenverzögerung|Belastungswerte|===|\z)`)
	kieltSledRe     = regexp.MustCompile(`(?is)Schlittenverzögerung[:\s]+(.+?)(?:Belastungswerte|===|\n\n|\z)`)
	kieltLoadRe     = regexp.MustCompile(`(?is)(?:Belastungswerte|Load\s*Values?|Yük\s*Değerleri)[:\s]*(.+?)(?:Fotodokumentation|===|Abb\.|\z)`)
	kieltPhotoRe    = regexp.MustCompile(`(?is)(?:Fotodokumentation|Photo\s*documentation|Fotoğraf)[:\s]*(.+?)(?:Abb\.|\z)`)
	kieltTableRe    = regexp.MustCompile(`(?i)===\s*SAYFA\s*\d+\s*-\s*TABLO\s*\d+\s*===`)
)

const (
	kieltTestCondCap = 1000
	kieltSledCap     = 800
	kieltLoadCap     = 1500
	kieltTableCap    = 600
	kieltPhotoCap    = 500
)

// truncateRunes caps a string at n runes, preserving multi-byte characters.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ParseKieltFormat extracts the named fields of the TÜV/Kielt layout.
// Missing fields are simply absent from the result, never an error.
func ParseKieltFormat(text string) domain.SectionMap {
	sections := domain.SectionMap{}
	if text == "" {
		return sections
	}

	if m := kieltTestCondRe.FindStringSubmatch(text); m != nil {
		sections[domain.SectionTestConditions] = truncateRunes(strings.TrimSpace(m[1]), kieltTestCondCap)
	}
	if m := kieltSledRe.FindStringSubmatch(text); m != nil {
		sections[domain.SectionSledDeceleration] = truncateRunes(strings.TrimSpace(m[1]), kieltSledCap)
	}
	if m := kieltLoadRe.FindStringSubmatch(text); m != nil {
		sections[domain.SectionLoadValues] = truncateRunes(strings.TrimSpace(m[1]), kieltLoadCap)
	}

	if fragments := tableFragments(text); len(fragments) > 0 {
		sections[domain.SectionTablesText] = strings.Join(fragments, "\n\n")
	}

	if m := kieltPhotoRe.FindStringSubmatch(text); m != nil {
		sections[domain.SectionPhotoDocs] = truncateRunes(strings.TrimSpace(m[1]), kieltPhotoCap)
	}

	return sections
}

// tableFragments collects the text between consecutive
// "=== SAYFA n - TABLO m ===" markers left in the structured text.
// Each fragment stops at the next "===" marker of any kind.
func tableFragments(text string) []string {
	locs := kieltTableRe.FindAllStringIndex(text, -1)
	var fragments []string
	for _, loc := range locs {
		rest := text[loc[1]:]
		end := len(rest)
		if next := strings.Index(rest, "==="); next != -1 {
			end = next
		}
		fragment := strings.TrimSpace(rest[:end])
		if fragment != "" {
			fragments = append(fragments, truncateRunes(fragment, kieltTableCap))
		}
	}
	return fragments
}

// measurementPattern is one (label regex, display name, unit) extractor
// for the embedded measurement tables. Output order follows declaration
// order, not document order.
type measurementPattern struct {
	re   *regexp.Regexp
	name string
	unit string
}

var measurementPatterns = []measurementPattern{
	{regexp.MustCompile(`(?i)Kopfbeschl\.[^\n]*`), "Kopfbeschl. (Baş ivmesi)", "g"},
	{regexp.MustCompile(`(?i)Brustbeschl\.[^\n]*`), "Brustbeschl. (Göğüs ivmesi)", "g"},
	{regexp.MustCompile(`(?i)Oberschenkelkraft[^\n]*`), "Oberschenkelkraft (Uyluk kuvveti)", "kN"},
	{regexp.MustCompile(`(?i)FAC\s*right[^\n]*`), "FAC right", "kN"},
	{regexp.MustCompile(`(?i)FAC\s*left[^\n]*`), "FAC left", "kN"},
}

// numberRe tolerates international decimal separators as opaque tokens;
// values are kept as text, never parsed to floats.
var numberRe = regexp.MustCompile(`[-+]?\d+[\d,.]*`)

// ExtractMeasurementParams pulls the numeric fields of the specialized
// layout. A pattern with no matches is omitted rather than emitted empty.
func ExtractMeasurementParams(text string) []domain.MeasurementParameter {
	var params []domain.MeasurementParameter

	for _, mp := range measurementPatterns {
		var values []string
		for _, segment := range mp.re.FindAllString(text, -1) {
			for _, num := range numberRe.FindAllString(segment, -1) {
				if trimmed := strings.TrimSpace(num); trimmed != "" {
					values = append(values, trimmed)
				}
			}
		}
		if len(values) > 0 {
			params = append(params, domain.MeasurementParameter{Name: mp.name, Unit: mp.unit, Values: values})
		}
	}

	return params
}
