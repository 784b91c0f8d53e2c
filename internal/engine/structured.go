package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"testreport/internal/domain"
)

var (
	looseKeyValueRe = regexp.MustCompile(`([A-Za-zäöüÄÖÜß\s]+):\s*([^\n:]+)`)
	wordKeyValueRe  = regexp.MustCompile(`(\w+)\s*:\s*([^\n]+)`)

	standardRe = regexp.MustCompile(`(?i)(?:ECE-R|UN-R)\s*\d+`)
	dateRe     = regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{4}\b`)
	vehicleRe  = regexp.MustCompile(`(?i)Test vehicle:\s*([^\n]+)`)
	examinerRe = regexp.MustCompile(`(?i)Examiner:\s*([^\n]+)`)
	seatRe     = regexp.MustCompile(`(?i)Test seat:\s*([^\n]+)`)
	fileRefRe  = regexp.MustCompile(`(?i)File:\s*(\S+)`)
)

// ParseKeyValuePairs extracts "key: value" fields from free text. The
// second, stricter pass may overwrite keys from the first; single-character
// values are discarded as separator noise.
func ParseKeyValuePairs(text string) map[string]string {
	pairs := map[string]string{}
	if text == "" {
		return pairs
	}

	for _, re := range []*regexp.Regexp{looseKeyValueRe, wordKeyValueRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(m[1])), " ", "_")
			value := strings.TrimSpace(m[2])
			if key == "" || len([]rune(value)) <= 1 {
				continue
			}
			pairs[key] = value
		}
	}
	return pairs
}

// TestConditions is the structured view of a test-conditions block.
// Unmatched fields stay empty.
type TestConditions struct {
	RawText     string            `json:"raw_text"`
	KeyValues   map[string]string `json:"key_values,omitempty"`
	Subsections domain.SectionMap `json:"subsections,omitempty"`
	Standard    string            `json:"standard,omitempty"`
	Date        string            `json:"date,omitempty"`
	TestVehicle string            `json:"test_vehicle,omitempty"`
	Examiner    string            `json:"examiner,omitempty"`
	TestSeat    string            `json:"test_seat,omitempty"`
	File        string            `json:"file,omitempty"`
	Language    domain.Language   `json:"language,omitempty"`
}

// ParseTestConditions pulls standard references, dates and named fields
// out of a conditions block, alongside the generic key-value scan and
// subsection detection.
func ParseTestConditions(text string) TestConditions {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return TestConditions{}
	}

	cond := TestConditions{
		RawText:     cleaned,
		KeyValues:   ParseKeyValuePairs(cleaned),
		Subsections: DetectSubsections(cleaned),
		Language:    IdentifySectionLanguage(cleaned),
	}

	if m := standardRe.FindString(cleaned); m != "" {
		cond.Standard = m
	}
	if m := dateRe.FindString(cleaned); m != "" {
		cond.Date = m
	}
	if m := vehicleRe.FindStringSubmatch(cleaned); m != nil {
		cond.TestVehicle = strings.TrimSpace(m[1])
	}
	if m := examinerRe.FindStringSubmatch(cleaned); m != nil {
		cond.Examiner = strings.TrimSpace(m[1])
	}
	if m := seatRe.FindStringSubmatch(cleaned); m != nil {
		cond.TestSeat = strings.TrimSpace(m[1])
	}
	if m := fileRefRe.FindStringSubmatch(cleaned); m != nil {
		cond.File = strings.TrimSpace(m[1])
	}
	return cond
}

var subsectionDisplayOrder = []domain.SectionKey{
	domain.SectionSledDeceleration,
	domain.SectionLoadValues,
	domain.SectionPhotoDocs,
	domain.SectionTestSetup,
}

// FormatStructuredData renders conditions and table rows as a readable
// block for analysis prompts. Map-backed fields are emitted in sorted
// order so the output is stable across runs.
func FormatStructuredData(cond TestConditions, tables []domain.TableRecord) string {
	if cond.RawText == "" && len(tables) == 0 {
		return ""
	}

	lines := []string{"=== TEST KOŞULLARI (YAPILANDIRILMIŞ) ==="}

	named := []struct{ label, value string }{
		{"Standard", cond.Standard},
		{"Date", cond.Date},
		{"Test Vehicle", cond.TestVehicle},
		{"Test Seat", cond.TestSeat},
		{"Examiner", cond.Examiner},
	}
	for _, field := range named {
		if field.value != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", field.label, field.value))
		}
	}

	for _, key := range subsectionDisplayOrder {
		content := strings.TrimSpace(cond.Subsections[key])
		if content == "" {
			continue
		}
		header := strings.ToUpper(strings.ReplaceAll(string(key), "_", " "))
		lines = append(lines, fmt.Sprintf("\n--- %s ---", header))
		lines = append(lines, truncateRunes(content, 500))
	}

	if len(tables) > 0 {
		lines = append(lines, "\n=== TABLO VERİLERİ ===")
		for _, table := range tables {
			lines = append(lines, fmt.Sprintf("\nSayfa %d, Tablo %d:", table.Page, table.Index))
			rows := table.Rows
			if len(rows) > 5 {
				rows = rows[:5]
			}
			for _, row := range rows {
				lines = append(lines, "  "+strings.Join(row, " | "))
			}
		}
	}

	if len(cond.KeyValues) > 0 {
		lines = append(lines, "\n=== EK ALANLAR ===")
		keys := make([]string, 0, len(cond.KeyValues))
		for key := range cond.KeyValues {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			lines = append(lines, fmt.Sprintf("%s: %s", key, cond.KeyValues[key]))
		}
	}

	return strings.Join(lines, "\n")
}
