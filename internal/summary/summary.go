// Package summary builds deterministic, language-aware report summaries
// from detected sections. Everything here is offline; AI-generated
// summaries are a service-layer concern layered on top of these
// fallbacks.
package summary

import (
	"fmt"
	"regexp"
	"strings"

	"testreport/internal/domain"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	sentenceEndRe  = regexp.MustCompile(`([.!?])\s+`)
	bulletPrefixRe = regexp.MustCompile(`^[\-•*·●◦0-9)(.\s]+`)

	standardRefRe = regexp.MustCompile(`(?:UN-R|ECE-R)\s*\d+`)
	dateRe        = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)
	vehicleRe     = regexp.MustCompile(`(?i)(?:Test\s*vehicle|Fahrzeug):\s*([^\n]{10,50})`)
	tableMarkerRe = regexp.MustCompile(`=== SAYFA \d+ - TABLO \d+ ===`)

	failureIndicatorRe = regexp.MustCompile(`(?i)\b(fail|failed|failure|error|fehl|abweichung)\b|başarısız|Başarısız|BAŞARISIZ|kaldı|Kaldı|KALDI`)
)

func cleanText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// splitSentences breaks cleaned text after sentence-ending punctuation.
func splitSentences(text string) []string {
	cleaned := cleanText(text)
	if cleaned == "" {
		return nil
	}
	marked := sentenceEndRe.ReplaceAllString(cleaned, "$1\x00")
	parts := strings.Split(marked, "\x00")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SummariseSentences keeps the first maxSentences sentences, capped at
// maxChars runes with an ellipsis.
func SummariseSentences(text string, maxSentences, maxChars int) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	summary := strings.Join(sentences, " ")
	runes := []rune(summary)
	if len(runes) > maxChars {
		summary = strings.TrimRight(string(runes[:maxChars]), " ") + "..."
	}
	return summary
}

// ExtractListItems returns non-trivial lines with bullet and numbering
// prefixes stripped.
func ExtractListItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if len([]rune(stripped)) < 3 {
			continue
		}
		items = append(items, stripped)
	}
	return items
}

// BasicConditionsInfo extracts standard, date and vehicle references when
// no richer conditions analysis is available.
func BasicConditionsInfo(text string) string {
	var info []string
	if m := standardRefRe.FindString(text); m != "" {
		info = append(info, fmt.Sprintf("Test standardı: %s", m))
	}
	if m := dateRe.FindString(text); m != "" {
		info = append(info, fmt.Sprintf("Test tarihi: %s", m))
	}
	if m := vehicleRe.FindStringSubmatch(text); m != nil {
		info = append(info, fmt.Sprintf("Test aracı: %s", strings.TrimSpace(m[1])))
	}
	if len(info) > 0 {
		return strings.Join(info, " ")
	}
	return "Test koşulları parse edildi ancak detay çıkarılamadı."
}

// FormatMeasurementParams renders extracted measurement parameters, or
// falls back to counting table markers in the section content.
func FormatMeasurementParams(content string, params []domain.MeasurementParameter) string {
	if len(params) > 0 {
		parts := []string{fmt.Sprintf("%d ölçüm parametresi tespit edildi:", len(params))}
		limit := params
		if len(limit) > 5 {
			limit = limit[:5]
		}
		for _, param := range limit {
			values := param.Values
			if len(values) > 3 {
				values = values[:3]
			}
			preview := strings.Join(values, ", ")
			if param.Unit != "" {
				parts = append(parts, fmt.Sprintf("- %s: %s %s", param.Name, preview, param.Unit))
			} else {
				parts = append(parts, fmt.Sprintf("- %s: %s", param.Name, preview))
			}
		}
		return strings.Join(parts, " ")
	}

	if n := len(tableMarkerRe.FindAllString(content, -1)); n > 0 {
		return fmt.Sprintf("%d tablo bölümü bulundu, parametreler çıkarılamadı.", n)
	}
	return "Ölçüm verileri parse edildi ancak detay çıkarılamadı."
}

// ResultsTable renders section content as a small markdown table, one row
// per list item or sentence.
func ResultsTable(text string, lang domain.Language) string {
	defaults := stringsFor(lang)
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return defaults.NoResults
	}

	rows := ExtractListItems(cleaned)
	if len(rows) == 0 {
		rows = splitSentences(cleaned)
	}
	if len(rows) == 0 {
		return defaults.NoResults
	}
	if len(rows) > 6 {
		rows = rows[:6]
	}

	lines := []string{
		defaults.ResultsIntro,
		fmt.Sprintf("| %s | %s |", defaults.TableHeaderIndex, defaults.TableHeaderDetail),
		"| --- | --- |",
	}
	for i, row := range rows {
		lines = append(lines, fmt.Sprintf("| %d | %s |", i+1, row))
	}
	return strings.Join(lines, "\n")
}

// DetailedDataList renders the detailed-data section as a bullet list.
func DetailedDataList(text string, lang domain.Language) string {
	defaults := stringsFor(lang)
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return defaults.NoDetailed
	}

	items := ExtractListItems(cleaned)
	if len(items) == 0 {
		condensed := SummariseSentences(cleaned, 4, 800)
		if condensed == "" {
			return defaults.NoDetailed
		}
		items = []string{condensed}
	}
	if len(items) > 7 {
		items = items[:7]
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// ComprehensiveReport is the assembled multi-section summary.
type ComprehensiveReport struct {
	Summary        string          `json:"summary"`
	TestConditions string          `json:"test_conditions"`
	Graphs         string          `json:"graphs"`
	Results        string          `json:"results"`
	DetailedData   string          `json:"detailed_data"`
	Improvements   string          `json:"improvements"`
	Language       domain.Language `json:"analysis_language"`
}

// BuildComprehensiveReport combines per-section analyses into one report.
// Section analyses may be empty; every field of the result is guaranteed
// non-empty through the language defaults. Improvement advice depends on
// whether the results carry failure indicators.
func BuildComprehensiveReport(analysis map[domain.SectionKey]string, lang domain.Language, header string) ComprehensiveReport {
	defaults := stringsFor(lang)

	summarySource := analysis[domain.SectionSummary]
	if summarySource == "" {
		summarySource = header
	}
	if summarySource == "" {
		summarySource = analysis[domain.SectionResults]
	}

	conditions := strings.TrimSpace(analysis[domain.SectionTestConditions])
	graphs := strings.TrimSpace(analysis[domain.SectionGraphs])
	results := strings.TrimSpace(analysis[domain.SectionResults])
	detailed := strings.TrimSpace(analysis[domain.SectionDetailedData])

	combined := results
	if detailed != "" {
		if combined != "" {
			combined = combined + "\n\n" + defaults.Appendix + "\n" + detailed
		} else {
			combined = defaults.Appendix + "\n" + detailed
		}
	}
	if combined == "" {
		combined = defaults.NoResults
	}

	var improvements string
	if failureIndicatorRe.MatchString(results + " " + detailed) {
		items := ExtractListItems(detailed)
		if len(items) == 0 {
			items = ExtractListItems(results)
		}
		if len(items) > 3 {
			items = items[:3]
		}
		if len(items) > 0 {
			lines := []string{defaults.ImprovementsIntro}
			for _, item := range items {
				lines = append(lines, "- "+item)
			}
			improvements = strings.Join(lines, "\n")
		} else {
			improvements = defaults.ImprovementsFail
		}
	} else {
		improvements = defaults.ImprovementsSuccess
	}

	report := ComprehensiveReport{
		Summary:      SummariseSentences(summarySource, 3, 600),
		Graphs:       graphs,
		Results:      combined,
		DetailedData: detailed,
		Improvements: improvements,
		Language:     lang,
	}
	report.TestConditions = conditions
	if report.TestConditions == "" {
		report.TestConditions = defaults.NoTestConditions
	}
	if report.Graphs == "" {
		report.Graphs = defaults.NoGraphs
	}
	if report.DetailedData == "" {
		report.DetailedData = defaults.NoDetailed
	}
	return report
}
