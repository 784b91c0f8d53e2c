package engine

import (
	"strings"

	"testreport/internal/domain"
)

type reportTypeProfile struct {
	key       domain.ReportType
	canonical string
	short     string
	keywords  []string
}

// Keyword sets for the two regulations. Multi-word phrases and the
// canonical regulation form count double against bare words.
var reportTypeProfiles = []reportTypeProfile{
	{
		key:       domain.ReportTypeR80,
		canonical: "un-r80",
		short:     "r80",
		keywords: []string{
			"un-r80", "r80", "koltuk darbe", "darbe testi", "koltuk",
			"darbe", "çarpma", "sled test", "schlittenverzögerung",
			"impact test", "impact", "sitzprüfung",
		},
	},
	{
		key:       domain.ReportTypeR10,
		canonical: "un-r10",
		short:     "r10",
		keywords: []string{
			"un-r10", "r10", "elektromanyetik uyumluluk", "elektromanyetik",
			"emc", "electromagnetic compatibility", "electromagnetic",
			"emission", "immunity", "bağışıklık", "störfestigkeit",
		},
	},
}

func keywordWeight(kw string) int {
	if strings.Contains(kw, " ") || strings.HasPrefix(kw, "un-r") {
		return 2
	}
	return 1
}

func (p reportTypeProfile) score(lowerText, lowerFilename string) int {
	score := 0
	for _, kw := range p.keywords {
		score += strings.Count(lowerText, kw) * keywordWeight(kw)
	}
	if strings.Contains(lowerFilename, p.short) {
		score += 2
	}
	return score
}

// firstOffset is the earliest position of the canonical or short keyword,
// or -1 when neither occurs.
func (p reportTypeProfile) firstOffset(lowerText string) int {
	offset := strings.Index(lowerText, p.canonical)
	if short := strings.Index(lowerText, p.short); short != -1 && (offset == -1 || short < offset) {
		offset = short
	}
	return offset
}

// InferReportType classifies a report by weighted keyword counts, with the
// filename contributing a flat bonus. Ties fall back to whichever
// regulation is mentioned first in the text. The offset heuristic is kept
// as-is even though documents discussing both regulations in comparable
// volume remain best-effort labels.
func InferReportType(text, filename string) domain.ReportTypeVerdict {
	lowerText := strings.ToLower(text)
	lowerFilename := strings.ToLower(filename)

	r80, r10 := reportTypeProfiles[0], reportTypeProfiles[1]
	scoreR80 := r80.score(lowerText, lowerFilename)
	scoreR10 := r10.score(lowerText, lowerFilename)

	verdict := func(key domain.ReportType) domain.ReportTypeVerdict {
		return domain.ReportTypeVerdict{Key: key, Label: key.Label()}
	}

	switch {
	case scoreR80 == 0 && scoreR10 == 0:
		return verdict(domain.ReportTypeUnknown)
	case scoreR80 > scoreR10:
		return verdict(domain.ReportTypeR80)
	case scoreR10 > scoreR80:
		return verdict(domain.ReportTypeR10)
	}

	offR80 := r80.firstOffset(lowerText)
	offR10 := r10.firstOffset(lowerText)
	switch {
	case offR80 != -1 && (offR10 == -1 || offR80 <= offR10):
		return verdict(domain.ReportTypeR80)
	case offR10 != -1:
		return verdict(domain.ReportTypeR10)
	}

	if strings.Contains(lowerText, "darbe") {
		return verdict(domain.ReportTypeR80)
	}
	if strings.Contains(lowerText, "emc") {
		return verdict(domain.ReportTypeR10)
	}
	return verdict(domain.ReportTypeUnknown)
}
