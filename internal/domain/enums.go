package domain

import "strings"

// Language identifies one of the report languages the engine understands.
type Language string

const (
	LangTR Language = "tr"
	LangEN Language = "en"
	LangDE Language = "de"
)

// Languages lists all supported languages. Turkish first: it is the
// default when detection is inconclusive.
var Languages = []Language{LangTR, LangEN, LangDE}

// ParseLanguage normalises a language code, returning ok=false for
// anything outside the supported set.
func ParseLanguage(s string) (Language, bool) {
	switch lang := Language(strings.ToLower(strings.TrimSpace(s))); lang {
	case LangTR, LangEN, LangDE:
		return lang, true
	}
	return "", false
}

// TestStatus is the outcome of a single parsed test entry.
type TestStatus string

const (
	StatusPass TestStatus = "PASS"
	StatusFail TestStatus = "FAIL"
)

// FormatKey identifies a recognized document layout.
type FormatKey string

const (
	FormatKielt   FormatKey = "kielt_format"
	FormatJUnit   FormatKey = "junit_format"
	FormatGeneric FormatKey = "generic"
)

// SectionKey names a recognized section of a report.
type SectionKey string

const (
	SectionHeader         SectionKey = "header"
	SectionSummary        SectionKey = "summary"
	SectionTestConditions SectionKey = "test_conditions"
	SectionGraphs         SectionKey = "graphs"
	SectionResults        SectionKey = "results"
	SectionDetailedData   SectionKey = "detailed_data"

	// Subsection keys within the specialized layout.
	SectionSledDeceleration SectionKey = "sled_deceleration"
	SectionLoadValues       SectionKey = "load_values"
	SectionPhotoDocs        SectionKey = "photo_documentation"
	SectionTestSetup        SectionKey = "test_setup"
	SectionTablesText       SectionKey = "tables_text"
)

// SectionKeys lists the top-level sections every SectionMap carries.
var SectionKeys = []SectionKey{
	SectionHeader,
	SectionSummary,
	SectionTestConditions,
	SectionGraphs,
	SectionResults,
	SectionDetailedData,
}

// ReportType is the inferred regulatory category of a report.
type ReportType string

const (
	ReportTypeR80     ReportType = "r80"
	ReportTypeR10     ReportType = "r10"
	ReportTypeUnknown ReportType = "unknown"
)

// Label returns the human-readable label for a report type.
func (t ReportType) Label() string {
	switch t {
	case ReportTypeR80:
		return "UN-R80 Koltuk Darbe Testi"
	case ReportTypeR10:
		return "UN-R10 EMC Testi"
	default:
		return "Bilinmeyen Test Türü"
	}
}
