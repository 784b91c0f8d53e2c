package domain

import (
	"time"

	"github.com/google/uuid"
)

// RawDocument is the output of the external text/table extraction service.
// Text is the plain page concatenation; StructuredText interleaves page and
// table markers with the page text. Immutable once produced.
type RawDocument struct {
	Text           string        `json:"text"`
	StructuredText string        `json:"structured_text"`
	Tables         []TableRecord `json:"tables"`
}

// BestText prefers the structured rendition when present.
func (d *RawDocument) BestText() string {
	if d == nil {
		return ""
	}
	if d.StructuredText != "" {
		return d.StructuredText
	}
	return d.Text
}

// TableRecord is one raw table cell grid from the extraction service.
type TableRecord struct {
	Page  int        `json:"page"`
	Index int        `json:"index"`
	Rows  [][]string `json:"rows"`
}

// SectionMap maps section keys to their body text. Bodies are
// non-overlapping spans of the source text in document order.
type SectionMap map[SectionKey]string

// NewSectionMap returns a SectionMap with every top-level key present and
// empty, so callers never see a missing key.
func NewSectionMap() SectionMap {
	m := make(SectionMap, len(SectionKeys))
	for _, key := range SectionKeys {
		m[key] = ""
	}
	return m
}

// TestRecord is one parsed test outcome. FailureReason, SuggestedFix and
// AIProvider are filled by the failure-analysis collaborator for FAIL
// records only.
type TestRecord struct {
	TestName      string     `json:"test_name"`
	Status        TestStatus `json:"status"`
	ErrorMessage  string     `json:"error_message"`
	FailureReason string     `json:"failure_reason"`
	SuggestedFix  string     `json:"suggested_fix"`
	AIProvider    string     `json:"ai_provider"`
}

// FailureAnalysis is the failure-analysis collaborator's verdict for a
// single failed test.
type FailureAnalysis struct {
	FailureReason string `json:"failure_reason"`
	SuggestedFix  string `json:"suggested_fix"`
	Provider      string `json:"ai_provider"`
}

// MeasurementParameter is one extracted numeric field from the specialized
// layout. Values keep their original textual formatting because reports
// mix decimal conventions.
type MeasurementParameter struct {
	Name   string   `json:"name"`
	Unit   string   `json:"unit"`
	Values []string `json:"values"`
}

// ReportTypeVerdict pairs the inferred category key with its label.
type ReportTypeVerdict struct {
	Key   ReportType `json:"key"`
	Label string     `json:"label"`
}

// Report is a stored analysis of one uploaded test report file.
type Report struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Filename    string     `db:"filename" json:"filename"`
	StorageKey  string     `db:"storage_key" json:"storage_key"`
	ReportType  ReportType `db:"report_type" json:"report_type"`
	FormatKey   FormatKey  `db:"format_key" json:"format_key"`
	Language    Language   `db:"language" json:"language"`
	TotalTests  int        `db:"total_tests" json:"total_tests"`
	PassedTests int        `db:"passed_tests" json:"passed_tests"`
	FailedTests int        `db:"failed_tests" json:"failed_tests"`
	UploadedAt  time.Time  `db:"uploaded_at" json:"uploaded_at"`
}

// TestResult is a persisted TestRecord. Position preserves document order.
type TestResult struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	ReportID      uuid.UUID  `db:"report_id" json:"report_id"`
	TestName      string     `db:"test_name" json:"test_name"`
	Status        TestStatus `db:"status" json:"status"`
	ErrorMessage  string     `db:"error_message" json:"error_message"`
	FailureReason string     `db:"failure_reason" json:"failure_reason"`
	SuggestedFix  string     `db:"suggested_fix" json:"suggested_fix"`
	AIProvider    string     `db:"ai_provider" json:"ai_provider"`
	Position      int        `db:"position" json:"position"`
}

// ReportSummary is a localized summary stored per report and language.
type ReportSummary struct {
	ReportID     uuid.UUID `db:"report_id" json:"report_id"`
	Language     Language  `db:"language" json:"language"`
	Summary      string    `db:"summary" json:"summary"`
	Conditions   string    `db:"conditions" json:"conditions"`
	Improvements string    `db:"improvements" json:"improvements"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Stats aggregates counters across all stored reports.
type Stats struct {
	TotalReports int `db:"total_reports" json:"total_reports"`
	TotalTests   int `db:"total_tests" json:"total_tests"`
	PassedTests  int `db:"passed_tests" json:"passed_tests"`
	FailedTests  int `db:"failed_tests" json:"failed_tests"`
}
