package engine

import (
	"context"
	"log"
	"regexp"
	"strings"

	"testreport/internal/domain"
	"testreport/internal/port"
)

// Status keyword alternations. Word boundaries are dropped around letters
// outside ASCII because RE2 treats them as non-word characters, and the
// dotless ı does not case-fold under (?i), so Turkish tokens are spelled
// out per casing.
const (
	failTokens = `\b(?i:FAILED|FAILURE|FAIL|ERROR|FEHLGESCHLAGEN|FEHLER)\b|\bBAŞARISIZ\b|\bBaşarısız\b|\bbaşarısız\b|\bKALDI\b|Kaldı|kaldı|[✗✘❌]`
	passTokens = `\b(?i:PASSED|PASS|SUCCESSFUL|SUCCESS|BESTANDEN|ERFOLGREICH|OK)\b|\bBAŞARILI\b|Başarılı|başarılı|GEÇTİ|\bGeçti\b|\bgeçti\b|[✓✔]`
)

var (
	statusTokenRe = regexp.MustCompile(`(` + failTokens + `)|(` + passTokens + `)`)

	// Aggregate count lines are never tests.
	summaryLineRe = regexp.MustCompile(`(?i)\b(toplam|özet|ozet|summary|total|overall|gesamt|zusammenfassung)\b`)

	// Explicit test labels that set the carried name hint.
	testLabelRe = regexp.MustCompile(`(?i)^\W*(?:test|senaryo|scenario|testfall)\s*(?:case\s*)?\d*\s*[:\-]\s*(.+)$`)

	// Label words that introduce a status rather than name a test.
	resultLabelRe = regexp.MustCompile(`(?i)^(sonuç|sonuc|result|status|durum|ergebnis|outcome)$`)

	errorLabelRe = regexp.MustCompile(`(?i)^(hata|error|fehler|mesaj|message)\s*[:\-]\s*`)

	leadingNoiseRe  = regexp.MustCompile(`^[\s\-–•*:|.)\]]+`)
	trailingNoiseRe = regexp.MustCompile(`[\s\-–•*:|,]+$`)
	numberingRe     = regexp.MustCompile(`^\d+[.)]\s*`)

	// Separator needs whitespace on at least one side so hyphenated
	// test names survive intact.
	secondarySepRe = regexp.MustCompile(`\s+[-–:|]\s*|\s*[-–:|]\s+`)
)

const unknownTestName = "Bilinmeyen Test"

// Generic pair used when the analysis collaborator itself misbehaves.
const (
	genericFailureReason = "Hata mesajını inceleyerek detaylı kök neden analizi yapın."
	genericSuggestedFix  = "İlgili log kayıtlarını ve stack trace'i kontrol edin."
)

type entryDraft struct {
	name   string
	status domain.TestStatus
	errMsg string
}

// ResultParser turns free-form report text into pass/fail records.
// The analyzer is consulted for failed entries only and must be total;
// an error from it degrades to a generic rule-based pair.
type ResultParser struct {
	analyzer port.FailureAnalyzer
}

func NewResultParser(analyzer port.FailureAnalyzer) *ResultParser {
	return &ResultParser{analyzer: analyzer}
}

// Parse runs the line scanner over the whole document. See the package
// tests for the grammar it accepts; the short version is one entry per
// status-keyword line with blank-line termination and continuation
// merging, plus a pipe-table fallback when nothing else matched.
func (p *ResultParser) Parse(ctx context.Context, text string) []domain.TestRecord {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var records []domain.TestRecord
	var pending *entryDraft
	hint := ""

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			if pending != nil {
				records = append(records, p.finalize(ctx, pending, hint, text))
				pending = nil
			}
			continue
		}

		if summaryLineRe.MatchString(line) {
			continue
		}

		if m := testLabelRe.FindStringSubmatch(line); m != nil {
			hint = cleanNamePart(statusTokenRe.ReplaceAllString(m[1], ""))
		}

		if draft := extractSingleLine(line); draft != nil {
			if pending != nil {
				records = append(records, p.finalize(ctx, pending, hint, text))
			}
			pending = draft
			continue
		}

		if pending != nil {
			if pending.errMsg != "" {
				pending.errMsg += " " + line
			} else {
				pending.errMsg = line
			}
			continue
		}

		if hint != "" {
			status, _, _, ok := lastStatusToken(line)
			if ok && status == domain.StatusPass {
				records = append(records, p.finalize(ctx, &entryDraft{name: hint, status: domain.StatusPass}, "", text))
				hint = ""
				continue
			}
			if ok && status == domain.StatusFail {
				detail, next := collectFailureDetail(lines, i+1)
				records = append(records, p.finalize(ctx, &entryDraft{name: hint, status: domain.StatusFail, errMsg: detail}, "", text))
				hint = ""
				i = next - 1
				continue
			}
		}
	}

	if pending != nil {
		records = append(records, p.finalize(ctx, pending, hint, text))
	}

	if len(records) == 0 {
		records = p.parsePipeTable(ctx, text)
	}
	return records
}

// lastStatusToken reports the status and span of the rightmost pass/fail
// keyword on the line.
func lastStatusToken(line string) (domain.TestStatus, int, int, bool) {
	locs := statusTokenRe.FindAllStringSubmatchIndex(line, -1)
	if len(locs) == 0 {
		return "", 0, 0, false
	}
	last := locs[len(locs)-1]
	status := domain.StatusPass
	if last[2] != -1 {
		status = domain.StatusFail
	}
	return status, last[0], last[1], true
}

// extractSingleLine attempts to read a complete entry off one line.
// Nil means the line carries no usable entry and the caller should try
// continuation or hint handling instead.
func extractSingleLine(line string) *entryDraft {
	status, start, end, ok := lastStatusToken(line)
	if !ok {
		return nil
	}

	namePart := line[:start]
	msgPart := line[end:]
	if strings.TrimSpace(namePart) == "" && strings.TrimSpace(msgPart) != "" {
		namePart, msgPart = msgPart, ""
	}

	name := cleanNamePart(namePart)
	msg := cleanMessagePart(msgPart)

	if resultLabelRe.MatchString(name) {
		name = ""
	}

	if msg == "" && name != "" {
		if loc := secondarySepRe.FindStringIndex(name); loc != nil {
			head := cleanNamePart(name[:loc[0]])
			tail := cleanMessagePart(name[loc[1]:])
			if head != "" && tail != "" {
				name, msg = head, tail
			}
		}
	}
	if msg == "" && start == 0 {
		if idx := strings.Index(name, " - "); idx > 0 {
			name, msg = cleanNamePart(name[:idx]), cleanMessagePart(name[idx+3:])
		}
	}

	if name == "" {
		if m := testLabelRe.FindStringSubmatch(line); m != nil {
			name = cleanNamePart(statusTokenRe.ReplaceAllString(m[1], ""))
		}
	}

	if name == "" || len([]rune(name)) < 2 || summaryLineRe.MatchString(name) || resultLabelRe.MatchString(name) {
		return nil
	}
	return &entryDraft{name: name, status: status, errMsg: msg}
}

// collectFailureDetail consumes non-blank lines after a bare fail keyword
// until a blank or another status line, returning the joined detail and
// the index of the first unconsumed line.
func collectFailureDetail(lines []string, start int) (string, int) {
	var parts []string
	i := start
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			break
		}
		if _, _, _, ok := lastStatusToken(line); ok {
			break
		}
		parts = append(parts, errorLabelRe.ReplaceAllString(line, ""))
	}
	if len(parts) == 0 {
		return "no detail", i
	}
	return strings.Join(parts, " "), i
}

// parsePipeTable is the last-resort reader for table-only reports.
// Each row is name, status cell and optional error cell; no
// continuation logic applies.
func (p *ResultParser) parsePipeTable(ctx context.Context, text string) []domain.TestRecord {
	var records []domain.TestRecord
	for _, raw := range strings.Split(text, "\n") {
		if !strings.Contains(raw, "|") {
			continue
		}
		var cells []string
		for _, cell := range strings.Split(raw, "|") {
			if trimmed := strings.TrimSpace(cell); trimmed != "" {
				cells = append(cells, trimmed)
			}
		}
		if len(cells) < 2 {
			continue
		}
		name := cleanNamePart(cells[0])
		if name == "" || len([]rune(name)) < 2 || summaryLineRe.MatchString(name) {
			continue
		}
		status, tokStart, tokEnd, ok := lastStatusToken(cells[1])
		if !ok || strings.TrimSpace(cells[1][:tokStart]+cells[1][tokEnd:]) != "" {
			continue
		}
		draft := &entryDraft{name: name, status: status}
		if len(cells) > 2 {
			draft.errMsg = cells[2]
		}
		records = append(records, p.finalize(ctx, draft, "", text))
	}
	return records
}

func (p *ResultParser) finalize(ctx context.Context, d *entryDraft, hint, fullText string) domain.TestRecord {
	name := strings.TrimSpace(d.name)
	if name == "" {
		name = hint
	}
	if name == "" {
		name = unknownTestName
	}
	msg := strings.TrimSpace(errorLabelRe.ReplaceAllString(strings.TrimSpace(d.errMsg), ""))

	rec := domain.TestRecord{
		TestName:     name,
		Status:       d.status,
		ErrorMessage: msg,
		AIProvider:   "rule-based",
	}
	if d.status != domain.StatusFail {
		return rec
	}

	if p.analyzer != nil {
		analysis, err := p.analyzer.Analyze(ctx, port.FailureInput{TestName: name, ErrorMessage: msg, Context: fullText})
		if err == nil && analysis != nil {
			rec.FailureReason = analysis.FailureReason
			rec.SuggestedFix = analysis.SuggestedFix
			if analysis.Provider != "" {
				rec.AIProvider = analysis.Provider
			}
			return rec
		}
		if err != nil {
			log.Printf("engine.ResultParser.finalize: failure analysis unavailable for %q: %v", name, err)
		}
	}
	rec.FailureReason = genericFailureReason
	rec.SuggestedFix = genericSuggestedFix
	return rec
}

func cleanNamePart(s string) string {
	s = strings.TrimSpace(s)
	s = leadingNoiseRe.ReplaceAllString(s, "")
	s = numberingRe.ReplaceAllString(s, "")
	s = leadingNoiseRe.ReplaceAllString(s, "")
	s = trailingNoiseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func cleanMessagePart(s string) string {
	s = strings.TrimSpace(s)
	s = leadingNoiseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
