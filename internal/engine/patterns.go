package engine

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"sync"

	"testreport/internal/domain"
)

// SectionPatterns maps each top-level section to its per-language heading
// patterns. A heading must occupy a line of its own to count. Adding a new
// heading variant only requires appending to the right list.
var SectionPatterns = map[domain.SectionKey]map[domain.Language][]string{
	domain.SectionTestConditions: {
		domain.LangTR: {`Test Koşulları`, `Test Şartları`, `Deney Koşulları`},
		domain.LangEN: {`Test Conditions`, `Testing Conditions`, `Test Parameters`},
		domain.LangDE: {`Testbedingungen`, `Prüfbedingungen`, `Versuchsbedingungen`},
	},
	domain.SectionGraphs: {
		domain.LangTR: {`Grafikler`, `Şekiller`, `Diyagramlar`},
		domain.LangEN: {`Graphs`, `Charts`, `Figures`, `Diagrams`},
		domain.LangDE: {`Diagramme`, `Grafiken`, `Abbildungen`},
	},
	domain.SectionResults: {
		domain.LangTR: {`Sonuçlar`, `Test Sonuçları`, `Bulgular`},
		domain.LangEN: {`Results`, `Test Results`, `Findings`},
		domain.LangDE: {`Ergebnisse`, `Testergebnisse`, `Resultate`},
	},
	domain.SectionSummary: {
		domain.LangTR: {`Özet`, `Genel Özet`, `Sonuç`},
		domain.LangEN: {`Summary`, `Conclusion`, `Overview`},
		domain.LangDE: {`Zusammenfassung`, `Übersicht`, `Fazit`},
	},
}

// SubsectionPatterns covers the finer-grained headings found inside the
// specialized (TÜV sled test) layout. One pattern per language; English is
// the fallback when the detected language has none.
var SubsectionPatterns = map[domain.SectionKey]map[domain.Language]string{
	domain.SectionSledDeceleration: {
		domain.LangDE: `Schlittenverzögerung:`,
		domain.LangEN: `Sled\s+deceleration:`,
		domain.LangTR: `Kızak\s+(?:gecikmesi|yavaşlaması):`,
	},
	domain.SectionLoadValues: {
		domain.LangDE: `Belastungswerte:`,
		domain.LangEN: `Load\s+values:`,
		domain.LangTR: `Yük\s+değerleri:`,
	},
	domain.SectionPhotoDocs: {
		domain.LangDE: `Fotodokumentation:`,
		domain.LangEN: `Photo\s+documentation:`,
		domain.LangTR: `Fotoğraf\s+dokümantasyonu:`,
	},
	domain.SectionTestSetup: {
		domain.LangDE: `Abb\.\s*\d+:\s*(?:Aufbau|Setup)`,
		domain.LangEN: `Fig\.\s*\d+:\s*(?:Setup|Configuration)`,
		domain.LangTR: `Şekil\s*\d+:\s*(?:Kurulum|Yapılandırma)`,
	},
}

// headingRegex is one compiled whole-line alternation for a
// (section, language) pair.
type headingRegex struct {
	section  domain.SectionKey
	language domain.Language
	re       *regexp.Regexp
}

var (
	headingOnce    sync.Once
	headingRegexes []headingRegex
	scoringRegexes []headingRegex
)

// compileHeadingPatterns builds the whole-line marker regexes and the
// per-pattern scoring regexes used by language identification. Invalid
// patterns are skipped with a log line; a single bad entry must not take
// down the whole table.
func compileHeadingPatterns() {
	sections := make([]domain.SectionKey, 0, len(SectionPatterns))
	for section := range SectionPatterns {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i] < sections[j] })

	for _, section := range sections {
		for _, language := range domain.Languages {
			patterns := SectionPatterns[section][language]
			if len(patterns) == 0 {
				continue
			}
			alternation := ""
			for _, p := range patterns {
				if _, err := regexp.Compile(p); err != nil {
					log.Printf("engine.compileHeadingPatterns: skipping %s/%s pattern %q: %v", section, language, p, err)
					continue
				}
				if alternation != "" {
					alternation += "|"
				}
				alternation += fmt.Sprintf("(?:%s)", p)
				scoring, err := regexp.Compile(`(?i)` + p)
				if err == nil {
					scoringRegexes = append(scoringRegexes, headingRegex{section, language, scoring})
				}
			}
			if alternation == "" {
				continue
			}
			re, err := regexp.Compile(`(?im)^[ \t]*(?:` + alternation + `)[ \t]*$`)
			if err != nil {
				log.Printf("engine.compileHeadingPatterns: skipping %s/%s alternation: %v", section, language, err)
				continue
			}
			headingRegexes = append(headingRegexes, headingRegex{section, language, re})
		}
	}
}

func compiledHeadings() []headingRegex {
	headingOnce.Do(compileHeadingPatterns)
	return headingRegexes
}

func compiledScoring() []headingRegex {
	headingOnce.Do(compileHeadingPatterns)
	return scoringRegexes
}
