package engine

import (
	"regexp"
	"sort"
	"strings"

	"testreport/internal/domain"
)

// sectionMarker is a detected heading inside the text. Transient: only
// used to compute span boundaries, ordered by start offset.
type sectionMarker struct {
	start    int
	end      int
	section  domain.SectionKey
	language domain.Language
	heading  string
}

// iterSectionMarkers collects every heading match across all section keys
// and languages, sorted by start offset.
func iterSectionMarkers(text string) []sectionMarker {
	var markers []sectionMarker
	if text == "" {
		return markers
	}

	for _, hr := range compiledHeadings() {
		for _, loc := range hr.re.FindAllStringIndex(text, -1) {
			markers = append(markers, sectionMarker{
				start:    loc[0],
				end:      loc[1],
				section:  hr.section,
				language: hr.language,
				heading:  strings.TrimSpace(text[loc[0]:loc[1]]),
			})
		}
	}

	sort.SliceStable(markers, func(i, j int) bool { return markers[i].start < markers[j].start })
	return markers
}

// bodyStart returns the offset just past the heading's line.
func bodyStart(text string, markerEnd int) int {
	if nl := strings.IndexByte(text[markerEnd:], '\n'); nl != -1 {
		return markerEnd + nl + 1
	}
	return markerEnd
}

// DetectSections slices the text into named section bodies. Every
// top-level key is always present; a document with no recognizable
// headings maps entirely to header and detailed_data.
func DetectSections(text string) domain.SectionMap {
	sections := domain.NewSectionMap()
	if strings.TrimSpace(text) == "" {
		return sections
	}

	markers := iterSectionMarkers(text)
	if len(markers) == 0 {
		trimmed := strings.TrimSpace(text)
		sections[domain.SectionHeader] = trimmed
		sections[domain.SectionDetailedData] = trimmed
		return sections
	}

	sections[domain.SectionHeader] = strings.TrimSpace(text[:markers[0].start])

	var overflow []string
	for i, marker := range markers {
		start := bodyStart(text, marker.end)
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		content := strings.TrimSpace(text[start:end])
		if content == "" {
			continue
		}
		// First occurrence of a key wins; later spans for the same key
		// are folded into detailed_data.
		if sections[marker.section] == "" {
			sections[marker.section] = content
		} else {
			overflow = append(overflow, content)
		}
	}

	if len(overflow) > 0 {
		joined := strings.Join(overflow, "\n\n")
		if sections[domain.SectionDetailedData] == "" {
			sections[domain.SectionDetailedData] = joined
		} else {
			sections[domain.SectionDetailedData] += "\n\n" + joined
		}
	}

	// Any text not claimed by a recognized heading feeds detailed_data so
	// nothing silently disappears.
	if sections[domain.SectionDetailedData] == "" {
		remainder := text
		for _, key := range []domain.SectionKey{domain.SectionSummary, domain.SectionTestConditions, domain.SectionGraphs, domain.SectionResults} {
			if sections[key] != "" {
				remainder = strings.Replace(remainder, sections[key], "", 1)
			}
		}
		if trimmed := strings.TrimSpace(remainder); trimmed != "" {
			sections[domain.SectionDetailedData] = trimmed
		}
	}

	if sections[domain.SectionSummary] == "" && sections[domain.SectionHeader] != "" {
		sections[domain.SectionSummary] = sections[domain.SectionHeader]
	}

	return sections
}

// IdentifySectionLanguage scores each language by total heading-pattern
// match count over the whole text. Ties and all-zero scores default to
// Turkish.
func IdentifySectionLanguage(text string) domain.Language {
	if text == "" {
		return domain.LangTR
	}

	scores := map[domain.Language]int{}
	for _, hr := range compiledScoring() {
		scores[hr.language] += len(hr.re.FindAllStringIndex(text, -1))
	}

	best := domain.LangTR
	bestScore := 0
	for _, language := range domain.Languages {
		if scores[language] > bestScore {
			best = language
			bestScore = scores[language]
		}
	}
	if bestScore == 0 {
		return domain.LangTR
	}
	return best
}

// DetectSubsections scans a section body for the specialized-layout
// subsection headings, using only the dominant language's patterns
// (English as fallback), and slices marker-to-next-marker.
func DetectSubsections(text string) map[domain.SectionKey]string {
	if strings.TrimSpace(text) == "" {
		return map[domain.SectionKey]string{}
	}

	language := IdentifySectionLanguage(text)

	var markers []sectionMarker
	for section, byLanguage := range SubsectionPatterns {
		pattern := byLanguage[language]
		if pattern == "" {
			pattern = byLanguage[domain.LangEN]
		}
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)` + pattern)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			markers = append(markers, sectionMarker{
				start:    loc[0],
				end:      loc[1],
				section:  section,
				language: language,
				heading:  text[loc[0]:loc[1]],
			})
		}
	}

	subsections := map[domain.SectionKey]string{}
	if len(markers) == 0 {
		return subsections
	}

	sort.SliceStable(markers, func(i, j int) bool { return markers[i].start < markers[j].start })

	for i, marker := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		if content := strings.TrimSpace(text[marker.start:end]); content != "" {
			subsections[marker.section] = content
		}
	}

	return subsections
}

// ExtractSection pulls one section using an explicit start pattern and an
// optional end pattern. The body starts on the line after the start match.
func ExtractSection(text, startPattern, endPattern string) string {
	if text == "" {
		return ""
	}

	startRe, err := regexp.Compile(`(?im)` + startPattern)
	if err != nil {
		return ""
	}
	loc := startRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	start := bodyStart(text, loc[1])
	end := len(text)
	if endPattern != "" {
		if endRe, err := regexp.Compile(`(?im)` + endPattern); err == nil {
			if endLoc := endRe.FindStringIndex(text[start:]); endLoc != nil {
				end = start + endLoc[0]
			}
		}
	}

	return strings.TrimSpace(text[start:end])
}
