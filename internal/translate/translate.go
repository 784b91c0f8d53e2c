// Package translate provides a dictionary-based fallback translator for
// the three report languages. It is not a general translator; it covers
// the phrases that recur in test reports well enough to keep the reading
// flow when the AI translation service is unreachable.
package translate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"testreport/internal/domain"
)

// wordRe matches maximal word runs including Turkish and German letters.
// RE2 word boundaries are ASCII-only, so boundaries are implied by the
// maximal-munch match instead of \b anchors.
var wordRe = regexp.MustCompile(`[\wÄÖÜäöüßÇĞİÖŞÜçğıöşü]+`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Characters that identify a language in a crude but serviceable way.
var languageSpecificChars = map[domain.Language]string{
	domain.LangTR: "çğıöşüİ",
	domain.LangDE: "äöüß",
	domain.LangEN: "",
}

var languageHintWords = map[domain.Language][]string{
	domain.LangDE: {" der ", " die ", " das ", " mit ", " auf", " prüf", " kamera"},
	domain.LangTR: {" ile ", " için ", " test ", " ölç", " cihaz", " koşul", " yapıldı"},
}

// Fallback translates text between supported languages using the cached
// dictionary tables. An empty source assumes English. The original text
// comes back unchanged whenever translation is unnecessary, unsupported,
// or would regress into the source language.
func Fallback(text string, sourceLang, targetLang string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ""
	}

	source, _ := domain.ParseLanguage(sourceLang)
	target, ok := domain.ParseLanguage(targetLang)
	if !ok || target == source {
		return cleaned
	}

	if source != "" && !needsTranslation(cleaned, source, target) {
		return cleaned
	}

	effectiveSource := source
	if effectiveSource == "" {
		effectiveSource = domain.LangEN
	}
	direct := translateDirect(cleaned, effectiveSource, target)

	// A result still reading like the source language is a regression,
	// not a translation.
	if direct != cleaned && source != "" && containsLanguageHints(direct, source) {
		direct = cleaned
	}

	if direct != cleaned || source == "" || source == domain.LangEN {
		return tidy(direct)
	}

	// Pivot through English when the direct pair had no coverage.
	pivot := translateDirect(cleaned, source, domain.LangEN)
	if pivot != cleaned {
		return tidy(translateDirect(pivot, domain.LangEN, target))
	}
	return tidy(direct)
}

func translateDirect(text string, source, target domain.Language) string {
	table, ok := translationTables()[langPair{src: source, dst: target}]
	if !ok {
		return text
	}
	translated := applyPhrases(text, table)
	return applyWords(translated, table)
}

func applyPhrases(text string, table *pairTable) string {
	if table.phraseRe == nil {
		return text
	}
	return table.phraseRe.ReplaceAllStringFunc(text, func(matched string) string {
		translated, ok := table.phrases[strings.ToLower(matched)]
		if !ok || translated == "" {
			return matched
		}
		return applyCase(matched, translated)
	})
}

func applyWords(text string, table *pairTable) string {
	if len(table.words) == 0 {
		return text
	}
	return wordRe.ReplaceAllStringFunc(text, func(token string) string {
		translated, ok := table.words[strings.ToLower(token)]
		if !ok {
			return token
		}
		if translated == "" {
			return ""
		}
		return applyCase(token, translated)
	})
}

// applyCase carries the casing pattern of the matched span onto the
// replacement: all-caps stays all-caps, a capitalized first letter stays
// capitalized.
func applyCase(template, replacement string) string {
	if template == "" {
		return replacement
	}
	if isUpper(template) {
		return strings.ToUpper(replacement)
	}
	first, _ := utf8.DecodeRuneInString(template)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(replacement)
		if size > 0 {
			return string(unicode.ToUpper(r)) + replacement[size:]
		}
	}
	return replacement
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func tidy(text string) string {
	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	cleaned = strings.ReplaceAll(cleaned, " ,", ",")
	cleaned = strings.ReplaceAll(cleaned, " .", ".")
	cleaned = strings.ReplaceAll(cleaned, " :", ":")
	return cleaned
}

// needsTranslation decides whether the text already reads like the
// target language, judged by language-specific characters.
func needsTranslation(text string, source, target domain.Language) bool {
	if source == target {
		return false
	}
	sample := strings.TrimSpace(text)
	if sample == "" {
		return false
	}
	if chars := languageSpecificChars[target]; chars != "" && strings.ContainsAny(sample, chars) {
		return false
	}
	return true
}

func containsLanguageHints(text string, language domain.Language) bool {
	hints, ok := languageHintWords[language]
	if !ok {
		return false
	}
	lowered := " " + strings.ToLower(text) + " "
	for _, hint := range hints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}
	return false
}
