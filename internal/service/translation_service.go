package service

import (
	"context"
	"log"
	"strings"

	"testreport/internal/domain"
	"testreport/internal/port"
	"testreport/internal/translate"
)

// TranslationResult carries one translated rendition plus how it was made.
type TranslationResult struct {
	Text   string `json:"text"`
	Method string `json:"method"`
}

const (
	translationMethodAI      = "ai"
	translationMethodOffline = "dictionary"
)

// TranslationService translates report text, preferring the AI
// translator and degrading to the offline dictionary.
type TranslationService interface {
	Translate(ctx context.Context, text, source string, targets []string) (map[domain.Language]TranslationResult, error)
}

type translationService struct {
	ai port.Translator
}

// NewTranslationService creates a new TranslationService. The AI
// translator may be nil; translation then runs offline only.
func NewTranslationService(ai port.Translator) TranslationService {
	return &translationService{ai: ai}
}

func (s *translationService) Translate(ctx context.Context, text, source string, targets []string) (map[domain.Language]TranslationResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}

	sourceLang, _ := domain.ParseLanguage(source)

	var targetLangs []domain.Language
	for _, t := range targets {
		lang, ok := domain.ParseLanguage(t)
		if !ok {
			return nil, domain.ErrUnsupportedLanguage
		}
		if lang == sourceLang {
			continue
		}
		targetLangs = append(targetLangs, lang)
	}
	if len(targetLangs) == 0 {
		return nil, domain.ErrUnsupportedLanguage
	}

	out := make(map[domain.Language]TranslationResult, len(targetLangs))

	if s.ai != nil {
		translated, err := s.ai.Translate(ctx, text, sourceLang, targetLangs)
		if err == nil {
			for lang, value := range translated {
				out[lang] = TranslationResult{Text: value, Method: translationMethodAI}
			}
			return out, nil
		}
		log.Printf("translationService.Translate: AI translation failed, using dictionary: %v", err)
	}

	for _, target := range targetLangs {
		out[target] = TranslationResult{
			Text:   translate.Fallback(text, string(sourceLang), string(target)),
			Method: translationMethodOffline,
		}
	}
	return out, nil
}
