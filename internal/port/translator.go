package port

import (
	"context"

	"testreport/internal/domain"
)

// Translator abstracts AI-backed translation between report languages.
// Implementations may fail or time out; the translation service converts
// such failures into the offline dictionary fallback.
type Translator interface {
	Translate(ctx context.Context, text string, source domain.Language, targets []domain.Language) (map[domain.Language]string, error)
}
