package port

import (
	"context"

	"testreport/internal/domain"
)

// ExtractInput carries a raw uploaded file for text/table extraction.
type ExtractInput struct {
	FileBytes   []byte
	Filename    string
	ContentType string
}

// TextExtractor abstracts the external service that converts a binary
// document into plain text, structured text and raw table grids.
type TextExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*domain.RawDocument, error)
}
