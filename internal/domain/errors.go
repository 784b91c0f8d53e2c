package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrExtractionFailed    = errors.New("text extraction failed")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrEmptyText           = errors.New("text is required")
	ErrAIDisabled          = errors.New("no AI provider is configured")
)
