package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"testreport/internal/domain"
	"testreport/internal/service"
)

// MockTranslationService is a mock implementation of service.TranslationService.
type MockTranslationService struct {
	mock.Mock
}

func (m *MockTranslationService) Translate(ctx context.Context, text, source string, targets []string) (map[domain.Language]service.TranslationResult, error) {
	args := m.Called(ctx, text, source, targets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Language]service.TranslationResult), args.Error(1)
}
