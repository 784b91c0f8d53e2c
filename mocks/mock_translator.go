package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"testreport/internal/domain"
)

// MockTranslator is a mock implementation of port.Translator.
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text string, source domain.Language, targets []domain.Language) (map[domain.Language]string, error) {
	args := m.Called(ctx, text, source, targets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Language]string), args.Error(1)
}
