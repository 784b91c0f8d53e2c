package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"testreport/internal/domain"
	"testreport/internal/port"
)

// MockFailureAnalyzer is a mock implementation of port.FailureAnalyzer.
type MockFailureAnalyzer struct {
	mock.Mock
}

func (m *MockFailureAnalyzer) Analyze(ctx context.Context, input port.FailureInput) (*domain.FailureAnalysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FailureAnalysis), args.Error(1)
}
