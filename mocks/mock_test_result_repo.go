package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"testreport/internal/domain"
)

// MockTestResultRepo is a mock implementation of port.TestResultRepository.
type MockTestResultRepo struct {
	mock.Mock
}

func (m *MockTestResultRepo) CreateBatch(ctx context.Context, results []domain.TestResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockTestResultRepo) ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.TestResult, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TestResult), args.Error(1)
}

func (m *MockTestResultRepo) ListFailedByReport(ctx context.Context, reportID uuid.UUID) ([]domain.TestResult, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TestResult), args.Error(1)
}
