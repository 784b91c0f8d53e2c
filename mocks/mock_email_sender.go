package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"testreport/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendAnalysisComplete(ctx context.Context, toEmail string, n port.AnalysisNotification) error {
	args := m.Called(ctx, toEmail, n)
	return args.Error(0)
}
