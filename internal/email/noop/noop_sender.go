package noop

import (
	"context"
	"log"

	"testreport/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendAnalysisComplete(_ context.Context, toEmail string, n port.AnalysisNotification) error {
	log.Printf("[NOOP EMAIL] Analysis complete for %s: file=%s type=%s total=%d passed=%d failed=%d",
		toEmail, n.Filename, n.ReportType, n.TotalTests, n.PassedTests, n.FailedTests)
	return nil
}
