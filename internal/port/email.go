package port

import "context"

// AnalysisNotification summarizes a finished report analysis for email delivery.
type AnalysisNotification struct {
	Filename    string
	ReportType  string
	TotalTests  int
	PassedTests int
	FailedTests int
}

// EmailSender defines the contract for sending notification emails.
type EmailSender interface {
	SendAnalysisComplete(ctx context.Context, toEmail string, n AnalysisNotification) error
}
