package port

import (
	"context"

	"github.com/google/uuid"

	"testreport/internal/domain"
)

// ReportRepository defines the contract for report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	List(ctx context.Context, sortBy, order string) ([]domain.Report, error)
	Delete(ctx context.Context, id uuid.UUID) (storageKey string, err error)
}

// TestResultRepository defines the contract for test-result persistence.
type TestResultRepository interface {
	CreateBatch(ctx context.Context, results []domain.TestResult) error
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.TestResult, error)
	ListFailedByReport(ctx context.Context, reportID uuid.UUID) ([]domain.TestResult, error)
}

// SummaryRepository defines the contract for localized summary persistence.
type SummaryRepository interface {
	Upsert(ctx context.Context, summary *domain.ReportSummary) error
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.ReportSummary, error)
}

// StatsRepository provides aggregate counters across all reports.
type StatsRepository interface {
	Totals(ctx context.Context) (*domain.Stats, error)
}
