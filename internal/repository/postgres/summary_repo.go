package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"testreport/internal/domain"
	"testreport/internal/port"
)

type summaryRepo struct {
	db *sqlx.DB
}

// NewSummaryRepo creates a new PostgreSQL-backed SummaryRepository.
func NewSummaryRepo(db *sqlx.DB) port.SummaryRepository {
	return &summaryRepo{db: db}
}

func (r *summaryRepo) Upsert(ctx context.Context, summary *domain.ReportSummary) error {
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO report_summaries
		(report_id, language, summary, conditions, improvements, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (report_id, language) DO UPDATE SET
			summary = EXCLUDED.summary,
			conditions = EXCLUDED.conditions,
			improvements = EXCLUDED.improvements`

	_, err := r.db.ExecContext(ctx, query,
		summary.ReportID, summary.Language, summary.Summary,
		summary.Conditions, summary.Improvements, summary.CreatedAt)
	if err != nil {
		return fmt.Errorf("summaryRepo.Upsert: %w", err)
	}
	return nil
}

func (r *summaryRepo) ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.ReportSummary, error) {
	var summaries []domain.ReportSummary
	err := r.db.SelectContext(ctx, &summaries,
		"SELECT * FROM report_summaries WHERE report_id = $1 ORDER BY language", reportID)
	if err != nil {
		return nil, fmt.Errorf("summaryRepo.ListByReport: %w", err)
	}
	return summaries, nil
}
