package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"testreport/internal/domain"
	"testreport/internal/port"
)

type testResultRepo struct {
	db *sqlx.DB
}

// NewTestResultRepo creates a new PostgreSQL-backed TestResultRepository.
func NewTestResultRepo(db *sqlx.DB) port.TestResultRepository {
	return &testResultRepo{db: db}
}

func (r *testResultRepo) CreateBatch(ctx context.Context, results []domain.TestResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("testResultRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO test_results
		(id, report_id, test_name, status, error_message, failure_reason,
		 suggested_fix, ai_provider, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for i := range results {
		if results[i].ID == uuid.Nil {
			results[i].ID = uuid.New()
		}
		_, err := tx.ExecContext(ctx, query,
			results[i].ID, results[i].ReportID, results[i].TestName,
			results[i].Status, results[i].ErrorMessage, results[i].FailureReason,
			results[i].SuggestedFix, results[i].AIProvider, results[i].Position)
		if err != nil {
			return fmt.Errorf("testResultRepo.CreateBatch insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("testResultRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *testResultRepo) ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.TestResult, error) {
	var results []domain.TestResult
	err := r.db.SelectContext(ctx, &results,
		"SELECT * FROM test_results WHERE report_id = $1 ORDER BY position", reportID)
	if err != nil {
		return nil, fmt.Errorf("testResultRepo.ListByReport: %w", err)
	}
	return results, nil
}

func (r *testResultRepo) ListFailedByReport(ctx context.Context, reportID uuid.UUID) ([]domain.TestResult, error) {
	var results []domain.TestResult
	err := r.db.SelectContext(ctx, &results,
		"SELECT * FROM test_results WHERE report_id = $1 AND status = $2 ORDER BY position",
		reportID, domain.StatusFail)
	if err != nil {
		return nil, fmt.Errorf("testResultRepo.ListFailedByReport: %w", err)
	}
	return results, nil
}
