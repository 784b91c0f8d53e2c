package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"testreport/internal/domain"
	"testreport/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *domain.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.UploadedAt.IsZero() {
		report.UploadedAt = time.Now().UTC()
	}

	query := `INSERT INTO reports
		(id, filename, storage_key, report_type, format_key, language,
		 total_tests, passed_tests, failed_tests, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.Filename, report.StorageKey, report.ReportType,
		report.FormatKey, report.Language, report.TotalTests,
		report.PassedTests, report.FailedTests, report.UploadedAt)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	err := r.db.GetContext(ctx, &report, "SELECT * FROM reports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByID: %w", err)
	}
	return &report, nil
}

// sortColumns whitelists sortable columns; anything else falls back to
// upload date.
var sortColumns = map[string]string{
	"date":   "uploaded_at",
	"name":   "filename",
	"total":  "total_tests",
	"passed": "passed_tests",
	"failed": "failed_tests",
}

func (r *reportRepo) List(ctx context.Context, sortBy, order string) ([]domain.Report, error) {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "uploaded_at"
	}
	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}

	var reports []domain.Report
	query := fmt.Sprintf("SELECT * FROM reports ORDER BY %s %s, id", column, direction)
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("reportRepo.List: %w", err)
	}
	return reports, nil
}

func (r *reportRepo) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	var storageKey string
	err := r.db.GetContext(ctx, &storageKey,
		"DELETE FROM reports WHERE id = $1 RETURNING storage_key", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("reportRepo.Delete: %w", err)
	}
	return storageKey, nil
}
