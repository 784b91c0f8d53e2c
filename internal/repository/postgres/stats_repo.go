package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"testreport/internal/domain"
	"testreport/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const totalsQuery = `SELECT
	COUNT(*) AS total_reports,
	COALESCE(SUM(total_tests), 0) AS total_tests,
	COALESCE(SUM(passed_tests), 0) AS passed_tests,
	COALESCE(SUM(failed_tests), 0) AS failed_tests
FROM reports`

func (r *statsRepo) Totals(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, totalsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.Totals: %w", err)
	}
	return &stats, nil
}
