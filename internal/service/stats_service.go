package service

import (
	"context"

	"testreport/internal/domain"
	"testreport/internal/port"
)

// StatsService provides aggregate statistics across all reports.
type StatsService interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	return s.statsRepo.Totals(ctx)
}
