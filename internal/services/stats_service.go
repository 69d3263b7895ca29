package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

// ===== SERVICE INTERFACE =====

type StatsService interface {
	// Remarks aggregates every remark of the program
	Remarks(ctx context.Context) (*models.RemarkStats, error)
	// TraineeRemarks aggregates the remarks of one trainee, addressed by documentId
	TraineeRemarks(ctx context.Context, stagiaireID string) (*models.RemarkStats, error)
}

type statsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewStatsService(repo repositories.Repository, logger *slog.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Remarks(ctx context.Context) (*models.RemarkStats, error) {
	remarks, err := s.repo.Remark().List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch remarks for stats", "error", err)
		return nil, fmt.Errorf("failed to fetch remarks: %w", err)
	}
	stats := ComputeRemarkStats(remarks)
	return &stats, nil
}

func (s *statsService) TraineeRemarks(ctx context.Context, stagiaireID string) (*models.RemarkStats, error) {
	remarks, err := s.repo.Remark().List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch remarks for stats", "stagiaire_id", stagiaireID, "error", err)
		return nil, fmt.Errorf("failed to fetch remarks: %w", err)
	}
	stats := ComputeRemarkStats(remarksOf(remarks, stagiaireID))
	return &stats, nil
}

// ===== HELPERS =====

// ComputeRemarkStats counts positive and negative remarks. Percentages are rounded and
// always sum to 100 when there is at least one remark.
func ComputeRemarkStats(remarks []models.Remark) models.RemarkStats {
	var stats models.RemarkStats
	for _, r := range remarks {
		switch r.Type {
		case models.RemarkPositive:
			stats.Positive++
		case models.RemarkNegative:
			stats.Negative++
		}
	}
	stats.Total = stats.Positive + stats.Negative
	if stats.Total == 0 {
		return stats
	}
	stats.PositivePct = int(math.Round(float64(stats.Positive) * 100 / float64(stats.Total)))
	stats.NegativePct = 100 - stats.PositivePct
	return stats
}

func remarksOf(remarks []models.Remark, stagiaireID string) []models.Remark {
	var out []models.Remark
	for _, r := range remarks {
		if models.KeyOf(r.Stagiaire) == stagiaireID {
			out = append(out, r)
		}
	}
	return out
}
