package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SAP-F-2025/trainee-dashboard/internal/export"
	"github.com/SAP-F-2025/trainee-dashboard/internal/filter"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

// ===== SERVICE INTERFACE =====

// ExportService renders filtered tables as xlsx workbooks. A non-empty selection keeps
// only the records whose documentId is in it, on top of the query.
type ExportService interface {
	Stagiaires(ctx context.Context, q filter.Query, selection []string) ([]byte, error)
	Brigades(ctx context.Context, q filter.Query, selection []string) ([]byte, error)
	Permissions(ctx context.Context, q filter.Query, selection []string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) Stagiaires(ctx context.Context, q filter.Query, selection []string) ([]byte, error) {
	return exportTable(ctx, s.logger, s.repo.Stagiaire(), filter.Stagiaires, q, selection, export.Stagiaires)
}

func (s *exportService) Brigades(ctx context.Context, q filter.Query, selection []string) ([]byte, error) {
	return exportTable(ctx, s.logger, s.repo.Brigade(), filter.Brigades, q, selection, export.Brigades)
}

func (s *exportService) Permissions(ctx context.Context, q filter.Query, selection []string) ([]byte, error) {
	return exportTable(ctx, s.logger, s.repo.Permission(), filter.Permissions, q, selection, export.Permissions)
}

func exportTable[T models.Entity](
	ctx context.Context,
	logger *slog.Logger,
	repo repositories.ResourceRepository[T],
	spec filter.Spec[T],
	q filter.Query,
	selection []string,
	render func([]T) ([]byte, error),
) ([]byte, error) {
	resource := repo.Schema().Resource

	items, err := repo.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to fetch collection for export", "resource", resource, "error", err)
		return nil, fmt.Errorf("failed to fetch %s: %w", resource, err)
	}

	rows := filter.Apply(items, spec, q)
	if len(selection) > 0 {
		rows = slices.DeleteFunc(rows, func(item T) bool {
			return !slices.Contains(selection, item.Key())
		})
	}

	data, err := render(rows)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to render workbook", "resource", resource, "error", err)
		return nil, fmt.Errorf("failed to render %s workbook: %w", resource, err)
	}

	logger.InfoContext(ctx, "Exported workbook", "resource", resource, "rows", len(rows))
	return data, nil
}
