package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/SAP-F-2025/trainee-dashboard/internal/cache"
	"github.com/SAP-F-2025/trainee-dashboard/internal/dates"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

// ===== SERVICE INTERFACE =====

// ReferenceService loads the selectable values of every relation field of a form.
type ReferenceService interface {
	// For returns the options per relation field name of schema
	For(ctx context.Context, schema repositories.Schema) (map[string][]models.Option, error)
	Roles(ctx context.Context) ([]models.Role, error)
}

type referenceService struct {
	repo   repositories.Repository
	roles  *cache.CacheHelper
	logger *slog.Logger
}

func NewReferenceService(repo repositories.Repository, roles *cache.CacheHelper, logger *slog.Logger) ReferenceService {
	return &referenceService{repo: repo, roles: roles, logger: logger}
}

type optionLoader func(ctx context.Context) ([]models.Option, error)

// loaders maps relation field names onto the collection they point at.
func (s *referenceService) loaders() map[string]optionLoader {
	stagiaires := func(ctx context.Context) ([]models.Option, error) {
		return options(ctx, s.repo.Stagiaire(), func(x models.Stagiaire) string {
			if x.MLE == "" {
				return x.FullName()
			}
			return x.MLE + " - " + x.FullName()
		})
	}
	specialites := func(ctx context.Context) ([]models.Option, error) {
		return options(ctx, s.repo.Specialite(), func(x models.Specialite) string { return x.Name })
	}
	stages := func(ctx context.Context) ([]models.Option, error) {
		return options(ctx, s.repo.Stage(), func(x models.Stage) string { return x.Name })
	}
	brigades := func(ctx context.Context) ([]models.Option, error) {
		return options(ctx, s.repo.Brigade(), func(x models.Brigade) string {
			if year := dates.YearUTC(x.Year); year != 0 {
				return fmt.Sprintf("%s (%d)", x.Label(), year)
			}
			return x.Label()
		})
	}

	return map[string]optionLoader{
		"stagiaire":    stagiaires,
		"stagiaires":   stagiaires,
		"specialite":   specialites,
		"specialites":  specialites,
		"stage":        stages,
		"stages":       stages,
		"brigade":      brigades,
		"brigades":     brigades,
		"brigade_name": func(ctx context.Context) ([]models.Option, error) {
			return options(ctx, s.repo.BrigadeName(), func(x models.BrigadeName) string { return x.Name })
		},
		"role": func(ctx context.Context) ([]models.Option, error) {
			roles, err := s.Roles(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]models.Option, 0, len(roles))
			for _, r := range roles {
				out = append(out, models.Option{ID: strconv.Itoa(r.ID), Label: r.Name})
			}
			return out, nil
		},
	}
}

// For fetches every reference list concurrently. The first failure cancels the others.
func (s *referenceService) For(ctx context.Context, schema repositories.Schema) (map[string][]models.Option, error) {
	loaders := s.loaders()
	out := make(map[string][]models.Option, len(schema.Relations))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, rel := range schema.Relations {
		load, ok := loaders[rel.Name]
		if !ok {
			continue
		}
		g.Go(func() error {
			opts, err := load(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", rel.Name, err)
			}
			mu.Lock()
			out[rel.Name] = opts
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load form references", "resource", schema.Resource, "error", err)
		return nil, fmt.Errorf("failed to load references: %w", err)
	}
	return out, nil
}

// Roles returns the users-permissions roles, cached for all callers.
func (s *referenceService) Roles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := s.roles.CacheOrExecute(ctx, "all", &roles, cache.RolesCacheConfig.TTL, func() (interface{}, error) {
		return s.repo.Accounts().Roles(ctx)
	})
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []models.Role{}
	}
	return roles, nil
}

func options[T models.Entity](ctx context.Context, repo repositories.ResourceRepository[T], label func(T) string) ([]models.Option, error) {
	items, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Option, 0, len(items))
	for _, item := range items {
		out = append(out, models.Option{ID: repo.ItemID(item), Label: label(item)})
	}
	return out, nil
}
