package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/SAP-F-2025/trainee-dashboard/internal/dates"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

// ===== SERVICE INTERFACE =====

type PedagogiqueService interface {
	// Trainee returns the drill-down of one trainee
	Trainee(ctx context.Context, stagiaireID string) (*models.TraineeRecord, error)
	// Overview returns one stats row per trainee, in collection order
	Overview(ctx context.Context) ([]models.TraineeStats, error)
}

type pedagogiqueService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewPedagogiqueService(repo repositories.Repository, logger *slog.Logger) PedagogiqueService {
	return &pedagogiqueService{repo: repo, logger: logger}
}

// program is every collection the pedagogical views are built from.
type program struct {
	stagiaires  []models.Stagiaire
	remarks     []models.Remark
	penitions   []models.Penition
	permissions []models.Permission
}

func (s *pedagogiqueService) load(ctx context.Context) (*program, error) {
	var p program
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		p.stagiaires, err = s.repo.Stagiaire().List(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.remarks, err = s.repo.Remark().List(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.penitions, err = s.repo.Penition().List(ctx)
		return err
	})
	g.Go(func() (err error) {
		p.permissions, err = s.repo.Permission().List(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load program records", "error", err)
		return nil, fmt.Errorf("failed to load program records: %w", err)
	}
	return &p, nil
}

func (s *pedagogiqueService) Trainee(ctx context.Context, stagiaireID string) (*models.TraineeRecord, error) {
	p, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(p.stagiaires, func(st models.Stagiaire) bool {
		return st.Key() == stagiaireID
	})
	if idx < 0 {
		return nil, fmt.Errorf("stagiaire %s: %w", stagiaireID, ErrNotFound)
	}

	remarks := remarksOf(p.remarks, stagiaireID)
	penitions := nonNil(involving(p.penitions, stagiaireID, func(x models.Penition) []models.Stagiaire { return x.Stagiaires }))
	permissions := nonNil(involving(p.permissions, stagiaireID, func(x models.Permission) []models.Stagiaire { return x.Stagiaires }))
	return &models.TraineeRecord{
		Stagiaire:   p.stagiaires[idx],
		Remarks:     nonNil(remarks),
		Penitions:   penitions,
		Permissions: permissions,
		Stats:       ComputeRemarkStats(remarks),
		Calendar:    calendarOf(permissions, penitions),
	}, nil
}

// calendarOf lays permissions and penitions out as all-day ranges. Records without
// a parseable date are left out.
func calendarOf(permissions []models.Permission, penitions []models.Penition) []models.CalendarEntry {
	entries := []models.CalendarEntry{}
	for _, x := range permissions {
		end := dates.NextDay(x.EndDate)
		if end == "" {
			end = dates.NextDay(x.StartDate)
		}
		if start := dates.ISODate(x.StartDate); start != "" && end != "" {
			entries = append(entries, models.CalendarEntry{Kind: "permission", Title: string(x.Type), Start: start, End: end})
		}
	}
	for _, x := range penitions {
		if end := dates.NextDay(x.Date); end != "" {
			entries = append(entries, models.CalendarEntry{Kind: "penition", Title: x.Motif, Start: dates.ISODate(x.Date), End: end})
		}
	}
	return entries
}

func (s *pedagogiqueService) Overview(ctx context.Context) ([]models.TraineeStats, error) {
	p, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.TraineeStats, 0, len(p.stagiaires))
	for _, st := range p.stagiaires {
		id := st.Key()
		rows = append(rows, models.TraineeStats{
			DocumentID:  id,
			MLE:         st.MLE,
			FullName:    st.FullName(),
			Penitions:   len(involving(p.penitions, id, func(x models.Penition) []models.Stagiaire { return x.Stagiaires })),
			Permissions: len(involving(p.permissions, id, func(x models.Permission) []models.Stagiaire { return x.Stagiaires })),
			Stats:       ComputeRemarkStats(remarksOf(p.remarks, id)),
		})
	}
	return rows, nil
}

// involving keeps the records whose trainee list contains stagiaireID.
func involving[T any](items []T, stagiaireID string, trainees func(T) []models.Stagiaire) []T {
	var out []T
	for _, item := range items {
		if slices.Contains(models.KeysOf(trainees(item)), stagiaireID) {
			out = append(out, item)
		}
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
