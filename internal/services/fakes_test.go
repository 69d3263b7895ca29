package services

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeResource[T models.Entity] struct {
	mu        sync.Mutex
	schema    repositories.Schema
	items     []T
	listErr   error
	writeErr  error
	removeErr error
	// listFn overrides items/listErr; call counts from 1
	listFn func(call int) ([]T, error)

	lists   int
	writes  []*repositories.Mutation
	removed []string
}

func newFakeResource[T models.Entity](schema repositories.Schema, items ...T) *fakeResource[T] {
	return &fakeResource[T]{schema: schema, items: items}
}

func (f *fakeResource[T]) Schema() repositories.Schema { return f.schema }

func (f *fakeResource[T]) List(context.Context) ([]T, error) {
	f.mu.Lock()
	f.lists++
	call, fn, items, err := f.lists, f.listFn, append([]T(nil), f.items...), f.listErr
	f.mu.Unlock()

	if fn != nil {
		return fn(call)
	}
	return items, err
}

func (f *fakeResource[T]) Create(_ context.Context, m *repositories.Mutation) (*T, error) {
	return f.write(m)
}

func (f *fakeResource[T]) Update(_ context.Context, _ string, m *repositories.Mutation) (*T, error) {
	return f.write(m)
}

func (f *fakeResource[T]) write(m *repositories.Mutation) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, m)
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	var saved T
	return &saved, nil
}

func (f *fakeResource[T]) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	return f.removeErr
}

func (f *fakeResource[T]) ItemID(e T) string {
	if f.schema.Resource == repositories.UserSchema.Resource {
		return strconv.Itoa(e.NumericID())
	}
	return e.Key()
}

func (f *fakeResource[T]) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

type fakeAccounts struct {
	me       *models.User
	roles    []models.Role
	err      error
	roleHits int
}

func (a *fakeAccounts) Me(context.Context) (*models.User, error) { return a.me, a.err }

func (a *fakeAccounts) Roles(context.Context) ([]models.Role, error) {
	a.roleHits++
	return a.roles, a.err
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []repositories.Activity
}

func (a *fakeActivity) Record(_ context.Context, activity *repositories.Activity) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, *activity)
	return nil
}

func (a *fakeActivity) List(context.Context, repositories.ActivityFilters) ([]repositories.Activity, int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]repositories.Activity(nil), a.entries...), int64(len(a.entries)), nil
}

type fakeRepository struct {
	stagiaires    *fakeResource[models.Stagiaire]
	specialites   *fakeResource[models.Specialite]
	stages        *fakeResource[models.Stage]
	brigadeNames  *fakeResource[models.BrigadeName]
	brigades      *fakeResource[models.Brigade]
	permissions   *fakeResource[models.Permission]
	penitions     *fakeResource[models.Penition]
	remarks       *fakeResource[models.Remark]
	consultations *fakeResource[models.Consultation]
	users         *fakeResource[models.User]
	accounts      *fakeAccounts
	activity      *fakeActivity
	pingErr       error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		stagiaires:    newFakeResource[models.Stagiaire](repositories.StagiaireSchema),
		specialites:   newFakeResource[models.Specialite](repositories.SpecialiteSchema),
		stages:        newFakeResource[models.Stage](repositories.StageSchema),
		brigadeNames:  newFakeResource[models.BrigadeName](repositories.BrigadeNameSchema),
		brigades:      newFakeResource[models.Brigade](repositories.BrigadeSchema),
		permissions:   newFakeResource[models.Permission](repositories.PermissionSchema),
		penitions:     newFakeResource[models.Penition](repositories.PenitionSchema),
		remarks:       newFakeResource[models.Remark](repositories.RemarkSchema),
		consultations: newFakeResource[models.Consultation](repositories.ConsultationSchema),
		users:         newFakeResource[models.User](repositories.UserSchema),
		accounts:      &fakeAccounts{},
		activity:      &fakeActivity{},
	}
}

func (r *fakeRepository) Stagiaire() repositories.ResourceRepository[models.Stagiaire] {
	return r.stagiaires
}
func (r *fakeRepository) Specialite() repositories.ResourceRepository[models.Specialite] {
	return r.specialites
}
func (r *fakeRepository) Stage() repositories.ResourceRepository[models.Stage] { return r.stages }
func (r *fakeRepository) BrigadeName() repositories.ResourceRepository[models.BrigadeName] {
	return r.brigadeNames
}
func (r *fakeRepository) Brigade() repositories.ResourceRepository[models.Brigade] {
	return r.brigades
}
func (r *fakeRepository) Permission() repositories.ResourceRepository[models.Permission] {
	return r.permissions
}
func (r *fakeRepository) Penition() repositories.ResourceRepository[models.Penition] {
	return r.penitions
}
func (r *fakeRepository) Remark() repositories.ResourceRepository[models.Remark] { return r.remarks }
func (r *fakeRepository) Consultation() repositories.ResourceRepository[models.Consultation] {
	return r.consultations
}
func (r *fakeRepository) User() repositories.ResourceRepository[models.User] { return r.users }
func (r *fakeRepository) Files() repositories.FileRepository                 { return nil }
func (r *fakeRepository) Accounts() repositories.AccountRepository           { return r.accounts }
func (r *fakeRepository) Activity() repositories.ActivityRepository          { return r.activity }
func (r *fakeRepository) Ping(context.Context) error                         { return r.pingErr }

func stagiaire(id, mle, first, last string) models.Stagiaire {
	return models.Stagiaire{Base: models.Base{DocumentID: id}, MLE: mle, FirstName: first, LastName: last}
}

func remark(id string, kind models.RemarkType, s *models.Stagiaire) models.Remark {
	return models.Remark{Base: models.Base{DocumentID: id}, Date: "2024-03-01", Content: "c", Type: kind, Stagiaire: s}
}
