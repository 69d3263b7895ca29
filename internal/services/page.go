package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/SAP-F-2025/trainee-dashboard/internal/filter"
	"github.com/SAP-F-2025/trainee-dashboard/internal/form"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/notify"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

// Page is the resource manager behind one table: the fetched collection, its single
// notification and the pending delete. Every failure leaves the page usable.
type Page[T models.Entity] struct {
	section  models.Section
	repo     repositories.ResourceRepository[T]
	files    repositories.FileRepository
	spec     filter.Spec[T]
	notifier *notify.Notifier
	confirm  notify.Confirmation[T]
	audit    Auditor
	logger   *slog.Logger

	mu         sync.RWMutex
	items      []T
	generation uint64
	loaded     bool
}

// Auditor records the outcome of a mutation.
type Auditor interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditEntry is one mutation outcome as seen by a page.
type AuditEntry struct {
	Section    models.Section
	Resource   string
	Action     string
	DocumentID string
	Err        error
	Fields     map[string]any
}

// PageConfig holds what a page needs besides its collection.
type PageConfig struct {
	Section  models.Section
	Files    repositories.FileRepository
	Notifier *notify.Notifier
	Audit    Auditor
	Logger   *slog.Logger
}

func NewPage[T models.Entity](repo repositories.ResourceRepository[T], spec filter.Spec[T], cfg PageConfig) *Page[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NewNotifier(notify.Options{Section: string(cfg.Section), Logger: logger})
	}
	return &Page[T]{
		section:  cfg.Section,
		repo:     repo,
		files:    cfg.Files,
		spec:     spec,
		notifier: notifier,
		audit:    cfg.Audit,
		logger:   logger.With("section", cfg.Section),
	}
}

func (p *Page[T]) Section() models.Section { return p.section }

func (p *Page[T]) Schema() repositories.Schema { return p.repo.Schema() }

// Refresh re-fetches the whole collection. A response that arrives after a newer
// refresh started is dropped. On failure the previous items are kept and an error
// notification is shown.
func (p *Page[T]) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	items, err := p.repo.List(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		p.logger.DebugContext(ctx, "Dropping stale collection", "generation", gen)
		return nil
	}
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to fetch collection", "error", err)
		p.notifier.Error(ctx, UserMessage(err))
		return err
	}
	p.items = items
	p.loaded = true
	return nil
}

// Loaded reports whether a fetch has succeeded at least once.
func (p *Page[T]) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// Items filters the last fetched collection.
func (p *Page[T]) Items(q filter.Query) models.ListResponse[T] {
	p.mu.RLock()
	all := p.items
	p.mu.RUnlock()

	filtered := filter.Apply(all, p.spec, q)
	return models.ListResponse[T]{
		Items:    filtered,
		Total:    len(all),
		Filtered: len(filtered),
		Notice:   p.notifier.Current(),
	}
}

// ParseQuery reads the predicates this page's table supports from values.
func (p *Page[T]) ParseQuery(values url.Values) filter.Query {
	return filter.ParseQuery(values, p.spec)
}

// Find returns the fetched record addressed by id, by path id or documentId.
func (p *Page[T]) Find(id string) (T, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, item := range p.items {
		if p.repo.ItemID(item) == id || item.Key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// NewForm opens a create draft for an empty id, an edit draft otherwise.
func (p *Page[T]) NewForm(id string, defaults map[string]any) (*form.Controller, error) {
	if id == "" {
		return form.NewCreate(p.repo.Schema(), defaults), nil
	}
	entity, ok := p.Find(id)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", p.repo.Schema().Resource, id, ErrNotFound)
	}
	return form.NewEdit(p.repo.Schema(), p.repo.ItemID(entity), entity)
}

// Submit persists a draft, refetches the collection and reports the outcome.
func (p *Page[T]) Submit(ctx context.Context, c *form.Controller) (*T, error) {
	action := "create"
	if c.Mode() == form.Edit {
		action = "update"
	}

	saved, err := form.Submit(ctx, c, p.repo, p.files)
	p.record(ctx, action, c.ID(), err, c.Mutation().Fields)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to save record", "action", action, "id", c.ID(), "error", err)
		p.notifier.Error(ctx, UserMessage(err))
		return nil, err
	}

	p.afterWrite(ctx, fmt.Sprintf("%s %sd successfully", p.section, action))
	return saved, nil
}

// RequestDelete opens the confirmation for the record addressed by id.
func (p *Page[T]) RequestDelete(id string) (T, error) {
	entity, ok := p.Find(id)
	if !ok {
		return entity, fmt.Errorf("%s %s: %w", p.repo.Schema().Resource, id, ErrNotFound)
	}
	p.confirm.Request(entity)
	return entity, nil
}

// PendingDelete returns the record awaiting confirmation.
func (p *Page[T]) PendingDelete() (T, bool) {
	return p.confirm.Pending()
}

// CancelDelete closes the confirmation.
func (p *Page[T]) CancelDelete() {
	p.confirm.Cancel()
}

// ConfirmDelete removes the pending record. The confirmation is closed whatever the
// outcome; the collection is refetched only on success.
func (p *Page[T]) ConfirmDelete(ctx context.Context) error {
	var id string
	ok, err := p.confirm.Confirm(ctx, func(ctx context.Context, entity T) error {
		id = p.repo.ItemID(entity)
		return p.repo.Remove(ctx, id)
	})
	if !ok {
		return ErrNoPendingDelete
	}

	p.record(ctx, "delete", id, err, nil)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to delete record", "id", id, "error", err)
		p.notifier.Error(ctx, UserMessage(err))
		return err
	}

	p.afterWrite(ctx, fmt.Sprintf("%s deleted successfully", p.section))
	return nil
}

// afterWrite re-fetches the collection and reports a successful write. A failed
// re-fetch is reported together with the write so that it stays visible.
func (p *Page[T]) afterWrite(ctx context.Context, success string) {
	if err := p.Refresh(ctx); err != nil {
		p.notifier.Error(ctx, fmt.Sprintf("%s, but the list could not be reloaded: %s", success, UserMessage(err)))
		return
	}
	p.notifier.Success(ctx, success)
}

// Notice returns the visible notification.
func (p *Page[T]) Notice() *models.Flash {
	return p.notifier.Current()
}

// DismissNotice closes the notification.
func (p *Page[T]) DismissNotice() {
	p.notifier.Dismiss()
}

func (p *Page[T]) record(ctx context.Context, action, id string, err error, fields map[string]any) {
	if p.audit == nil {
		return
	}
	p.audit.Record(ctx, AuditEntry{
		Section:    p.section,
		Resource:   p.repo.Schema().Resource,
		Action:     action,
		DocumentID: id,
		Err:        err,
		Fields:     fields,
	})
}
