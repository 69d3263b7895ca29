package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/trainee-dashboard/internal/filter"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/notify"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
	"github.com/SAP-F-2025/trainee-dashboard/internal/session"
)

// Workspace holds one user's pages.
type Workspace struct {
	Stagiaires    *Page[models.Stagiaire]
	Specialites   *Page[models.Specialite]
	Stages        *Page[models.Stage]
	BrigadeNames  *Page[models.BrigadeName]
	Brigades      *Page[models.Brigade]
	Permissions   *Page[models.Permission]
	Penitions     *Page[models.Penition]
	Remarks       *Page[models.Remark]
	Consultations *Page[models.Consultation]
	Users         *Page[models.User]

	lastSeen time.Time
}

// WorkspaceConfig holds the settings shared by every workspace
type WorkspaceConfig struct {
	// UsersNoticeTTL auto-dismisses notifications of the Users section. Other sections
	// keep their message until it is closed.
	UsersNoticeTTL time.Duration
	Sink           notify.Sink
	IdleTimeout    time.Duration
}

// Workspaces creates workspaces lazily, one per token.
type Workspaces struct {
	repo     repositories.Repository
	activity *activityService
	config   WorkspaceConfig
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	byUser map[string]*Workspace
}

func newWorkspaces(repo repositories.Repository, activity *activityService, config WorkspaceConfig, logger *slog.Logger) *Workspaces {
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = 30 * time.Minute
	}
	return &Workspaces{
		repo:     repo,
		activity: activity,
		config:   config,
		logger:   logger,
		now:      time.Now,
		byUser:   map[string]*Workspace{},
	}
}

// For returns the workspace of the session, creating it on first use.
func (w *Workspaces) For(s session.Session) *Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.evictIdle(now)

	ws, ok := w.byUser[s.TokenKey]
	if !ok {
		ws = w.build(s)
		w.byUser[s.TokenKey] = ws
	}
	ws.lastSeen = now
	return ws
}

// Len returns the number of live workspaces.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.byUser)
}

func (w *Workspaces) evictIdle(now time.Time) {
	for key, ws := range w.byUser {
		if now.Sub(ws.lastSeen) > w.config.IdleTimeout {
			delete(w.byUser, key)
		}
	}
}

func (w *Workspaces) build(s session.Session) *Workspace {
	logger := w.logger.With("user_id", s.UserID())
	var audit Auditor
	if w.activity != nil {
		audit = w.activity.auditor(s)
	}

	cfg := func(section models.Section) PageConfig {
		var ttl time.Duration
		if section == models.SectionUsers {
			ttl = w.config.UsersNoticeTTL
		}
		return PageConfig{
			Section: section,
			Files:   w.repo.Files(),
			Notifier: notify.NewNotifier(notify.Options{
				Section:     string(section),
				UserID:      s.UserID(),
				AutoDismiss: ttl,
				Sink:        w.config.Sink,
				Logger:      logger,
				Now:         func() time.Time { return w.now() },
			}),
			Audit:  audit,
			Logger: logger,
		}
	}

	return &Workspace{
		Stagiaires:    NewPage(w.repo.Stagiaire(), filter.Stagiaires, cfg(models.SectionStagiaire)),
		Specialites:   NewPage(w.repo.Specialite(), filter.Specialites, cfg(models.SectionSpecialite)),
		Stages:        NewPage(w.repo.Stage(), filter.Stages, cfg(models.SectionStage)),
		BrigadeNames:  NewPage(w.repo.BrigadeName(), filter.BrigadeNames, cfg(models.SectionNomBrigade)),
		Brigades:      NewPage(w.repo.Brigade(), filter.Brigades, cfg(models.SectionBrigade)),
		Permissions:   NewPage(w.repo.Permission(), filter.Permissions, cfg(models.SectionPermission)),
		Penitions:     NewPage(w.repo.Penition(), filter.Penitions, cfg(models.SectionPenition)),
		Remarks:       NewPage(w.repo.Remark(), filter.Remarks, cfg(models.SectionRemarque)),
		Consultations: NewPage(w.repo.Consultation(), filter.Consultations, cfg(models.SectionConsultation)),
		Users:         NewPage(w.repo.User(), filter.Users, cfg(models.SectionUsers)),
	}
}

// Notices returns the visible notification of every section that has one.
func (ws *Workspace) Notices() map[models.Section]*models.Flash {
	out := map[models.Section]*models.Flash{}
	for section, n := range ws.notices() {
		if flash := n(); flash != nil {
			out[section] = flash
		}
	}
	return out
}

// Dismiss closes the notification of section. It reports false for unknown sections.
func (ws *Workspace) Dismiss(section models.Section) bool {
	switch section {
	case models.SectionStagiaire:
		ws.Stagiaires.DismissNotice()
	case models.SectionSpecialite:
		ws.Specialites.DismissNotice()
	case models.SectionStage:
		ws.Stages.DismissNotice()
	case models.SectionNomBrigade:
		ws.BrigadeNames.DismissNotice()
	case models.SectionBrigade:
		ws.Brigades.DismissNotice()
	case models.SectionPermission:
		ws.Permissions.DismissNotice()
	case models.SectionPenition:
		ws.Penitions.DismissNotice()
	case models.SectionRemarque:
		ws.Remarks.DismissNotice()
	case models.SectionConsultation:
		ws.Consultations.DismissNotice()
	case models.SectionUsers:
		ws.Users.DismissNotice()
	default:
		return false
	}
	return true
}

func (ws *Workspace) notices() map[models.Section]func() *models.Flash {
	return map[models.Section]func() *models.Flash{
		models.SectionStagiaire:    ws.Stagiaires.Notice,
		models.SectionSpecialite:   ws.Specialites.Notice,
		models.SectionStage:        ws.Stages.Notice,
		models.SectionNomBrigade:   ws.BrigadeNames.Notice,
		models.SectionBrigade:      ws.Brigades.Notice,
		models.SectionPermission:   ws.Permissions.Notice,
		models.SectionPenition:     ws.Penitions.Notice,
		models.SectionRemarque:     ws.Remarks.Notice,
		models.SectionConsultation: ws.Consultations.Notice,
		models.SectionUsers:        ws.Users.Notice,
	}
}

// Notice returns the visible notification of section.
func (ws *Workspace) Notice(section models.Section) *models.Flash {
	if n, ok := ws.notices()[section]; ok {
		return n()
	}
	return nil
}

// refreshAll is used by tests and warmup; errors are already reported per page.
func (ws *Workspace) refreshAll(ctx context.Context) {
	ws.Stagiaires.Refresh(ctx)
	ws.Specialites.Refresh(ctx)
	ws.Stages.Refresh(ctx)
	ws.BrigadeNames.Refresh(ctx)
	ws.Brigades.Refresh(ctx)
	ws.Permissions.Refresh(ctx)
	ws.Penitions.Refresh(ctx)
	ws.Remarks.Refresh(ctx)
	ws.Consultations.Refresh(ctx)
	ws.Users.Refresh(ctx)
}
