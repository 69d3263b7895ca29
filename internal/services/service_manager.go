package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/trainee-dashboard/internal/cache"
	"github.com/SAP-F-2025/trainee-dashboard/internal/events"
	"github.com/SAP-F-2025/trainee-dashboard/internal/notify"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
	"github.com/SAP-F-2025/trainee-dashboard/internal/session"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	SessionCacheTTL time.Duration

	// Notifications of the Users section dismiss themselves after this long
	UsersNoticeTTL    time.Duration
	NotificationTopic string

	// Per-user page state is dropped after this much inactivity
	WorkspaceIdleTimeout time.Duration

	DefaultTimeout time.Duration
}

// DefaultServiceManagerConfig returns the settings used when nothing is configured
func DefaultServiceManagerConfig() ServiceManagerConfig {
	return ServiceManagerConfig{
		SessionCacheTTL:      cache.SessionCacheConfig.TTL,
		UsersNoticeTTL:       4000 * time.Millisecond,
		NotificationTopic:    "dashboard.notifications",
		WorkspaceIdleTimeout: 30 * time.Minute,
		DefaultTimeout:       30 * time.Second,
	}
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	caches    *cache.CacheManager
	publisher events.EventPublisher
	logger    *slog.Logger
	config    ServiceManagerConfig

	// Service instances
	sessions    *session.Resolver
	workspaces  *Workspaces
	references  ReferenceService
	stats       StatsService
	pedagogique PedagogiqueService
	export      ExportService
	activity    *activityService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies. caches and
// publisher may be nil.
func NewServiceManager(repo repositories.Repository, caches *cache.CacheManager, publisher events.EventPublisher, logger *slog.Logger, config ServiceManagerConfig) ServiceManager {
	if caches == nil {
		caches = cache.NewCacheManager(nil)
	}
	if config.DefaultTimeout <= 0 {
		config.DefaultTimeout = DefaultServiceManagerConfig().DefaultTimeout
	}
	return &serviceManager{
		repo:      repo,
		caches:    caches,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	var sink notify.Sink
	if sm.publisher != nil {
		sink = events.NewNotificationSink(sm.publisher, sm.config.NotificationTopic)
	}

	sm.sessions = session.NewResolver(sm.repo.Accounts(), sm.caches.Session, sm.config.SessionCacheTTL, sm.logger)
	sm.activity = newActivityService(sm.repo.Activity(), sm.publisher, sm.logger)
	sm.workspaces = newWorkspaces(sm.repo, sm.activity, WorkspaceConfig{
		UsersNoticeTTL: sm.config.UsersNoticeTTL,
		Sink:           sink,
		IdleTimeout:    sm.config.WorkspaceIdleTimeout,
	}, sm.logger)
	sm.references = NewReferenceService(sm.repo, sm.caches.Roles, sm.logger)
	sm.stats = NewStatsService(sm.repo, sm.logger)
	sm.pedagogique = NewPedagogiqueService(sm.repo, sm.logger)
	sm.export = NewExportService(sm.repo, sm.logger)

	if err := sm.caches.HealthCheck(ctx); err != nil {
		sm.logger.Warn("Cache unavailable, sessions resolve live", "error", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Sessions() *session.Resolver {
	sm.mustBeInitialized()
	return sm.sessions
}

func (sm *serviceManager) Workspaces() *Workspaces {
	sm.mustBeInitialized()
	return sm.workspaces
}

func (sm *serviceManager) References() ReferenceService {
	sm.mustBeInitialized()
	return sm.references
}

func (sm *serviceManager) Stats() StatsService {
	sm.mustBeInitialized()
	return sm.stats
}

func (sm *serviceManager) Pedagogique() PedagogiqueService {
	sm.mustBeInitialized()
	return sm.pedagogique
}

func (sm *serviceManager) Export() ExportService {
	sm.mustBeInitialized()
	return sm.export
}

func (sm *serviceManager) Activity() ActivityService {
	sm.mustBeInitialized()
	return sm.activity
}

func (sm *serviceManager) mustBeInitialized() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	ctx, cancel := context.WithTimeout(ctx, sm.config.DefaultTimeout)
	defer cancel()

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("backend health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
