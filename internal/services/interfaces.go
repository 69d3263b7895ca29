package services

import (
	"context"

	"github.com/SAP-F-2025/trainee-dashboard/internal/session"
)

// ===== SERVICE MANAGER =====

// ServiceManager owns every service of the dashboard and their lifecycle
type ServiceManager interface {
	Initialize(ctx context.Context) error

	Sessions() *session.Resolver
	Workspaces() *Workspaces
	References() ReferenceService
	Stats() StatsService
	Pedagogique() PedagogiqueService
	Export() ExportService
	Activity() ActivityService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
