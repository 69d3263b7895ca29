package repositories

import (
	"context"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

// Repository groups every repository the dashboard talks to
type Repository interface {
	// CMS collections
	Stagiaire() ResourceRepository[models.Stagiaire]
	Specialite() ResourceRepository[models.Specialite]
	Stage() ResourceRepository[models.Stage]
	BrigadeName() ResourceRepository[models.BrigadeName]
	Brigade() ResourceRepository[models.Brigade]
	Permission() ResourceRepository[models.Permission]
	Penition() ResourceRepository[models.Penition]
	Remark() ResourceRepository[models.Remark]
	Consultation() ResourceRepository[models.Consultation]
	User() ResourceRepository[models.User]

	// CMS endpoints outside the collections
	Files() FileRepository
	Accounts() AccountRepository

	// Local audit trail; may be a no-op store
	Activity() ActivityRepository

	// Health check
	Ping(ctx context.Context) error
}
