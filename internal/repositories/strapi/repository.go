package strapi

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

// Populate expressions per collection. One level of "*" is enough for every table;
// brigades also need the lookup name inside the trainee's brigade.
const (
	populateAll       = "populate=*"
	populateStagiaire = "populate[image]=*&populate[specialite]=*&populate[stage]=*&populate[brigade][populate][brigade_name]=*"
	populateBrigade   = "populate[brigade_name]=*&populate[specialite]=*&populate[stage]=*&populate[stagiaires]=*"
	populateUser      = "populate=role"
)

// StrapiRepository implements repositories.Repository against the CMS
type StrapiRepository struct {
	client *Client

	stagiaire    repositories.ResourceRepository[models.Stagiaire]
	specialite   repositories.ResourceRepository[models.Specialite]
	stage        repositories.ResourceRepository[models.Stage]
	brigadeName  repositories.ResourceRepository[models.BrigadeName]
	brigade      repositories.ResourceRepository[models.Brigade]
	permission   repositories.ResourceRepository[models.Permission]
	penition     repositories.ResourceRepository[models.Penition]
	remark       repositories.ResourceRepository[models.Remark]
	consultation repositories.ResourceRepository[models.Consultation]
	user         repositories.ResourceRepository[models.User]

	files    repositories.FileRepository
	accounts repositories.AccountRepository
	activity repositories.ActivityRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	Client   ClientConfig
	Activity repositories.ActivityRepository
	Logger   *slog.Logger
}

// NewStrapiRepository creates a repository manager with every collection
func NewStrapiRepository(config RepositoryConfig) repositories.Repository {
	client := NewClient(config.Client, config.Logger)
	return newRepository(client, config.Activity)
}

func newRepository(client *Client, activity repositories.ActivityRepository) *StrapiRepository {
	repo := &StrapiRepository{client: client, activity: activity}

	repo.stagiaire = NewResource[models.Stagiaire](client, ResourceDef{
		Schema:   repositories.StagiaireSchema,
		Populate: populateStagiaire,
	})
	repo.specialite = NewResource[models.Specialite](client, ResourceDef{
		Schema:   repositories.SpecialiteSchema,
		Populate: populateAll,
	})
	repo.stage = NewResource[models.Stage](client, ResourceDef{
		Schema:   repositories.StageSchema,
		Populate: populateAll,
	})
	repo.brigadeName = NewResource[models.BrigadeName](client, ResourceDef{
		Schema: repositories.BrigadeNameSchema,
	})
	repo.brigade = NewResource[models.Brigade](client, ResourceDef{
		Schema:   repositories.BrigadeSchema,
		Populate: populateBrigade,
	})
	repo.permission = NewResource[models.Permission](client, ResourceDef{
		Schema:   repositories.PermissionSchema,
		Populate: populateAll,
	})
	repo.penition = NewResource[models.Penition](client, ResourceDef{
		Schema:   repositories.PenitionSchema,
		Populate: populateAll,
	})
	repo.remark = NewResource[models.Remark](client, ResourceDef{
		Schema:   repositories.RemarkSchema,
		Populate: populateAll,
	})
	repo.consultation = NewResource[models.Consultation](client, ResourceDef{
		Schema:   repositories.ConsultationSchema,
		Populate: populateAll,
	})

	// users-permissions answers bare bodies and addresses users by numeric id
	repo.user = NewResource[models.User](client, ResourceDef{
		Schema:          repositories.UserSchema,
		Populate:        populateUser,
		Envelope:        Bare,
		PathByNumericID: true,
	})

	repo.files = NewFiles(client)
	repo.accounts = NewAccounts(client)
	return repo
}

func (r *StrapiRepository) Stagiaire() repositories.ResourceRepository[models.Stagiaire] {
	return r.stagiaire
}

func (r *StrapiRepository) Specialite() repositories.ResourceRepository[models.Specialite] {
	return r.specialite
}

func (r *StrapiRepository) Stage() repositories.ResourceRepository[models.Stage] {
	return r.stage
}

func (r *StrapiRepository) BrigadeName() repositories.ResourceRepository[models.BrigadeName] {
	return r.brigadeName
}

func (r *StrapiRepository) Brigade() repositories.ResourceRepository[models.Brigade] {
	return r.brigade
}

func (r *StrapiRepository) Permission() repositories.ResourceRepository[models.Permission] {
	return r.permission
}

func (r *StrapiRepository) Penition() repositories.ResourceRepository[models.Penition] {
	return r.penition
}

func (r *StrapiRepository) Remark() repositories.ResourceRepository[models.Remark] {
	return r.remark
}

func (r *StrapiRepository) Consultation() repositories.ResourceRepository[models.Consultation] {
	return r.consultation
}

func (r *StrapiRepository) User() repositories.ResourceRepository[models.User] {
	return r.user
}

// Files returns the media library client
func (r *StrapiRepository) Files() repositories.FileRepository {
	return r.files
}

// Accounts returns the users-permissions client
func (r *StrapiRepository) Accounts() repositories.AccountRepository {
	return r.accounts
}

// Activity returns the local audit trail store
func (r *StrapiRepository) Activity() repositories.ActivityRepository {
	return r.activity
}

// Ping checks the CMS is reachable
func (r *StrapiRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
