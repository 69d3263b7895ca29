package repositories

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

// ===== RESOURCE REPOSITORIES =====

// ResourceRepository is the per-entity client for one CMS collection.
type ResourceRepository[T models.Entity] interface {
	Schema() Schema
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, m *Mutation) (*T, error)
	Update(ctx context.Context, id string, m *Mutation) (*T, error)
	// Remove succeeds only when the backend answers 204 No Content.
	Remove(ctx context.Context, id string) error
	// ItemID is the path identifier the collection addresses e by.
	ItemID(e T) string
}

// FileRepository uploads media to the CMS.
type FileRepository interface {
	Upload(ctx context.Context, filename string, r io.Reader) (models.FileRef, error)
}

// AccountRepository exposes the users-permissions endpoints that are not plain collections.
type AccountRepository interface {
	Me(ctx context.Context) (*models.User, error)
	Roles(ctx context.Context) ([]models.Role, error)
}

// ===== MUTATIONS =====

// Mutation is a backend-neutral create/update request. Fields holds scalar values,
// nil entries are treated as "not mentioned" and dropped. Relations holds the current
// selection per relation field; Original holds the selection the record had when the
// edit began, so that cleared relations can be detached explicitly.
type Mutation struct {
	Edit      bool
	Fields    map[string]any
	Relations map[string][]string
	Original  map[string][]string
	File      *models.FileRef
}

// ===== ACTIVITY LOG =====

// Activity is one recorded mutation outcome.
type Activity struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Username   string          `json:"username"`
	Section    string          `json:"section"`
	Resource   string          `json:"resource"`
	Action     string          `json:"action"`
	DocumentID string          `json:"document_id"`
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type ActivityFilters struct {
	Resource string
	UserID   string
	Since    *time.Time
	Limit    int
	Offset   int
}

// ActivityRepository persists the dashboard's own audit trail.
type ActivityRepository interface {
	Record(ctx context.Context, a *Activity) error
	List(ctx context.Context, filters ActivityFilters) ([]Activity, int64, error)
}
