package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

type ActivityPostgreSQL struct {
	db *gorm.DB
}

// NewActivityRepository returns the gorm store, or a store that keeps nothing when db is nil.
func NewActivityRepository(db *gorm.DB) repositories.ActivityRepository {
	if db == nil {
		return NopActivity{}
	}
	return &ActivityPostgreSQL{db: db}
}

// Migrate creates the activity table
func Migrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&models.ActivityLog{})
}

func (a *ActivityPostgreSQL) Record(ctx context.Context, activity *repositories.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	row := models.ActivityLog{
		ID:         activity.ID,
		UserID:     activity.UserID,
		Username:   activity.Username,
		Section:    activity.Section,
		Resource:   activity.Resource,
		Action:     activity.Action,
		DocumentID: activity.DocumentID,
		Success:    activity.Success,
		Message:    activity.Message,
		CreatedAt:  activity.CreatedAt,
	}
	if len(activity.Payload) > 0 {
		row.Payload = datatypes.JSON(activity.Payload)
	}
	return a.db.WithContext(ctx).Create(&row).Error
}

func (a *ActivityPostgreSQL) List(ctx context.Context, filters repositories.ActivityFilters) ([]repositories.Activity, int64, error) {
	var rows []models.ActivityLog
	var total int64

	// apply filter first
	query := a.db.WithContext(ctx).Model(&models.ActivityLog{})
	query = a.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	query = query.Order("created_at DESC").Limit(limit).Offset(max(filters.Offset, 0))

	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]repositories.Activity, 0, len(rows))
	for _, row := range rows {
		out = append(out, repositories.Activity{
			ID:         row.ID,
			UserID:     row.UserID,
			Username:   row.Username,
			Section:    row.Section,
			Resource:   row.Resource,
			Action:     row.Action,
			DocumentID: row.DocumentID,
			Success:    row.Success,
			Message:    row.Message,
			Payload:    []byte(row.Payload),
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, total, nil
}

func (a *ActivityPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ActivityFilters) *gorm.DB {
	if filters.Resource != "" {
		query = query.Where("resource = ?", filters.Resource)
	}
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.Since != nil {
		query = query.Where("created_at >= ?", *filters.Since)
	}
	return query
}

// NopActivity discards records; used when no database is configured.
type NopActivity struct{}

func (NopActivity) Record(context.Context, *repositories.Activity) error { return nil }

func (NopActivity) List(context.Context, repositories.ActivityFilters) ([]repositories.Activity, int64, error) {
	return []repositories.Activity{}, 0, nil
}
