package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the locally persisted audit row of one dashboard mutation.
type ActivityLog struct {
	ID         string         `json:"id" gorm:"primaryKey;size:36"`
	UserID     string         `json:"user_id" gorm:"size:64;index"`
	Username   string         `json:"username" gorm:"size:255"`
	Section    string         `json:"section" gorm:"size:32"`
	Resource   string         `json:"resource" gorm:"size:64;index"`
	Action     string         `json:"action" gorm:"size:16"`
	DocumentID string         `json:"document_id" gorm:"size:64"`
	Success    bool           `json:"success"`
	Message    string         `json:"message" gorm:"type:text"`
	Payload    datatypes.JSON `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
}

func (ActivityLog) TableName() string {
	return "dashboard_activity"
}
