package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"` // "access_requested", "access_approved", "access_rejected", "portfolio_viewed"
	Title   string         `gorm:"size:200;not null" json:"title"`
	Message string         `gorm:"size:1000" json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"portfolio_id": "...", "access_request_id": "..."}
	IsRead  bool           `gorm:"default:false" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at,omitempty"`
}
