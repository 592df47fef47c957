package dto

import (
	"encoding/json"
	"time"

	"portfolia_backend/internal/models"
)

// ---------------- Requests ----------------

// NotificationListQuery - параметры выборки уведомлений.
type NotificationListQuery struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type" validate:"omitempty,oneof=access_requested access_approved access_rejected portfolio_viewed"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// ---------------- Responses ----------------

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// NewNotificationResponse маппит модель в DTO.
func NewNotificationResponse(n *models.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if len(n.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(n.Data, &data); err == nil {
			resp.Data = data
		}
	}
	return resp
}
