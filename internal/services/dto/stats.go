package dto

import (
	"time"

	"portfolia_backend/internal/models"
)

// PortfolioStatsResponse - статистика просмотров одного портфолио.
type PortfolioStatsResponse struct {
	PortfolioID   string `json:"portfolio_id"`
	TotalViews    int64  `json:"total_views"`
	ViewsToday    int64  `json:"views_today"`
	ViewsThisWeek int64  `json:"views_this_week"`
	UniqueViewers int64  `json:"unique_viewers"`
	PendingAccess int64  `json:"pending_access_requests"`
}

// ViewLogResponse - одна запись журнала просмотров.
type ViewLogResponse struct {
	ID          string    `json:"id"`
	ViewerID    *string   `json:"viewer_id,omitempty"`
	ViewerName  string    `json:"viewer_name,omitempty"`
	ViewerEmail string    `json:"viewer_email,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	ViewedAt    time.Time `json:"viewed_at"`
}

type ViewLogListResponse struct {
	Views      []ViewLogResponse `json:"views"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// PlatformStatsResponse - сводка по платформе (админ).
type PlatformStatsResponse struct {
	TotalUsers       int64 `json:"total_users"`
	TotalAdmins      int64 `json:"total_admins"`
	TotalPortfolios  int64 `json:"total_portfolios"`
	PublicPortfolios int64 `json:"public_portfolios"`
}

// NewViewLogResponse маппит модель в DTO.
func NewViewLogResponse(l *models.PortfolioViewLog) ViewLogResponse {
	return ViewLogResponse{
		ID:          l.ID,
		ViewerID:    l.ViewerID,
		ViewerName:  l.ViewerName,
		ViewerEmail: l.ViewerEmail,
		IPAddress:   l.IPAddress,
		ViewedAt:    l.CreatedAt,
	}
}
