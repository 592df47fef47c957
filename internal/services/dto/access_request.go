package dto

import (
	"time"

	"portfolia_backend/internal/models"
)

// ---------------- Requests ----------------

// CreateAccessRequestRequest - запрос доступа к приватному портфолио.
type CreateAccessRequestRequest struct {
	Message string `json:"message" validate:"omitempty,max=500"`
}

// DecideAccessRequestRequest - решение владельца по запросу.
type DecideAccessRequestRequest struct {
	Approve   bool   `json:"approve"`
	OwnerNote string `json:"owner_note" validate:"omitempty,max=500"`
}

// ---------------- Responses ----------------

type AccessRequestResponse struct {
	ID                string                     `json:"id"`
	PortfolioID       string                     `json:"portfolio_id"`
	PortfolioTitle    string                     `json:"portfolio_title,omitempty"`
	RequesterID       string                     `json:"requester_id"`
	RequesterName     string                     `json:"requester_name,omitempty"`
	Status            models.AccessRequestStatus `json:"status"`
	Message           string                     `json:"message"`
	OwnerResponseNote string                     `json:"owner_response_note,omitempty"`
	DecidedAt         *time.Time                 `json:"decided_at,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
}

type AccessRequestListResponse struct {
	Requests []AccessRequestResponse `json:"requests"`
	Total    int                     `json:"total"`
}

// AccessRequestDebugResponse - анонимная диагностика по портфолио.
type AccessRequestDebugResponse struct {
	PortfolioID     string `json:"portfolio_id"`
	PortfolioExists bool   `json:"portfolio_exists"`
	RequestCount    int    `json:"request_count"`
	PendingCount    int    `json:"pending_count"`
}

// NewAccessRequestResponse маппит модель в DTO.
func NewAccessRequestResponse(r *models.AccessRequest) AccessRequestResponse {
	resp := AccessRequestResponse{
		ID:                r.ID,
		PortfolioID:       r.PortfolioID,
		RequesterID:       r.RequesterID,
		Status:            r.Status,
		Message:           r.Message,
		OwnerResponseNote: r.OwnerResponseNote,
		DecidedAt:         r.DecidedAt,
		CreatedAt:         r.CreatedAt,
	}
	if r.Portfolio != nil {
		resp.PortfolioTitle = r.Portfolio.Title
	}
	if r.Requester != nil {
		resp.RequesterName = r.Requester.FullName
	}
	return resp
}
