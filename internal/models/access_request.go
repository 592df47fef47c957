package models

import "time"

type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "pending"
	AccessRequestApproved AccessRequestStatus = "approved"
	AccessRequestRejected AccessRequestStatus = "rejected"
)

// AccessRequest - запрос пользователя на просмотр приватного портфолио.
// Составной уникальный индекс (portfolio_id, requester_id) гарантирует
// не больше одного запроса на пару в любом статусе, в том числе при
// конкурентной отправке: вставка идет через ON CONFLICT DO NOTHING,
// а не через проверку с последующим insert.
type AccessRequest struct {
	BaseModel
	PortfolioID       string              `gorm:"type:uuid;not null;uniqueIndex:idx_access_requests_pair" json:"portfolio_id"`
	RequesterID       string              `gorm:"type:uuid;not null;uniqueIndex:idx_access_requests_pair" json:"requester_id"`
	Status            AccessRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Message           string              `gorm:"size:500" json:"message"`
	OwnerResponseNote string              `gorm:"size:500" json:"owner_response_note"`
	DecidedAt         *time.Time          `json:"decided_at"`

	// Relations
	Portfolio *Portfolio `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"-"`
	Requester *User      `gorm:"foreignKey:RequesterID" json:"-"`
}

// Decided сообщает, вынесено ли решение по запросу.
func (r *AccessRequest) Decided() bool {
	return r.Status != AccessRequestPending
}
