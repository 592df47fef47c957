package repositories

import (
	"errors"
	"time"

	"portfolia_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccessRequestNotFound = errors.New("access request not found")
	ErrAccessRequestExists   = errors.New("access request already exists")
	ErrAccessRequestDecided  = errors.New("access request already decided")
)

type AccessRequestRepository interface {
	// CreateWithNotification атомарно вставляет запрос и уведомление владельцу.
	// Возвращает ErrAccessRequestExists, если пара (portfolio, requester) уже есть.
	CreateWithNotification(request *models.AccessRequest, notification *models.Notification) error

	FindByID(id string) (*models.AccessRequest, error)
	FindByPortfolioAndRequester(portfolioID, requesterID string) (*models.AccessRequest, error)
	FindIncoming(ownerID string, status models.AccessRequestStatus) ([]models.AccessRequest, error)
	FindOutgoing(requesterID string) ([]models.AccessRequest, error)
	FindByPortfolio(portfolioID string) ([]models.AccessRequest, error)
	HasApprovedAccess(portfolioID, requesterID string) (bool, error)

	// DecideWithNotification атомарно фиксирует решение и уведомление автору запроса.
	DecideWithNotification(request *models.AccessRequest, notification *models.Notification) error

	Delete(id string) error
	CountPending(ownerID string) (int64, error)
}

type AccessRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewAccessRequestRepository(db *gorm.DB) AccessRequestRepository {
	return &AccessRequestRepositoryImpl{db: db}
}

func (r *AccessRequestRepositoryImpl) CreateWithNotification(request *models.AccessRequest, notification *models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// ON CONFLICT DO NOTHING по уникальной паре (portfolio_id, requester_id):
		// при гонке двух одинаковых запросов ровно один вставится,
		// второй увидит RowsAffected == 0.
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "portfolio_id"}, {Name: "requester_id"}},
			DoNothing: true,
		}).Create(request)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAccessRequestExists
		}

		return tx.Create(notification).Error
	})
}

func (r *AccessRequestRepositoryImpl) FindByID(id string) (*models.AccessRequest, error) {
	var request models.AccessRequest
	err := r.db.Preload("Portfolio").Preload("Requester").
		First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *AccessRequestRepositoryImpl) FindByPortfolioAndRequester(portfolioID, requesterID string) (*models.AccessRequest, error) {
	var request models.AccessRequest
	err := r.db.Where("portfolio_id = ? AND requester_id = ?", portfolioID, requesterID).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindIncoming возвращает запросы ко всем портфолио владельца,
// опционально отфильтрованные по статусу.
func (r *AccessRequestRepositoryImpl) FindIncoming(ownerID string, status models.AccessRequestStatus) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	query := r.db.Preload("Portfolio").Preload("Requester").
		Joins("JOIN portfolios ON portfolios.id = access_requests.portfolio_id").
		Where("portfolios.user_id = ?", ownerID)

	if status != "" {
		query = query.Where("access_requests.status = ?", status)
	}

	err := query.Order("access_requests.created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *AccessRequestRepositoryImpl) FindOutgoing(requesterID string) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	err := r.db.Preload("Portfolio").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *AccessRequestRepositoryImpl) FindByPortfolio(portfolioID string) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	err := r.db.Preload("Requester").
		Where("portfolio_id = ?", portfolioID).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *AccessRequestRepositoryImpl) HasApprovedAccess(portfolioID, requesterID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.AccessRequest{}).
		Where("portfolio_id = ? AND requester_id = ? AND status = ?",
			portfolioID, requesterID, models.AccessRequestApproved).
		Count(&count).Error
	return count > 0, err
}

func (r *AccessRequestRepositoryImpl) DecideWithNotification(request *models.AccessRequest, notification *models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Статусный предикат в WHERE защищает от двойного решения:
		// повторный UPDATE по уже решенному запросу не затронет строк.
		result := tx.Model(&models.AccessRequest{}).
			Where("id = ? AND status = ?", request.ID, models.AccessRequestPending).
			Updates(map[string]interface{}{
				"status":              request.Status,
				"owner_response_note": request.OwnerResponseNote,
				"decided_at":          request.DecidedAt,
				"updated_at":          time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Запрос либо не существует, либо решен конкурентно.
			return ErrAccessRequestDecided
		}

		return tx.Create(notification).Error
	})
}

func (r *AccessRequestRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.AccessRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccessRequestNotFound
	}
	return nil
}

func (r *AccessRequestRepositoryImpl) CountPending(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.AccessRequest{}).
		Joins("JOIN portfolios ON portfolios.id = access_requests.portfolio_id").
		Where("portfolios.user_id = ? AND access_requests.status = ?", ownerID, models.AccessRequestPending).
		Count(&count).Error
	return count, err
}
