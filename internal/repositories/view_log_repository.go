package repositories

import (
	"time"

	"portfolia_backend/internal/models"

	"gorm.io/gorm"
)

type ViewLogRepository interface {
	Create(log *models.PortfolioViewLog) error
	FindByPortfolio(portfolioID string, limit, offset int) ([]models.PortfolioViewLog, int64, error)
	CountByPortfolio(portfolioID string) (int64, error)
	CountByPortfolioSince(portfolioID string, since time.Time) (int64, error)
	CountUniqueViewers(portfolioID string) (int64, error)
	CleanOldLogs(days int) error
}

type ViewLogRepositoryImpl struct {
	db *gorm.DB
}

func NewViewLogRepository(db *gorm.DB) ViewLogRepository {
	return &ViewLogRepositoryImpl{db: db}
}

func (r *ViewLogRepositoryImpl) Create(log *models.PortfolioViewLog) error {
	return r.db.Create(log).Error
}

func (r *ViewLogRepositoryImpl) FindByPortfolio(portfolioID string, limit, offset int) ([]models.PortfolioViewLog, int64, error) {
	var logs []models.PortfolioViewLog
	query := r.db.Model(&models.PortfolioViewLog{}).Where("portfolio_id = ?", portfolioID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

func (r *ViewLogRepositoryImpl) CountByPortfolio(portfolioID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PortfolioViewLog{}).
		Where("portfolio_id = ?", portfolioID).Count(&count).Error
	return count, err
}

func (r *ViewLogRepositoryImpl) CountByPortfolioSince(portfolioID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.PortfolioViewLog{}).
		Where("portfolio_id = ? AND created_at >= ?", portfolioID, since).
		Count(&count).Error
	return count, err
}

// CountUniqueViewers считает уникальных авторизованных зрителей.
// Анонимные просмотры (viewer_id IS NULL) сюда не входят.
func (r *ViewLogRepositoryImpl) CountUniqueViewers(portfolioID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PortfolioViewLog{}).
		Where("portfolio_id = ? AND viewer_id IS NOT NULL", portfolioID).
		Distinct("viewer_id").
		Count(&count).Error
	return count, err
}

func (r *ViewLogRepositoryImpl) CleanOldLogs(days int) error {
	cutoffDate := time.Now().AddDate(0, 0, -days)
	return r.db.Where("created_at < ?", cutoffDate).Delete(&models.PortfolioViewLog{}).Error
}
