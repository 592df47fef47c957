package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolia_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

// Константы типов уведомлений
const (
	NotificationTypeAccessRequested = "access_requested"
	NotificationTypeAccessApproved  = "access_approved"
	NotificationTypeAccessRejected  = "access_rejected"
	NotificationTypePortfolioViewed = "portfolio_viewed"
)

// DefaultNotificationListLimit ограничивает выдачу списка уведомлений.
const DefaultNotificationListLimit = 100

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	FindNotificationByID(id string) (*models.Notification, error)
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, error)
	MarkAsRead(notificationID, userID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(notificationID, userID string) error
	GetUnreadCount(userID string) (int64, error)
	CleanOldNotifications(days int) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// Search criteria for notifications
type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) CreateNotification(notification *models.Notification) error {
	if err := r.validateNotification(notification); err != nil {
		return err
	}

	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// FindUserNotifications возвращает уведомления пользователя, новые первыми.
// Выдача ограничена criteria.Limit (по умолчанию 100 записей).
func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, error) {
	var notifications []models.Notification
	query := r.db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	limit := criteria.Limit
	if limit <= 0 || limit > DefaultNotificationListLimit {
		limit = DefaultNotificationListLimit
	}

	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

// MarkAsRead помечает уведомление прочитанным. Владелец проверяется
// в предикате UPDATE, чужое уведомление выглядит как несуществующее.
func (r *NotificationRepositoryImpl) MarkAsRead(notificationID, userID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	return result.Error
}

func (r *NotificationRepositoryImpl) DeleteNotification(notificationID, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) CleanOldNotifications(days int) error {
	cutoffDate := time.Now().AddDate(0, 0, -days)
	return r.db.Where("created_at < ? AND is_read = ?", cutoffDate, true).
		Delete(&models.Notification{}).Error
}

// Helper methods

func (r *NotificationRepositoryImpl) validateNotification(notification *models.Notification) error {
	if notification.UserID == "" {
		return errors.New("user ID is required")
	}

	if notification.Type == "" {
		return errors.New("notification type is required")
	}

	if notification.Title == "" {
		return errors.New("notification title is required")
	}

	validTypes := map[string]bool{
		NotificationTypeAccessRequested: true,
		NotificationTypeAccessApproved:  true,
		NotificationTypeAccessRejected:  true,
		NotificationTypePortfolioViewed: true,
	}

	if !validTypes[notification.Type] {
		return fmt.Errorf("invalid notification type: %s", notification.Type)
	}

	if len(notification.Data) > 0 {
		if !json.Valid(notification.Data) {
			return ErrInvalidNotificationData
		}
	}

	return nil
}
