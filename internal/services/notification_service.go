package services

import (
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"
)

type NotificationService interface {
	GetUserNotifications(userID string, query *dto.NotificationListQuery) (*dto.NotificationListResponse, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(userID, notificationID string) error
	GetUnreadCount(userID string) (int64, error)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	listLimit        int
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, listLimit int) NotificationService {
	if listLimit <= 0 {
		listLimit = repositories.DefaultNotificationListLimit
	}
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		listLimit:        listLimit,
	}
}

func (s *NotificationServiceImpl) GetUserNotifications(userID string, query *dto.NotificationListQuery) (*dto.NotificationListResponse, error) {
	limit := query.Limit
	if limit <= 0 || limit > s.listLimit {
		limit = s.listLimit
	}

	criteria := repositories.NotificationCriteria{
		UnreadOnly: query.UnreadOnly,
		Type:       query.Type,
		Limit:      limit,
	}

	notifications, err := s.notificationRepo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, dto.NewNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationServiceImpl) MarkAsRead(userID, notificationID string) error {
	if err := s.notificationRepo.MarkAsRead(notificationID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) DeleteNotification(userID, notificationID string) error {
	if err := s.notificationRepo.DeleteNotification(notificationID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
