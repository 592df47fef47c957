package services

import (
	"fmt"
	"testing"
	"time"

	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(db *gorm.DB) NotificationService {
	return NewNotificationService(repositories.NewNotificationRepository(db), repositories.DefaultNotificationListLimit)
}

func seedNotification(t *testing.T, db *gorm.DB, userID, title string, createdAt time.Time) *models.Notification {
	t.Helper()
	n := &models.Notification{
		UserID:  userID,
		Type:    repositories.NotificationTypePortfolioViewed,
		Title:   title,
		Message: "message",
	}
	require.NoError(t, db.Create(n).Error)
	// created_at задается вручную для проверки сортировки
	require.NoError(t, db.Model(n).Update("created_at", createdAt).Error)
	return n
}

func TestNotificationService_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newNotificationService(db)
	user := createTestUser(t, db, "User")

	base := time.Now().Add(-time.Hour)
	seedNotification(t, db, user.ID, "oldest", base)
	seedNotification(t, db, user.ID, "middle", base.Add(10*time.Minute))
	seedNotification(t, db, user.ID, "newest", base.Add(20*time.Minute))

	list, err := svc.GetUserNotifications(user.ID, &dto.NotificationListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 3)
	assert.Equal(t, "newest", list.Notifications[0].Title)
	assert.Equal(t, "oldest", list.Notifications[2].Title)
	assert.Equal(t, int64(3), list.UnreadCount)
}

func TestNotificationService_ListCapped(t *testing.T) {
	db := setupTestDB(t)
	svc := newNotificationService(db)
	user := createTestUser(t, db, "User")

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 105; i++ {
		seedNotification(t, db, user.ID, fmt.Sprintf("n-%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	list, err := svc.GetUserNotifications(user.ID, &dto.NotificationListQuery{})
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 100, "Выдача ограничена верхней планкой")
	assert.Equal(t, "n-104", list.Notifications[0].Title, "Срезается хвост, а не голова")

	short, err := svc.GetUserNotifications(user.ID, &dto.NotificationListQuery{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, short.Notifications, 5)
}

func TestNotificationService_Filters(t *testing.T) {
	db := setupTestDB(t)
	svc := newNotificationService(db)
	user := createTestUser(t, db, "User")

	n1 := seedNotification(t, db, user.ID, "viewed", time.Now())
	require.NoError(t, db.Create(&models.Notification{
		UserID: user.ID,
		Type:   repositories.NotificationTypeAccessRequested,
		Title:  "requested",
	}).Error)

	byType, err := svc.GetUserNotifications(user.ID, &dto.NotificationListQuery{
		Type: repositories.NotificationTypeAccessRequested,
	})
	require.NoError(t, err)
	require.Len(t, byType.Notifications, 1)
	assert.Equal(t, "requested", byType.Notifications[0].Title)

	require.NoError(t, svc.MarkAsRead(user.ID, n1.ID))

	unread, err := svc.GetUserNotifications(user.ID, &dto.NotificationListQuery{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 1)
	assert.Equal(t, "requested", unread.Notifications[0].Title)
	assert.Equal(t, int64(1), unread.UnreadCount)
}

func TestNotificationService_MarkAsReadOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newNotificationService(db)
	user := createTestUser(t, db, "User")
	other := createTestUser(t, db, "Other")

	n := seedNotification(t, db, user.ID, "mine", time.Now())

	// Чужое уведомление неотличимо от несуществующего
	err := svc.MarkAsRead(other.ID, n.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotificationNotFound))

	require.NoError(t, svc.MarkAsRead(user.ID, n.ID))

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
	assert.True(t, stored.IsRead)
	assert.NotNil(t, stored.ReadAt)

	// Повторная пометка владельцем идемпотентна
	require.NoError(t, svc.MarkAsRead(user.ID, n.ID))
	count, err := svc.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationService_MarkAllAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newNotificationService(db)
	user := createTestUser(t, db, "User")
	other := createTestUser(t, db, "Other")

	n1 := seedNotification(t, db, user.ID, "one", time.Now())
	seedNotification(t, db, user.ID, "two", time.Now())
	foreign := seedNotification(t, db, other.ID, "foreign", time.Now())

	require.NoError(t, svc.MarkAllAsRead(user.ID))

	count, err := svc.GetUnreadCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	otherCount, err := svc.GetUnreadCount(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherCount, "Чужие уведомления не затронуты")

	err = svc.DeleteNotification(user.ID, foreign.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotificationNotFound))

	require.NoError(t, svc.DeleteNotification(user.ID, n1.ID))
	var remaining int64
	db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&remaining)
	assert.Equal(t, int64(1), remaining)
}
