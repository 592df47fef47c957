package handlers

import (
	"net/http"

	"portfolia_backend/internal/middleware"
	"portfolia_backend/internal/services"
	"portfolia_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.GetUserNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PUT("/:notificationId/read", h.MarkAsRead)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.DELETE("/:notificationId", h.DeleteNotification)
	}
}

// GetUserNotifications godoc
// @Summary Уведомления пользователя
// @Description Новые первыми, не больше 100 за раз
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "Только непрочитанные"
// @Param type query string false "Фильтр по типу"
// @Param limit query int false "Лимит выдачи (1-100)"
// @Success 200 {object} dto.NotificationListResponse
// @Router /notifications [get]
func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.NotificationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	list, err := h.notificationService.GetUserNotifications(userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetUnreadCount godoc
// @Summary Количество непрочитанных
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UnreadCountResponse
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead godoc
// @Summary Пометить уведомление прочитанным
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notificationId path string true "ID уведомления"
// @Success 200 {object} map[string]string
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /notifications/{notificationId}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(userID, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead godoc
// @Summary Пометить все прочитанными
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// DeleteNotification godoc
// @Summary Удалить уведомление
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notificationId path string true "ID уведомления"
// @Success 200 {object} map[string]string
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /notifications/{notificationId} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(userID, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
