package handlers

import (
	"net/http"

	"portfolia_backend/internal/middleware"
	"portfolia_backend/internal/models"
	"portfolia_backend/internal/services"
	"portfolia_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetProfile)
		users.PUT("/me", h.UpdateProfile)
		users.DELETE("/me", h.DeleteAccount)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.ListUsers)
		admin.DELETE("/:userId", h.DeleteUser)
	}
}

// GetProfile godoc
// @Summary Профиль текущего пользователя
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Обновление профиля
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} dto.UserResponse
// @Failure 409 {object} apperrors.ErrorResponse "Email already in use"
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteAccount godoc
// @Summary Удаление своего аккаунта
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /users/me [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// ListUsers godoc
// @Summary Список пользователей (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	users, err := h.userService.ListUsers(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Удаление пользователя (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} map[string]string
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
