package handlers

import (
	"net/http"

	"portfolia_backend/internal/middleware"
	"portfolia_backend/internal/services"
	"portfolia_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.PUT("/password", h.ChangePassword)
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создает аккаунт и возвращает пару токенов
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Email already in use"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Вход
// @Description Аутентификация по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учетные данные"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apperrors.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Обновление токенов
// @Description Меняет refresh token на новую пару токенов
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apperrors.ErrorResponse "Invalid or expired token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Выход
// @Description Инвалидирует refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ChangePassword godoc
// @Summary Смена пароля
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Текущий и новый пароль"
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
