package dto

import (
	"time"

	"portfolia_backend/internal/models"
)

// ---------------- Requests ----------------

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest - запрос обновления токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest - запрос выхода
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest - смена пароля
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ---------------- Responses ----------------

// AuthResponse - ответ с токенами
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// UserResponse - базовая информация о пользователе
type UserResponse struct {
	ID        string          `json:"id"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewUserResponse маппит модель в DTO.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
