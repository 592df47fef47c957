package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"portfolia_backend/internal/auth"
	"portfolia_backend/internal/email"
	"portfolia_backend/internal/logger"
	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(refreshToken string) (*dto.AuthResponse, error)
	Logout(refreshToken string) error
	ChangePassword(userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	baseURL       string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	baseURL string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
		baseURL:       baseURL,
	}
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendWelcomeEmail(user)

	return s.buildAuthResponse(user)
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

// RefreshToken - обновление access token по refresh token с ротацией
func (s *AuthServiceImpl) RefreshToken(refreshToken string) (*dto.AuthResponse, error) {
	token, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		// Неважно, какая ошибка (не найден или другая) - токен невалиден
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Ротация: старый токен гасим до выдачи нового
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user)
}

// Logout - выход (удаление refresh token)
func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// ChangePassword - смена пароля (когда пользователь знает текущий)
func (s *AuthServiceImpl) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(userID, hashedPassword); err != nil {
		return apperrors.InternalError(err)
	}

	// Все сессии сбрасываем
	s.userRepo.DeleteUserRefreshTokens(userID)

	return nil
}

// --- Helper functions ---

// buildAuthResponse генерирует пару токенов и собирает ответ
func (s *AuthServiceImpl) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.createRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

// createRefreshToken создает и сохраняет refresh token
func (s *AuthServiceImpl) createRefreshToken(userID string) (string, error) {
	refreshToken, err := generateRandomToken()
	if err != nil {
		return "", err
	}

	refreshTokenModel := &models.RefreshToken{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}

	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return "", err
	}

	return refreshToken, nil
}

// sendWelcomeEmail отправляет приветственное письмо (best-effort)
func (s *AuthServiceImpl) sendWelcomeEmail(user *models.User) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		data := email.WelcomeData{
			UserName:  user.FullName,
			ActionURL: fmt.Sprintf("%s/dashboard", s.baseURL),
		}
		if err := s.emailProvider.SendWelcome(user.Email, data); err != nil {
			logger.Warn("Failed to send welcome email", "email", user.Email, "error", err)
		}
	}()
}

// generateRandomToken генерирует криптослучайный токен
func generateRandomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
