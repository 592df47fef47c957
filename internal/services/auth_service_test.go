package services

import (
	"testing"
	"time"

	"portfolia_backend/internal/auth"
	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) AuthService {
	return NewAuthService(repositories.NewUserRepository(db), nil, "http://localhost:3000")
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&dto.RegisterRequest{
		FullName: "New User",
		Email:    "new@test.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new@test.com", resp.User.Email)

	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, string(models.UserRoleUser), claims.Role)

	login, err := svc.Login(&dto.LoginRequest{Email: "new@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{FullName: "A", Email: "dup@test.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{FullName: "B", Email: "dup@test.com", Password: "password123"})
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestAuthService_RegisterWeakPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{FullName: "A", Email: "weak@test.com", Password: "short"})
	assert.True(t, apperrors.Is(err, apperrors.ErrWeakPassword))
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{FullName: "A", Email: "login@test.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "login@test.com", Password: "wrong-password"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	// Несуществующий email дает ту же ошибку, без утечки информации
	_, err = svc.Login(&dto.LoginRequest{Email: "ghost@test.com", Password: "password123"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestAuthService_RefreshTokenRotation(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	registered, err := svc.Register(&dto.RegisterRequest{FullName: "A", Email: "rotate@test.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken, "Refresh-токен меняется при каждом обновлении")

	// Старый токен больше не работает
	_, err = svc.RefreshToken(registered.RefreshToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestAuthService_RefreshTokenExpired(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	registered, err := svc.Register(&dto.RegisterRequest{FullName: "A", Email: "expired@test.com", Password: "password123"})
	require.NoError(t, err)

	// Просрочиваем токен руками
	err = db.Model(&models.RefreshToken{}).
		Where("token = ?", registered.RefreshToken).
		Update("expires_at", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)

	_, err = svc.RefreshToken(registered.RefreshToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestAuthService_Logout(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	registered, err := svc.Register(&dto.RegisterRequest{FullName: "A", Email: "logout@test.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(registered.RefreshToken))

	_, err = svc.RefreshToken(registered.RefreshToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))

	// Повторный logout того же токена
	err = svc.Logout(registered.RefreshToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}

func TestAuthService_ChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	registered, err := svc.Register(&dto.RegisterRequest{FullName: "A", Email: "change@test.com", Password: "password123"})
	require.NoError(t, err)

	// Неверный текущий пароль
	err = svc.ChangePassword(registered.User.ID, "wrong", "newpassword123")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))

	require.NoError(t, svc.ChangePassword(registered.User.ID, "password123", "newpassword123"))

	// Все refresh-токены отозваны
	_, err = svc.RefreshToken(registered.RefreshToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))

	// Старый пароль не подходит, новый подходит
	_, err = svc.Login(&dto.LoginRequest{Email: "change@test.com", Password: "password123"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
	_, err = svc.Login(&dto.LoginRequest{Email: "change@test.com", Password: "newpassword123"})
	assert.NoError(t, err)
}
