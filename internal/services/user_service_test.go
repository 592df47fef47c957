package services

import (
	"testing"

	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repositories.NewUserRepository(db))
}

func TestUserService_GetAndUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	user := createTestUser(t, db, "Original Name")

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original Name", profile.FullName)

	newName := "New Name"
	updated, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, user.Email, updated.Email, "Email без изменений")
}

func TestUserService_UpdateProfileEmailTaken(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	first := createTestUser(t, db, "First")
	second := createTestUser(t, db, "Second")

	taken := first.Email
	_, err := svc.UpdateProfile(second.ID, &dto.UpdateProfileRequest{Email: &taken})
	assert.True(t, apperrors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestUserService_DeleteAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)
	user := createTestUser(t, db, "Doomed")

	require.NoError(t, db.Create(&models.RefreshToken{
		UserID: user.ID,
		Token:  "some-refresh-token",
	}).Error)

	require.NoError(t, svc.DeleteAccount(user.ID))

	_, err := svc.GetProfile(user.ID)
	assert.Error(t, err)

	var tokens int64
	db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Count(&tokens)
	assert.Zero(t, tokens, "Сессии удаляются вместе с аккаунтом")
}

func TestUserService_ListUsersPaginated(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	for i := 0; i < 5; i++ {
		createTestUser(t, db, "User")
	}

	page, err := svc.ListUsers(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Users, 2)
	assert.Equal(t, 3, page.TotalPages)
}
