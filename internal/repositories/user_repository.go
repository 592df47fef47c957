package repositories

import (
	"errors"
	"time"

	"portfolia_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	// User operations
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdatePassword(userID, passwordHash string) error
	Delete(userID string) error
	FindAll(limit, offset int) ([]models.User, error)
	CountAll() (int64, error)
	CountByRole(role models.UserRole) (int64, error)

	// RefreshToken operations
	CreateRefreshToken(token *models.RefreshToken) error
	FindRefreshToken(token string) (*models.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteUserRefreshTokens(userID string) error
	CleanExpiredRefreshTokens() error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// User operations

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	// Check if user already exists
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Model(user).Updates(map[string]interface{}{
		"full_name":  user.FullName,
		"email":      user.Email,
		"role":       user.Role,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(userID, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(userID string) error {
	// Start transaction to delete user and related data
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Delete refresh tokens first
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}

		// Delete user
		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func (r *UserRepositoryImpl) FindAll(limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// RefreshToken operations

func (r *UserRepositoryImpl) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *UserRepositoryImpl) FindRefreshToken(token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := r.db.Where("token = ?", token).First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &refreshToken, nil
}

func (r *UserRepositoryImpl) DeleteRefreshToken(token string) error {
	result := r.db.Where("token = ?", token).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) DeleteUserRefreshTokens(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

func (r *UserRepositoryImpl) CleanExpiredRefreshTokens() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error
}
