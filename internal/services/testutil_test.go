package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"portfolia_backend/internal/auth"
	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	auth.Init("test-secret", 60)
	os.Exit(m.Run())
}

// setupTestDB поднимает in-memory SQLite с полной схемой.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Не удалось открыть in-memory базу")

	// Одно соединение: у каждого коннекта к :memory: своя база,
	// а конкурентные вызовы должны видеть общие таблицы
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Portfolio{},
		&models.Project{},
		&models.Education{},
		&models.Experience{},
		&models.Skill{},
		&models.SocialMediaLink{},
		&models.AccessRequest{},
		&models.Notification{},
		&models.PortfolioViewLog{},
	)
	require.NoError(t, err, "Миграция тестовой схемы не должна падать")

	return db
}

var testUserSeq int

// createTestUser создает пользователя с захешированным паролем.
func createTestUser(t *testing.T, db *gorm.DB, fullName string) *models.User {
	t.Helper()

	testUserSeq++
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		FullName:     fullName,
		Email:        fmt.Sprintf("user_%d_%d@test.com", testUserSeq, time.Now().UnixNano()),
		PasswordHash: hash,
		Role:         models.UserRoleUser,
	}
	require.NoError(t, db.Create(user).Error, "Создание тестового пользователя не должно вызывать ошибку")
	return user
}

// createTestPortfolio создает портфолио с дефолтными флагами секций.
func createTestPortfolio(t *testing.T, db *gorm.DB, ownerID string, isPublic bool) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		UserID:          ownerID,
		Title:           "Test Portfolio",
		IsPublic:        isPublic,
		ShowProjects:    true,
		ShowEducation:   true,
		ShowExperience:  true,
		ShowSkills:      true,
		ShowSocialMedia: true,
	}
	require.NoError(t, db.Create(portfolio).Error, "Создание тестового портфолио не должно вызывать ошибку")
	return portfolio
}

// newPortfolioService собирает сервис портфолио поверх тестовой базы.
func newPortfolioService(db *gorm.DB) PortfolioService {
	return NewPortfolioService(
		repositories.NewPortfolioRepository(db),
		repositories.NewAccessRequestRepository(db),
		repositories.NewNotificationRepository(db),
		repositories.NewViewLogRepository(db),
		repositories.NewUserRepository(db),
	)
}

// newAccessRequestService собирает сервис запросов доступа поверх тестовой базы.
func newAccessRequestService(db *gorm.DB) AccessRequestService {
	return NewAccessRequestService(
		repositories.NewAccessRequestRepository(db),
		repositories.NewPortfolioRepository(db),
		repositories.NewNotificationRepository(db),
		repositories.NewUserRepository(db),
		nil, // email не отправляем в тестах
		"http://localhost:3000",
	)
}
