package repositories

import (
	"fmt"
	"testing"
	"time"

	"portfolia_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB поднимает in-memory SQLite с полной схемой.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Не удалось открыть in-memory базу")

	// Одно соединение: у каждого коннекта к :memory: своя база
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

func createTestUser(t *testing.T, db *gorm.DB, fullName string) *models.User {
	t.Helper()

	testUserSeq++
	user := &models.User{
		FullName:     fullName,
		Email:        fmt.Sprintf("user_%d_%d@test.com", testUserSeq, time.Now().UnixNano()),
		PasswordHash: "$2a$10$not.a.real.hash.for.tests",
		Role:         models.UserRoleUser,
	}
	require.NoError(t, db.Create(user).Error, "Создание тестового пользователя не должно вызывать ошибку")
	return user
}

func createTestPortfolio(t *testing.T, db *gorm.DB, ownerID string) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		UserID:          ownerID,
		Title:           "Test Portfolio",
		ShowProjects:    true,
		ShowEducation:   true,
		ShowExperience:  true,
		ShowSkills:      true,
		ShowSocialMedia: true,
	}
	require.NoError(t, db.Create(portfolio).Error, "Создание тестового портфолио не должно вызывать ошибку")
	return portfolio
}
