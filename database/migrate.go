package database

import (
	"fmt"

	"portfolia_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
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
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
