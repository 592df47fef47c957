package app

import (
	"errors"
	"fmt"
	"time"

	"portfolia_backend/database"
	"portfolia_backend/internal/auth"
	"portfolia_backend/internal/config"
	"portfolia_backend/internal/email"
	"portfolia_backend/internal/handlers"
	"portfolia_backend/internal/logger"
	"portfolia_backend/internal/middleware"
	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/routes"
	"portfolia_backend/internal/services"
	"portfolia_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Если не удалось создать админа (проблемы с БД и т.д.) - не запускаем сервер
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	go runMaintenance(gormDB)

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, gormDB)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(gormDB)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.Enabled {
		provider, err := email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		emailService = provider
		logger.Info("Email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		logger.Warn("Email sending disabled. Using MOCK provider.")
		emailService = &MockEmailProvider{}
	}

	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository(gormDB)
	portfolioRepo := repositories.NewPortfolioRepository(gormDB)
	accessRepo := repositories.NewAccessRequestRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	viewLogRepo := repositories.NewViewLogRepository(gormDB)

	// --- Инициализация сервисов ---
	authService := services.NewAuthService(userRepo, emailService, cfg.App.BaseURL)
	userService := services.NewUserService(userRepo)
	portfolioService := services.NewPortfolioService(portfolioRepo, accessRepo, notificationRepo, viewLogRepo, userRepo)
	accessRequestService := services.NewAccessRequestService(accessRepo, portfolioRepo, notificationRepo, userRepo, emailService, cfg.App.BaseURL)
	notificationService := services.NewNotificationService(notificationRepo, cfg.App.NotificationListLimit)
	statsService := services.NewStatsService(portfolioRepo, viewLogRepo, accessRepo, userRepo)

	return &services.ServiceContainer{
		AuthService:          authService,
		UserService:          userService,
		PortfolioService:     portfolioService,
		AccessRequestService: accessRequestService,
		NotificationService:  notificationService,
		StatsService:         statsService,
		EmailService:         emailService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:          handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:          handlers.NewUserHandler(baseHandler, services.UserService),
		PortfolioHandler:     handlers.NewPortfolioHandler(baseHandler, services.PortfolioService),
		AccessRequestHandler: handlers.NewAccessRequestHandler(baseHandler, services.AccessRequestService),
		NotificationHandler:  handlers.NewNotificationHandler(baseHandler, services.NotificationService),
		StatsHandler:         handlers.NewStatsHandler(baseHandler, services.StatsService),
		HealthHandler:        handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// runMaintenance раз в сутки чистит протухшие refresh-токены,
// прочитанные старые уведомления и старые записи журнала просмотров.
func runMaintenance(db *gorm.DB) {
	userRepo := repositories.NewUserRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	viewLogRepo := repositories.NewViewLogRepository(db)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := userRepo.CleanExpiredRefreshTokens(); err != nil {
			logger.Warn("Failed to clean expired refresh tokens", "error", err)
		}
		if err := notificationRepo.CleanOldNotifications(90); err != nil {
			logger.Warn("Failed to clean old notifications", "error", err)
		}
		if err := viewLogRepo.CleanOldLogs(365); err != nil {
			logger.Warn("Failed to clean old view logs", "error", err)
		}
	}
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		FullName:     "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit admin seeding: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
