package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"portfolia_backend/internal/auth"
	"portfolia_backend/internal/middleware"
	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services"
	"portfolia_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.Init("test-secret", 60)
	os.Exit(m.Run())
}

// setupTestServer поднимает полный HTTP стек поверх in-memory базы:
// middleware, сервисы и маршруты как в боевом приложении.
func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Не удалось открыть in-memory базу")

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

	userRepo := repositories.NewUserRepository(db)
	portfolioRepo := repositories.NewPortfolioRepository(db)
	accessRepo := repositories.NewAccessRequestRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	viewLogRepo := repositories.NewViewLogRepository(db)

	authService := services.NewAuthService(userRepo, nil, "http://localhost:3000")
	userService := services.NewUserService(userRepo)
	portfolioService := services.NewPortfolioService(portfolioRepo, accessRepo, notificationRepo, viewLogRepo, userRepo)
	accessRequestService := services.NewAccessRequestService(accessRepo, portfolioRepo, notificationRepo, userRepo, nil, "http://localhost:3000")
	notificationService := services.NewNotificationService(notificationRepo, repositories.DefaultNotificationListLimit)
	statsService := services.NewStatsService(portfolioRepo, viewLogRepo, accessRepo, userRepo)

	base := NewBaseHandler(validator.New())
	appHandlers := &AppHandlers{
		AuthHandler:          NewAuthHandler(base, authService),
		UserHandler:          NewUserHandler(base, userService),
		PortfolioHandler:     NewPortfolioHandler(base, portfolioService),
		AccessRequestHandler: NewAccessRequestHandler(base, accessRequestService),
		NotificationHandler:  NewNotificationHandler(base, notificationService),
		StatsHandler:         NewStatsHandler(base, statsService),
		HealthHandler:        NewHealthHandler(base),
	}

	router := gin.New()
	router.Use(middleware.DBMiddleware(db))

	api := router.Group("/api/v1")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.PortfolioHandler.RegisterRoutes(api)
		appHandlers.AccessRequestHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
		appHandlers.StatsHandler.RegisterRoutes(api)
	}

	return router, db
}

var handlerUserSeq int

// createServerUser создает пользователя и возвращает его вместе с access-токеном.
func createServerUser(t *testing.T, db *gorm.DB, fullName string, role models.UserRole) (*models.User, string) {
	t.Helper()

	handlerUserSeq++
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		FullName:     fullName,
		Email:        fmt.Sprintf("h_user_%d_%d@test.com", handlerUserSeq, time.Now().UnixNano()),
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	return user, token
}

// createServerPortfolio создает портфолио напрямую в базе, минуя HTTP слой.
func createServerPortfolio(t *testing.T, db *gorm.DB, ownerID string, isPublic bool) *models.Portfolio {
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
	require.NoError(t, db.Create(portfolio).Error)
	return portfolio
}

// sendRequest выполняет HTTP запрос против тестового роутера.
func sendRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "Ответ должен быть валидным JSON: "+w.Body.String())
	return body
}
