package routes

import (
	"portfolia_backend/internal/handlers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.PortfolioHandler.RegisterRoutes(api)
		appHandlers.AccessRequestHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
		appHandlers.StatsHandler.RegisterRoutes(api)
	}

	// Swagger UI
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
