package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

func (h *HealthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)
}

// Health godoc
// @Summary Проверка живости сервиса
// @Description Пингует БД через соединение из контекста запроса
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	db := h.GetDB(c)

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": "database unavailable"})
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": "database unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
