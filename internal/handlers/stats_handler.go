package handlers

import (
	"net/http"

	"portfolia_backend/internal/middleware"
	"portfolia_backend/internal/models"
	"portfolia_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	*BaseHandler
	statsService services.StatsService
}

func NewStatsHandler(base *BaseHandler, statsService services.StatsService) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  base,
		statsService: statsService,
	}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	portfolios := r.Group("/portfolios")
	portfolios.Use(middleware.AuthMiddleware())
	{
		portfolios.GET("/:portfolioId/stats", h.GetPortfolioStats)
		portfolios.GET("/:portfolioId/views", h.GetPortfolioViews)
	}

	admin := r.Group("/admin/stats")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.GetPlatformStats)
	}
}

// GetPortfolioStats godoc
// @Summary Статистика портфолио
// @Description Доступна только владельцу
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param portfolioId path string true "ID портфолио"
// @Success 200 {object} dto.PortfolioStatsResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /portfolios/{portfolioId}/stats [get]
func (h *StatsHandler) GetPortfolioStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetPortfolioStats(userID, c.Param("portfolioId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetPortfolioViews godoc
// @Summary Журнал просмотров портфолио
// @Description Доступен только владельцу
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param portfolioId path string true "ID портфолио"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.ViewLogListResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /portfolios/{portfolioId}/views [get]
func (h *StatsHandler) GetPortfolioViews(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	views, err := h.statsService.GetPortfolioViews(userID, c.Param("portfolioId"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetPlatformStats godoc
// @Summary Сводка по платформе (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PlatformStatsResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /admin/stats [get]
func (h *StatsHandler) GetPlatformStats(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	stats, err := h.statsService.GetPlatformStats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
