package handlers

import (
	"net/http"

	"portfolia_backend/internal/middleware"
	"portfolia_backend/internal/services"
	"portfolia_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AccessRequestHandler struct {
	*BaseHandler
	accessRequestService services.AccessRequestService
}

func NewAccessRequestHandler(base *BaseHandler, accessRequestService services.AccessRequestService) *AccessRequestHandler {
	return &AccessRequestHandler{
		BaseHandler:          base,
		accessRequestService: accessRequestService,
	}
}

func (h *AccessRequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Создание привязано к портфолио
	portfolios := r.Group("/portfolios")
	portfolios.Use(middleware.AuthMiddleware())
	{
		portfolios.POST("/:portfolioId/access-requests", h.RequestAccess)
	}

	// Анонимная диагностика, без auth
	r.GET("/access-requests/debug/:portfolioId", h.Debug)

	requests := r.Group("/access-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("/incoming", h.ListIncoming)
		requests.GET("/outgoing", h.ListOutgoing)
		requests.GET("/:requestId", h.GetRequest)
		requests.PUT("/:requestId/decide", h.Decide)
		requests.DELETE("/:requestId", h.CancelRequest)
	}
}

// RequestAccess godoc
// @Summary Запросить доступ к портфолио
// @Description Создает pending-запрос и уведомляет владельца.
// @Description Повторный запрос к тому же портфолио отклоняется.
// @Tags access-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param portfolioId path string true "ID портфолио"
// @Param request body dto.CreateAccessRequestRequest true "Сообщение владельцу"
// @Success 200 {object} dto.AccessRequestResponse
// @Failure 400 {object} apperrors.ErrorResponse "Access request already exists"
// @Failure 404 {object} apperrors.ErrorResponse "Portfolio not found"
// @Router /portfolios/{portfolioId}/access-requests [post]
func (h *AccessRequestHandler) RequestAccess(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAccessRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.accessRequestService.RequestAccess(userID, c.Param("portfolioId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Access request sent successfully",
		"request": request,
	})
}

// Decide godoc
// @Summary Решение по запросу доступа
// @Description Владелец портфолио одобряет или отклоняет запрос.
// @Tags access-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "ID запроса"
// @Param request body dto.DecideAccessRequestRequest true "Решение"
// @Success 200 {object} dto.AccessRequestResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Access request has already been decided"
// @Router /access-requests/{requestId}/decide [put]
func (h *AccessRequestHandler) Decide(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DecideAccessRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.accessRequestService.Decide(userID, c.Param("requestId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListIncoming godoc
// @Summary Входящие запросы доступа
// @Description Запросы ко всем портфолио текущего пользователя
// @Tags access-requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу (pending/approved/rejected)"
// @Success 200 {object} dto.AccessRequestListResponse
// @Router /access-requests/incoming [get]
func (h *AccessRequestHandler) ListIncoming(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	list, err := h.accessRequestService.ListIncoming(userID, c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ListOutgoing godoc
// @Summary Исходящие запросы доступа
// @Tags access-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AccessRequestListResponse
// @Router /access-requests/outgoing [get]
func (h *AccessRequestHandler) ListOutgoing(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	list, err := h.accessRequestService.ListOutgoing(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetRequest godoc
// @Summary Запрос доступа по ID
// @Description Доступен автору запроса и владельцу портфолио
// @Tags access-requests
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "ID запроса"
// @Success 200 {object} dto.AccessRequestResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /access-requests/{requestId} [get]
func (h *AccessRequestHandler) GetRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.accessRequestService.GetRequest(userID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// CancelRequest godoc
// @Summary Отозвать свой запрос
// @Description Отзыв возможен только пока запрос не решен
// @Tags access-requests
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "ID запроса"
// @Success 200 {object} map[string]string
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /access-requests/{requestId} [delete]
func (h *AccessRequestHandler) CancelRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.accessRequestService.CancelRequest(userID, c.Param("requestId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Access request cancelled"})
}

// Debug godoc
// @Summary Диагностика запросов доступа
// @Description Анонимная сводка: существует ли портфолио и сколько по нему запросов
// @Tags access-requests
// @Produce json
// @Param portfolioId path string true "ID портфолио"
// @Success 200 {object} dto.AccessRequestDebugResponse
// @Router /access-requests/debug/{portfolioId} [get]
func (h *AccessRequestHandler) Debug(c *gin.Context) {
	resp, err := h.accessRequestService.DebugPortfolio(c.Param("portfolioId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
