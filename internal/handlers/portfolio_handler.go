package handlers

import (
	"net/http"

	"portfolia_backend/internal/middleware"
	"portfolia_backend/internal/services"
	"portfolia_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes - просмотр работает и для анонимов
	public := r.Group("/portfolios")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("", h.ListPublic)
		public.GET("/:portfolioId", h.View)
	}

	// Protected routes - владелец
	portfolios := r.Group("/portfolios")
	portfolios.Use(middleware.AuthMiddleware())
	{
		portfolios.POST("", h.Create)
		portfolios.GET("/mine", h.ListOwn)
		portfolios.PUT("/:portfolioId", h.Update)
		portfolios.DELETE("/:portfolioId", h.Delete)
		portfolios.PUT("/:portfolioId/visibility", h.UpdateVisibility)
		portfolios.PUT("/:portfolioId/sections", h.UpdateSectionVisibility)

		portfolios.POST("/:portfolioId/projects", h.AddProject)
		portfolios.PUT("/:portfolioId/projects/:itemId", h.UpdateProject)
		portfolios.DELETE("/:portfolioId/projects/:itemId", h.DeleteProject)

		portfolios.POST("/:portfolioId/educations", h.AddEducation)
		portfolios.PUT("/:portfolioId/educations/:itemId", h.UpdateEducation)
		portfolios.DELETE("/:portfolioId/educations/:itemId", h.DeleteEducation)

		portfolios.POST("/:portfolioId/experiences", h.AddExperience)
		portfolios.PUT("/:portfolioId/experiences/:itemId", h.UpdateExperience)
		portfolios.DELETE("/:portfolioId/experiences/:itemId", h.DeleteExperience)

		portfolios.POST("/:portfolioId/skills", h.AddSkill)
		portfolios.PUT("/:portfolioId/skills/:itemId", h.UpdateSkill)
		portfolios.DELETE("/:portfolioId/skills/:itemId", h.DeleteSkill)

		portfolios.POST("/:portfolioId/social-links", h.AddSocialMediaLink)
		portfolios.PUT("/:portfolioId/social-links/:itemId", h.UpdateSocialMediaLink)
		portfolios.DELETE("/:portfolioId/social-links/:itemId", h.DeleteSocialMediaLink)
	}
}

// Create godoc
// @Summary Создать портфолио
// @Description Новое портфолио создается приватным, секции открыты
// @Tags portfolios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePortfolioRequest true "Данные портфолио"
// @Success 201 {object} dto.PortfolioResponse
// @Router /portfolios [post]
func (h *PortfolioHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePortfolioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	portfolio, err := h.portfolioService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, portfolio)
}

// View godoc
// @Summary Просмотр портфолио
// @Description Приватное портфолио видят владелец и одобренные пользователи.
// @Description Скрытые секции не возвращаются не-владельцам.
// @Tags portfolios
// @Produce json
// @Param portfolioId path string true "ID портфолио"
// @Success 200 {object} dto.PortfolioViewResponse
// @Failure 403 {object} apperrors.ErrorResponse "This portfolio is private"
// @Failure 404 {object} apperrors.ErrorResponse "Portfolio not found"
// @Router /portfolios/{portfolioId} [get]
func (h *PortfolioHandler) View(c *gin.Context) {
	viewer := services.ViewerContext{
		UserID:    middleware.GetUserID(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	portfolio, err := h.portfolioService.View(c.Param("portfolioId"), viewer)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// ListPublic godoc
// @Summary Каталог публичных портфолио
// @Tags portfolios
// @Produce json
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.PortfolioListResponse
// @Router /portfolios [get]
func (h *PortfolioHandler) ListPublic(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.portfolioService.ListPublic(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ListOwn godoc
// @Summary Мои портфолио
// @Tags portfolios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PortfolioResponse
// @Router /portfolios/mine [get]
func (h *PortfolioHandler) ListOwn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	portfolios, err := h.portfolioService.ListOwn(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolios)
}

// Update godoc
// @Summary Обновить портфолио
// @Tags portfolios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param portfolioId path string true "ID портфолио"
// @Param request body dto.UpdatePortfolioRequest true "Изменяемые поля"
// @Success 200 {object} dto.PortfolioResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /portfolios/{portfolioId} [put]
func (h *PortfolioHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePortfolioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	portfolio, err := h.portfolioService.Update(userID, c.Param("portfolioId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// Delete godoc
// @Summary Удалить портфолио
// @Tags portfolios
// @Produce json
// @Security BearerAuth
// @Param portfolioId path string true "ID портфолио"
// @Success 200 {object} map[string]string
// @Router /portfolios/{portfolioId} [delete]
func (h *PortfolioHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.portfolioService.Delete(userID, c.Param("portfolioId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted successfully"})
}

// UpdateVisibility godoc
// @Summary Сменить публичность портфолио
// @Tags portfolios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param portfolioId path string true "ID портфолио"
// @Param request body dto.UpdateVisibilityRequest true "Флаг публичности"
// @Success 200 {object} map[string]string
// @Router /portfolios/{portfolioId}/visibility [put]
func (h *PortfolioHandler) UpdateVisibility(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateVisibilityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.portfolioService.UpdateVisibility(userID, c.Param("portfolioId"), req.IsPublic); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio visibility updated"})
}

// UpdateSectionVisibility godoc
// @Summary Настроить видимость секций
// @Description Частичное обновление: непереданные флаги не меняются
// @Tags portfolios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param portfolioId path string true "ID портфолио"
// @Param request body dto.UpdateSectionVisibilityRequest true "Флаги секций"
// @Success 200 {object} map[string]string
// @Router /portfolios/{portfolioId}/sections [put]
func (h *PortfolioHandler) UpdateSectionVisibility(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSectionVisibilityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.portfolioService.UpdateSectionVisibility(userID, c.Param("portfolioId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section visibility updated"})
}

// --- Section item handlers ---

func (h *PortfolioHandler) AddProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	project, err := h.portfolioService.AddProject(userID, c.Param("portfolioId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *PortfolioHandler) UpdateProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.portfolioService.UpdateProject(userID, c.Param("portfolioId"), c.Param("itemId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project updated"})
}

func (h *PortfolioHandler) DeleteProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.portfolioService.DeleteProject(userID, c.Param("portfolioId"), c.Param("itemId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *PortfolioHandler) AddEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EducationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	education, err := h.portfolioService.AddEducation(userID, c.Param("portfolioId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, education)
}

func (h *PortfolioHandler) UpdateEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EducationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.portfolioService.UpdateEducation(userID, c.Param("portfolioId"), c.Param("itemId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Education updated"})
}

func (h *PortfolioHandler) DeleteEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.portfolioService.DeleteEducation(userID, c.Param("portfolioId"), c.Param("itemId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Education deleted"})
}

func (h *PortfolioHandler) AddExperience(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ExperienceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	experience, err := h.portfolioService.AddExperience(userID, c.Param("portfolioId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, experience)
}

func (h *PortfolioHandler) UpdateExperience(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ExperienceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.portfolioService.UpdateExperience(userID, c.Param("portfolioId"), c.Param("itemId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Experience updated"})
}

func (h *PortfolioHandler) DeleteExperience(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.portfolioService.DeleteExperience(userID, c.Param("portfolioId"), c.Param("itemId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Experience deleted"})
}

func (h *PortfolioHandler) AddSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SkillRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	skill, err := h.portfolioService.AddSkill(userID, c.Param("portfolioId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, skill)
}

func (h *PortfolioHandler) UpdateSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SkillRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.portfolioService.UpdateSkill(userID, c.Param("portfolioId"), c.Param("itemId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill updated"})
}

func (h *PortfolioHandler) DeleteSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.portfolioService.DeleteSkill(userID, c.Param("portfolioId"), c.Param("itemId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill deleted"})
}

func (h *PortfolioHandler) AddSocialMediaLink(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SocialMediaLinkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	link, err := h.portfolioService.AddSocialMediaLink(userID, c.Param("portfolioId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

func (h *PortfolioHandler) UpdateSocialMediaLink(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SocialMediaLinkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.portfolioService.UpdateSocialMediaLink(userID, c.Param("portfolioId"), c.Param("itemId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Social media link updated"})
}

func (h *PortfolioHandler) DeleteSocialMediaLink(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.portfolioService.DeleteSocialMediaLink(userID, c.Param("portfolioId"), c.Param("itemId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Social media link deleted"})
}
