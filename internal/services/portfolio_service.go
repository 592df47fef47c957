package services

import (
	"encoding/json"
	"fmt"

	"portfolia_backend/internal/logger"
	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// ViewerContext описывает, кто смотрит портфолио.
// UserID пустой для анонимного зрителя.
type ViewerContext struct {
	UserID    string
	IPAddress string
	UserAgent string
}

type PortfolioService interface {
	Create(userID string, req *dto.CreatePortfolioRequest) (*dto.PortfolioResponse, error)
	Update(userID, portfolioID string, req *dto.UpdatePortfolioRequest) (*dto.PortfolioResponse, error)
	UpdateVisibility(userID, portfolioID string, isPublic bool) error
	UpdateSectionVisibility(userID, portfolioID string, req *dto.UpdateSectionVisibilityRequest) error
	Delete(userID, portfolioID string) error
	ListOwn(userID string) ([]dto.PortfolioResponse, error)
	ListPublic(page, pageSize int) (*dto.PortfolioListResponse, error)

	// View отдает портфолио глазами зрителя: проверяет право просмотра,
	// фильтрует секции, пишет журнал и уведомляет владельца.
	View(portfolioID string, viewer ViewerContext) (*dto.PortfolioViewResponse, error)

	// Section items
	AddProject(userID, portfolioID string, req *dto.ProjectRequest) (*models.Project, error)
	UpdateProject(userID, portfolioID, projectID string, req *dto.ProjectRequest) error
	DeleteProject(userID, portfolioID, projectID string) error
	AddEducation(userID, portfolioID string, req *dto.EducationRequest) (*models.Education, error)
	UpdateEducation(userID, portfolioID, educationID string, req *dto.EducationRequest) error
	DeleteEducation(userID, portfolioID, educationID string) error
	AddExperience(userID, portfolioID string, req *dto.ExperienceRequest) (*models.Experience, error)
	UpdateExperience(userID, portfolioID, experienceID string, req *dto.ExperienceRequest) error
	DeleteExperience(userID, portfolioID, experienceID string) error
	AddSkill(userID, portfolioID string, req *dto.SkillRequest) (*models.Skill, error)
	UpdateSkill(userID, portfolioID, skillID string, req *dto.SkillRequest) error
	DeleteSkill(userID, portfolioID, skillID string) error
	AddSocialMediaLink(userID, portfolioID string, req *dto.SocialMediaLinkRequest) (*models.SocialMediaLink, error)
	UpdateSocialMediaLink(userID, portfolioID, linkID string, req *dto.SocialMediaLinkRequest) error
	DeleteSocialMediaLink(userID, portfolioID, linkID string) error
}

type PortfolioServiceImpl struct {
	portfolioRepo    repositories.PortfolioRepository
	accessRepo       repositories.AccessRequestRepository
	notificationRepo repositories.NotificationRepository
	viewLogRepo      repositories.ViewLogRepository
	userRepo         repositories.UserRepository
}

func NewPortfolioService(
	portfolioRepo repositories.PortfolioRepository,
	accessRepo repositories.AccessRequestRepository,
	notificationRepo repositories.NotificationRepository,
	viewLogRepo repositories.ViewLogRepository,
	userRepo repositories.UserRepository,
) PortfolioService {
	return &PortfolioServiceImpl{
		portfolioRepo:    portfolioRepo,
		accessRepo:       accessRepo,
		notificationRepo: notificationRepo,
		viewLogRepo:      viewLogRepo,
		userRepo:         userRepo,
	}
}

func (s *PortfolioServiceImpl) Create(userID string, req *dto.CreatePortfolioRequest) (*dto.PortfolioResponse, error) {
	portfolio := &models.Portfolio{
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		ContactCity:    req.ContactCity,
		ContactCountry: req.ContactCountry,

		// Новое портфолио приватно, секции открыты
		IsPublic:        false,
		ShowProjects:    true,
		ShowEducation:   true,
		ShowExperience:  true,
		ShowSkills:      true,
		ShowSocialMedia: true,
	}

	if err := s.portfolioRepo.Create(portfolio); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewPortfolioResponse(portfolio)
	return &resp, nil
}

func (s *PortfolioServiceImpl) Update(userID, portfolioID string, req *dto.UpdatePortfolioRequest) (*dto.PortfolioResponse, error) {
	portfolio, err := s.getOwnedPortfolio(userID, portfolioID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		portfolio.Title = *req.Title
	}
	if req.Description != nil {
		portfolio.Description = *req.Description
	}
	if req.ImageURL != nil {
		portfolio.ImageURL = *req.ImageURL
	}
	if req.ContactEmail != nil {
		portfolio.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		portfolio.ContactPhone = *req.ContactPhone
	}
	if req.ContactCity != nil {
		portfolio.ContactCity = *req.ContactCity
	}
	if req.ContactCountry != nil {
		portfolio.ContactCountry = *req.ContactCountry
	}

	if err := s.portfolioRepo.Update(portfolio); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewPortfolioResponse(portfolio)
	return &resp, nil
}

func (s *PortfolioServiceImpl) UpdateVisibility(userID, portfolioID string, isPublic bool) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}

	if err := s.portfolioRepo.UpdateVisibility(portfolioID, isPublic); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PortfolioServiceImpl) UpdateSectionVisibility(userID, portfolioID string, req *dto.UpdateSectionVisibilityRequest) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}

	if err := s.portfolioRepo.UpdateSectionVisibility(portfolioID, req.ColumnFlags()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Delete удаляет портфолио со всем содержимым. Доступно владельцу,
// админ может удалить любое портфолио.
func (s *PortfolioServiceImpl) Delete(userID, portfolioID string) error {
	portfolio, err := s.portfolioRepo.FindByID(portfolioID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPortfolioNotFound) {
			return apperrors.ErrPortfolioNotFound
		}
		return apperrors.InternalError(err)
	}

	if portfolio.UserID != userID {
		caller, err := s.userRepo.FindByID(userID)
		if err != nil || caller.Role != models.UserRoleAdmin {
			return apperrors.ErrNotPortfolioOwner
		}
	}

	if err := s.portfolioRepo.Delete(portfolioID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PortfolioServiceImpl) ListOwn(userID string) ([]dto.PortfolioResponse, error) {
	portfolios, err := s.portfolioRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.PortfolioResponse, 0, len(portfolios))
	for i := range portfolios {
		responses = append(responses, dto.NewPortfolioResponse(&portfolios[i]))
	}
	return responses, nil
}

func (s *PortfolioServiceImpl) ListPublic(page, pageSize int) (*dto.PortfolioListResponse, error) {
	offset := (page - 1) * pageSize

	portfolios, total, err := s.portfolioRepo.FindPublic(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.PortfolioResponse, 0, len(portfolios))
	for i := range portfolios {
		responses = append(responses, dto.NewPortfolioResponse(&portfolios[i]))
	}

	return &dto.PortfolioListResponse{
		Portfolios: responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *PortfolioServiceImpl) View(portfolioID string, viewer ViewerContext) (*dto.PortfolioViewResponse, error) {
	portfolio, err := s.portfolioRepo.FindByIDWithSections(portfolioID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPortfolioNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	isOwner := viewer.UserID != "" && viewer.UserID == portfolio.UserID

	if !isOwner && !portfolio.IsPublic {
		// Приватное портфолио видно только одобренным пользователям
		if viewer.UserID == "" {
			return nil, apperrors.ErrPortfolioPrivate
		}
		approved, err := s.accessRepo.HasApprovedAccess(portfolioID, viewer.UserID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if !approved {
			return nil, apperrors.ErrPortfolioPrivate
		}
	}

	resp := &dto.PortfolioViewResponse{
		PortfolioResponse: dto.NewPortfolioResponse(portfolio),
		IsOwner:           isOwner,
	}

	// Владелец видит все секции независимо от флагов
	if isOwner || portfolio.ShowProjects {
		resp.Projects = portfolio.Projects
	}
	if isOwner || portfolio.ShowEducation {
		resp.Educations = portfolio.Educations
	}
	if isOwner || portfolio.ShowExperience {
		resp.Experiences = portfolio.Experiences
	}
	if isOwner || portfolio.ShowSkills {
		resp.Skills = portfolio.Skills
	}
	if isOwner || portfolio.ShowSocialMedia {
		resp.SocialMediaLinks = portfolio.SocialMediaLinks
	}

	// Просмотр владельцем не логируется и не шумит уведомлениями
	if !isOwner {
		s.recordView(portfolio, viewer)
	}

	return resp, nil
}

// recordView пишет журнал просмотров и уведомляет владельца (best-effort).
func (s *PortfolioServiceImpl) recordView(portfolio *models.Portfolio, viewer ViewerContext) {
	log := &models.PortfolioViewLog{
		PortfolioID: portfolio.ID,
		IPAddress:   viewer.IPAddress,
		UserAgent:   viewer.UserAgent,
	}

	viewerName := ""
	if viewer.UserID != "" {
		log.ViewerID = &viewer.UserID
		if user, err := s.userRepo.FindByID(viewer.UserID); err == nil {
			log.ViewerName = user.FullName
			log.ViewerEmail = user.Email
			viewerName = user.FullName
		}
	}

	if err := s.viewLogRepo.Create(log); err != nil {
		logger.Warn("Failed to record portfolio view", "portfolio_id", portfolio.ID, "error", err)
		return
	}

	// Анонимные просмотры попадают только в журнал, без уведомления
	if viewer.UserID == "" {
		return
	}
	if viewerName == "" {
		viewerName = "Someone"
	}

	data, _ := json.Marshal(map[string]interface{}{
		"portfolio_id": portfolio.ID,
		"view_log_id":  log.ID,
	})

	notification := &models.Notification{
		UserID:  portfolio.UserID,
		Type:    repositories.NotificationTypePortfolioViewed,
		Title:   "Your portfolio was viewed",
		Message: fmt.Sprintf("%s viewed your portfolio \"%s\"", viewerName, portfolio.Title),
		Data:    datatypes.JSON(data),
	}

	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		logger.Warn("Failed to create view notification", "portfolio_id", portfolio.ID, "error", err)
	}
}

// Section items

func (s *PortfolioServiceImpl) AddProject(userID, portfolioID string, req *dto.ProjectRequest) (*models.Project, error) {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return nil, err
	}

	project := &models.Project{
		PortfolioID: portfolioID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		StartedAt:   req.StartedAt,
		FinishedAt:  req.FinishedAt,
		OrderIndex:  req.OrderIndex,
	}

	if err := s.portfolioRepo.CreateProject(project); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return project, nil
}

func (s *PortfolioServiceImpl) UpdateProject(userID, portfolioID, projectID string, req *dto.ProjectRequest) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		StartedAt:   req.StartedAt,
		FinishedAt:  req.FinishedAt,
		OrderIndex:  req.OrderIndex,
	}
	project.ID = projectID
	project.PortfolioID = portfolioID

	return s.mapItemError(s.portfolioRepo.UpdateProject(project))
}

func (s *PortfolioServiceImpl) DeleteProject(userID, portfolioID, projectID string) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}
	return s.mapItemError(s.portfolioRepo.DeleteProject(portfolioID, projectID))
}

func (s *PortfolioServiceImpl) AddEducation(userID, portfolioID string, req *dto.EducationRequest) (*models.Education, error) {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return nil, err
	}

	education := &models.Education{
		PortfolioID: portfolioID,
		Institution: req.Institution,
		Degree:      req.Degree,
		Field:       req.Field,
		StartedAt:   req.StartedAt,
		FinishedAt:  req.FinishedAt,
		OrderIndex:  req.OrderIndex,
	}

	if err := s.portfolioRepo.CreateEducation(education); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return education, nil
}

func (s *PortfolioServiceImpl) UpdateEducation(userID, portfolioID, educationID string, req *dto.EducationRequest) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}

	education := &models.Education{
		Institution: req.Institution,
		Degree:      req.Degree,
		Field:       req.Field,
		StartedAt:   req.StartedAt,
		FinishedAt:  req.FinishedAt,
		OrderIndex:  req.OrderIndex,
	}
	education.ID = educationID
	education.PortfolioID = portfolioID

	return s.mapItemError(s.portfolioRepo.UpdateEducation(education))
}

func (s *PortfolioServiceImpl) DeleteEducation(userID, portfolioID, educationID string) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}
	return s.mapItemError(s.portfolioRepo.DeleteEducation(portfolioID, educationID))
}

func (s *PortfolioServiceImpl) AddExperience(userID, portfolioID string, req *dto.ExperienceRequest) (*models.Experience, error) {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return nil, err
	}

	experience := &models.Experience{
		PortfolioID: portfolioID,
		Company:     req.Company,
		Position:    req.Position,
		Description: req.Description,
		StartedAt:   req.StartedAt,
		FinishedAt:  req.FinishedAt,
		OrderIndex:  req.OrderIndex,
	}

	if err := s.portfolioRepo.CreateExperience(experience); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return experience, nil
}

func (s *PortfolioServiceImpl) UpdateExperience(userID, portfolioID, experienceID string, req *dto.ExperienceRequest) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}

	experience := &models.Experience{
		Company:     req.Company,
		Position:    req.Position,
		Description: req.Description,
		StartedAt:   req.StartedAt,
		FinishedAt:  req.FinishedAt,
		OrderIndex:  req.OrderIndex,
	}
	experience.ID = experienceID
	experience.PortfolioID = portfolioID

	return s.mapItemError(s.portfolioRepo.UpdateExperience(experience))
}

func (s *PortfolioServiceImpl) DeleteExperience(userID, portfolioID, experienceID string) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}
	return s.mapItemError(s.portfolioRepo.DeleteExperience(portfolioID, experienceID))
}

func (s *PortfolioServiceImpl) AddSkill(userID, portfolioID string, req *dto.SkillRequest) (*models.Skill, error) {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return nil, err
	}

	skill := &models.Skill{
		PortfolioID: portfolioID,
		Name:        req.Name,
		Level:       req.Level,
		OrderIndex:  req.OrderIndex,
	}

	if err := s.portfolioRepo.CreateSkill(skill); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return skill, nil
}

func (s *PortfolioServiceImpl) UpdateSkill(userID, portfolioID, skillID string, req *dto.SkillRequest) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}

	skill := &models.Skill{
		Name:       req.Name,
		Level:      req.Level,
		OrderIndex: req.OrderIndex,
	}
	skill.ID = skillID
	skill.PortfolioID = portfolioID

	return s.mapItemError(s.portfolioRepo.UpdateSkill(skill))
}

func (s *PortfolioServiceImpl) DeleteSkill(userID, portfolioID, skillID string) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}
	return s.mapItemError(s.portfolioRepo.DeleteSkill(portfolioID, skillID))
}

func (s *PortfolioServiceImpl) AddSocialMediaLink(userID, portfolioID string, req *dto.SocialMediaLinkRequest) (*models.SocialMediaLink, error) {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return nil, err
	}

	link := &models.SocialMediaLink{
		PortfolioID: portfolioID,
		Platform:    req.Platform,
		URL:         req.URL,
		OrderIndex:  req.OrderIndex,
	}

	if err := s.portfolioRepo.CreateSocialMediaLink(link); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return link, nil
}

func (s *PortfolioServiceImpl) UpdateSocialMediaLink(userID, portfolioID, linkID string, req *dto.SocialMediaLinkRequest) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}

	link := &models.SocialMediaLink{
		Platform:   req.Platform,
		URL:        req.URL,
		OrderIndex: req.OrderIndex,
	}
	link.ID = linkID
	link.PortfolioID = portfolioID

	return s.mapItemError(s.portfolioRepo.UpdateSocialMediaLink(link))
}

func (s *PortfolioServiceImpl) DeleteSocialMediaLink(userID, portfolioID, linkID string) error {
	if _, err := s.getOwnedPortfolio(userID, portfolioID); err != nil {
		return err
	}
	return s.mapItemError(s.portfolioRepo.DeleteSocialMediaLink(portfolioID, linkID))
}

// --- Helper functions ---

// getOwnedPortfolio загружает портфолио и проверяет владельца.
func (s *PortfolioServiceImpl) getOwnedPortfolio(userID, portfolioID string) (*models.Portfolio, error) {
	portfolio, err := s.portfolioRepo.FindByID(portfolioID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPortfolioNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if portfolio.UserID != userID {
		return nil, apperrors.ErrNotPortfolioOwner
	}

	return portfolio, nil
}

func (s *PortfolioServiceImpl) mapItemError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, repositories.ErrPortfolioItemNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
