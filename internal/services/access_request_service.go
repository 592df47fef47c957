package services

import (
	"encoding/json"
	"fmt"
	"time"

	"portfolia_backend/internal/email"
	"portfolia_backend/internal/logger"
	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type AccessRequestService interface {
	// RequestAccess создает запрос доступа к приватному портфолио.
	// Запрос и уведомление владельцу пишутся атомарно, дубликат по паре
	// (портфолио, пользователь) отклоняется на уровне БД.
	RequestAccess(requesterID, portfolioID string, req *dto.CreateAccessRequestRequest) (*dto.AccessRequestResponse, error)

	// Decide фиксирует решение владельца и уведомляет автора запроса.
	Decide(ownerID, requestID string, req *dto.DecideAccessRequestRequest) (*dto.AccessRequestResponse, error)

	ListIncoming(ownerID string, status string) (*dto.AccessRequestListResponse, error)
	ListOutgoing(requesterID string) (*dto.AccessRequestListResponse, error)
	GetRequest(userID, requestID string) (*dto.AccessRequestResponse, error)
	CancelRequest(requesterID, requestID string) error

	// DebugPortfolio - анонимная диагностика: существует ли портфолио
	// и сколько по нему запросов. Без персональных данных.
	DebugPortfolio(portfolioID string) (*dto.AccessRequestDebugResponse, error)
}

type AccessRequestServiceImpl struct {
	accessRepo       repositories.AccessRequestRepository
	portfolioRepo    repositories.PortfolioRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	emailProvider    email.Provider
	baseURL          string
}

func NewAccessRequestService(
	accessRepo repositories.AccessRequestRepository,
	portfolioRepo repositories.PortfolioRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	baseURL string,
) AccessRequestService {
	return &AccessRequestServiceImpl{
		accessRepo:       accessRepo,
		portfolioRepo:    portfolioRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailProvider:    emailProvider,
		baseURL:          baseURL,
	}
}

func (s *AccessRequestServiceImpl) RequestAccess(requesterID, portfolioID string, req *dto.CreateAccessRequestRequest) (*dto.AccessRequestResponse, error) {
	portfolio, err := s.portfolioRepo.FindByID(portfolioID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPortfolioNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if portfolio.UserID == requesterID {
		return nil, apperrors.ErrOwnPortfolioRequest
	}

	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	request := &models.AccessRequest{
		PortfolioID: portfolioID,
		RequesterID: requesterID,
		Status:      models.AccessRequestPending,
		Message:     req.Message,
	}

	notification := s.buildRequestedNotification(portfolio, requester, request)

	if err := s.accessRepo.CreateWithNotification(request, notification); err != nil {
		if apperrors.Is(err, repositories.ErrAccessRequestExists) {
			return nil, apperrors.ErrAccessRequestExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendRequestedEmail(portfolio, requester, req.Message)

	resp := dto.NewAccessRequestResponse(request)
	resp.PortfolioTitle = portfolio.Title
	resp.RequesterName = requester.FullName
	return &resp, nil
}

func (s *AccessRequestServiceImpl) Decide(ownerID, requestID string, req *dto.DecideAccessRequestRequest) (*dto.AccessRequestResponse, error) {
	request, err := s.accessRepo.FindByID(requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccessRequestNotFound) {
			return nil, apperrors.ErrAccessRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if request.Portfolio == nil || request.Portfolio.UserID != ownerID {
		return nil, apperrors.ErrNotPortfolioOwner
	}

	if request.Decided() {
		return nil, apperrors.ErrRequestAlreadyDecided
	}

	now := time.Now()
	request.OwnerResponseNote = req.OwnerNote
	request.DecidedAt = &now
	if req.Approve {
		request.Status = models.AccessRequestApproved
	} else {
		request.Status = models.AccessRequestRejected
	}

	notification := s.buildDecidedNotification(request)

	if err := s.accessRepo.DecideWithNotification(request, notification); err != nil {
		if apperrors.Is(err, repositories.ErrAccessRequestDecided) {
			// Конкурентное решение успело раньше
			return nil, apperrors.ErrRequestAlreadyDecided
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendDecidedEmail(request)

	resp := dto.NewAccessRequestResponse(request)
	return &resp, nil
}

func (s *AccessRequestServiceImpl) ListIncoming(ownerID string, status string) (*dto.AccessRequestListResponse, error) {
	requests, err := s.accessRepo.FindIncoming(ownerID, models.AccessRequestStatus(status))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildRequestList(requests), nil
}

func (s *AccessRequestServiceImpl) ListOutgoing(requesterID string) (*dto.AccessRequestListResponse, error) {
	requests, err := s.accessRepo.FindOutgoing(requesterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildRequestList(requests), nil
}

func (s *AccessRequestServiceImpl) GetRequest(userID, requestID string) (*dto.AccessRequestResponse, error) {
	request, err := s.accessRepo.FindByID(requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccessRequestNotFound) {
			return nil, apperrors.ErrAccessRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Запрос видят только его автор и владелец портфолио
	isRequester := request.RequesterID == userID
	isOwner := request.Portfolio != nil && request.Portfolio.UserID == userID
	if !isRequester && !isOwner {
		return nil, apperrors.ErrAccessRequestNotFound
	}

	resp := dto.NewAccessRequestResponse(request)
	return &resp, nil
}

func (s *AccessRequestServiceImpl) CancelRequest(requesterID, requestID string) error {
	request, err := s.accessRepo.FindByID(requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccessRequestNotFound) {
			return apperrors.ErrAccessRequestNotFound
		}
		return apperrors.InternalError(err)
	}

	if request.RequesterID != requesterID {
		return apperrors.ErrAccessRequestNotFound
	}

	// Отозвать можно только нерешенный запрос
	if request.Decided() {
		return apperrors.ErrRequestAlreadyDecided
	}

	if err := s.accessRepo.Delete(requestID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// --- Helper functions ---

func (s *AccessRequestServiceImpl) DebugPortfolio(portfolioID string) (*dto.AccessRequestDebugResponse, error) {
	resp := &dto.AccessRequestDebugResponse{PortfolioID: portfolioID}

	_, err := s.portfolioRepo.FindByID(portfolioID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPortfolioNotFound) {
			return resp, nil
		}
		return nil, apperrors.InternalError(err)
	}
	resp.PortfolioExists = true

	requests, err := s.accessRepo.FindByPortfolio(portfolioID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.RequestCount = len(requests)
	for _, r := range requests {
		if !r.Decided() {
			resp.PendingCount++
		}
	}

	return resp, nil
}

func (s *AccessRequestServiceImpl) buildRequestedNotification(portfolio *models.Portfolio, requester *models.User, request *models.AccessRequest) *models.Notification {
	data, _ := json.Marshal(map[string]interface{}{
		"portfolio_id": portfolio.ID,
		"requester_id": requester.ID,
	})

	return &models.Notification{
		UserID:  portfolio.UserID,
		Type:    repositories.NotificationTypeAccessRequested,
		Title:   "New access request",
		Message: fmt.Sprintf("%s requested access to your portfolio \"%s\"", requester.FullName, portfolio.Title),
		Data:    datatypes.JSON(data),
	}
}

func (s *AccessRequestServiceImpl) buildDecidedNotification(request *models.AccessRequest) *models.Notification {
	portfolioTitle := ""
	if request.Portfolio != nil {
		portfolioTitle = request.Portfolio.Title
	}

	data, _ := json.Marshal(map[string]interface{}{
		"portfolio_id":      request.PortfolioID,
		"access_request_id": request.ID,
	})

	notification := &models.Notification{
		UserID: request.RequesterID,
		Data:   datatypes.JSON(data),
	}

	if request.Status == models.AccessRequestApproved {
		notification.Type = repositories.NotificationTypeAccessApproved
		notification.Title = "Access request approved"
		notification.Message = fmt.Sprintf("Your request to view \"%s\" was approved", portfolioTitle)
	} else {
		notification.Type = repositories.NotificationTypeAccessRejected
		notification.Title = "Access request rejected"
		notification.Message = fmt.Sprintf("Your request to view \"%s\" was rejected", portfolioTitle)
	}

	return notification
}

// sendRequestedEmail уведомляет владельца по почте (best-effort).
func (s *AccessRequestServiceImpl) sendRequestedEmail(portfolio *models.Portfolio, requester *models.User, message string) {
	if s.emailProvider == nil {
		return
	}

	owner, err := s.userRepo.FindByID(portfolio.UserID)
	if err != nil {
		logger.Warn("Failed to load portfolio owner for email", "portfolio_id", portfolio.ID, "error", err)
		return
	}

	go func() {
		data := email.AccessRequestedData{
			OwnerName:      owner.FullName,
			RequesterName:  requester.FullName,
			PortfolioTitle: portfolio.Title,
			Message:        message,
			ActionURL:      fmt.Sprintf("%s/access-requests/incoming", s.baseURL),
		}
		if err := s.emailProvider.SendAccessRequested(owner.Email, data); err != nil {
			logger.Warn("Failed to send access request email", "email", owner.Email, "error", err)
		}
	}()
}

// sendDecidedEmail уведомляет автора запроса по почте (best-effort).
func (s *AccessRequestServiceImpl) sendDecidedEmail(request *models.AccessRequest) {
	if s.emailProvider == nil {
		return
	}

	requester, err := s.userRepo.FindByID(request.RequesterID)
	if err != nil {
		logger.Warn("Failed to load requester for email", "request_id", request.ID, "error", err)
		return
	}

	portfolioTitle := ""
	if request.Portfolio != nil {
		portfolioTitle = request.Portfolio.Title
	}

	approved := request.Status == models.AccessRequestApproved

	go func() {
		data := email.AccessDecidedData{
			RequesterName:  requester.FullName,
			PortfolioTitle: portfolioTitle,
			Approved:       approved,
			OwnerNote:      request.OwnerResponseNote,
			ActionURL:      fmt.Sprintf("%s/portfolios/%s", s.baseURL, request.PortfolioID),
		}
		if err := s.emailProvider.SendAccessDecided(requester.Email, data); err != nil {
			logger.Warn("Failed to send access decision email", "email", requester.Email, "error", err)
		}
	}()
}

func buildRequestList(requests []models.AccessRequest) *dto.AccessRequestListResponse {
	responses := make([]dto.AccessRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, dto.NewAccessRequestResponse(&requests[i]))
	}
	return &dto.AccessRequestListResponse{
		Requests: responses,
		Total:    len(responses),
	}
}
