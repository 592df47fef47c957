package services

import (
	"time"

	"portfolia_backend/internal/models"
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"
)

type StatsService interface {
	// GetPortfolioStats - статистика просмотров, доступна только владельцу.
	GetPortfolioStats(userID, portfolioID string) (*dto.PortfolioStatsResponse, error)

	// GetPortfolioViews - постраничный журнал просмотров, только владельцу.
	GetPortfolioViews(userID, portfolioID string, page, pageSize int) (*dto.ViewLogListResponse, error)

	// GetPlatformStats - сводка по платформе (админ).
	GetPlatformStats() (*dto.PlatformStatsResponse, error)
}

type StatsServiceImpl struct {
	portfolioRepo repositories.PortfolioRepository
	viewLogRepo   repositories.ViewLogRepository
	accessRepo    repositories.AccessRequestRepository
	userRepo      repositories.UserRepository
}

func NewStatsService(
	portfolioRepo repositories.PortfolioRepository,
	viewLogRepo repositories.ViewLogRepository,
	accessRepo repositories.AccessRequestRepository,
	userRepo repositories.UserRepository,
) StatsService {
	return &StatsServiceImpl{
		portfolioRepo: portfolioRepo,
		viewLogRepo:   viewLogRepo,
		accessRepo:    accessRepo,
		userRepo:      userRepo,
	}
}

func (s *StatsServiceImpl) GetPortfolioStats(userID, portfolioID string) (*dto.PortfolioStatsResponse, error) {
	if err := s.checkOwner(userID, portfolioID); err != nil {
		return nil, err
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -int(todayStart.Weekday()))

	stats := &dto.PortfolioStatsResponse{PortfolioID: portfolioID}

	var err error
	if stats.TotalViews, err = s.viewLogRepo.CountByPortfolio(portfolioID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ViewsToday, err = s.viewLogRepo.CountByPortfolioSince(portfolioID, todayStart); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ViewsThisWeek, err = s.viewLogRepo.CountByPortfolioSince(portfolioID, weekStart); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.UniqueViewers, err = s.viewLogRepo.CountUniqueViewers(portfolioID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.PendingAccess, err = s.accessRepo.CountPending(userID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return stats, nil
}

func (s *StatsServiceImpl) GetPortfolioViews(userID, portfolioID string, page, pageSize int) (*dto.ViewLogListResponse, error) {
	if err := s.checkOwner(userID, portfolioID); err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	logs, total, err := s.viewLogRepo.FindByPortfolio(portfolioID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ViewLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, dto.NewViewLogResponse(&logs[i]))
	}

	return &dto.ViewLogListResponse{
		Views:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *StatsServiceImpl) GetPlatformStats() (*dto.PlatformStatsResponse, error) {
	stats := &dto.PlatformStatsResponse{}

	var err error
	if stats.TotalUsers, err = s.userRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalAdmins, err = s.userRepo.CountByRole(models.UserRoleAdmin); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalPortfolios, err = s.portfolioRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.PublicPortfolios, err = s.portfolioRepo.CountPublic(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return stats, nil
}

func (s *StatsServiceImpl) checkOwner(userID, portfolioID string) error {
	portfolio, err := s.portfolioRepo.FindByID(portfolioID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPortfolioNotFound) {
			return apperrors.ErrPortfolioNotFound
		}
		return apperrors.InternalError(err)
	}
	if portfolio.UserID != userID {
		return apperrors.ErrNotPortfolioOwner
	}
	return nil
}
