package services

import (
	"portfolia_backend/internal/repositories"
	"portfolia_backend/internal/services/dto"
	"portfolia_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	DeleteAccount(userID string) error

	// Admin operations
	ListUsers(page, pageSize int) (*dto.UserListResponse, error)
	DeleteUser(userID string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil && *req.Email != user.Email {
		// Email меняем только если он свободен
		if _, err := s.userRepo.FindByEmail(*req.Email); err == nil {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) DeleteAccount(userID string) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Admin operations

func (s *UserServiceImpl) ListUsers(page, pageSize int) (*dto.UserListResponse, error) {
	offset := (page - 1) * pageSize

	users, err := s.userRepo.FindAll(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *UserServiceImpl) DeleteUser(userID string) error {
	return s.DeleteAccount(userID)
}

// totalPages считает количество страниц для пагинированных ответов.
func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
