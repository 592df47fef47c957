package dto

// UpdateProfileRequest - обновление профиля пользователя
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

// UserListResponse - страница пользователей (админ)
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}
