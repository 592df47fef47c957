package dto

import (
	"time"

	"portfolia_backend/internal/models"
)

// ---------------- Requests ----------------

type CreatePortfolioRequest struct {
	Title          string `json:"title" validate:"required,max=200"`
	Description    string `json:"description" validate:"omitempty,max=2000"`
	ImageURL       string `json:"image_url" validate:"omitempty,url,max=500"`
	ContactEmail   string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone   string `json:"contact_phone" validate:"omitempty,max=50"`
	ContactCity    string `json:"contact_city" validate:"omitempty,max=100"`
	ContactCountry string `json:"contact_country" validate:"omitempty,max=100"`
}

type UpdatePortfolioRequest struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL       *string `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
	ContactEmail   *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone   *string `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
	ContactCity    *string `json:"contact_city,omitempty" validate:"omitempty,max=100"`
	ContactCountry *string `json:"contact_country,omitempty" validate:"omitempty,max=100"`
}

// UpdateVisibilityRequest переключает публичность портфолио.
type UpdateVisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}

// UpdateSectionVisibilityRequest - частичное обновление флагов секций.
// Nil-поля не трогаются.
type UpdateSectionVisibilityRequest struct {
	ShowProjects    *bool `json:"show_projects,omitempty"`
	ShowEducation   *bool `json:"show_education,omitempty"`
	ShowExperience  *bool `json:"show_experience,omitempty"`
	ShowSkills      *bool `json:"show_skills,omitempty"`
	ShowSocialMedia *bool `json:"show_social_media,omitempty"`
}

// ColumnFlags переводит запрос в карту "колонка -> значение" для repository.
func (r *UpdateSectionVisibilityRequest) ColumnFlags() map[string]bool {
	flags := make(map[string]bool)
	if r.ShowProjects != nil {
		flags["show_projects"] = *r.ShowProjects
	}
	if r.ShowEducation != nil {
		flags["show_education"] = *r.ShowEducation
	}
	if r.ShowExperience != nil {
		flags["show_experience"] = *r.ShowExperience
	}
	if r.ShowSkills != nil {
		flags["show_skills"] = *r.ShowSkills
	}
	if r.ShowSocialMedia != nil {
		flags["show_social_media"] = *r.ShowSocialMedia
	}
	return flags
}

// Section item requests

type ProjectRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	URL         string     `json:"url" validate:"omitempty,url,max=500"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url,max=500"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	OrderIndex  int        `json:"order_index" validate:"omitempty,min=0"`
}

type EducationRequest struct {
	Institution string     `json:"institution" validate:"required,max=200"`
	Degree      string     `json:"degree" validate:"omitempty,max=200"`
	Field       string     `json:"field" validate:"omitempty,max=200"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	OrderIndex  int        `json:"order_index" validate:"omitempty,min=0"`
}

type ExperienceRequest struct {
	Company     string     `json:"company" validate:"required,max=200"`
	Position    string     `json:"position" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	OrderIndex  int        `json:"order_index" validate:"omitempty,min=0"`
}

type SkillRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Level      int    `json:"level" validate:"skill_level"`
	OrderIndex int    `json:"order_index" validate:"omitempty,min=0"`
}

type SocialMediaLinkRequest struct {
	Platform   string `json:"platform" validate:"required,max=100"`
	URL        string `json:"url" validate:"required,url,max=500"`
	OrderIndex int    `json:"order_index" validate:"omitempty,min=0"`
}

// ---------------- Responses ----------------

type PortfolioResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`

	IsPublic        bool `json:"is_public"`
	ShowProjects    bool `json:"show_projects"`
	ShowEducation   bool `json:"show_education"`
	ShowExperience  bool `json:"show_experience"`
	ShowSkills      bool `json:"show_skills"`
	ShowSocialMedia bool `json:"show_social_media"`

	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone"`
	ContactCity    string `json:"contact_city"`
	ContactCountry string `json:"contact_country"`

	OwnerName string    `json:"owner_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PortfolioViewResponse - портфолио глазами конкретного зрителя.
// Скрытая секция приходит как nil, а не пустой список, чтобы клиент
// отличал "выключено владельцем" от "пока пусто".
type PortfolioViewResponse struct {
	PortfolioResponse
	IsOwner bool `json:"is_owner"`

	Projects         []models.Project         `json:"projects,omitempty"`
	Educations       []models.Education       `json:"educations,omitempty"`
	Experiences      []models.Experience      `json:"experiences,omitempty"`
	Skills           []models.Skill           `json:"skills,omitempty"`
	SocialMediaLinks []models.SocialMediaLink `json:"social_media_links,omitempty"`
}

type PortfolioListResponse struct {
	Portfolios []PortfolioResponse `json:"portfolios"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// NewPortfolioResponse маппит модель в DTO.
func NewPortfolioResponse(p *models.Portfolio) PortfolioResponse {
	resp := PortfolioResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Title:           p.Title,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		IsPublic:        p.IsPublic,
		ShowProjects:    p.ShowProjects,
		ShowEducation:   p.ShowEducation,
		ShowExperience:  p.ShowExperience,
		ShowSkills:      p.ShowSkills,
		ShowSocialMedia: p.ShowSocialMedia,
		ContactEmail:    p.ContactEmail,
		ContactPhone:    p.ContactPhone,
		ContactCity:     p.ContactCity,
		ContactCountry:  p.ContactCountry,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Owner != nil {
		resp.OwnerName = p.Owner.FullName
	}
	return resp
}
