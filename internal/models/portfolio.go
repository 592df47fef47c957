package models

import "time"

// Portfolio - корневой контейнер профиля пользователя.
// Флаги видимости секций независимы друг от друга и от IsPublic:
// приватное портфолио может открывать отдельные секции одобренным
// пользователям, публичное - скрывать отдельные секции от всех не-владельцев.
type Portfolio struct {
	BaseModel
	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:2000" json:"description"`
	ImageURL    string `gorm:"size:500" json:"image_url"`

	IsPublic        bool `gorm:"default:false" json:"is_public"`
	ShowProjects    bool `gorm:"default:true" json:"show_projects"`
	ShowEducation   bool `gorm:"default:true" json:"show_education"`
	ShowExperience  bool `gorm:"default:true" json:"show_experience"`
	ShowSkills      bool `gorm:"default:true" json:"show_skills"`
	ShowSocialMedia bool `gorm:"default:true" json:"show_social_media"`

	ContactEmail   string `gorm:"size:200" json:"contact_email"`
	ContactPhone   string `gorm:"size:50" json:"contact_phone"`
	ContactCity    string `gorm:"size:100" json:"contact_city"`
	ContactCountry string `gorm:"size:100" json:"contact_country"`

	// Relations
	Owner            *User             `gorm:"foreignKey:UserID" json:"-"`
	Projects         []Project         `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
	Educations       []Education       `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"educations,omitempty"`
	Experiences      []Experience      `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"experiences,omitempty"`
	Skills           []Skill           `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	SocialMediaLinks []SocialMediaLink `gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE" json:"social_media_links,omitempty"`
}

type Project struct {
	BaseModel
	PortfolioID string     `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:2000" json:"description"`
	URL         string     `gorm:"size:500" json:"url"`
	ImageURL    string     `gorm:"size:500" json:"image_url"`
	StartedAt   *time.Time `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	OrderIndex  int        `gorm:"default:0" json:"order_index"`
}

type Education struct {
	BaseModel
	PortfolioID string     `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	Institution string     `gorm:"size:200;not null" json:"institution"`
	Degree      string     `gorm:"size:200" json:"degree"`
	Field       string     `gorm:"size:200" json:"field"`
	StartedAt   *time.Time `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	OrderIndex  int        `gorm:"default:0" json:"order_index"`
}

type Experience struct {
	BaseModel
	PortfolioID string     `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	Company     string     `gorm:"size:200;not null" json:"company"`
	Position    string     `gorm:"size:200;not null" json:"position"`
	Description string     `gorm:"size:2000" json:"description"`
	StartedAt   *time.Time `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	OrderIndex  int        `gorm:"default:0" json:"order_index"`
}

type Skill struct {
	BaseModel
	PortfolioID string `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Level       int    `gorm:"default:0" json:"level"` // 0-5
	OrderIndex  int    `gorm:"default:0" json:"order_index"`
}

type SocialMediaLink struct {
	BaseModel
	PortfolioID string `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	Platform    string `gorm:"size:100;not null" json:"platform"`
	URL         string `gorm:"size:500;not null" json:"url"`
	OrderIndex  int    `gorm:"default:0" json:"order_index"`
}
