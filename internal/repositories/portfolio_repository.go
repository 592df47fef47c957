package repositories

import (
	"errors"
	"time"

	"portfolia_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPortfolioNotFound     = errors.New("portfolio not found")
	ErrPortfolioItemNotFound = errors.New("portfolio item not found")
)

type PortfolioRepository interface {
	// Portfolio operations
	Create(portfolio *models.Portfolio) error
	FindByID(id string) (*models.Portfolio, error)
	FindByIDWithSections(id string) (*models.Portfolio, error)
	FindByUser(userID string) ([]models.Portfolio, error)
	FindPublic(limit, offset int) ([]models.Portfolio, int64, error)
	Update(portfolio *models.Portfolio) error
	UpdateVisibility(id string, isPublic bool) error
	UpdateSectionVisibility(id string, flags map[string]bool) error
	Delete(id string) error
	CountAll() (int64, error)
	CountPublic() (int64, error)

	// Section item operations
	CreateProject(project *models.Project) error
	UpdateProject(project *models.Project) error
	DeleteProject(portfolioID, projectID string) error
	CreateEducation(education *models.Education) error
	UpdateEducation(education *models.Education) error
	DeleteEducation(portfolioID, educationID string) error
	CreateExperience(experience *models.Experience) error
	UpdateExperience(experience *models.Experience) error
	DeleteExperience(portfolioID, experienceID string) error
	CreateSkill(skill *models.Skill) error
	UpdateSkill(skill *models.Skill) error
	DeleteSkill(portfolioID, skillID string) error
	CreateSocialMediaLink(link *models.SocialMediaLink) error
	UpdateSocialMediaLink(link *models.SocialMediaLink) error
	DeleteSocialMediaLink(portfolioID, linkID string) error
}

type PortfolioRepositoryImpl struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &PortfolioRepositoryImpl{db: db}
}

// Portfolio operations

func (r *PortfolioRepositoryImpl) Create(portfolio *models.Portfolio) error {
	return r.db.Create(portfolio).Error
}

func (r *PortfolioRepositoryImpl) FindByID(id string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := r.db.First(&portfolio, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	return &portfolio, nil
}

func (r *PortfolioRepositoryImpl) FindByIDWithSections(id string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := r.db.
		Preload("Owner").
		Preload("Projects", orderByIndex).
		Preload("Educations", orderByIndex).
		Preload("Experiences", orderByIndex).
		Preload("Skills", orderByIndex).
		Preload("SocialMediaLinks", orderByIndex).
		First(&portfolio, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	return &portfolio, nil
}

func orderByIndex(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC, created_at ASC")
}

func (r *PortfolioRepositoryImpl) FindByUser(userID string) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&portfolios).Error
	return portfolios, err
}

func (r *PortfolioRepositoryImpl) FindPublic(limit, offset int) ([]models.Portfolio, int64, error) {
	var portfolios []models.Portfolio
	query := r.db.Model(&models.Portfolio{}).Where("is_public = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Owner").
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&portfolios).Error

	return portfolios, total, err
}

func (r *PortfolioRepositoryImpl) Update(portfolio *models.Portfolio) error {
	result := r.db.Model(portfolio).Updates(map[string]interface{}{
		"title":           portfolio.Title,
		"description":     portfolio.Description,
		"image_url":       portfolio.ImageURL,
		"contact_email":   portfolio.ContactEmail,
		"contact_phone":   portfolio.ContactPhone,
		"contact_city":    portfolio.ContactCity,
		"contact_country": portfolio.ContactCountry,
		"updated_at":      time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) UpdateVisibility(id string, isPublic bool) error {
	result := r.db.Model(&models.Portfolio{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_public":  isPublic,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

// UpdateSectionVisibility обновляет только переданные флаги секций.
// Ключи - имена колонок: show_projects, show_education, show_experience,
// show_skills, show_social_media.
func (r *PortfolioRepositoryImpl) UpdateSectionVisibility(id string, flags map[string]bool) error {
	if len(flags) == 0 {
		return nil
	}

	updates := make(map[string]interface{}, len(flags)+1)
	for column, value := range flags {
		updates[column] = value
	}
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Portfolio{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) Delete(id string) error {
	// Start transaction to delete portfolio and related data
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Skill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.SocialMediaLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.AccessRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.PortfolioViewLog{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Portfolio{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPortfolioNotFound
		}
		return nil
	})
}

func (r *PortfolioRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Portfolio{}).Count(&count).Error
	return count, err
}

func (r *PortfolioRepositoryImpl) CountPublic() (int64, error) {
	var count int64
	err := r.db.Model(&models.Portfolio{}).Where("is_public = ?", true).Count(&count).Error
	return count, err
}

// Section item operations

func (r *PortfolioRepositoryImpl) CreateProject(project *models.Project) error {
	r.assignNextOrderIndex(&models.Project{}, project.PortfolioID, &project.OrderIndex)
	return r.db.Create(project).Error
}

func (r *PortfolioRepositoryImpl) UpdateProject(project *models.Project) error {
	result := r.db.Model(project).Where("portfolio_id = ?", project.PortfolioID).Updates(map[string]interface{}{
		"title":       project.Title,
		"description": project.Description,
		"url":         project.URL,
		"image_url":   project.ImageURL,
		"started_at":  project.StartedAt,
		"finished_at": project.FinishedAt,
		"order_index": project.OrderIndex,
		"updated_at":  time.Now(),
	})
	return itemUpdateResult(result)
}

func (r *PortfolioRepositoryImpl) DeleteProject(portfolioID, projectID string) error {
	return r.deleteItem(&models.Project{}, portfolioID, projectID)
}

func (r *PortfolioRepositoryImpl) CreateEducation(education *models.Education) error {
	r.assignNextOrderIndex(&models.Education{}, education.PortfolioID, &education.OrderIndex)
	return r.db.Create(education).Error
}

func (r *PortfolioRepositoryImpl) UpdateEducation(education *models.Education) error {
	result := r.db.Model(education).Where("portfolio_id = ?", education.PortfolioID).Updates(map[string]interface{}{
		"institution": education.Institution,
		"degree":      education.Degree,
		"field":       education.Field,
		"started_at":  education.StartedAt,
		"finished_at": education.FinishedAt,
		"order_index": education.OrderIndex,
		"updated_at":  time.Now(),
	})
	return itemUpdateResult(result)
}

func (r *PortfolioRepositoryImpl) DeleteEducation(portfolioID, educationID string) error {
	return r.deleteItem(&models.Education{}, portfolioID, educationID)
}

func (r *PortfolioRepositoryImpl) CreateExperience(experience *models.Experience) error {
	r.assignNextOrderIndex(&models.Experience{}, experience.PortfolioID, &experience.OrderIndex)
	return r.db.Create(experience).Error
}

func (r *PortfolioRepositoryImpl) UpdateExperience(experience *models.Experience) error {
	result := r.db.Model(experience).Where("portfolio_id = ?", experience.PortfolioID).Updates(map[string]interface{}{
		"company":     experience.Company,
		"position":    experience.Position,
		"description": experience.Description,
		"started_at":  experience.StartedAt,
		"finished_at": experience.FinishedAt,
		"order_index": experience.OrderIndex,
		"updated_at":  time.Now(),
	})
	return itemUpdateResult(result)
}

func (r *PortfolioRepositoryImpl) DeleteExperience(portfolioID, experienceID string) error {
	return r.deleteItem(&models.Experience{}, portfolioID, experienceID)
}

func (r *PortfolioRepositoryImpl) CreateSkill(skill *models.Skill) error {
	r.assignNextOrderIndex(&models.Skill{}, skill.PortfolioID, &skill.OrderIndex)
	return r.db.Create(skill).Error
}

func (r *PortfolioRepositoryImpl) UpdateSkill(skill *models.Skill) error {
	result := r.db.Model(skill).Where("portfolio_id = ?", skill.PortfolioID).Updates(map[string]interface{}{
		"name":        skill.Name,
		"level":       skill.Level,
		"order_index": skill.OrderIndex,
		"updated_at":  time.Now(),
	})
	return itemUpdateResult(result)
}

func (r *PortfolioRepositoryImpl) DeleteSkill(portfolioID, skillID string) error {
	return r.deleteItem(&models.Skill{}, portfolioID, skillID)
}

func (r *PortfolioRepositoryImpl) CreateSocialMediaLink(link *models.SocialMediaLink) error {
	r.assignNextOrderIndex(&models.SocialMediaLink{}, link.PortfolioID, &link.OrderIndex)
	return r.db.Create(link).Error
}

func (r *PortfolioRepositoryImpl) UpdateSocialMediaLink(link *models.SocialMediaLink) error {
	result := r.db.Model(link).Where("portfolio_id = ?", link.PortfolioID).Updates(map[string]interface{}{
		"platform":    link.Platform,
		"url":         link.URL,
		"order_index": link.OrderIndex,
		"updated_at":  time.Now(),
	})
	return itemUpdateResult(result)
}

func (r *PortfolioRepositoryImpl) DeleteSocialMediaLink(portfolioID, linkID string) error {
	return r.deleteItem(&models.SocialMediaLink{}, portfolioID, linkID)
}

// Helper methods

// assignNextOrderIndex ставит элемент в конец секции, если порядок не задан.
func (r *PortfolioRepositoryImpl) assignNextOrderIndex(model interface{}, portfolioID string, orderIndex *int) {
	if *orderIndex != 0 {
		return
	}
	var maxOrder int
	r.db.Model(model).Where("portfolio_id = ?", portfolioID).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
	*orderIndex = maxOrder + 1
}

func (r *PortfolioRepositoryImpl) deleteItem(model interface{}, portfolioID, itemID string) error {
	result := r.db.Where("id = ? AND portfolio_id = ?", itemID, portfolioID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}

func itemUpdateResult(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}
