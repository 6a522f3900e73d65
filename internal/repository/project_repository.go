package repository

import (
	"github.com/yukikurage/project-tasks-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by internal ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindIDByPublicID returns the internal ID of the project with the given public ID
func (r *GormProjectRepository) FindIDByPublicID(publicID string) (uint64, error) {
	var project models.Project
	if err := r.db.Select("id").Where("public_id = ?", publicID).First(&project).Error; err != nil {
		return 0, err
	}
	return project.ID, nil
}

// ListByUserID lists the projects owned by a user in creation order
func (r *GormProjectRepository) ListByUserID(userID uint64) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateFields overwrites caption, description and status in a transaction
// and returns the row as stored
func (r *GormProjectRepository) UpdateFields(id uint64, fields ProjectFields) (*models.Project, error) {
	var project models.Project
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"caption":     fields.Caption,
				"description": fields.Description,
				"status":      fields.Status,
			}).Error; err != nil {
			return err
		}

		return tx.First(&project, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete soft deletes a project and all of its tasks in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
