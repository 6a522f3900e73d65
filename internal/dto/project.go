package dto

import (
	"time"

	"github.com/yukikurage/project-tasks-api/internal/models"
)

// ProjectRequest is the write payload for creating or updating a project.
type ProjectRequest struct {
	Caption     string               `json:"caption" validate:"required,notblank,max=100"`
	Description *string              `json:"description" validate:"required,max=1000"`
	Status      models.ProjectStatus `json:"status" validate:"required,oneof=ACTIVE ARCHIVED"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string               `json:"id"`
	Caption     string               `json:"caption"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.PublicID,
		Caption:     project.Caption,
		Description: project.Description,
		Status:      project.Status,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects, never returning nil
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return items
}
