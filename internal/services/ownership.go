package services

import (
	"errors"
	"fmt"

	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"gorm.io/gorm"
)

// OwnershipGuard checks the Task -> Project -> User chain. A chain that
// cannot be completed is reported as Forbidden, never NotFound, so callers
// learn nothing about other users' resources.
type OwnershipGuard struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewOwnershipGuard creates a new OwnershipGuard
func NewOwnershipGuard(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *OwnershipGuard {
	return &OwnershipGuard{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// AssertOwnsProject verifies that the project belongs to the user
func (g *OwnershipGuard) AssertOwnsProject(userID, projectID uint64) error {
	project, err := g.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewForbidden()
		}
		return fmt.Errorf("failed to load project owner: %w", err)
	}

	if project.UserID != userID {
		return apierrors.NewForbidden()
	}
	return nil
}

// AssertOwnsTask verifies that the task's project belongs to the user
func (g *OwnershipGuard) AssertOwnsTask(userID, taskID uint64) error {
	task, err := g.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewForbidden()
		}
		return fmt.Errorf("failed to load task project: %w", err)
	}

	return g.AssertOwnsProject(userID, task.ProjectID)
}
