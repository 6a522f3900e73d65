package services

import (
	"errors"
	"fmt"

	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"gorm.io/gorm"
)

// Resolver translates public IDs into internal row IDs. Soft-deleted rows
// resolve to NotFound.
type Resolver struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewResolver creates a new Resolver
func NewResolver(userRepo repository.UserRepository, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *Resolver {
	return &Resolver{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// ResolveUserID returns the internal ID of an active user
func (r *Resolver) ResolveUserID(publicID string) (uint64, error) {
	return resolve("user", publicID, r.userRepo.FindIDByPublicID)
}

// ResolveProjectID returns the internal ID of an active project
func (r *Resolver) ResolveProjectID(publicID string) (uint64, error) {
	return resolve("project", publicID, r.projectRepo.FindIDByPublicID)
}

// ResolveTaskID returns the internal ID of an active task
func (r *Resolver) ResolveTaskID(publicID string) (uint64, error) {
	return resolve("task", publicID, r.taskRepo.FindIDByPublicID)
}

func resolve(resource, publicID string, find func(string) (uint64, error)) (uint64, error) {
	id, err := find(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apierrors.NewNotFound(resource)
		}
		return 0, fmt.Errorf("failed to resolve %s id: %w", resource, err)
	}
	return id, nil
}
