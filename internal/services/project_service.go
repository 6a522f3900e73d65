package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/yukikurage/project-tasks-api/internal/dto"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"github.com/yukikurage/project-tasks-api/internal/utils"
	"github.com/yukikurage/project-tasks-api/internal/validation"
	"gorm.io/gorm"
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	resolver    *Resolver
	guard       *OwnershipGuard
	validator   *validation.Validator
	logger      *slog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, resolver *Resolver, guard *OwnershipGuard, validator *validation.Validator, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{
		projectRepo: projectRepo,
		resolver:    resolver,
		guard:       guard,
		validator:   validator,
		logger:      logger,
	}
}

// ListProjectsForUser returns the user's projects. An unknown user yields an
// empty list rather than an error.
func (s *ProjectService) ListProjectsForUser(userPublicID string) ([]models.Project, error) {
	userID, err := s.resolver.ResolveUserID(userPublicID)
	if err != nil {
		if apierrors.KindOf(err) == apierrors.KindNotFound {
			s.logger.Debug("listing projects for unknown user", slog.String("user_public_id", userPublicID))
			return []models.Project{}, nil
		}
		return nil, err
	}

	projects, err := s.projectRepo.ListByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project owned by the caller.
func (s *ProjectService) GetProject(projectPublicID string, callerUserID uint64) (*models.Project, error) {
	projectID, err := s.resolver.ResolveProjectID(projectPublicID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.AssertOwnsProject(callerUserID, projectID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, notFoundOr(err, "project", "find project")
	}
	return project, nil
}

// CreateProject creates a project for the user. New projects always start ACTIVE.
func (s *ProjectService) CreateProject(req dto.ProjectRequest, userPublicID string) (*models.Project, error) {
	userID, err := s.resolver.ResolveUserID(userPublicID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	project := &models.Project{
		UserID:      userID,
		PublicID:    utils.NewPublicID(),
		Caption:     req.Caption,
		Description: *req.Description,
		Status:      models.ProjectStatusActive,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		slog.String("project_public_id", project.PublicID),
		slog.Uint64("user_id", userID),
	)
	return project, nil
}

// UpdateProject overwrites caption, description and status.
func (s *ProjectService) UpdateProject(projectPublicID string, req dto.ProjectRequest) (*models.Project, error) {
	projectID, err := s.resolver.ResolveProjectID(projectPublicID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.UpdateFields(projectID, repository.ProjectFields{
		Caption:     req.Caption,
		Description: *req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return nil, notFoundOr(err, "project", "update project")
	}
	return project, nil
}

// DeleteProject soft deletes a project together with its tasks.
func (s *ProjectService) DeleteProject(projectPublicID string) error {
	projectID, err := s.resolver.ResolveProjectID(projectPublicID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return notFoundOr(err, "project", "delete project")
	}

	s.logger.Info("project deleted", slog.String("project_public_id", projectPublicID))
	return nil
}

// notFoundOr maps a missing row to NotFound and wraps anything else.
func notFoundOr(err error, resource, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.NewNotFound(resource)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
