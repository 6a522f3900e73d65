package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	f       *fixture
	service *ProjectService
	owner   *models.User
	other   *models.User
}

func (s *ProjectServiceTestSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.service = NewProjectService(s.f.projects, s.f.resolver, s.f.guard, s.f.validator, nil)
	s.owner = s.f.createUser(s.T(), "owner@example.com")
	s.other = s.f.createUser(s.T(), "other@example.com")
}

func (s *ProjectServiceTestSuite) TestCreateAndGetRoundTrip() {
	created, err := s.service.CreateProject(projectRequest("Launch", models.ProjectStatusActive), s.owner.PublicID)
	s.Require().NoError(err)
	s.True(utils.IsPublicID(created.PublicID))
	s.Equal(s.owner.ID, created.UserID)

	fetched, err := s.service.GetProject(created.PublicID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal("Launch", fetched.Caption)
	s.Equal("Project description", fetched.Description)
	s.Equal(models.ProjectStatusActive, fetched.Status)
}

func (s *ProjectServiceTestSuite) TestCreateAlwaysStartsActive() {
	created, err := s.service.CreateProject(projectRequest("Archived?", models.ProjectStatusArchived), s.owner.PublicID)
	s.Require().NoError(err)
	s.Equal(models.ProjectStatusActive, created.Status)
}

func (s *ProjectServiceTestSuite) TestCreateValidation() {
	req := projectRequest("   ", models.ProjectStatusActive)
	req.Description = nil

	_, err := s.service.CreateProject(req, s.owner.PublicID)
	s.Require().Error(err)
	s.Equal(apierrors.KindValidation, apierrors.KindOf(err))

	fields := apierrors.FieldsOf(err)
	s.Contains(fields, "caption")
	s.Contains(fields, "description")

	projects, err := s.service.ListProjectsForUser(s.owner.PublicID)
	s.Require().NoError(err)
	s.Empty(projects)
}

func (s *ProjectServiceTestSuite) TestCreateForUnknownUser() {
	_, err := s.service.CreateProject(projectRequest("Orphan", models.ProjectStatusActive), utils.NewPublicID())
	s.ErrorIs(err, apierrors.ErrNotFound)
}

func (s *ProjectServiceTestSuite) TestGetForeignProjectIsForbidden() {
	project := s.f.createProject(s.T(), s.other.ID, "Not yours")

	_, err := s.service.GetProject(project.PublicID, s.owner.ID)
	s.ErrorIs(err, apierrors.ErrForbidden)
}

func (s *ProjectServiceTestSuite) TestGetUnknownProjectIsNotFound() {
	_, err := s.service.GetProject(utils.NewPublicID(), s.owner.ID)
	s.Equal(apierrors.KindNotFound, apierrors.KindOf(err))
}

func (s *ProjectServiceTestSuite) TestListOnlyOwnProjectsInCreationOrder() {
	first := s.f.createProject(s.T(), s.owner.ID, "First")
	s.f.createProject(s.T(), s.other.ID, "Foreign")
	second := s.f.createProject(s.T(), s.owner.ID, "Second")

	projects, err := s.service.ListProjectsForUser(s.owner.PublicID)
	s.Require().NoError(err)
	s.Require().Len(projects, 2)
	s.Equal(first.PublicID, projects[0].PublicID)
	s.Equal(second.PublicID, projects[1].PublicID)
}

func (s *ProjectServiceTestSuite) TestListForUnknownUserIsEmpty() {
	projects, err := s.service.ListProjectsForUser(utils.NewPublicID())
	s.Require().NoError(err)
	s.NotNil(projects)
	s.Empty(projects)
}

func (s *ProjectServiceTestSuite) TestUpdateOverwritesFields() {
	project := s.f.createProject(s.T(), s.owner.ID, "Before")

	req := projectRequest("After", models.ProjectStatusArchived)
	updated, err := s.service.UpdateProject(project.PublicID, req)
	s.Require().NoError(err)
	s.Equal("After", updated.Caption)
	s.Equal(models.ProjectStatusArchived, updated.Status)
	s.Equal(project.PublicID, updated.PublicID)
	s.Equal(s.owner.ID, updated.UserID)
}

func (s *ProjectServiceTestSuite) TestUpdateValidationLeavesRowUntouched() {
	project := s.f.createProject(s.T(), s.owner.ID, "Stable")

	req := projectRequest("Changed", "DONE")
	_, err := s.service.UpdateProject(project.PublicID, req)
	s.Require().Error(err)
	s.Equal(apierrors.KindValidation, apierrors.KindOf(err))
	s.Contains(apierrors.FieldsOf(err), "status")

	stored, err := s.f.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Equal("Stable", stored.Caption)
}

func (s *ProjectServiceTestSuite) TestDeleteCascadesToTasks() {
	project := s.f.createProject(s.T(), s.owner.ID, "Doomed")
	parent := s.f.createTask(s.T(), project.ID, nil, "Parent")
	child := s.f.createTask(s.T(), project.ID, &parent.ID, "Child")

	s.Require().NoError(s.service.DeleteProject(project.PublicID))

	_, err := s.service.GetProject(project.PublicID, s.owner.ID)
	s.Equal(apierrors.KindNotFound, apierrors.KindOf(err))

	_, err = s.f.resolver.ResolveTaskID(parent.PublicID)
	s.Equal(apierrors.KindNotFound, apierrors.KindOf(err))
	_, err = s.f.resolver.ResolveTaskID(child.PublicID)
	s.Equal(apierrors.KindNotFound, apierrors.KindOf(err))

	err = s.service.DeleteProject(project.PublicID)
	s.Equal(apierrors.KindNotFound, apierrors.KindOf(err))
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
