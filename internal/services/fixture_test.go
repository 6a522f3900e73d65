package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tasks-api/internal/config"
	"github.com/yukikurage/project-tasks-api/internal/database"
	"github.com/yukikurage/project-tasks-api/internal/dto"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"github.com/yukikurage/project-tasks-api/internal/utils"
	"github.com/yukikurage/project-tasks-api/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	users     repository.UserRepository
	projects  repository.ProjectRepository
	tasks     repository.TaskRepository
	resolver  *Resolver
	guard     *OwnershipGuard
	validator *validation.Validator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Connect(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	users := repository.NewUserRepository(db)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)

	return &fixture{
		db:        db,
		users:     users,
		projects:  projects,
		tasks:     tasks,
		resolver:  NewResolver(users, projects, tasks),
		guard:     NewOwnershipGuard(projects, tasks),
		validator: validation.New(),
	}
}

func (f *fixture) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		PublicID:     utils.NewPublicID(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, f.users.Create(user))
	return user
}

func (f *fixture) createProject(t *testing.T, userID uint64, caption string) *models.Project {
	t.Helper()
	project := &models.Project{
		UserID:      userID,
		PublicID:    utils.NewPublicID(),
		Caption:     caption,
		Description: "Test Description",
		Status:      models.ProjectStatusActive,
	}
	require.NoError(t, f.projects.Create(project))
	return project
}

func (f *fixture) createTask(t *testing.T, projectID uint64, parentID *uint64, caption string) *models.Task {
	t.Helper()
	task := &models.Task{
		ProjectID:     projectID,
		ParentTaskID:  parentID,
		PublicID:      utils.NewPublicID(),
		Caption:       caption,
		Description:   "Test Description",
		DueDate:       datatypes.Date(mustDate(t, "2030-01-15")),
		EstimatedTime: 30,
		Priority:      models.TaskPriorityLow,
	}
	require.NoError(t, f.tasks.Create(task))
	return task
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func taskRequest(caption string) dto.TaskRequest {
	description := "Some work"
	return dto.TaskRequest{
		Caption:       caption,
		Description:   &description,
		DueDate:       "2030-03-01",
		EstimatedTime: 60,
		ActualTime:    0,
		Progress:      0,
		Priority:      models.TaskPriorityMedium,
	}
}

func projectRequest(caption string, status models.ProjectStatus) dto.ProjectRequest {
	description := "Project description"
	return dto.ProjectRequest{
		Caption:     caption,
		Description: &description,
		Status:      status,
	}
}
