package repository

import (
	"gorm.io/datatypes"

	"github.com/yukikurage/project-tasks-api/internal/models"
)

// Every lookup and listing below excludes soft-deleted rows. Lookups that
// find nothing return gorm.ErrRecordNotFound.

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by internal ID
	FindByID(id uint64) (*models.User, error)

	// FindByPublicID finds a user by public ID
	FindByPublicID(publicID string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindIDByPublicID returns the internal ID of the user with the given public ID
	FindIDByPublicID(publicID string) (uint64, error)
}

// ProjectFields are the columns an update may overwrite
type ProjectFields struct {
	Caption     string
	Description string
	Status      models.ProjectStatus
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by internal ID
	FindByID(id uint64) (*models.Project, error)

	// FindIDByPublicID returns the internal ID of the project with the given public ID
	FindIDByPublicID(publicID string) (uint64, error)

	// ListByUserID lists the projects owned by a user in creation order
	ListByUserID(userID uint64) ([]models.Project, error)

	// UpdateFields overwrites the editable columns and returns the re-read row
	UpdateFields(id uint64, fields ProjectFields) (*models.Project, error)

	// Delete soft deletes a project and its tasks
	Delete(id uint64) error
}

// TaskFields are the columns an update may overwrite
type TaskFields struct {
	Caption       string
	Description   string
	DueDate       datatypes.Date
	EstimatedTime int
	ActualTime    int
	Progress      int
	Priority      models.TaskPriority
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// CreateSubtask creates task under a live parent task atomically
	CreateSubtask(parentID uint64, task *models.Task) error

	// FindByID finds a task by internal ID
	FindByID(id uint64) (*models.Task, error)

	// FindIDByPublicID returns the internal ID of the task with the given public ID
	FindIDByPublicID(publicID string) (uint64, error)

	// ListByProjectID lists parent tasks and the subtasks of live parents in
	// a project, in creation order
	ListByProjectID(projectID uint64) ([]models.Task, error)

	// ListTreeRows lists a parent task and its direct subtasks in creation order
	ListTreeRows(parentID uint64) ([]models.Task, error)

	// UpdateFields overwrites the editable columns and returns the re-read row
	UpdateFields(id uint64, fields TaskFields) (*models.Task, error)

	// Delete soft deletes a single task
	Delete(id uint64) error
}
