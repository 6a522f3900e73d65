package repository

import (
	"errors"

	"github.com/yukikurage/project-tasks-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotParentTask is returned when a subtask is attached to another subtask.
var ErrNotParentTask = errors.New("task is not a parent task")

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// CreateSubtask inserts task under the parent in one transaction. The parent
// row is locked so a concurrent delete cannot leave the subtask orphaned.
// Project and parent linkage are copied from the parent row.
func (r *GormTaskRepository) CreateSubtask(parentID uint64, task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() != "sqlite" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var parent models.Task
		if err := query.First(&parent, parentID).Error; err != nil {
			return err
		}
		if !parent.IsParent() {
			return ErrNotParentTask
		}

		task.ProjectID = parent.ProjectID
		task.ParentTaskID = &parent.ID
		return tx.Create(task).Error
	})
}

// FindByID finds a task by internal ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindIDByPublicID returns the internal ID of the task with the given public ID
func (r *GormTaskRepository) FindIDByPublicID(publicID string) (uint64, error) {
	var task models.Task
	if err := r.db.Select("id").Where("public_id = ?", publicID).First(&task).Error; err != nil {
		return 0, err
	}
	return task.ID, nil
}

// ListByProjectID lists the parent tasks of a project together with the
// subtasks whose parent is still live. Subtasks of a deleted parent are hidden.
func (r *GormTaskRepository) ListByProjectID(projectID uint64) ([]models.Task, error) {
	liveParents := r.db.Model(&models.Task{}).
		Select("id").
		Where("project_id = ? AND parent_task_id IS NULL", projectID)

	tasks := []models.Task{}
	if err := r.db.
		Where("project_id = ?", projectID).
		Where("(parent_task_id IS NULL OR parent_task_id IN (?))", liveParents).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTreeRows lists a parent task and its direct subtasks in creation order
func (r *GormTaskRepository) ListTreeRows(parentID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.
		Where("(id = ? OR parent_task_id = ?)", parentID, parentID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateFields overwrites the editable task columns in a transaction and
// returns the row as stored. Identity and linkage columns are never written.
func (r *GormTaskRepository) UpdateFields(id uint64, fields TaskFields) (*models.Task, error) {
	var task models.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"caption":        fields.Caption,
				"description":    fields.Description,
				"due_date":       fields.DueDate,
				"estimated_time": fields.EstimatedTime,
				"actual_time":    fields.ActualTime,
				"progress":       fields.Progress,
				"priority":       fields.Priority,
			}).Error; err != nil {
			return err
		}

		return tx.First(&task, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete soft deletes a single task. Subtasks keep their own state.
func (r *GormTaskRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
