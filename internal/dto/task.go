package dto

import (
	"time"

	"github.com/yukikurage/project-tasks-api/internal/constants"
	"github.com/yukikurage/project-tasks-api/internal/models"
)

// TaskRequest is the write payload for creating or updating a task.
// Description is a pointer so an absent value is told apart from "".
type TaskRequest struct {
	Caption       string              `json:"caption" validate:"required,notblank,max=100"`
	Description   *string             `json:"description" validate:"required,max=1000"`
	DueDate       string              `json:"due_date" validate:"required,datetime=2006-01-02"`
	EstimatedTime int                 `json:"estimated_time" validate:"gt=0"`
	ActualTime    int                 `json:"actual_time" validate:"gte=0"`
	Progress      int                 `json:"progress" validate:"gte=0,lte=100"`
	Priority      models.TaskPriority `json:"priority" validate:"required,oneof=HIGH MEDIUM LOW"`
}

// ParsedDueDate returns the due date as a UTC midnight time. Callers validate first.
func (r TaskRequest) ParsedDueDate() (time.Time, error) {
	return time.Parse(constants.DateLayout, r.DueDate)
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            string              `json:"id"`
	Caption       string              `json:"caption"`
	Description   string              `json:"description"`
	DueDate       string              `json:"due_date"`
	EstimatedTime int                 `json:"estimated_time"`
	ActualTime    int                 `json:"actual_time"`
	Progress      int                 `json:"progress"`
	Priority      models.TaskPriority `json:"priority"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// TaskTreeDTO is a parent task with its direct subtasks
type TaskTreeDTO struct {
	Parent   TaskDTO   `json:"parent"`
	Children []TaskDTO `json:"children"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:            task.PublicID,
		Caption:       task.Caption,
		Description:   task.Description,
		DueDate:       time.Time(task.DueDate).Format(constants.DateLayout),
		EstimatedTime: task.EstimatedTime,
		ActualTime:    task.ActualTime,
		Progress:      task.Progress,
		Priority:      task.Priority,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// ToTaskTreeDTO converts a parent and its children to TaskTreeDTO
func ToTaskTreeDTO(parent models.Task, children []models.Task) TaskTreeDTO {
	items := make([]TaskDTO, len(children))
	for i, child := range children {
		items[i] = ToTaskDTO(child)
	}

	return TaskTreeDTO{
		Parent:   ToTaskDTO(parent),
		Children: items,
	}
}
