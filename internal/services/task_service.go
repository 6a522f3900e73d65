package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/project-tasks-api/internal/constants"
	"github.com/yukikurage/project-tasks-api/internal/dto"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"github.com/yukikurage/project-tasks-api/internal/utils"
	"github.com/yukikurage/project-tasks-api/internal/validation"
	"gorm.io/datatypes"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoValidSuggestions   = errors.New("no valid subtasks could be suggested")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	resolver  *Resolver
	validator *validation.Validator
	aiService *AIService
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService. aiService may be nil.
func NewTaskService(taskRepo repository.TaskRepository, resolver *Resolver, validator *validation.Validator, aiService *AIService, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		taskRepo:  taskRepo,
		resolver:  resolver,
		validator: validator,
		aiService: aiService,
		logger:    logger,
	}
}

// GetTasksForProject returns every task tree of a project
func (s *TaskService) GetTasksForProject(projectPublicID string) ([]TaskTree, error) {
	projectID, err := s.resolver.ResolveProjectID(projectPublicID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	trees, orphans := buildTrees(tasks)
	if orphans > 0 {
		s.logger.Warn("subtasks without a live parent dropped from task trees",
			slog.Uint64("project_id", projectID),
			slog.Int("orphans", orphans),
		)
	}
	return trees, nil
}

// GetTaskTree returns a parent task with its subtasks. The ID must name a
// parent task: a subtask ID is answered with NotFound before any tree is
// built, so IllegalState is reserved for inconsistent tree rows.
func (s *TaskService) GetTaskTree(taskPublicID string) (*TaskTree, error) {
	taskID, err := s.resolver.ResolveTaskID(taskPublicID)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, notFoundOr(err, "task", "find task")
	}
	if !task.IsParent() {
		return nil, apierrors.NewNotFound("task tree")
	}

	rows, err := s.taskRepo.ListTreeRows(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task tree: %w", err)
	}

	trees, _ := buildTrees(rows)
	if len(trees) != 1 {
		fault := apierrors.NewIllegalState(fmt.Sprintf("task tree query for task %d returned %d trees", taskID, len(trees)))
		s.logger.Error("task tree consistency fault",
			slog.String("error", fault.Error()),
			slog.String("task_public_id", taskPublicID),
			slog.Int("rows", len(rows)),
			slog.Int("trees", len(trees)),
		)
		return nil, fault
	}

	return &trees[0], nil
}

// CreateParentTask creates a top-level task in a project
func (s *TaskService) CreateParentTask(req dto.TaskRequest, projectPublicID string) (*models.Task, error) {
	projectID, err := s.resolver.ResolveProjectID(projectPublicID)
	if err != nil {
		return nil, err
	}

	task, err := s.newTask(req)
	if err != nil {
		return nil, err
	}
	task.ProjectID = projectID

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// CreateSubtask creates a subtask. Project and parent linkage are copied
// from the parent row, never taken from the request.
func (s *TaskService) CreateSubtask(req dto.TaskRequest, parentTaskPublicID string) (*models.Task, error) {
	parentID, err := s.resolver.ResolveTaskID(parentTaskPublicID)
	if err != nil {
		return nil, err
	}

	task, err := s.newTask(req)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.CreateSubtask(parentID, task); err != nil {
		if errors.Is(err, repository.ErrNotParentTask) {
			return nil, apierrors.NewValidation(map[string]string{
				"parent_task_id": "must reference a top-level task",
			})
		}
		return nil, notFoundOr(err, "task", "create subtask")
	}
	return task, nil
}

// UpdateTask overwrites the editable fields of a task
func (s *TaskService) UpdateTask(taskPublicID string, req dto.TaskRequest) (*models.Task, error) {
	taskID, err := s.resolver.ResolveTaskID(taskPublicID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	dueDate, err := req.ParsedDueDate()
	if err != nil {
		return nil, dueDateViolation()
	}

	task, err := s.taskRepo.UpdateFields(taskID, repository.TaskFields{
		Caption:       req.Caption,
		Description:   *req.Description,
		DueDate:       datatypes.Date(dueDate),
		EstimatedTime: req.EstimatedTime,
		ActualTime:    req.ActualTime,
		Progress:      req.Progress,
		Priority:      req.Priority,
	})
	if err != nil {
		return nil, notFoundOr(err, "task", "update task")
	}
	return task, nil
}

// DeleteTask soft deletes a single task
func (s *TaskService) DeleteTask(taskPublicID string) error {
	taskID, err := s.resolver.ResolveTaskID(taskPublicID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return notFoundOr(err, "task", "delete task")
	}
	return nil
}

// SuggestSubtasks asks the AI service for subtasks of a parent task
func (s *TaskService) SuggestSubtasks(ctx context.Context, taskPublicID string) ([]SubtaskSuggestion, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	taskID, err := s.resolver.ResolveTaskID(taskPublicID)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, notFoundOr(err, "task", "find task")
	}
	if !task.IsParent() {
		return nil, apierrors.NewValidation(map[string]string{
			"parent_task_id": "must reference a top-level task",
		})
	}

	suggestions, err := s.aiService.SuggestSubtasks(ctx, *task)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest subtasks: %w", err)
	}
	if len(suggestions) > constants.MaxAISuggestedSubtasks {
		return nil, fmt.Errorf("AI suggested too many subtasks (max %d)", constants.MaxAISuggestedSubtasks)
	}

	valid := make([]SubtaskSuggestion, 0, len(suggestions))
	for _, suggestion := range suggestions {
		suggestion.Caption = strings.TrimSpace(suggestion.Caption)
		if suggestion.Caption == "" || utf8.RuneCountInString(suggestion.Caption) > constants.MaxCaptionLength {
			continue
		}
		if utf8.RuneCountInString(suggestion.Description) > constants.MaxDescriptionLength {
			continue
		}
		if suggestion.EstimatedTime <= 0 {
			suggestion.EstimatedTime = 1
		}
		valid = append(valid, suggestion)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidSuggestions
	}
	return valid, nil
}

// newTask validates the request and builds an unlinked task row
func (s *TaskService) newTask(req dto.TaskRequest) (*models.Task, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	dueDate, err := req.ParsedDueDate()
	if err != nil {
		return nil, dueDateViolation()
	}

	return &models.Task{
		PublicID:      utils.NewPublicID(),
		Caption:       req.Caption,
		Description:   *req.Description,
		DueDate:       datatypes.Date(dueDate),
		EstimatedTime: req.EstimatedTime,
		ActualTime:    req.ActualTime,
		Progress:      req.Progress,
		Priority:      req.Priority,
	}, nil
}

func dueDateViolation() error {
	return apierrors.NewValidation(map[string]string{
		"due_date": "must be a date in YYYY-MM-DD format",
	})
}
