package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/dto"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/services"
)

const suggestionTimeout = 60 * time.Second

// TaskHandler serves the task endpoints. Project-scoped routes run behind
// RequireProjectAccess and task routes behind RequireTaskAccess.
type TaskHandler struct {
	taskService *services.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      loggerOrDefault(logger),
	}
}

// ListProjectTasks returns the task trees of a project
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	trees, err := h.taskService.GetTasksForProject(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := make([]dto.TaskTreeDTO, len(trees))
	for i, tree := range trees {
		items[i] = dto.ToTaskTreeDTO(tree.Parent, tree.Children)
	}
	c.JSON(http.StatusOK, items)
}

// CreateParentTask creates a top-level task in a project
func (h *TaskHandler) CreateParentTask(c *gin.Context) {
	var req dto.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateParentTask(req, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTaskTree returns a parent task together with its subtasks
func (h *TaskHandler) GetTaskTree(c *gin.Context) {
	tree, err := h.taskService.GetTaskTree(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskTreeDTO(tree.Parent, tree.Children))
}

// CreateSubtask creates a subtask under the task in the path
func (h *TaskHandler) CreateSubtask(c *gin.Context) {
	var req dto.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateSubtask(req, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask overwrites the editable fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask soft deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// SuggestSubtasks proposes subtasks for a parent task using the AI service.
// Nothing is persisted.
func (h *TaskHandler) SuggestSubtasks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), suggestionTimeout)
	defer cancel()

	suggestions, err := h.taskService.SuggestSubtasks(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAIServiceNotConfigured):
			apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		case errors.Is(err, services.ErrAINoValidSuggestions):
			apierrors.RespondWithError(c, http.StatusUnprocessableEntity,
				apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, err.Error()))
		default:
			respondError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
	})
}
