// Package handler provides HTTP handlers for the tasks feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
)

// TaskUsecase defines the task CRUD operations consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TaskUsecase interface {
	// Create persists a new task owned by the given user.
	Create(ctx context.Context, title, body, ownerID string) (*entity.Task, error)
	// Get returns the task with its owner's username resolved.
	Get(ctx context.Context, id string) (*usecase.TaskWithOwner, error)
	// List returns every task with owner usernames resolved.
	List(ctx context.Context) ([]*usecase.TaskWithOwner, error)
	// Update applies an allow-listed partial update to the task.
	Update(ctx context.Context, id string, fields map[string]any) (*entity.Task, error)
	// Delete removes the task with the given ID.
	Delete(ctx context.Context, id string) error
}

// TaskHandler handles HTTP requests for task CRUD operations.
type TaskHandler struct {
	tasks TaskUsecase

	// legacyStatus preserves the original API's anomalous 201 responses
	// for update and delete. When false, conventional 200s are used.
	legacyStatus bool
}

// NewTaskHandler creates a new instance of TaskHandler.
func NewTaskHandler(tasks TaskUsecase, legacyStatus bool) *TaskHandler {
	return &TaskHandler{tasks: tasks, legacyStatus: legacyStatus}
}

// okStatus returns the success status for update and delete operations.
func (h *TaskHandler) okStatus() int {
	if h.legacyStatus {
		return http.StatusCreated
	}
	return http.StatusOK
}

// List handles GET /api/task. Tasks are keyed by id; the original API
// keyed by title, which is not unique.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		slog.Error("task listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make(map[string]any, len(tasks))
	for _, t := range tasks {
		out[t.Task.ID] = t.Task.PublicAttributes(t.OwnerUsername)
	}
	c.JSON(http.StatusOK, out)
}

// Create handles POST /api/task.
// - binds the request JSON to CreateTaskReq, 400 on validation failure
// - 404 when the owner id does not resolve; nothing is persisted
// - 201 with the generated task id on success
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("task creation validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), req.Title, req.Body, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields), errors.Is(err, usecase.ErrTitleTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		case errors.Is(err, usecase.ErrOwnerNotFound):
			slog.Warn("task creation rejected", "error", err, "user_id", req.UserID)
			c.JSON(http.StatusNotFound, gin.H{"error": "owning user not found"})
		default:
			slog.Error("task creation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	slog.Info("task created", "task_id", task.ID, "user_id", task.UserID)
	c.JSON(http.StatusCreated, gin.H{"info": "Task Created", "task_id": task.ID})
}

// Get handles GET /api/task/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	t, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		case errors.Is(err, usecase.ErrDanglingOwner):
			slog.Error("task has no resolvable owner", "task_id", c.Param("id"))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "task owner unresolvable"})
		default:
			slog.Error("task lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, t.Task.PublicAttributes(t.OwnerUsername))
}

// Update handles PATCH /api/task/:id. The request body is an arbitrary
// JSON object; only allow-listed fields are applied, the rest are dropped.
func (h *TaskHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		case errors.Is(err, usecase.ErrMissingFields), errors.Is(err, usecase.ErrTitleTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		default:
			slog.Error("task update failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	slog.Info("task updated", "task_id", task.ID)
	c.JSON(h.okStatus(), gin.H{"info": "Task Updated"})
}

// Delete handles DELETE /api/task/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		slog.Error("task delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	slog.Info("task deleted", "task_id", id)
	c.JSON(h.okStatus(), gin.H{"info": fmt.Sprintf("Task %s deleted", id)})
}
