// Package handler provides HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/users/domain/entity"
	"task_backend/internal/feature/users/transport/http/dto"
	"task_backend/internal/feature/users/usecase"
)

// UserUsecase defines the user CRUD operations consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	// Create registers a new user and returns the persisted entity.
	Create(ctx context.Context, username, email, password string) (*entity.User, error)
	// Get returns the user with the given ID.
	Get(ctx context.Context, id string) (*entity.User, error)
	// Update applies an allow-listed partial update to the user.
	Update(ctx context.Context, id string, fields map[string]any) (*entity.User, error)
	// Delete removes the user with the given ID.
	Delete(ctx context.Context, id string) error
}

// UserHandler handles HTTP requests for user CRUD operations.
type UserHandler struct {
	users UserUsecase

	// legacyStatus preserves the original API's anomalous 201 responses
	// for read, update and delete. When false, conventional 200s are used.
	legacyStatus bool
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(users UserUsecase, legacyStatus bool) *UserHandler {
	return &UserHandler{users: users, legacyStatus: legacyStatus}
}

// okStatus returns the success status for non-create operations.
func (h *UserHandler) okStatus() int {
	if h.legacyStatus {
		return http.StatusCreated
	}
	return http.StatusOK
}

// Create handles POST /users.
// - binds the request JSON to CreateUserReq, 400 on validation failure
// - 409 on duplicate email
// - 201 with the generated user id on success
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("user creation validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	user, err := h.users.Create(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("user creation conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		default:
			slog.Error("user creation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	slog.Info("user created", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"info": "New User Created", "user_id": user.ID})
}

// Get handles GET /user/:id. It returns the user's public attributes,
// never the password hash.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("user lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(h.okStatus(), user.PublicAttributes())
}

// Update handles PATCH /user/:id. The request body is an arbitrary JSON
// object; only allow-listed fields are applied, the rest are dropped.
func (h *UserHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	user, err := h.users.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		default:
			slog.Error("user update failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	slog.Info("user updated", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(h.okStatus(), gin.H{"info": "User attributes Updated"})
}

// Delete handles DELETE /user/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("user delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	slog.Info("user deleted", "user_id", c.Param("id"), "remote_addr", c.ClientIP())
	c.JSON(h.okStatus(), gin.H{"info": "User Deleted"})
}
