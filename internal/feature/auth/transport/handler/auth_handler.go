// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/auth/usecase"
)

// LoginUsecase defines the authentication operation consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type LoginUsecase interface {
	// Login authenticates the user and returns a signed token on success.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth LoginUsecase

	// legacyStatus preserves the original API's anomalous 201 on login.
	// When false, a conventional 200 is used.
	legacyStatus bool
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth LoginUsecase, legacyStatus bool) *AuthHandler {
	return &AuthHandler{auth: auth, legacyStatus: legacyStatus}
}

// Login handles the POST /login endpoint.
// - binds the request JSON to LoginReq, 400 on validation failure
// - 401 on any authentication failure; unknown email and wrong password
//   produce the same response
// - success returns a signed token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login Not Successful"})
			return
		}
		slog.Error("login error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())

	status := http.StatusOK
	if h.legacyStatus {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"token": token, "info": "Login successful"})
}
