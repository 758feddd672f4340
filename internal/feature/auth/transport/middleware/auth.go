// Package middleware implements the authorization gate: the single
// checkpoint mediating all protected operations.
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/users/domain/entity"
)

// Context keys under which the gate stores the authenticated identity.
const (
	ContextUserID = "authUserID"
	ContextUser   = "authUser"
)

// TokenVerifier checks a token's signature and expiry, returning the
// embedded user identity. Failure is a sentinel, never a panic.
type TokenVerifier interface {
	VerifyToken(token string) (userID string, ok bool)
}

// UserResolver resolves verified user ids to live user records. It is
// satisfied by the users feature's repository.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that restricts access to
// authenticated users. The Authorization header carries the raw token
// with no scheme prefix, matching the original API. On success the
// resolved user, with the password hash stripped, is stored in the
// request context; downstream handlers never re-verify the token.
func AuthRequired(tokens TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, present := c.Request.Header["Authorization"]
		if !present {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
			return
		}

		token := ""
		if len(values) > 0 {
			token = values[0]
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Token"})
			return
		}

		userID, ok := tokens.VerifyToken(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Token"})
			return
		}

		// A token for a deleted user is not a valid credential.
		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Token"})
			return
		}

		public := *user
		public.PasswordHash = ""
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, &public)
		c.Next()
	}
}
