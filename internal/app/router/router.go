// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	userhandler "task_backend/internal/feature/users/transport/handler"
	"task_backend/internal/platform/http/handler"
)

// NewRouter wires all endpoints. Signup and login are open; everything
// else sits behind the authorization gate.
func NewRouter(auth *authhandler.AuthHandler, users *userhandler.UserHandler,
	tasks *taskhandler.TaskHandler, gate gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)
	// New user registration
	r.POST("/users", users.Create)
	// Login (token issuance)
	r.POST("/login", auth.Login)

	// Routes requiring authentication
	protected := r.Group("/")
	protected.Use(gate)
	{
		protected.GET("/user/:id", users.Get)
		protected.PATCH("/user/:id", users.Update)
		protected.DELETE("/user/:id", users.Delete)

		protected.GET("/api/task", tasks.List)
		protected.POST("/api/task", tasks.Create)
		protected.GET("/api/task/:id", tasks.Get)
		protected.PATCH("/api/task/:id", tasks.Update)
		protected.DELETE("/api/task/:id", tasks.Delete)
	}

	return r
}
