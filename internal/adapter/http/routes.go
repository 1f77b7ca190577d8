package http

import (
	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/ports"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Task   *handlers.TaskHandler
}

// AuthRateLimit throttles the public auth endpoints. A nil Limiter disables it.
type AuthRateLimit struct {
	Limiter ports.RateLimiter
	Limit   int
}

func RegisterRoutes(r *gin.Engine, h Handlers, authService ports.AuthService, rateLimit AuthRateLimit) {
	requireAuth := middleware.AuthMiddleware(authService)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		auth := api.Group("/auth")
		if rateLimit.Limiter != nil {
			auth.Use(middleware.RateLimitMiddleware(rateLimit.Limiter, rateLimit.Limit))
		}
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", requireAuth, h.Auth.Me)

		tasks := api.Group("/tasks", requireAuth)
		tasks.GET("", h.Task.ListTasks)
		tasks.GET("/:id", h.Task.GetTask)
		tasks.POST("", h.Task.CreateTask)
		tasks.PUT("/:id", h.Task.UpdateTask)
		tasks.DELETE("/:id", h.Task.DeleteTask)
		tasks.PATCH("/:id/toggle", h.Task.ToggleTask)
	}
}
