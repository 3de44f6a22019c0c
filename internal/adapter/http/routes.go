package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tasktracker/internal/adapter/http/handlers"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Task      *handlers.TaskHandler
	Workspace *handlers.WorkspaceHandler
}

// CORSMiddleware allows the frontend origin to call the API with a bearer
// token.
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func RegisterRoutes(r *gin.Engine, h Handlers, sessions ports.SessionIssuer, limiter *middleware.RateLimiter) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/verify-email", h.Auth.VerifyEmail)
		auth.POST("/resend-otp", h.Auth.ResendOTP)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(sessions))
	{
		protected.GET("/tasks", h.Task.ListTasks)
		protected.POST("/tasks", h.Task.CreateTask)
		protected.PUT("/tasks/batch", h.Task.BatchUpdateTasks)
		protected.PUT("/tasks/:id", h.Task.UpdateTask)
		protected.DELETE("/tasks/:id", h.Task.DeleteTask)

		protected.GET("/workspaces", h.Workspace.ListWorkspaces)
		protected.POST("/workspaces", h.Workspace.CreateWorkspace)
		protected.POST("/workspaces/demo", h.Workspace.CreateDemoWorkspace)
		protected.GET("/workspaces/:id", h.Workspace.GetWorkspace)
		protected.PUT("/workspaces/:id", h.Workspace.RenameWorkspace)
		protected.DELETE("/workspaces/:id", h.Workspace.DeleteWorkspace)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgEndpointNotFound, middleware.GetLang(c)),
		)
	})
}
