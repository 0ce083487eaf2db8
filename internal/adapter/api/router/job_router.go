package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
	"gigspace/internal/adapter/api/middleware"
)

// SetupJobRouter exposes the public job board and the admin-only posting
// management.
func SetupJobRouter(e *echo.Echo, jobHandler *handler.JobHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	jobGroup := e.Group("/v1/jobs")

	jobGroup.GET("", jobHandler.List)
	jobGroup.GET("/:id", jobHandler.Get)

	adminGroup := e.Group("/v1/admin/jobs")
	adminGroup.Use(authMiddleware.Authenticate)
	adminGroup.Use(adminMiddleware.AdminOnly)

	adminGroup.POST("", jobHandler.Create)
	adminGroup.PUT("/:id", jobHandler.Update)
	adminGroup.DELETE("/:id", jobHandler.Delete)
}
