package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
	"gigspace/internal/adapter/api/middleware"
)

func SetupProjectRouter(e *echo.Echo, projectHandler *handler.ProjectHandler, authMiddleware *middleware.AuthMiddleware) {
	projectGroup := e.Group("/v1/projects")
	projectGroup.Use(authMiddleware.Authenticate)

	projectGroup.GET("", projectHandler.ListOpen)
	projectGroup.GET("/mine", projectHandler.ListMine)
	projectGroup.GET("/:id", projectHandler.Get)
	projectGroup.POST("", projectHandler.Create)
	projectGroup.PUT("/:id/status", projectHandler.UpdateStatus)
}
