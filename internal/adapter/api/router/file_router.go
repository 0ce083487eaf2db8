package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
	"gigspace/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	fileGroup := e.Group("/v1/files")
	fileGroup.Use(authMiddleware.Authenticate)

	fileGroup.POST("", fileHandler.Upload)
	fileGroup.DELETE("", fileHandler.Delete)
}
