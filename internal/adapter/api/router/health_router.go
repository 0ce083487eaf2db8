package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
)

func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler) {
	e.GET("/health", healthHandler.Check)
}
