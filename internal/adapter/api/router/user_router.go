package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
	"gigspace/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	userGroup := e.Group("/v1/users")
	userGroup.Use(authMiddleware.Authenticate)

	userGroup.GET("/me", userHandler.Me)
	userGroup.PATCH("/me", userHandler.UpdateProfile)
	userGroup.PUT("/me/password", userHandler.ChangePassword)
	userGroup.GET("/:id", userHandler.GetUser)
}
