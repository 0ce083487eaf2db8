package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
	"gigspace/internal/adapter/api/middleware"
)

func SetupFreelancerRouter(e *echo.Echo, freelancerHandler *handler.FreelancerHandler, authMiddleware *middleware.AuthMiddleware) {
	freelancerGroup := e.Group("/v1/freelancers")

	freelancerGroup.GET("", freelancerHandler.Search)
	freelancerGroup.GET("/:id", freelancerHandler.Get)

	myGroup := e.Group("/v1/freelancers/me")
	myGroup.Use(authMiddleware.Authenticate)

	myGroup.GET("", freelancerHandler.MyProfile)
	myGroup.POST("", freelancerHandler.Create)

	authedGroup := e.Group("/v1/freelancers/:id")
	authedGroup.Use(authMiddleware.Authenticate)
	authedGroup.PUT("", freelancerHandler.Update)
}
