package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
	"gigspace/internal/adapter/api/middleware"
)

func SetupProposalRouter(e *echo.Echo, proposalHandler *handler.ProposalHandler, authMiddleware *middleware.AuthMiddleware) {
	proposalGroup := e.Group("/v1/proposals")
	proposalGroup.Use(authMiddleware.Authenticate)

	proposalGroup.POST("", proposalHandler.Submit)
	proposalGroup.GET("/mine", proposalHandler.ListMine)
	proposalGroup.GET("/project/:projectId", proposalHandler.ListByProject)
	proposalGroup.POST("/:id/accept", proposalHandler.Accept)
	proposalGroup.POST("/:id/reject", proposalHandler.Reject)
	proposalGroup.POST("/:id/withdraw", proposalHandler.Withdraw)
}
