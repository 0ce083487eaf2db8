package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
	"gigspace/internal/adapter/api/middleware"
)

// Handlers bundles everything Setup wires into the echo instance.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Job        *handler.JobHandler
	Freelancer *handler.FreelancerHandler
	Project    *handler.ProjectHandler
	Proposal   *handler.ProposalHandler
	Chat       *handler.ChatHandler
	File       *handler.FileHandler
	WebSocket  *handler.WebSocketHandler
	Health     *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e, h.Auth)
	SetupUserRouter(e, h.User, authMiddleware)
	SetupJobRouter(e, h.Job, authMiddleware, adminMiddleware)
	SetupFreelancerRouter(e, h.Freelancer, authMiddleware)
	SetupProjectRouter(e, h.Project, authMiddleware)
	SetupProposalRouter(e, h.Proposal, authMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupFileRouter(e, h.File, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupHealthRouter(e, h.Health)
}
