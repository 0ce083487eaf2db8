package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
	"gigspace/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all chat routes (excluding the WebSocket upgrade).
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("", chatHandler.CreateRoom)
	chatGroup.GET("", chatHandler.ListRooms)
	chatGroup.GET("/:id", chatHandler.GetRoom)
	chatGroup.PUT("/:id/read", chatHandler.MarkRead)

	chatGroup.POST("/:id/messages", chatHandler.SendMessage)
	chatGroup.GET("/:id/messages", chatHandler.GetMessages)
}
