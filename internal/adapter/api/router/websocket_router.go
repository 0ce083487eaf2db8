package router

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the upgrade endpoint. Authentication
// happens inside the handler via the token query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket)
}
