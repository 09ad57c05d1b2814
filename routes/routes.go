package routes

import (
	"dating-chat-api/handler"
	"dating-chat-api/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type ConfigRoute struct {
	*fiber.App
	*middleware.Middleware
	*handler.MatchHandler
	*handler.ChatHandler
	*handler.WebSocketHandler
}

func (rc *ConfigRoute) GetRoute() {
	rc.GetPublicRoute()
	rc.GetProtectedRoute()
	rc.GetWebSocketRoute()
}

func (rc *ConfigRoute) GetPublicRoute() {
	rc.App.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api/v1")
	app.Use(rc.Middleware.JWTProtected(), rc.Middleware.ExtractUserID)

	app.Post("/matches", rc.MatchHandler.Like)
	app.Get("/matches/:userId/can-chat", rc.MatchHandler.CanChat)

	app.Post("/rooms", rc.ChatHandler.CreateRoom)
	app.Get("/rooms", rc.ChatHandler.GetAllRooms)
	app.Get("/rooms/:roomId/messages", rc.ChatHandler.GetMessagesByRoomID)
	app.Post("/rooms/:roomId/messages", rc.ChatHandler.SendMessage)
	app.Post("/rooms/:roomId/images", rc.ChatHandler.UploadImage)
	app.Put("/rooms/:roomId/typing", rc.ChatHandler.SetTyping)

	app.Delete("/messages/:messageId", rc.ChatHandler.DeleteMessage)
	app.Post("/messages/:messageId/read", rc.ChatHandler.MarkRead)
}

// GetWebSocketRoute authenticates inside the handler from ?token=, since
// the handshake cannot carry headers from every client.
func (rc *ConfigRoute) GetWebSocketRoute() {
	rc.App.Use("/ws", rc.WebSocketHandler.Upgrade)
	rc.App.Get("/ws", websocket.New(rc.WebSocketHandler.HandleWebSocket))
}
