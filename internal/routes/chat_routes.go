package routes

import (
	"github.com/gin-gonic/gin"

	"atuna_estate/internal/controllers"
	"atuna_estate/internal/middleware"
)

func ChatRoutes(r *gin.Engine) {
	chats := r.Group("/chats")
	chats.Use(middleware.RequireAuth())
	{
		chats.POST("", controllers.CreateChatroom)
		chats.GET("", controllers.ListChatrooms)
		chats.GET("/:id", controllers.GetChatroom)
		chats.DELETE("/:id", controllers.DeleteChatroom)
		chats.POST("/:id/messages", controllers.CreateMessage)
		chats.GET("/:id/messages", controllers.ListMessages)
		chats.POST("/:id/messages/:messageId/reactions", controllers.AddReaction)
		chats.DELETE("/:id/messages/:messageId", controllers.DeleteMessage)
	}

	// The websocket handshake carries the token as a query parameter, so it
	// skips the header middleware and authenticates inside the handler.
	r.GET("/ws/chats/:id", controllers.HandleChatWebSocket)
}
