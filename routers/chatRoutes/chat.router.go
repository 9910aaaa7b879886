package chatRoutes

import (
	chatControllers "saathi/controllers/chat"
	"saathi/middleware"
	chatValidators "saathi/validators/chat"

	"github.com/gofiber/fiber/v2"
)

func SetupChatRoutes(app *fiber.App) {
	chatGroup := app.Group("/chat")

	chatGroup.Post("/messages", chatValidators.SendMessage(), middleware.JWTMiddleware, chatControllers.SendMessage)
	chatGroup.Get("/conversation/:userId", middleware.JWTMiddleware, chatControllers.GetConversation)
	chatGroup.Get("/group/:groupId", middleware.JWTMiddleware, chatControllers.GetGroupMessages)
}
