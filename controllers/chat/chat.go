package chatController

import (
	"log"

	"saathi/database"
	"saathi/middleware"
	"saathi/models"

	"github.com/gofiber/fiber/v2"
)

// SendMessage stores a personal or group chat message
func SendMessage(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSendMessage").(*struct {
		ReceiverID *uint  `json:"receiverId"`
		GroupID    *uint  `json:"groupId"`
		Content    string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	message := models.Message{
		SenderID:   userId,
		ReceiverID: reqData.ReceiverID,
		GroupID:    reqData.GroupID,
		Content:    reqData.Content,
	}
	if err := database.Database.Db.Create(&message).Error; err != nil {
		log.Printf("Error sending message: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent successfully!", message)
}

// GetConversation returns the two-way message history with another user
func GetConversation(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	otherId, err := c.ParamsInt("userId")
	if err != nil || otherId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	var messages []models.Message
	if err := database.Database.Db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userId, otherId, otherId, userId).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		log.Printf("Error fetching conversation: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch conversation!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conversation fetched successfully!", fiber.Map{
		"count":    len(messages),
		"messages": messages,
	})
}

// GetGroupMessages returns a group's message history
func GetGroupMessages(c *fiber.Ctx) error {
	groupId, err := c.ParamsInt("groupId")
	if err != nil || groupId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid group id!", nil)
	}

	var messages []models.Message
	if err := database.Database.Db.
		Where("group_id = ?", groupId).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		log.Printf("Error fetching group messages: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch group messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Group messages fetched successfully!", fiber.Map{
		"count":    len(messages),
		"messages": messages,
	})
}
