package chatValidator

import (
	"saathi/middleware"

	"github.com/gofiber/fiber/v2"
)

// SendMessage validator middleware
func SendMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ReceiverID *uint  `json:"receiverId"`
			GroupID    *uint  `json:"groupId"`
			Content    string `json:"content"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Content == "" {
			errors["content"] = "Message content is required!"
		}

		if reqData.ReceiverID == nil && reqData.GroupID == nil {
			errors["receiver"] = "Either receiverId or groupId is required!"
		}
		if reqData.ReceiverID != nil && reqData.GroupID != nil {
			errors["receiver"] = "Only one of receiverId or groupId may be set!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSendMessage", reqData)
		return c.Next()
	}
}
