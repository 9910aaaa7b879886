package grievanceValidator

import (
	"saathi/middleware"
	"saathi/models"

	"github.com/gofiber/fiber/v2"
)

// FileGrievance validator middleware
func FileGrievance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Subject string `json:"subject"`
			Message string `json:"message"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Subject) < 3 {
			errors["subject"] = "Subject must be at least 3 characters long!"
		}

		if len(reqData.Message) < 10 {
			errors["message"] = "Message must be at least 10 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrievance", reqData)
		return c.Next()
	}
}

// UpdateGrievance validator middleware
func UpdateGrievance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status   string `json:"status"`
			Response string `json:"response"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		switch reqData.Status {
		case models.GrievanceOpen, models.GrievanceInProgress, models.GrievanceResolved:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be open, in-progress or resolved!",
			})
		}

		c.Locals("validatedUpdateGrievance", reqData)
		return c.Next()
	}
}
