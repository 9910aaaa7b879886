package webinarValidator

import (
	"time"

	"saathi/middleware"

	"github.com/gofiber/fiber/v2"
)

// ScheduleWebinar validator middleware
func ScheduleWebinar() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			ScheduledAt time.Time `json:"scheduledAt"`
			Duration    int       `json:"duration"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.ScheduledAt.IsZero() || reqData.ScheduledAt.Before(time.Now()) {
			errors["scheduledAt"] = "Scheduled time must be in the future!"
		}

		if reqData.Duration < 0 || reqData.Duration > 480 {
			errors["duration"] = "Duration must be between 0 and 480 minutes!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedScheduleWebinar", reqData)
		return c.Next()
	}
}
