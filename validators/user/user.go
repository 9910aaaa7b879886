package userValidator

import (
	"saathi/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email          *string `json:"email"`
			Language       *string `json:"language"`
			ProfilePicture *string `json:"profilePicture"`
			Bio            *string `json:"bio"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email != nil {
			if err := validate.Var(*reqData.Email, "email"); err != nil {
				errors["email"] = "Email must be a valid email address!"
			}
		}

		if reqData.Language != nil && *reqData.Language == "" {
			errors["language"] = "Language cannot be empty!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateProfile", reqData)
		return c.Next()
	}
}

// CompleteSession validator middleware
func CompleteSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			VideoID       string `json:"videoId"`
			VideoWatched  bool   `json:"videoWatched"`
			WatchDuration *int   `json:"watchDuration"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.WatchDuration != nil && *reqData.WatchDuration < 0 {
			errors["watchDuration"] = "Watch duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCompleteSession", reqData)
		return c.Next()
	}
}

// TestScore validator middleware
func TestScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint   `json:"courseId"`
			Type     string `json:"type"`
			Score    int    `json:"score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID < 1 {
			errors["courseId"] = "Course id is required!"
		}

		if reqData.Type != "pre" && reqData.Type != "post" {
			errors["type"] = "Type must be pre or post!"
		}

		if reqData.Score < 0 || reqData.Score > 100 {
			errors["score"] = "Score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTestScore", reqData)
		return c.Next()
	}
}

// PromotionRequest validator middleware
func PromotionRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Reason) < 10 {
			errors["reason"] = "Reason must be at least 10 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPromotionRequest", reqData)
		return c.Next()
	}
}

// ProcessPromotion validator middleware
func ProcessPromotion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint   `json:"userId"`
			Action   string `json:"action"`
			Feedback string `json:"feedback"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID < 1 {
			errors["userId"] = "User id is required!"
		}

		if reqData.Action != "approve" && reqData.Action != "reject" {
			errors["action"] = "Action must be approve or reject!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProcessPromotion", reqData)
		return c.Next()
	}
}
