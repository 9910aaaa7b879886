package courseValidator

import (
	"saathi/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         string `json:"title"`
			Description   string `json:"description"`
			LanguageStaff []struct {
				Language  string `json:"language"`
				TrainerID uint   `json:"trainerId"`
				MentorID  uint   `json:"mentorId"`
			} `json:"languageStaff"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(reqData.LanguageStaff) == 0 {
			errors["languageStaff"] = "At least one language staffing entry is required!"
		}
		seen := make(map[string]bool)
		for _, s := range reqData.LanguageStaff {
			if s.Language == "" {
				errors["languageStaff"] = "Every staffing entry needs a language!"
				break
			}
			if seen[s.Language] {
				errors["languageStaff"] = "Duplicate staffing entry for language " + s.Language + "!"
				break
			}
			seen[s.Language] = true
			if s.TrainerID < 1 || s.MentorID < 1 {
				errors["languageStaff"] = "Every staffing entry needs a trainer and a mentor!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         *string `json:"title"`
			Description   *string `json:"description"`
			LanguageStaff []struct {
				Language  string `json:"language"`
				TrainerID uint   `json:"trainerId"`
				MentorID  uint   `json:"mentorId"`
			} `json:"languageStaff"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(*reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		for _, s := range reqData.LanguageStaff {
			if s.Language == "" || s.TrainerID < 1 || s.MentorID < 1 {
				errors["languageStaff"] = "Every staffing entry needs a language, trainer and mentor!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateCourse", reqData)
		return c.Next()
	}
}

// CreateSession validator middleware
func CreateSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Order       int    `json:"order"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.Order < 1 {
			errors["order"] = "Order must be greater than 0!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateSession", reqData)
		return c.Next()
	}
}

// UpdateSession validator middleware
func UpdateSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title"`
			Order       *int    `json:"order"`
			Description *string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && *reqData.Title == "" {
			errors["title"] = "Title cannot be empty!"
		}

		if reqData.Order != nil && *reqData.Order < 1 {
			errors["order"] = "Order must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateSession", reqData)
		return c.Next()
	}
}

// ReviewResource validator middleware
func ReviewResource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Action string `json:"action"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Action != "approve" && reqData.Action != "reject" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"action": "Action must be approve or reject!",
			})
		}

		c.Locals("validatedReviewResource", reqData)
		return c.Next()
	}
}

// CreateQuestion validator middleware
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionText  string   `json:"questionText"`
			Options       []string `json:"options"`
			CorrectAnswer string   `json:"correctAnswer"`
			CourseID      *uint    `json:"courseId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.QuestionText == "" {
			errors["questionText"] = "Question text is required!"
		}

		if len(reqData.Options) < 2 {
			errors["options"] = "At least two options are required!"
		}

		found := false
		for _, o := range reqData.Options {
			if o == reqData.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			errors["correctAnswer"] = "Correct answer must be one of the options!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateQuestion", reqData)
		return c.Next()
	}
}

// CreateTest validator middleware
func CreateTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID    uint   `json:"courseId"`
			Title       string `json:"title"`
			Type        string `json:"type"`
			Language    string `json:"language"`
			QuestionIDs []uint `json:"questionIds"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID < 1 {
			errors["courseId"] = "Course id is required!"
		}

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.Type != "pre" && reqData.Type != "post" {
			errors["type"] = "Type must be pre or post!"
		}

		if reqData.Language == "" {
			errors["language"] = "Language is required!"
		}

		if len(reqData.QuestionIDs) == 0 {
			errors["questionIds"] = "At least one question is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateTest", reqData)
		return c.Next()
	}
}

// GradeTest validator middleware
func GradeTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TestID  uint `json:"testId"`
			Answers []struct {
				QuestionID uint   `json:"questionId"`
				Answer     string `json:"answer"`
			} `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TestID < 1 {
			errors["testId"] = "Test id is required!"
		}

		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGradeTest", reqData)
		return c.Next()
	}
}
