package controllers

import (
	"encoding/json"
	"log"
	"math/rand"

	"saathi/database"
	"saathi/middleware"
	courseModels "saathi/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateQuestion adds a question to the MCQ bank
func AdminCreateQuestion(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateQuestion").(*struct {
		QuestionText  string   `json:"questionText"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correctAnswer"`
		CourseID      *uint    `json:"courseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	optionsJSON, err := json.Marshal(reqData.Options)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
	}

	question := courseModels.MCQQuestion{
		QuestionText:  reqData.QuestionText,
		Options:       string(optionsJSON),
		CorrectAnswer: reqData.CorrectAnswer,
		CourseID:      reqData.CourseID,
	}
	if err := database.Database.Db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

// AdminGetQuestions lists the MCQ bank, optionally filtered by course
func AdminGetQuestions(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&courseModels.MCQQuestion{})
	if courseId := c.QueryInt("courseId"); courseId > 0 {
		query = query.Where("course_id = ?", courseId)
	}

	var questions []courseModels.MCQQuestion
	if err := query.Order("id ASC").Find(&questions).Error; err != nil {
		log.Printf("Error fetching questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"count":     len(questions),
		"questions": questions,
	})
}

// AdminDeleteQuestion removes a bank question and its test links
func AdminDeleteQuestion(c *fiber.Ctx) error {
	questionId, err := c.ParamsInt("id")
	if err != nil || questionId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db

	var question courseModels.MCQQuestion
	if err := db.Where("id = ?", questionId).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	db.Where("question_id = ?", question.ID).Delete(&courseModels.TestQuestion{})
	if err := db.Delete(&question).Error; err != nil {
		log.Printf("Error deleting question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// AdminCreateTest creates a pre or post test for a course language and
// attaches bank questions to it
func AdminCreateTest(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateTest").(*struct {
		CourseID    uint   `json:"courseId"`
		Title       string `json:"title"`
		Type        string `json:"type"`
		Language    string `json:"language"`
		QuestionIDs []uint `json:"questionIds"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Where("course_id = ? AND type = ? AND language = ?",
		reqData.CourseID, reqData.Type, reqData.Language).First(&courseModels.Test{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Test already exists for this course, type and language!", nil)
	}

	test := courseModels.Test{
		CourseID: reqData.CourseID,
		Title:    reqData.Title,
		Type:     reqData.Type,
		Language: reqData.Language,
	}
	if err := db.Create(&test).Error; err != nil {
		log.Printf("Error creating test: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create test!", nil)
	}

	for _, qid := range reqData.QuestionIDs {
		if err := db.Where("id = ?", qid).First(&courseModels.MCQQuestion{}).Error; err != nil {
			continue
		}
		db.Create(&courseModels.TestQuestion{TestID: test.ID, QuestionID: qid})
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Test created successfully!", test)
}

// GetTest returns a test with its questions, options shuffled and correct
// answers stripped for learners
func GetTest(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	testType := c.Query("type", "pre")
	language := c.Query("language")
	if language == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Language is required!", nil)
	}

	db := database.Database.Db

	var test courseModels.Test
	if err := db.Where("course_id = ? AND type = ? AND language = ?", courseId, testType, language).
		First(&test).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
	}

	var links []courseModels.TestQuestion
	db.Where("test_id = ?", test.ID).Find(&links)

	questions := make([]fiber.Map, 0, len(links))
	for _, link := range links {
		var q courseModels.MCQQuestion
		if err := db.Where("id = ?", link.QuestionID).First(&q).Error; err != nil {
			continue
		}

		var options []string
		if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
			log.Printf("Bad options payload on question %d: %v", q.ID, err)
			continue
		}
		rand.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

		questions = append(questions, fiber.Map{
			"id":       q.ID,
			"question": q.QuestionText,
			"options":  options,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test fetched successfully!", fiber.Map{
		"id":        test.ID,
		"title":     test.Title,
		"type":      test.Type,
		"language":  test.Language,
		"questions": questions,
	})
}

// GradeTest scores submitted answers against the bank
func GradeTest(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedGradeTest").(*struct {
		TestID  uint `json:"testId"`
		Answers []struct {
			QuestionID uint   `json:"questionId"`
			Answer     string `json:"answer"`
		} `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var test courseModels.Test
	if err := db.Where("id = ?", reqData.TestID).First(&test).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Test not found!", nil)
	}

	var links []courseModels.TestQuestion
	db.Where("test_id = ?", test.ID).Find(&links)
	inTest := make(map[uint]bool, len(links))
	for _, l := range links {
		inTest[l.QuestionID] = true
	}

	correct := 0
	for _, a := range reqData.Answers {
		if !inTest[a.QuestionID] {
			continue
		}
		var q courseModels.MCQQuestion
		if err := db.Where("id = ?", a.QuestionID).First(&q).Error; err != nil {
			continue
		}
		if q.CorrectAnswer == a.Answer {
			correct++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test graded successfully!", fiber.Map{
		"testId":    test.ID,
		"courseId":  test.CourseID,
		"type":      test.Type,
		"correct":   correct,
		"total":     len(links),
		"scorePct":  percent(correct, len(links)),
	})
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}
