package controllers

import (
	"log"

	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	courseModels "saathi/models/course"

	"github.com/gofiber/fiber/v2"
)

// staffingErrors checks that every named trainer and mentor exists with the
// matching teacher role
func staffingErrors(staff []struct {
	Language  string `json:"language"`
	TrainerID uint   `json:"trainerId"`
	MentorID  uint   `json:"mentorId"`
}) map[string]string {
	db := database.Database.Db
	errors := make(map[string]string)

	for _, s := range staff {
		var trainer models.Teacher
		if err := db.Where("id = ? AND role = ? AND is_deleted = ?", s.TrainerID, models.RoleTrainer, false).
			First(&trainer).Error; err != nil {
			errors["trainer_"+s.Language] = "Trainer not found for language " + s.Language + "!"
		}
		var mentor models.Teacher
		if err := db.Where("id = ? AND role = ? AND is_deleted = ?", s.MentorID, models.RoleMentor, false).
			First(&mentor).Error; err != nil {
			errors["mentor_"+s.Language] = "Mentor not found for language " + s.Language + "!"
		}
	}
	return errors
}

// AdminCreateCourse creates a course with its per-language staffing
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateCourse").(*struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		LanguageStaff []struct {
			Language  string `json:"language"`
			TrainerID uint   `json:"trainerId"`
			MentorID  uint   `json:"mentorId"`
		} `json:"languageStaff"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if errs := staffingErrors(reqData.LanguageStaff); len(errs) > 0 {
		return middleware.ValidationErrorResponse(c, errs)
	}

	db := database.Database.Db

	newCourse := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
	}
	for _, s := range reqData.LanguageStaff {
		newCourse.LanguageStaff = append(newCourse.LanguageStaff, courseModels.LanguageStaff{
			Language:  s.Language,
			TrainerID: s.TrainerID,
			MentorID:  s.MentorID,
		})
	}

	if err := db.Create(&newCourse).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", newCourse)
}

// AdminUpdateCourse updates course fields and replaces staffing when provided
func AdminUpdateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUpdateCourse").(*struct {
		Title         *string `json:"title"`
		Description   *string `json:"description"`
		LanguageStaff []struct {
			Language  string `json:"language"`
			TrainerID uint   `json:"trainerId"`
			MentorID  uint   `json:"mentorId"`
		} `json:"languageStaff"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Title != nil {
		crs.Title = *reqData.Title
	}
	if reqData.Description != nil {
		crs.Description = *reqData.Description
	}

	if len(reqData.LanguageStaff) > 0 {
		if errs := staffingErrors(reqData.LanguageStaff); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		if err := db.Where("course_id = ?", crs.ID).Delete(&courseModels.LanguageStaff{}).Error; err != nil {
			log.Printf("Error replacing course staffing: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
		for _, s := range reqData.LanguageStaff {
			db.Create(&courseModels.LanguageStaff{
				CourseID:  crs.ID,
				Language:  s.Language,
				TrainerID: s.TrainerID,
				MentorID:  s.MentorID,
			})
		}
	}

	if err := db.Save(&crs).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	db.Preload("LanguageStaff").First(&crs, crs.ID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// AdminDeleteCourse soft-deletes a course
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	crs.IsDeleted = true
	if err := db.Save(&crs).Error; err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetAllCourses lists active courses with staffing (staff view)
func GetAllCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.
		Preload("LanguageStaff").
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"count":   len(courses),
		"courses": courses,
	})
}

// GetCourseById returns one course with staffing and sessions (staff view)
func GetCourseById(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Preload("LanguageStaff").
		Where("id = ? AND is_deleted = ?", courseId, false).
		First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sessions []courseModels.Session
	db.Where("course_id = ?", crs.ID).Order(`"order" ASC`).Find(&sessions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   crs,
		"sessions": sessions,
	})
}

// AdminCreateSession appends a session to a course
func AdminCreateSession(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateSession").(*struct {
		Title       string `json:"title"`
		Order       int    `json:"order"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	session := courseModels.Session{
		CourseID:    crs.ID,
		Title:       reqData.Title,
		Order:       reqData.Order,
		Description: reqData.Description,
	}
	if err := db.Create(&session).Error; err != nil {
		log.Printf("Error creating session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session created successfully!", session)
}

// AdminUpdateSession updates session fields
func AdminUpdateSession(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUpdateSession").(*struct {
		Title       *string `json:"title"`
		Order       *int    `json:"order"`
		Description *string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	sessionId, err := c.ParamsInt("id")
	if err != nil || sessionId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
	}

	db := database.Database.Db

	var session courseModels.Session
	if err := db.Where("id = ?", sessionId).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	if reqData.Title != nil {
		session.Title = *reqData.Title
	}
	if reqData.Order != nil {
		session.Order = *reqData.Order
	}
	if reqData.Description != nil {
		session.Description = *reqData.Description
	}

	if err := db.Save(&session).Error; err != nil {
		log.Printf("Error updating session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session updated successfully!", session)
}

// GetSessionsByCourseId lists a course's sessions in order (staff view)
func GetSessionsByCourseId(c *fiber.Ctx) error {
	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var sessions []courseModels.Session
	if err := database.Database.Db.
		Preload("Resources").
		Where("course_id = ?", courseId).
		Order(`"order" ASC`).
		Find(&sessions).Error; err != nil {
		log.Printf("Error fetching sessions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", fiber.Map{
		"count":    len(sessions),
		"sessions": sessions,
	})
}
