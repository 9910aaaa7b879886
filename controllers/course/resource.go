package controllers

import (
	"log"
	"strconv"
	"time"

	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	courseModels "saathi/models/course"
	"saathi/utils"

	"github.com/gofiber/fiber/v2"
)

// languageStaffFor loads the staffing row for a session's course and language
func languageStaffFor(sessionID uint, language string) (*courseModels.LanguageStaff, *courseModels.Session, error) {
	db := database.Database.Db

	var session courseModels.Session
	if err := db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		return nil, nil, err
	}

	var staff courseModels.LanguageStaff
	if err := db.Where("course_id = ? AND language = ?", session.CourseID, language).First(&staff).Error; err != nil {
		return nil, &session, err
	}
	return &staff, &session, nil
}

// AddResource attaches content to a session. Trainers upload for their own
// language; admins for any. Files arrive as multipart, links as JSON.
func AddResource(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)

	sessionId, err := c.ParamsInt("id")
	if err != nil || sessionId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
	}

	language := c.FormValue("language")
	resourceType := c.FormValue("type")
	title := c.FormValue("title")
	url := c.FormValue("url")

	errors := make(map[string]string)
	if language == "" {
		errors["language"] = "Language is required!"
	}
	if resourceType != courseModels.ResourceVideo && resourceType != courseModels.ResourcePDF && resourceType != courseModels.ResourceLink {
		errors["type"] = "Type must be video, pdf or link!"
	}
	if title == "" {
		errors["title"] = "Title is required!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	staff, session, err := languageStaffFor(uint(sessionId), language)
	if session == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not staffed for language "+language+"!", nil)
	}

	// Trainers may only upload for a language they are assigned to
	if role == models.RoleTrainer && staff.TrainerID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the trainer for this language!", nil)
	}

	resource := courseModels.Resource{
		SessionID:  session.ID,
		Language:   language,
		Type:       resourceType,
		Title:      title,
		UploadedAt: time.Now(),
		UploadedBy: userId,
		// Admin uploads skip moderation
		Approved: role == models.RoleAdmin,
	}

	if resourceType == courseModels.ResourceLink {
		if url == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"url": "URL is required for link resources!"})
		}
		resource.URL = url
	} else {
		file, err := c.FormFile("file")
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"file": "File is required for video and pdf resources!"})
		}

		contentType := file.Header.Get("Content-Type")
		if !utils.IsAllowedMimeType(resourceType, contentType) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"file": "File content type " + contentType + " does not match resource type " + resourceType + "!",
			})
		}

		fileName, err := utils.SaveUploadedFile(file)
		if err != nil {
			log.Printf("Error saving resource file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
		}

		resource.FileName = fileName
		resource.FileSize = file.Size
		resource.MimeType = contentType
		resource.URL = utils.GetFileURL(fileName)

		if resourceType == courseModels.ResourceVideo {
			if d := c.FormValue("durationSeconds"); d != "" {
				if duration, err := strconv.Atoi(d); err == nil && duration > 0 {
					resource.DurationSeconds = duration
				}
			}
		}
	}

	if resource.Approved {
		now := time.Now()
		resource.ApprovedBy = &userId
		resource.ApprovedAt = &now
	}

	if err := database.Database.Db.Create(&resource).Error; err != nil {
		log.Printf("Error creating resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource added successfully!", resource)
}

// RemoveResource deletes a resource. Only the uploader or an admin may do so.
func RemoveResource(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)

	resourceId, err := c.ParamsInt("id")
	if err != nil || resourceId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db

	var resource courseModels.Resource
	if err := db.Where("id = ?", resourceId).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	if role != models.RoleAdmin && resource.UploadedBy != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the uploader or an admin can remove this resource!", nil)
	}

	if err := db.Unscoped().Delete(&resource).Error; err != nil {
		log.Printf("Error deleting resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove resource!", nil)
	}
	if err := utils.DeleteUploadedFile(resource.FileName); err != nil {
		log.Printf("Error deleting resource file: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource removed successfully!", nil)
}

// ReviewResource approves or rejects a pending resource. Only the language's
// mentor or an admin may review; rejection deletes the resource outright.
func ReviewResource(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)

	reqData, ok := c.Locals("validatedReviewResource").(*struct {
		Action string `json:"action"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	resourceId, err := c.ParamsInt("id")
	if err != nil || resourceId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db

	var resource courseModels.Resource
	if err := db.Where("id = ?", resourceId).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	if resource.Approved {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Resource is already approved!", nil)
	}

	if role != models.RoleAdmin {
		staff, _, err := languageStaffFor(resource.SessionID, resource.Language)
		if err != nil || staff.MentorID != userId {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the language mentor or an admin can review this resource!", nil)
		}
	}

	if reqData.Action == "reject" {
		if err := db.Unscoped().Delete(&resource).Error; err != nil {
			log.Printf("Error rejecting resource: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject resource!", nil)
		}
		if err := utils.DeleteUploadedFile(resource.FileName); err != nil {
			log.Printf("Error deleting rejected resource file: %v", err)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource rejected and removed!", nil)
	}

	now := time.Now()
	resource.Approved = true
	resource.ApprovedBy = &userId
	resource.ApprovedAt = &now
	if err := db.Save(&resource).Error; err != nil {
		log.Printf("Error approving resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource approved successfully!", resource)
}

// GetPendingResources lists unapproved resources. Mentors see their language,
// admins see everything.
func GetPendingResources(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(models.Role)

	db := database.Database.Db
	query := db.Where("approved = ?", false)

	if role == models.RoleMentor {
		teacher, ok := c.Locals("teacher").(*models.Teacher)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		query = query.Where("language = ?", teacher.Language)
	}

	var resources []courseModels.Resource
	if err := query.Order("uploaded_at ASC").Find(&resources).Error; err != nil {
		log.Printf("Error fetching pending resources: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending resources!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending resources fetched successfully!", fiber.Map{
		"count":     len(resources),
		"resources": resources,
	})
}

// GetSessionStats reports completion counts for one session
func GetSessionStats(c *fiber.Ctx) error {
	sessionId, err := c.ParamsInt("id")
	if err != nil || sessionId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
	}

	db := database.Database.Db

	var session courseModels.Session
	if err := db.Where("id = ?", sessionId).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	var completions int64
	db.Model(&models.Progress{}).Where("session_id = ? AND completed = ?", session.ID, true).Count(&completions)

	var badges int64
	db.Model(&models.Badge{}).Where("session_id = ?", session.ID).Count(&badges)

	var resources int64
	db.Model(&courseModels.Resource{}).Where("session_id = ? AND approved = ?", session.ID, true).Count(&resources)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session stats fetched successfully!", fiber.Map{
		"sessionId":         session.ID,
		"title":             session.Title,
		"completions":       completions,
		"badgesAwarded":     badges,
		"approvedResources": resources,
	})
}
