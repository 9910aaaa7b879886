package userController

import (
	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	"saathi/models/course"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns a role-shaped summary for the caller
func Dashboard(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(models.Role)

	if models.IsTeacherRole(role) {
		return teacherDashboard(c)
	}
	return learnerDashboard(c)
}

func learnerDashboard(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var completedSessions int64
	db.Model(&models.Progress{}).Where("user_id = ? AND completed = ?", userId, true).Count(&completedSessions)

	var badgeCount int64
	db.Model(&models.Badge{}).Where("user_id = ?", userId).Count(&badgeCount)

	var certificates []models.Certificate
	db.Where("user_id = ?", userId).Order("issue_date DESC").Find(&certificates)

	var recentBadges []models.Badge
	db.Where("user_id = ?", userId).Order("earned_on DESC").Limit(5).Find(&recentBadges)

	var promotion models.PromotionRequest
	promotionStatus := "none"
	if err := db.Where("user_id = ?", userId).First(&promotion).Error; err == nil {
		promotionStatus = promotion.Status
	}

	var courses []course.Course
	db.Where("is_deleted = ?", false).Find(&courses)

	courseList := make([]fiber.Map, 0, len(courses))
	for _, crs := range courses {
		var sessionCount int64
		db.Model(&course.Session{}).Where("course_id = ?", crs.ID).Count(&sessionCount)

		var completed int64
		db.Model(&models.Progress{}).
			Where("user_id = ? AND completed = ? AND session_id IN (?)", userId, true,
				db.Model(&course.Session{}).Select("id").Where("course_id = ?", crs.ID)).
			Count(&completed)

		progressPercent := 0
		if sessionCount > 0 {
			progressPercent = int(completed * 100 / sessionCount)
		}

		courseList = append(courseList, fiber.Map{
			"id":                crs.ID,
			"title":             crs.Title,
			"sessionCount":      sessionCount,
			"completedSessions": completed,
			"progressPercent":   progressPercent,
		})
	}

	role, _ := c.Locals("role").(models.Role)
	journey := []fiber.Map{
		{"step": "Complete sessions", "done": completedSessions > 0},
		{"step": "Earn badges", "done": badgeCount > 0},
		{"step": "Get certified", "done": len(certificates) > 0},
		{"step": "Become a Saathi", "done": role == models.RoleSaathi},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"completedSessions": completedSessions,
		"badgeCount":        badgeCount,
		"certificateCount":  len(certificates),
		"certificates":      certificates,
		"recentBadges":      recentBadges,
		"promotionStatus":   promotionStatus,
		"courses":           courseList,
		"journey":           journey,
	})
}

func teacherDashboard(c *fiber.Ctx) error {
	teacher, ok := c.Locals("teacher").(*models.Teacher)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var uploaded int64
	db.Model(&course.Resource{}).Where("uploaded_by = ?", teacher.ID).Count(&uploaded)

	var approved int64
	db.Model(&course.Resource{}).Where("uploaded_by = ? AND approved = ?", teacher.ID, true).Count(&approved)

	result := fiber.Map{
		"role":              teacher.Role,
		"language":          teacher.Language,
		"uploadedResources": uploaded,
		"approvedResources": approved,
		"pendingResources":  uploaded - approved,
	}

	// Mentors additionally see the queue awaiting their review
	if teacher.Role == models.RoleMentor {
		var pendingReview []course.Resource
		db.Where("language = ? AND approved = ?", teacher.Language, false).
			Order("uploaded_at ASC").Limit(20).Find(&pendingReview)
		result["reviewQueue"] = pendingReview
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", result)
}
