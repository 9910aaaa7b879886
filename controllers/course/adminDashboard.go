package controllers

import (
	"log"

	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	courseModels "saathi/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminDashboard aggregates platform-wide activity for admins
func AdminDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalChampions, totalSaathis int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleChampion, false).Count(&totalChampions)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleSaathi, false).Count(&totalSaathis)

	var totalTeachers int64
	db.Model(&models.Teacher{}).Where("is_deleted = ?", false).Count(&totalTeachers)

	var totalCourses int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)

	var totalSessions int64
	db.Model(&courseModels.Session{}).Count(&totalSessions)

	var pendingResources int64
	db.Model(&courseModels.Resource{}).Where("approved = ?", false).Count(&pendingResources)

	var pendingPromotions int64
	db.Model(&models.PromotionRequest{}).Where("status = ?", "pending").Count(&pendingPromotions)

	var openGrievances int64
	db.Model(&models.Grievance{}).Where("status <> ?", models.GrievanceResolved).Count(&openGrievances)

	// Activity windows
	today := now.BeginningOfDay()
	weekStart := now.BeginningOfWeek()
	monthStart := now.BeginningOfMonth()

	var completionsToday, completionsThisWeek, completionsThisMonth int64
	db.Model(&models.Progress{}).Where("completed = ? AND completed_on >= ?", true, today).Count(&completionsToday)
	db.Model(&models.Progress{}).Where("completed = ? AND completed_on >= ?", true, weekStart).Count(&completionsThisWeek)
	db.Model(&models.Progress{}).Where("completed = ? AND completed_on >= ?", true, monthStart).Count(&completionsThisMonth)

	var certificatesThisMonth int64
	db.Model(&models.Certificate{}).Where("issue_date >= ?", monthStart).Count(&certificatesThisMonth)

	var signupsThisWeek int64
	if err := db.Model(&models.User{}).Where("created_at >= ? AND is_deleted = ?", weekStart, false).
		Count(&signupsThisWeek).Error; err != nil {
		log.Printf("Error counting signups: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total":     totalUsers,
			"champions": totalChampions,
			"saathis":   totalSaathis,
			"teachers":  totalTeachers,
		},
		"courses": fiber.Map{
			"total":            totalCourses,
			"sessions":         totalSessions,
			"pendingResources": pendingResources,
		},
		"moderation": fiber.Map{
			"pendingPromotions": pendingPromotions,
			"openGrievances":    openGrievances,
		},
		"activity": fiber.Map{
			"completionsToday":      completionsToday,
			"completionsThisWeek":   completionsThisWeek,
			"completionsThisMonth":  completionsThisMonth,
			"certificatesThisMonth": certificatesThisMonth,
			"signupsThisWeek":       signupsThisWeek,
		},
	})
}
