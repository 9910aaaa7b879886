package grievanceController

import (
	"log"

	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	"saathi/utils"

	"github.com/gofiber/fiber/v2"
)

// FileGrievance records a complaint from any authenticated user
func FileGrievance(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedGrievance").(*struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	grievance := models.Grievance{
		UserID:  userId,
		Subject: reqData.Subject,
		Message: reqData.Message,
		Status:  models.GrievanceOpen,
	}
	if err := database.Database.Db.Create(&grievance).Error; err != nil {
		log.Printf("Error filing grievance: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to file grievance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Grievance filed successfully!", grievance)
}

// GetMyGrievances lists the caller's grievances, newest first
func GetMyGrievances(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var grievances []models.Grievance
	if err := database.Database.Db.
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&grievances).Error; err != nil {
		log.Printf("Error fetching grievances: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grievances!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grievances fetched successfully!", fiber.Map{
		"count":      len(grievances),
		"grievances": grievances,
	})
}

// AdminGetGrievances lists all grievances, optionally by status
func AdminGetGrievances(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.Grievance{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var grievances []models.Grievance
	if err := query.Order("created_at ASC").Find(&grievances).Error; err != nil {
		log.Printf("Error fetching grievances: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grievances!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grievances fetched successfully!", fiber.Map{
		"count":      len(grievances),
		"grievances": grievances,
	})
}

// AdminUpdateGrievance sets status and response on a grievance and notifies
// the filer when resolved
func AdminUpdateGrievance(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUpdateGrievance").(*struct {
		Status   string `json:"status"`
		Response string `json:"response"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	grievanceId, err := c.ParamsInt("id")
	if err != nil || grievanceId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid grievance id!", nil)
	}

	db := database.Database.Db

	var grievance models.Grievance
	if err := db.Where("id = ?", grievanceId).First(&grievance).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Grievance not found!", nil)
	}

	grievance.Status = reqData.Status
	if reqData.Response != "" {
		grievance.Response = reqData.Response
	}
	if err := db.Save(&grievance).Error; err != nil {
		log.Printf("Error updating grievance: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update grievance!", nil)
	}

	if grievance.Status == models.GrievanceResolved && grievance.Response != "" {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", grievance.UserID, false).First(&user).Error; err == nil {
			utils.SendGrievanceResponseEmail(user.Email, user.Username, grievance.Subject, grievance.Response)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grievance updated successfully!", grievance)
}
