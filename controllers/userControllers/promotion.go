package userController

import (
	"log"
	"time"

	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	"saathi/services/progression"
	"saathi/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// RequestSaathiPromotion files (or re-files) the caller's promotion request.
// A learner holds at most one request row; a new request replaces the old
// one whatever its state.
func RequestSaathiPromotion(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPromotionRequest").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var certificateCount int64
	db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&certificateCount)

	request, issue := progression.NewPromotionRequest(user.Role, int(certificateCount), reqData.Reason, time.Now())
	if issue != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, issue.Message, issue)
	}
	request.UserID = user.ID

	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"requested_at", "current_role", "requested_role", "reason",
			"status", "processed_at", "processed_by", "feedback",
		}),
	}).Create(&request).Error; err != nil {
		log.Printf("Error saving promotion request: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit promotion request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Promotion request submitted successfully!", fiber.Map{
		"userId":        user.ID,
		"requestedRole": request.RequestedRole,
		"status":        request.Status,
		"requestedAt":   request.RequestedAt,
	})
}

// GetMyPromotionRequest returns the caller's current request, if any
func GetMyPromotionRequest(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var request models.PromotionRequest
	if err := database.Database.Db.Where("user_id = ?", userId).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No promotion request found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promotion request fetched successfully!", request)
}

// GetPromotionRequests lists promotion requests for review (admin only,
// enforced by the auth middleware's path gate)
func GetPromotionRequests(c *fiber.Ctx) error {
	db := database.Database.Db

	status := c.Query("status")
	query := db.Model(&models.PromotionRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.PromotionRequest
	if err := query.Order("requested_at ASC").Find(&requests).Error; err != nil {
		log.Printf("Error fetching promotion requests: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch promotion requests!", nil)
	}

	result := make([]fiber.Map, 0, len(requests))
	for _, r := range requests {
		entry := fiber.Map{"request": r}
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", r.UserID, false).First(&user).Error; err == nil {
			var certificateCount int64
			db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&certificateCount)
			entry["user"] = fiber.Map{
				"id":           user.ID,
				"username":     user.Username,
				"email":        user.Email,
				"role":         user.Role,
				"certificates": certificateCount,
			}
		}
		result = append(result, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promotion requests fetched successfully!", fiber.Map{
		"count":    len(result),
		"requests": result,
	})
}

// ProcessPromotionRequest approves or rejects a pending request (admin only).
// Approval re-checks the learner's role and certificates, then flips the
// role to saathi.
func ProcessPromotionRequest(c *fiber.Ctx) error {
	admin, ok := c.Locals("admin").(*models.Admin)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}

	reqData, ok := c.Locals("validatedProcessPromotion").(*struct {
		UserID   uint   `json:"userId"`
		Action   string `json:"action"`
		Feedback string `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request models.PromotionRequest
	if err := db.Where("user_id = ?", reqData.UserID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Promotion request not found!", nil)
	}

	user, err := firstUserByID(db, request.UserID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	now := time.Now()

	if reqData.Action == "approve" {
		var certificateCount int64
		db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&certificateCount)

		if issue := progression.ApprovePromotion(&request, user.Role, int(certificateCount), admin.ID, reqData.Feedback, now); issue != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, issue.Message, issue)
		}

		user.Role = models.RoleSaathi
		if err := db.Save(user).Error; err != nil {
			log.Printf("Error promoting user %d: %v", user.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to promote user!", nil)
		}
	} else {
		if issue := progression.RejectPromotion(&request, admin.ID, reqData.Feedback, now); issue != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, issue.Message, issue)
		}
	}

	if err := db.Save(&request).Error; err != nil {
		log.Printf("Error saving processed promotion request: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process promotion request!", nil)
	}

	utils.SendPromotionDecisionEmail(user.Email, user.Username, request.Status, request.Feedback)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promotion request processed successfully!", fiber.Map{
		"userId":   user.ID,
		"status":   request.Status,
		"feedback": request.Feedback,
		"role":     user.Role,
	})
}
