package webinarController

import (
	"log"
	"time"

	"saathi/config"
	"saathi/database"
	"saathi/middleware"
	"saathi/models"

	rtctokenbuilder "github.com/AgoraIO-Community/go-tokenbuilder/rtctokenbuilder"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// buildRTCToken mints an RTC token for a channel. Returns an empty token
// when Agora credentials are not configured, which keeps local setups
// working without an Agora account.
func buildRTCToken(channel string, uid uint, publisher bool) (string, error) {
	appID := config.AppConfig.AgoraAppID
	appCert := config.AppConfig.AgoraCertificate
	if appID == "" || appCert == "" {
		return "", nil
	}

	var role rtctokenbuilder.Role = rtctokenbuilder.RoleSubscriber
	if publisher {
		role = rtctokenbuilder.RolePublisher
	}

	expireTs := uint32(time.Now().Add(24 * time.Hour).Unix())
	return rtctokenbuilder.BuildTokenWithUID(appID, appCert, channel, uint32(uid), role, expireTs)
}

// ScheduleWebinar creates a webinar with a fresh RTC channel (staff only)
func ScheduleWebinar(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)

	reqData, ok := c.Locals("validatedScheduleWebinar").(*struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		ScheduledAt time.Time `json:"scheduledAt"`
		Duration    int       `json:"duration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	channel := "webinar-" + uuid.New().String()
	token, err := buildRTCToken(channel, userId, true)
	if err != nil {
		log.Printf("Error building RTC token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create webinar channel!", nil)
	}

	duration := reqData.Duration
	if duration <= 0 {
		duration = 60
	}

	webinar := models.Webinar{
		Title:       reqData.Title,
		Description: reqData.Description,
		ScheduledAt: reqData.ScheduledAt,
		Duration:    duration,
		HostID:      userId,
		HostRole:    role,
		ChannelName: channel,
		Token:       token,
		Status:      models.WebinarScheduled,
	}
	if err := database.Database.Db.Create(&webinar).Error; err != nil {
		log.Printf("Error creating webinar: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule webinar!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Webinar scheduled successfully!", webinar)
}

// GetWebinars lists webinars, upcoming first
func GetWebinars(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.Webinar{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var webinars []models.Webinar
	if err := query.Order("scheduled_at ASC").Find(&webinars).Error; err != nil {
		log.Printf("Error fetching webinars: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch webinars!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webinars fetched successfully!", fiber.Map{
		"count":    len(webinars),
		"webinars": webinars,
	})
}

// JoinWebinar returns the channel and a subscriber token for a live or
// upcoming webinar
func JoinWebinar(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	webinarId, err := c.ParamsInt("id")
	if err != nil || webinarId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webinar id!", nil)
	}

	db := database.Database.Db

	var webinar models.Webinar
	if err := db.Where("id = ?", webinarId).First(&webinar).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Webinar not found!", nil)
	}

	if webinar.Status == models.WebinarCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Webinar has already ended!", nil)
	}

	token, err := buildRTCToken(webinar.ChannelName, userId, webinar.HostID == userId)
	if err != nil {
		log.Printf("Error building RTC token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join webinar!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webinar joined successfully!", fiber.Map{
		"webinarId":   webinar.ID,
		"title":       webinar.Title,
		"channelName": webinar.ChannelName,
		"token":       token,
		"scheduledAt": webinar.ScheduledAt,
		"duration":    webinar.Duration,
	})
}

// CancelWebinar removes a webinar. Only the host or an admin may cancel.
func CancelWebinar(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)

	webinarId, err := c.ParamsInt("id")
	if err != nil || webinarId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webinar id!", nil)
	}

	db := database.Database.Db

	var webinar models.Webinar
	if err := db.Where("id = ?", webinarId).First(&webinar).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Webinar not found!", nil)
	}

	if role != models.RoleAdmin && webinar.HostID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the host or an admin can cancel this webinar!", nil)
	}

	if err := db.Delete(&webinar).Error; err != nil {
		log.Printf("Error cancelling webinar: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel webinar!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webinar cancelled successfully!", nil)
}
