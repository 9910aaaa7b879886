package userController

import (
	"log"
	"time"

	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	"saathi/models/course"
	"saathi/services/progression"
	"saathi/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// GetCourses lists active courses decorated with the caller's progress
func GetCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []course.Course
	if err := db.Where("is_deleted = ?", false).Order("created_at DESC").Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, crs := range courses {
		var sessionCount int64
		db.Model(&course.Session{}).Where("course_id = ?", crs.ID).Count(&sessionCount)

		var completedCount int64
		db.Model(&models.Progress{}).
			Where("user_id = ? AND completed = ? AND session_id IN (?)",
				userId, true,
				db.Model(&course.Session{}).Select("id").Where("course_id = ?", crs.ID)).
			Count(&completedCount)

		var certified int64
		db.Model(&models.Certificate{}).Where("user_id = ? AND course_id = ?", userId, crs.ID).Count(&certified)

		result = append(result, fiber.Map{
			"id":                crs.ID,
			"title":             crs.Title,
			"description":       crs.Description,
			"sessionCount":      sessionCount,
			"completedSessions": completedCount,
			"certified":         certified > 0,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"count":   len(result),
		"courses": result,
	})
}

// GetCourseById returns one course with its sessions and the caller's
// per-session progress and badges
func GetCourseById(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sessions []course.Session
	if err := db.Where("course_id = ?", crs.ID).Order(`"order" ASC`).Find(&sessions).Error; err != nil {
		log.Printf("Error fetching sessions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	var progressRows []models.Progress
	db.Where("user_id = ?", userId).Find(&progressRows)
	progressBySession := make(map[uint]models.Progress, len(progressRows))
	for _, p := range progressRows {
		progressBySession[p.SessionID] = p
	}

	var badges []models.Badge
	db.Where("user_id = ? AND course_id = ?", userId, crs.ID).Find(&badges)
	badgeBySession := make(map[uint]models.Badge, len(badges))
	for _, b := range badges {
		badgeBySession[b.SessionID] = b
	}

	sessionList := make([]fiber.Map, 0, len(sessions))
	for _, s := range sessions {
		entry := fiber.Map{
			"id":          s.ID,
			"title":       s.Title,
			"order":       s.Order,
			"description": s.Description,
			"completed":   false,
		}
		if p, ok := progressBySession[s.ID]; ok {
			entry["completed"] = p.Completed
			entry["completedOn"] = p.CompletedOn
		}
		if b, ok := badgeBySession[s.ID]; ok {
			entry["badge"] = fiber.Map{"name": b.Name, "earnedOn": b.EarnedOn}
		}
		sessionList = append(sessionList, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"id":          crs.ID,
		"title":       crs.Title,
		"description": crs.Description,
		"sessions":    sessionList,
	})
}

// GetSessionById returns one session with its approved resources in the
// caller's language
func GetSessionById(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionId, err := c.ParamsInt("id")
	if err != nil || sessionId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
	}

	db := database.Database.Db

	var session course.Session
	if err := db.Where("id = ?", sessionId).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	language := c.Query("language")
	if language == "" && user != nil {
		language = user.Language
	}

	resourceQuery := db.Where("session_id = ? AND approved = ?", session.ID, true)
	if language != "" {
		resourceQuery = resourceQuery.Where("language = ?", language)
	}

	var resources []course.Resource
	if err := resourceQuery.Find(&resources).Error; err != nil {
		log.Printf("Error fetching resources: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	var progress models.Progress
	completed := false
	if err := db.Where("user_id = ? AND session_id = ?", userId, session.ID).First(&progress).Error; err == nil {
		completed = progress.Completed
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session fetched successfully!", fiber.Map{
		"id":          session.ID,
		"courseId":    session.CourseID,
		"title":       session.Title,
		"order":       session.Order,
		"description": session.Description,
		"language":    language,
		"resources":   resources,
		"completed":   completed,
	})
}

// CompleteSession records watch evidence, marks the session completed and
// awards the session badge at most once
func CompleteSession(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCompleteSession").(*struct {
		VideoID       string `json:"videoId"`
		VideoWatched  bool   `json:"videoWatched"`
		WatchDuration *int   `json:"watchDuration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	sessionId, err := c.ParamsInt("id")
	if err != nil || sessionId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
	}

	db := database.Database.Db

	var session course.Session
	if err := db.Where("id = ?", sessionId).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	// Gather video evidence for the rules: does the session have any video
	// resource, and how long is the one the client claims to have watched
	var videos []course.Resource
	if err := db.Where("session_id = ? AND type = ? AND approved = ?", session.ID, course.ResourceVideo, true).
		Find(&videos).Error; err != nil {
		log.Printf("Error fetching video resources: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch session resources!", nil)
	}

	expectedDuration := 0
	for _, v := range videos {
		if reqData.VideoID != "" && v.URL == reqData.VideoID {
			expectedDuration = v.DurationSeconds
			break
		}
	}
	if expectedDuration == 0 && len(videos) > 0 {
		expectedDuration = videos[0].DurationSeconds
	}

	evidence := progression.WatchEvidence{
		VideoWatched:  reqData.VideoWatched,
		WatchDuration: reqData.WatchDuration,
		VideoID:       reqData.VideoID,
	}
	if issue := progression.ValidateWatchEvidence(evidence, len(videos) > 0, expectedDuration); issue != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, issue.Message, issue)
	}

	now := time.Now()
	progress := models.Progress{
		UserID:        userId,
		SessionID:     session.ID,
		Completed:     true,
		CompletedOn:   &now,
		VideoID:       reqData.VideoID,
		VideoWatched:  true,
		WatchDuration: *reqData.WatchDuration,
		WatchedOn:     &now,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed", "completed_on", "video_id", "video_watched", "watch_duration", "watched_on",
		}),
	}).Create(&progress).Error; err != nil {
		log.Printf("Error saving progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	// Insert-if-absent on the unique (user, session) index
	badge := models.Badge{
		UserID:    userId,
		SessionID: session.ID,
		CourseID:  session.CourseID,
		Name:      progression.BadgeName(session.Title),
		EarnedOn:  now,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&badge).Error; err != nil {
		log.Printf("Error awarding badge: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to award badge!", nil)
	}

	var awarded models.Badge
	db.Where("user_id = ? AND session_id = ?", userId, session.ID).First(&awarded)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session completed successfully!", fiber.Map{
		"sessionId": session.ID,
		"completed": true,
		"badge": fiber.Map{
			"name":     awarded.Name,
			"earnedOn": awarded.EarnedOn,
		},
	})
}

// certificateCounts loads the inputs of the eligibility check
func certificateCounts(userId, courseId uint) (sessionCount, completedCount, badgeCount int) {
	db := database.Database.Db

	var sessions int64
	db.Model(&course.Session{}).Where("course_id = ?", courseId).Count(&sessions)

	var completed int64
	db.Model(&models.Progress{}).
		Where("user_id = ? AND completed = ? AND session_id IN (?)",
			userId, true,
			db.Model(&course.Session{}).Select("id").Where("course_id = ?", courseId)).
		Count(&completed)

	var badges int64
	db.Model(&models.Badge{}).Where("user_id = ? AND course_id = ?", userId, courseId).Count(&badges)

	return int(sessions), int(completed), int(badges)
}

// CertificateStatus reports eligibility without issuing anything
func CertificateStatus(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing models.Certificate
	if err := db.Where("user_id = ? AND course_id = ?", userId, crs.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", fiber.Map{
			"issued":      true,
			"certificate": existing,
		})
	}

	sessions, completed, badges := certificateCounts(userId, crs.ID)
	eligibility := progression.CheckEligibility(sessions, completed, badges)

	return middleware.JsonResponse(c, fiber.StatusOK, true, eligibility.Message, fiber.Map{
		"issued":      false,
		"eligibility": eligibility,
	})
}

// GetCertificate issues the course certificate once eligible. Repeat calls
// return the stored certificate with the same id.
func GetCertificate(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing models.Certificate
	if err := db.Where("user_id = ? AND course_id = ?", userId, crs.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", fiber.Map{
			"certificate": existing,
		})
	}

	sessions, completed, badges := certificateCounts(userId, crs.ID)
	eligibility := progression.CheckEligibility(sessions, completed, badges)
	if !eligibility.Eligible {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, eligibility.Message, eligibility)
	}

	now := time.Now()
	certificate := models.Certificate{
		UserID:        userId,
		CourseID:      crs.ID,
		CertificateID: progression.CertificateID(crs.ID, now),
		IssueDate:     now,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&certificate).Error; err != nil {
		log.Printf("Error issuing certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	// Re-read so a concurrent issue returns the winning row
	var issued models.Certificate
	if err := db.Where("user_id = ? AND course_id = ?", userId, crs.ID).First(&issued).Error; err != nil {
		log.Printf("Error reading issued certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	if user, ok := c.Locals("user").(*models.User); ok {
		utils.SendCertificateEmail(user.Email, user.Username, crs.Title, issued.CertificateID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", fiber.Map{
		"certificate": issued,
	})
}

// SubmitTestScore stores a pre- or post-test score, one per course and type
func SubmitTestScore(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTestScore").(*struct {
		CourseID uint   `json:"courseId"`
		Type     string `json:"type"`
		Score    int    `json:"score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	score := models.TestScore{
		UserID:   userId,
		CourseID: reqData.CourseID,
		Type:     reqData.Type,
		Score:    reqData.Score,
		TakenOn:  time.Now(),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "taken_on"}),
	}).Create(&score).Error; err != nil {
		log.Printf("Error saving test score: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save test score!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test score saved successfully!", fiber.Map{
		"courseId": score.CourseID,
		"type":     score.Type,
		"score":    score.Score,
	})
}
