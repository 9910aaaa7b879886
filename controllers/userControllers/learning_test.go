package userController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"saathi/config"
	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	courseModels "saathi/models/course"
	adminRoutes "saathi/routers/adminRoutes"
	userRoutes "saathi/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-signing-key", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	userRoutes.SetupUserRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	return app
}

func newLearner(t *testing.T, role models.Role) (models.User, string) {
	t.Helper()
	user := models.User{
		Username: fmt.Sprintf("learner-%s-%d", role, time.Now().UnixNano()),
		Email:    fmt.Sprintf("%s-%d@example.org", role, time.Now().UnixNano()),
		Password: "x",
		Role:     role,
		Language: "hindi",
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, role)
	require.NoError(t, err)
	return user, token
}

func newAdmin(t *testing.T) (models.Admin, string) {
	t.Helper()
	admin := models.Admin{Username: fmt.Sprintf("admin-%d", time.Now().UnixNano()), Password: "x"}
	require.NoError(t, database.Database.Db.Create(&admin).Error)
	token, err := middleware.GenerateJWT(admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	return admin, token
}

// newCourse seeds a course with sessionCount sessions, each carrying one
// approved video resource of videoDuration seconds.
func newCourse(t *testing.T, sessionCount, videoDuration int) (courseModels.Course, []courseModels.Session) {
	t.Helper()
	db := database.Database.Db

	crs := courseModels.Course{Title: "Water Literacy", Description: "community course"}
	require.NoError(t, db.Create(&crs).Error)

	sessions := make([]courseModels.Session, 0, sessionCount)
	for i := 1; i <= sessionCount; i++ {
		session := courseModels.Session{
			CourseID:    crs.ID,
			Title:       fmt.Sprintf("Session %d", i),
			Order:       i,
			Description: "session content",
		}
		require.NoError(t, db.Create(&session).Error)

		resource := courseModels.Resource{
			SessionID:       session.ID,
			Language:        "hindi",
			Type:            courseModels.ResourceVideo,
			Title:           fmt.Sprintf("Video %d", i),
			URL:             fmt.Sprintf("/uploads/resources/video-%d-%d.mp4", crs.ID, i),
			DurationSeconds: videoDuration,
			UploadedAt:      time.Now(),
			UploadedBy:      1,
			Approved:        true,
		}
		require.NoError(t, db.Create(&resource).Error)
		sessions = append(sessions, session)
	}
	return crs, sessions
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := make(map[string]interface{})
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func completeBody(duration int) string {
	return fmt.Sprintf(`{"videoId":"v1","videoWatched":true,"watchDuration":%d}`, duration)
}

func TestCourseConsumptionClosedToPlainUsers(t *testing.T) {
	app := setupApp(t)
	_, token := newLearner(t, models.RoleUser)
	_, sessions := newCourse(t, 1, 100)

	resp, _ := doJSON(t, app, http.MethodGet, "/user/courses", token, "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/user/sessions/%d/complete", sessions[0].ID), token, completeBody(100))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var badges int64
	database.Database.Db.Model(&models.Badge{}).Count(&badges)
	require.Zero(t, badges)
}

func TestCompleteSessionRequiresWatchedFlag(t *testing.T) {
	app := setupApp(t)
	_, token := newLearner(t, models.RoleChampion)
	_, sessions := newCourse(t, 1, 100)

	resp, payload := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/user/sessions/%d/complete", sessions[0].ID), token,
		`{"videoId":"v1","videoWatched":false,"watchDuration":100}`)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	require.Equal(t, "VIDEO_NOT_WATCHED", data["code"])
}

func TestCompleteSessionEnforcesEightyPercent(t *testing.T) {
	app := setupApp(t)
	_, token := newLearner(t, models.RoleChampion)
	_, sessions := newCourse(t, 1, 100)
	path := fmt.Sprintf("/user/sessions/%d/complete", sessions[0].ID)

	// 79 of 100 seconds fails
	resp, payload := doJSON(t, app, http.MethodPost, path, token, completeBody(79))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	require.Equal(t, "INSUFFICIENT_WATCH_DURATION", data["code"])
	require.Equal(t, float64(79), data["watched_percentage"])

	// 80 of 100 seconds passes
	resp, _ = doJSON(t, app, http.MethodPost, path, token, completeBody(80))
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCompleteSessionAwardsBadgeOnce(t *testing.T) {
	app := setupApp(t)
	user, token := newLearner(t, models.RoleChampion)
	_, sessions := newCourse(t, 1, 100)
	path := fmt.Sprintf("/user/sessions/%d/complete", sessions[0].ID)

	resp, _ := doJSON(t, app, http.MethodPost, path, token, completeBody(100))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A second completion must not mint a second badge
	resp, _ = doJSON(t, app, http.MethodPost, path, token, completeBody(100))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var badgeCount int64
	database.Database.Db.Model(&models.Badge{}).
		Where("user_id = ? AND session_id = ?", user.ID, sessions[0].ID).
		Count(&badgeCount)
	require.Equal(t, int64(1), badgeCount)

	var badge models.Badge
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND session_id = ?", user.ID, sessions[0].ID).
		First(&badge).Error)
	require.Equal(t, "Session 1 Completion Badge", badge.Name)
}

func TestCertificateRequiresNineCompletedSessions(t *testing.T) {
	app := setupApp(t)
	_, token := newLearner(t, models.RoleChampion)
	crs, sessions := newCourse(t, 9, 100)

	// Complete only 8 of 9
	for _, s := range sessions[:8] {
		resp, _ := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/user/sessions/%d/complete", s.ID), token, completeBody(100))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, payload := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/user/courses/%d/certificate", crs.ID), token, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	require.Equal(t, "SESSIONS_INCOMPLETE", data["code"])
}

func TestCertificateRejectsWrongSessionCount(t *testing.T) {
	app := setupApp(t)
	_, token := newLearner(t, models.RoleChampion)
	crs, sessions := newCourse(t, 8, 100)

	for _, s := range sessions {
		resp, _ := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/user/sessions/%d/complete", s.ID), token, completeBody(100))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, payload := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/user/courses/%d/certificate", crs.ID), token, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	require.Equal(t, "COURSE_SESSION_COUNT_MISMATCH", data["code"])
}

func TestCertificateIssuedOnceWithStableID(t *testing.T) {
	app := setupApp(t)
	_, token := newLearner(t, models.RoleChampion)
	crs, sessions := newCourse(t, 9, 100)

	for _, s := range sessions {
		resp, _ := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/user/sessions/%d/complete", s.ID), token, completeBody(100))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	certPath := fmt.Sprintf("/user/courses/%d/certificate", crs.ID)

	resp, payload := doJSON(t, app, http.MethodPost, certPath, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cert := payload["data"].(map[string]interface{})["certificate"].(map[string]interface{})
	certID := cert["certificate_id"].(string)
	require.Regexp(t, regexp.MustCompile(`^CERT-[0-9A-F]{6}-\d+$`), certID)

	// Repeat call returns the stored certificate, same id
	resp, payload = doJSON(t, app, http.MethodPost, certPath, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	repeat := payload["data"].(map[string]interface{})["certificate"].(map[string]interface{})
	require.Equal(t, certID, repeat["certificate_id"])

	var certCount int64
	database.Database.Db.Model(&models.Certificate{}).Where("course_id = ?", crs.ID).Count(&certCount)
	require.Equal(t, int64(1), certCount)
}

func TestCertificateStatusReportsEligibility(t *testing.T) {
	app := setupApp(t)
	_, token := newLearner(t, models.RoleChampion)
	crs, sessions := newCourse(t, 9, 100)

	resp, payload := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/user/courses/%d/certificate/status", crs.ID), token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	require.Equal(t, false, data["issued"])
	eligibility := data["eligibility"].(map[string]interface{})
	require.Equal(t, false, eligibility["eligible"])

	for _, s := range sessions {
		doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/user/sessions/%d/complete", s.ID), token, completeBody(100))
	}

	resp, payload = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/user/courses/%d/certificate/status", crs.ID), token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	eligibility = payload["data"].(map[string]interface{})["eligibility"].(map[string]interface{})
	require.Equal(t, true, eligibility["eligible"])
}

func TestSessionWithoutVideoCannotBeCompleted(t *testing.T) {
	app := setupApp(t)
	_, token := newLearner(t, models.RoleChampion)

	db := database.Database.Db
	crs := courseModels.Course{Title: "No Video Course"}
	require.NoError(t, db.Create(&crs).Error)
	session := courseModels.Session{CourseID: crs.ID, Title: "Reading Only", Order: 1, Description: "pdf only"}
	require.NoError(t, db.Create(&session).Error)

	resp, payload := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/user/sessions/%d/complete", session.ID), token, completeBody(100))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	require.Equal(t, "NO_VIDEO_RESOURCE", data["code"])
}

func TestSubmitTestScoreUpsertsPerType(t *testing.T) {
	app := setupApp(t)
	user, token := newLearner(t, models.RoleChampion)
	crs, _ := newCourse(t, 1, 100)

	body := fmt.Sprintf(`{"courseId":%d,"type":"pre","score":40}`, crs.ID)
	resp, _ := doJSON(t, app, http.MethodPost, "/user/test-scores", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body = fmt.Sprintf(`{"courseId":%d,"type":"pre","score":70}`, crs.ID)
	resp, _ = doJSON(t, app, http.MethodPost, "/user/test-scores", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var scores []models.TestScore
	database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).Find(&scores)
	require.Len(t, scores, 1)
	require.Equal(t, 70, scores[0].Score)
}
