package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"saathi/config"
	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	courseModels "saathi/models/course"
	courseRoutes "saathi/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupModerationTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-signing-key", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func newTeacher(t *testing.T, role models.Role, language string) (models.Teacher, string) {
	t.Helper()
	teacher := models.Teacher{
		Username: fmt.Sprintf("%s-%s-%d", role, language, time.Now().UnixNano()),
		Email:    fmt.Sprintf("%s-%s-%d@example.org", role, language, time.Now().UnixNano()),
		Password: "x",
		Role:     role,
		Language: language,
	}
	require.NoError(t, database.Database.Db.Create(&teacher).Error)
	token, err := middleware.GenerateJWT(teacher.ID, role)
	require.NoError(t, err)
	return teacher, token
}

// seedStaffedCourse creates a course staffed for hindi and tamil with one
// session and one pending hindi video resource uploaded by the hindi trainer.
func seedStaffedCourse(t *testing.T) (hindiTrainer, hindiMentor, tamilMentor models.Teacher, tokens map[string]string, resource courseModels.Resource) {
	t.Helper()
	db := database.Database.Db
	tokens = make(map[string]string)

	var trainerToken, hMentorToken, tMentorToken string
	hindiTrainer, trainerToken = newTeacher(t, models.RoleTrainer, "hindi")
	hindiMentor, hMentorToken = newTeacher(t, models.RoleMentor, "hindi")
	tamilMentor, tMentorToken = newTeacher(t, models.RoleMentor, "tamil")
	tamilTrainer, _ := newTeacher(t, models.RoleTrainer, "tamil")

	tokens["hindiTrainer"] = trainerToken
	tokens["hindiMentor"] = hMentorToken
	tokens["tamilMentor"] = tMentorToken

	crs := courseModels.Course{Title: "Sanitation Basics"}
	require.NoError(t, db.Create(&crs).Error)
	require.NoError(t, db.Create(&courseModels.LanguageStaff{
		CourseID: crs.ID, Language: "hindi", TrainerID: hindiTrainer.ID, MentorID: hindiMentor.ID,
	}).Error)
	require.NoError(t, db.Create(&courseModels.LanguageStaff{
		CourseID: crs.ID, Language: "tamil", TrainerID: tamilTrainer.ID, MentorID: tamilMentor.ID,
	}).Error)

	session := courseModels.Session{CourseID: crs.ID, Title: "Handwashing", Order: 1, Description: "intro"}
	require.NoError(t, db.Create(&session).Error)

	resource = courseModels.Resource{
		SessionID:       session.ID,
		Language:        "hindi",
		Type:            courseModels.ResourceVideo,
		Title:           "Handwashing Demo",
		URL:             "/uploads/resources/demo.mp4",
		DurationSeconds: 120,
		UploadedAt:      time.Now(),
		UploadedBy:      hindiTrainer.ID,
	}
	require.NoError(t, db.Create(&resource).Error)
	return
}

func review(t *testing.T, app *fiber.App, resourceID uint, token, action string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/resources/%d/review", resourceID),
		strings.NewReader(fmt.Sprintf(`{"action":%q}`, action)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := make(map[string]interface{})
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func TestMentorApprovesOwnLanguageResource(t *testing.T) {
	app := setupModerationTest(t)
	_, mentor, _, tokens, resource := seedStaffedCourse(t)

	resp, _ := review(t, app, resource.ID, tokens["hindiMentor"], "approve")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var approved courseModels.Resource
	require.NoError(t, database.Database.Db.First(&approved, resource.ID).Error)
	require.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedBy)
	require.Equal(t, mentor.ID, *approved.ApprovedBy)
}

func TestMentorOfOtherLanguageCannotReview(t *testing.T) {
	app := setupModerationTest(t)
	_, _, _, tokens, resource := seedStaffedCourse(t)

	resp, _ := review(t, app, resource.ID, tokens["tamilMentor"], "approve")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var untouched courseModels.Resource
	require.NoError(t, database.Database.Db.First(&untouched, resource.ID).Error)
	require.False(t, untouched.Approved)
}

func TestTrainerCannotReview(t *testing.T) {
	app := setupModerationTest(t)
	_, _, _, tokens, resource := seedStaffedCourse(t)

	resp, _ := review(t, app, resource.ID, tokens["hindiTrainer"], "approve")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRejectDeletesResource(t *testing.T) {
	app := setupModerationTest(t)
	_, _, _, tokens, resource := seedStaffedCourse(t)

	resp, _ := review(t, app, resource.ID, tokens["hindiMentor"], "reject")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&courseModels.Resource{}).Where("id = ?", resource.ID).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestApprovedResourceCannotBeReviewedAgain(t *testing.T) {
	app := setupModerationTest(t)
	_, _, _, tokens, resource := seedStaffedCourse(t)

	resp, _ := review(t, app, resource.ID, tokens["hindiMentor"], "approve")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = review(t, app, resource.ID, tokens["hindiMentor"], "reject")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploaderRemovesOwnResource(t *testing.T) {
	app := setupModerationTest(t)
	_, _, _, tokens, resource := seedStaffedCourse(t)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/resources/%d", resource.ID), nil)
	req.Header.Set("Authorization", "Bearer "+tokens["hindiTrainer"])
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&courseModels.Resource{}).Where("id = ?", resource.ID).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestPendingQueueIsLanguageScoped(t *testing.T) {
	app := setupModerationTest(t)
	_, _, _, tokens, _ := seedStaffedCourse(t)

	req := httptest.NewRequest(http.MethodGet, "/resources/pending", nil)
	req.Header.Set("Authorization", "Bearer "+tokens["tamilMentor"])
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := make(map[string]interface{})
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &payload))
	data := payload["data"].(map[string]interface{})
	require.Equal(t, float64(0), data["count"])

	req = httptest.NewRequest(http.MethodGet, "/resources/pending", nil)
	req.Header.Set("Authorization", "Bearer "+tokens["hindiMentor"])
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	payload = make(map[string]interface{})
	raw, _ = io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &payload))
	data = payload["data"].(map[string]interface{})
	require.Equal(t, float64(1), data["count"])
}
