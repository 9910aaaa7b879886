package grievanceController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"saathi/config"
	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	grievanceRoutes "saathi/routers/grievanceRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGrievanceApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-signing-key", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	grievanceRoutes.SetupGrievanceRoutes(app)
	return app
}

func grievanceRequest(t *testing.T, app *fiber.App, method, path, token, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
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

func TestGrievanceLifecycle(t *testing.T) {
	app := setupGrievanceApp(t)
	db := database.Database.Db

	user := models.User{Username: "meena", Email: "meena@example.org", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	userToken, err := middleware.GenerateJWT(user.ID, models.RoleUser)
	require.NoError(t, err)

	admin := models.Admin{Username: "root", Password: "x"}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := middleware.GenerateJWT(admin.ID, models.RoleAdmin)
	require.NoError(t, err)

	// File
	resp, payload := grievanceRequest(t, app, http.MethodPost, "/grievances/", userToken,
		`{"subject":"Broken video","message":"Session 3 video does not load on my phone"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := payload["data"].(map[string]interface{})
	require.Equal(t, "open", created["status"])
	grievanceID := uint(created["ID"].(float64))

	// Users cannot hit the admin listing
	resp, _ = grievanceRequest(t, app, http.MethodGet, "/grievances/", userToken, "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin resolves with a response
	resp, _ = grievanceRequest(t, app, http.MethodPatch,
		fmt.Sprintf("/grievances/%d", grievanceID), adminToken,
		`{"status":"resolved","response":"Re-encoded the video, please retry."}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Grievance
	require.NoError(t, db.First(&stored, grievanceID).Error)
	require.Equal(t, models.GrievanceResolved, stored.Status)
	require.NotEmpty(t, stored.Response)

	// Filer sees the outcome
	resp, payload = grievanceRequest(t, app, http.MethodGet, "/grievances/mine", userToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	require.Equal(t, float64(1), data["count"])
}

func TestGrievanceRejectsBadStatus(t *testing.T) {
	app := setupGrievanceApp(t)
	db := database.Database.Db

	admin := models.Admin{Username: "root", Password: "x"}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := middleware.GenerateJWT(admin.ID, models.RoleAdmin)
	require.NoError(t, err)

	resp, _ := grievanceRequest(t, app, http.MethodPatch, "/grievances/1", adminToken,
		`{"status":"closed","response":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
