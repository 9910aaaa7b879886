package authController_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"saathi/config"
	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	authRoutes "saathi/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-signing-key", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := make(map[string]interface{})
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func TestRegisterCreatesLearnerWithUserRole(t *testing.T) {
	app := setupAuthApp(t)

	resp, payload := postJSON(t, app, "/auth/register",
		`{"username":"meena","email":"meena@example.org","password":"secret123","language":"hindi"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := payload["data"].(map[string]interface{})
	require.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	require.Equal(t, "user", user["role"])

	// jwt cookie is set on registration
	var found bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" && cookie.Value != "" {
			found = true
		}
	}
	require.True(t, found)

	var stored models.User
	require.NoError(t, database.Database.Db.Where("username = ?", "meena").First(&stored).Error)
	require.Equal(t, models.RoleUser, stored.Role)
	require.NotEqual(t, "secret123", stored.Password)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	app := setupAuthApp(t)

	body := `{"username":"meena","email":"meena@example.org","password":"secret123","language":"hindi"}`
	resp, _ := postJSON(t, app, "/auth/register", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = postJSON(t, app, "/auth/register", body)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := setupAuthApp(t)

	resp, payload := postJSON(t, app, "/auth/register",
		`{"username":"ab","email":"not-an-email","password":"123","language":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errs := payload["data"].(map[string]interface{})
	require.Contains(t, errs, "username")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")
	require.Contains(t, errs, "language")
}

func TestLoginResolvesTableByRole(t *testing.T) {
	app := setupAuthApp(t)
	db := database.Database.Db

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), 4)
	require.NoError(t, err)

	// Same username in the users and teachers tables
	require.NoError(t, db.Create(&models.User{
		Username: "ravi", Email: "ravi-user@example.org", Password: string(hashed),
		Role: models.RoleChampion, Language: "hindi",
	}).Error)
	require.NoError(t, db.Create(&models.Teacher{
		Username: "ravi", Email: "ravi-teacher@example.org", Password: string(hashed),
		Role: models.RoleTrainer, Language: "hindi",
	}).Error)

	resp, payload := postJSON(t, app, "/auth/login",
		`{"username":"ravi","password":"secret123","role":"champion"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	require.Equal(t, "champion", data["role"])
	require.Equal(t, "user", data["authSource"])

	resp, payload = postJSON(t, app, "/auth/login",
		`{"username":"ravi","password":"secret123","role":"trainer"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = payload["data"].(map[string]interface{})
	require.Equal(t, "trainer", data["role"])
	require.Equal(t, "teacher", data["authSource"])
}

func TestLoginAcceptsEmailAsIdentifier(t *testing.T) {
	app := setupAuthApp(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), 4)
	require.NoError(t, database.Database.Db.Create(&models.User{
		Username: "asha", Email: "asha@example.org", Password: string(hashed),
		Role: models.RoleUser, Language: "tamil",
	}).Error)

	resp, _ := postJSON(t, app, "/auth/login",
		`{"username":"asha@example.org","password":"secret123","role":"user"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := setupAuthApp(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), 4)
	require.NoError(t, database.Database.Db.Create(&models.User{
		Username: "asha", Email: "asha@example.org", Password: string(hashed),
		Role: models.RoleUser, Language: "tamil",
	}).Error)

	resp, _ := postJSON(t, app, "/auth/login",
		`{"username":"asha","password":"wrong","role":"user"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterTeacherRequiresAdmin(t *testing.T) {
	app := setupAuthApp(t)
	db := database.Database.Db

	admin := models.Admin{Username: "root", Password: "x"}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := middleware.GenerateJWT(admin.ID, models.RoleAdmin)
	require.NoError(t, err)

	user := models.User{Username: "meena", Email: "meena@example.org", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	userToken, err := middleware.GenerateJWT(user.ID, models.RoleUser)
	require.NoError(t, err)

	body := `{"username":"guru","email":"guru@example.org","password":"secret123","role":"mentor","language":"hindi","bio":"field mentor"}`

	req := httptest.NewRequest(http.MethodPost, "/auth/register/teacher", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/auth/register/teacher", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var teacher models.Teacher
	require.NoError(t, db.Where("username = ?", "guru").First(&teacher).Error)
	require.Equal(t, models.RoleMentor, teacher.Role)
}

func TestRegisterTeacherRejectsLearnerRole(t *testing.T) {
	app := setupAuthApp(t)
	db := database.Database.Db

	admin := models.Admin{Username: "root", Password: "x"}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := middleware.GenerateJWT(admin.ID, models.RoleAdmin)
	require.NoError(t, err)

	body := `{"username":"guru","email":"guru@example.org","password":"secret123","role":"champion","language":"hindi","bio":""}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register/teacher", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
