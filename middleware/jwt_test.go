package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"saathi/config"
	"saathi/database"
	"saathi/middleware"
	"saathi/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-signing-key", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/whoami", middleware.JWTMiddleware, func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	app.Get("/admin/promotion-requests", middleware.JWTMiddleware, func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})
	return app
}

func seedUser(t *testing.T, role models.Role) (models.User, string) {
	t.Helper()
	user := models.User{
		Username: "test-" + string(role),
		Email:    string(role) + "@example.org",
		Password: "x",
		Role:     role,
		Language: "hindi",
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, role)
	require.NoError(t, err)
	return user, token
}

func seedAdmin(t *testing.T) (models.Admin, string) {
	t.Helper()
	admin := models.Admin{Username: "root", Password: "x"}
	require.NoError(t, database.Database.Db.Create(&admin).Error)
	token, err := middleware.GenerateJWT(admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	return admin, token
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	app := setupAuthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareAcceptsCookie(t *testing.T) {
	app := setupAuthTest(t)
	_, token := seedUser(t, models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareAcceptsBearerHeader(t *testing.T) {
	app := setupAuthTest(t)
	_, token := seedUser(t, models.RoleChampion)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareHeaderWinsOverCookie(t *testing.T) {
	app := setupAuthTest(t)
	_, token := seedUser(t, models.RoleUser)

	// Valid cookie, garbage header: the header takes precedence and the
	// request must fail
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage cookie, valid header: succeeds
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "not-a-token"})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsDeletedUser(t *testing.T) {
	app := setupAuthTest(t)
	user, token := seedUser(t, models.RoleUser)

	require.NoError(t, database.Database.Db.Model(&user).Update("is_deleted", true).Error)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminPathGate(t *testing.T) {
	app := setupAuthTest(t)
	_, userToken := seedUser(t, models.RoleSaathi)
	_, adminToken := seedAdmin(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/promotion-requests", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin/promotion-requests", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	app := setupAuthTest(t)
	app.Get("/champion-only",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion),
		func(c *fiber.Ctx) error {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", nil)
		})

	_, championToken := seedUser(t, models.RoleChampion)
	_, userToken := seedUser(t, models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/champion-only", nil)
	req.Header.Set("Authorization", "Bearer "+championToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/champion-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
