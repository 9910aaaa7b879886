package adminRoutes

import (
	courseControllers "saathi/controllers/course"
	userControllers "saathi/controllers/userControllers"
	"saathi/middleware"
	"saathi/models"
	courseValidators "saathi/validators/course"
	userValidators "saathi/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")

	adminGroup.Get("/dashboard",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminDashboard)

	// Promotion review. The auth middleware additionally hard-gates these
	// paths to admins.
	adminGroup.Get("/promotion-requests", middleware.JWTMiddleware, userControllers.GetPromotionRequests)
	adminGroup.Post("/process-promotion",
		userValidators.ProcessPromotion(),
		middleware.JWTMiddleware,
		userControllers.ProcessPromotionRequest)

	// Course management
	adminGroup.Post("/courses",
		courseValidators.CreateCourse(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminCreateCourse)
	adminGroup.Patch("/courses/:id",
		courseValidators.UpdateCourse(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminUpdateCourse)
	adminGroup.Delete("/courses/:id",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminDeleteCourse)

	adminGroup.Post("/courses/:id/sessions",
		courseValidators.CreateSession(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminCreateSession)
	adminGroup.Patch("/sessions/:id",
		courseValidators.UpdateSession(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminUpdateSession)

	// Question bank and tests
	adminGroup.Post("/questions",
		courseValidators.CreateQuestion(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminCreateQuestion)
	adminGroup.Get("/questions",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminGetQuestions)
	adminGroup.Delete("/questions/:id",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminDeleteQuestion)
	adminGroup.Post("/tests",
		courseValidators.CreateTest(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		courseControllers.AdminCreateTest)
}
