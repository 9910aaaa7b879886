package courseRoutes

import (
	courseControllers "saathi/controllers/course"
	"saathi/middleware"
	"saathi/models"
	courseValidators "saathi/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the staff-facing catalog and moderation routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	staffRoles := append(models.TeacherRoles(), models.RoleAdmin)

	courseGroup.Get("/",
		middleware.JWTMiddleware,
		middleware.RequireRoles(staffRoles...),
		courseControllers.GetAllCourses)
	courseGroup.Get("/:id",
		middleware.JWTMiddleware,
		middleware.RequireRoles(staffRoles...),
		courseControllers.GetCourseById)
	courseGroup.Get("/:id/sessions",
		middleware.JWTMiddleware,
		middleware.RequireRoles(staffRoles...),
		courseControllers.GetSessionsByCourseId)

	sessionGroup := app.Group("/sessions")

	sessionGroup.Post("/:id/resources",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleTrainer, models.RoleAdmin),
		courseControllers.AddResource)
	sessionGroup.Get("/:id/stats",
		middleware.JWTMiddleware,
		middleware.RequireRoles(staffRoles...),
		courseControllers.GetSessionStats)

	resourceGroup := app.Group("/resources")

	resourceGroup.Get("/pending",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleMentor, models.RoleAdmin),
		courseControllers.GetPendingResources)
	resourceGroup.Post("/:id/review",
		courseValidators.ReviewResource(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleMentor, models.RoleAdmin),
		courseControllers.ReviewResource)
	resourceGroup.Delete("/:id",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleTrainer, models.RoleAdmin),
		courseControllers.RemoveResource)

	// Tests are readable by any authenticated user
	testGroup := app.Group("/tests")
	testGroup.Get("/course/:id", middleware.JWTMiddleware, courseControllers.GetTest)
	testGroup.Post("/grade",
		courseValidators.GradeTest(),
		middleware.JWTMiddleware,
		courseControllers.GradeTest)
}
