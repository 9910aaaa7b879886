package grievanceRoutes

import (
	grievanceControllers "saathi/controllers/grievance"
	"saathi/middleware"
	"saathi/models"
	grievanceValidators "saathi/validators/grievance"

	"github.com/gofiber/fiber/v2"
)

func SetupGrievanceRoutes(app *fiber.App) {
	grievanceGroup := app.Group("/grievances")

	grievanceGroup.Post("/",
		grievanceValidators.FileGrievance(),
		middleware.JWTMiddleware,
		grievanceControllers.FileGrievance)
	grievanceGroup.Get("/mine", middleware.JWTMiddleware, grievanceControllers.GetMyGrievances)

	grievanceGroup.Get("/",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		grievanceControllers.AdminGetGrievances)
	grievanceGroup.Patch("/:id",
		grievanceValidators.UpdateGrievance(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		grievanceControllers.AdminUpdateGrievance)
}
