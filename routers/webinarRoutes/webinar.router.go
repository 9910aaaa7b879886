package webinarRoutes

import (
	webinarControllers "saathi/controllers/webinar"
	"saathi/middleware"
	"saathi/models"
	webinarValidators "saathi/validators/webinar"

	"github.com/gofiber/fiber/v2"
)

func SetupWebinarRoutes(app *fiber.App) {
	webinarGroup := app.Group("/webinars")

	webinarGroup.Post("/",
		webinarValidators.ScheduleWebinar(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleChampion, models.RoleMentor),
		webinarControllers.ScheduleWebinar)
	webinarGroup.Get("/", middleware.JWTMiddleware, webinarControllers.GetWebinars)
	webinarGroup.Post("/:id/join", middleware.JWTMiddleware, webinarControllers.JoinWebinar)
	webinarGroup.Delete("/:id", middleware.JWTMiddleware, webinarControllers.CancelWebinar)
}
