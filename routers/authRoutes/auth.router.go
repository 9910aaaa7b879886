package authRoutes

import (
	authControllers "saathi/controllers/auth"
	"saathi/middleware"
	"saathi/models"
	authValidators "saathi/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/logout", authControllers.Logout)
	authGroup.Post("/register/teacher",
		authValidators.RegisterTeacher(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		authControllers.RegisterTeacher)
}
