package userRoutes

import (
	userControllers "saathi/controllers/userControllers"
	"saathi/middleware"
	"saathi/models"
	userValidators "saathi/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Patch("/profile", userValidators.UpdateProfile(), middleware.JWTMiddleware, userControllers.UpdateProfile)
	userGroup.Post("/profile/picture", middleware.JWTMiddleware, userControllers.UploadProfilePicture)

	userGroup.Get("/dashboard", middleware.JWTMiddleware, userControllers.Dashboard)
	userGroup.Get("/badges",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion, models.RoleSaathi),
		userControllers.GetBadges)
	userGroup.Get("/certificates", middleware.JWTMiddleware, userControllers.GetCertificates)

	// Course consumption is for champions and saathis only
	userGroup.Get("/courses",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion, models.RoleSaathi),
		userControllers.GetCourses)
	userGroup.Get("/courses/:id",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion, models.RoleSaathi),
		userControllers.GetCourseById)
	userGroup.Get("/sessions/:id",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion, models.RoleSaathi),
		userControllers.GetSessionById)
	userGroup.Post("/sessions/:id/complete",
		userValidators.CompleteSession(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion, models.RoleSaathi),
		userControllers.CompleteSession)

	userGroup.Get("/courses/:id/certificate/status",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion, models.RoleSaathi),
		userControllers.CertificateStatus)
	userGroup.Post("/courses/:id/certificate",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion, models.RoleSaathi),
		userControllers.GetCertificate)

	userGroup.Post("/test-scores",
		userValidators.TestScore(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion, models.RoleSaathi),
		userControllers.SubmitTestScore)

	// Champion to saathi promotion
	userGroup.Post("/promotion-request",
		userValidators.PromotionRequest(),
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleChampion),
		userControllers.RequestSaathiPromotion)
	userGroup.Get("/promotion-request", middleware.JWTMiddleware, userControllers.GetMyPromotionRequest)
}
