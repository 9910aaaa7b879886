package main

import (
	"log"

	"saathi/config"
	"saathi/database"
	adminRoutes "saathi/routers/adminRoutes"
	authRoutes "saathi/routers/authRoutes"
	chatRoutes "saathi/routers/chatRoutes"
	courseRoutes "saathi/routers/courseRoutes"
	grievanceRoutes "saathi/routers/grievanceRoutes"
	userRoutes "saathi/routers/userRoutes"
	webinarRoutes "saathi/routers/webinarRoutes"
	"saathi/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // large video uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.ClientURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded resource files
	app.Static("/uploads/resources", "./"+utils.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	grievanceRoutes.SetupGrievanceRoutes(app)
	webinarRoutes.SetupWebinarRoutes(app)
	chatRoutes.SetupChatRoutes(app)

	utils.StartWebinarScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
