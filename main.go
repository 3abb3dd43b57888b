package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lms/config"
	"lms/database"
	"lms/middleware"
	authRoutes "lms/routers/authRoutes"
	companyRoutes "lms/routers/companyRoutes"
	courseRoutes "lms/routers/courseRoutes"
	roleRoutes "lms/routers/roleRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"
)

// SetupApp assembles the fiber application with all routes and middleware
func SetupApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",    // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization",   // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	companyRoutes.SetupCompanyRoutes(app)
	roleRoutes.SetupRoleRoutes(app)
	courseRoutes.SetupCourseRoutes(app)

	return app
}

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := SetupApp()

	utils.StartCertificateScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
