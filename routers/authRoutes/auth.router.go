package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "lms/controllers/auth"
	authValidators "lms/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/refresh", authValidators.Refresh(), authControllers.RefreshToken)
}
