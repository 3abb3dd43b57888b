package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	userControllers "lms/controllers/user"
	"lms/middleware"
	userValidators "lms/validators/user"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/me", middleware.JWTMiddleware, userControllers.GetSelf)
	userGroup.Get("/list", middleware.JWTMiddleware, userValidators.UserList(), userControllers.ListUsers)
	userGroup.Get("/:id", middleware.JWTMiddleware, userControllers.GetByID)
	userGroup.Patch("/", middleware.JWTMiddleware, userControllers.UpdateSelf)
	userGroup.Patch("/password", middleware.JWTMiddleware, userControllers.ChangePassword)
	userGroup.Post("/company/attach", middleware.JWTMiddleware, userControllers.AttachCompany)
	userGroup.Delete("/:id", middleware.JWTMiddleware, userControllers.DeleteUser)
	userGroup.Patch("/:id/restore", middleware.JWTMiddleware, userControllers.RestoreUser)
}
