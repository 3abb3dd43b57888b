package roleRoutes

import (
	"github.com/gofiber/fiber/v2"

	roleControllers "lms/controllers/role"
	"lms/middleware"
)

func SetupRoleRoutes(app *fiber.App) {
	roleGroup := app.Group("/role")

	roleGroup.Post("/", middleware.JWTMiddleware, roleControllers.CreateRole)
	roleGroup.Get("/list", middleware.JWTMiddleware, roleControllers.ListRoles)
	roleGroup.Get("/:id", middleware.JWTMiddleware, roleControllers.GetRole)
	roleGroup.Delete("/:id", middleware.JWTMiddleware, roleControllers.DeleteRole)
}
