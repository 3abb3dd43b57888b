package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"
)

// SetupCourseRoutes sets up course, module, resource, group and enrollment routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Post("/", middleware.JWTMiddleware, courseValidators.CreateCourse(), courseControllers.CreateCourse)
	courseGroup.Get("/list", middleware.JWTMiddleware, courseControllers.ListCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetCourse)
	courseGroup.Patch("/:id", middleware.JWTMiddleware, courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, courseControllers.DeleteCourse)

	// Modules
	courseGroup.Post("/:id/module", middleware.JWTMiddleware, courseControllers.CreateModule)
	courseGroup.Get("/module/:moduleId", middleware.JWTMiddleware, courseControllers.GetModule)
	courseGroup.Post("/module/:moduleId/resource", middleware.JWTMiddleware, courseControllers.AttachResource)

	// Resources (polymorphic)
	resourceGroup := app.Group("/resource")
	resourceGroup.Post("/", middleware.JWTMiddleware, courseValidators.CreateResource(), courseControllers.CreateResource)
	resourceGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetResource)
	resourceGroup.Delete("/:id", middleware.JWTMiddleware, courseControllers.DeleteResource)
	resourceGroup.Patch("/:id/restore", middleware.JWTMiddleware, courseControllers.RestoreResource)
	courseGroup.Get("/:id/resources", middleware.JWTMiddleware, courseControllers.ListResources)

	// Questions
	questionGroup := app.Group("/question")
	questionGroup.Post("/", middleware.JWTMiddleware, courseControllers.CreateQuestion)
	questionGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetQuestion)
	questionGroup.Delete("/:id", middleware.JWTMiddleware, courseControllers.DeleteQuestion)

	// Groups
	groupGroup := app.Group("/group")
	groupGroup.Post("/", middleware.JWTMiddleware, courseControllers.CreateGroup)
	groupGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetGroup)
	groupGroup.Delete("/:id", middleware.JWTMiddleware, courseControllers.DeleteGroup)
	courseGroup.Get("/:id/groups", middleware.JWTMiddleware, courseControllers.ListGroups)

	// Enrollments
	enrollmentGroup := app.Group("/enrollment")
	enrollmentGroup.Post("/", middleware.JWTMiddleware, courseControllers.Enroll)
	enrollmentGroup.Get("/list", middleware.JWTMiddleware, courseControllers.GetEnrollments)
	enrollmentGroup.Patch("/:id/progress", middleware.JWTMiddleware, courseValidators.UpdateProgress(), courseControllers.UpdateProgress)
	enrollmentGroup.Post("/:id/complete", middleware.JWTMiddleware, courseControllers.CompleteResource)
}
