package companyRoutes

import (
	"github.com/gofiber/fiber/v2"

	companyControllers "lms/controllers/company"
	"lms/middleware"
	companyValidators "lms/validators/company"
)

func SetupCompanyRoutes(app *fiber.App) {
	companyGroup := app.Group("/company")

	companyGroup.Post("/", middleware.JWTMiddleware, companyValidators.CreateCompany(), companyControllers.CreateCompany)
	companyGroup.Get("/list", middleware.JWTMiddleware, companyValidators.CompanyList(), companyControllers.ListCompanies)
	companyGroup.Get("/:id", middleware.JWTMiddleware, companyControllers.GetCompany)
	companyGroup.Patch("/:id", middleware.JWTMiddleware, companyControllers.UpdateCompany)
	companyGroup.Post("/:id/employee", middleware.JWTMiddleware, companyControllers.AddEmployee)
	companyGroup.Patch("/:id/employee/:userId/roles", middleware.JWTMiddleware, companyControllers.UpdateEmployeeRoles)
	companyGroup.Post("/:id/role", middleware.JWTMiddleware, companyControllers.AddAvailableRole)
	companyGroup.Delete("/:id", middleware.JWTMiddleware, companyControllers.DeleteCompany)
}
