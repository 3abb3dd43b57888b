package companyValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

var validate = validator.New()

// CreateCompany validates the company creation body
func CreateCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string `json:"name" validate:"required,min=2"`
			SupportEmail string `json:"support_email" validate:"omitempty,email"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					errors[strings.ToLower(fe.Field())] = "Failed '" + fe.Tag() + "' validation!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// CompanyList validates and defaults the pagination query for company listing
func CompanyList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page              int  `query:"page"`
			Limit             int  `query:"limit"`
			PopulateOwner     bool `query:"populate_owner"`
			PopulateEmployees bool `query:"populate_employees"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page < 0 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit < 0 || reqData.Limit > 100 {
			errors["limit"] = "Limit must be between 1 and 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Page == 0 {
			reqData.Page = 1
		}
		if reqData.Limit == 0 {
			reqData.Limit = 10
		}

		c.Locals("validatedCompanyList", reqData)
		return c.Next()
	}
}
