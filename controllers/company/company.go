package companyController

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
)

// CreateCompany creates a company owned by the caller
func CreateCompany(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Name         string `json:"name"`
		SupportEmail string `json:"support_email"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	company := models.Company{
		Name:         reqData.Name,
		SupportEmail: reqData.SupportEmail,
		OwnerID:      userID,
	}

	db := database.Database.Db.WithContext(c.Context())
	if err := db.Create(&company).Error; err != nil {
		log.Printf("Error creating company: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Company created successfully.", company)
}

// GetCompany fetches a company, optionally with owner and employee users
func GetCompany(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid company id!", nil)
	}

	query := database.Database.Db.WithContext(c.Context())
	if c.QueryBool("populate") {
		query = query.Preload("Owner").Preload("Employees.User")
	}

	company, err := database.FindByID[models.Company](query, uint(id))
	if err != nil {
		return err
	}
	if company == nil {
		return middleware.ErrNotFound("Company not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company fetched successfully.", company)
}

// ListCompanies returns a page of companies
func ListCompanies(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCompanyList").(*struct {
		Page              int  `query:"page"`
		Limit             int  `query:"limit"`
		PopulateOwner     bool `query:"populate_owner"`
		PopulateEmployees bool `query:"populate_employees"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	opts := database.PageOptions{Page: reqData.Page, Limit: reqData.Limit}
	if reqData.PopulateOwner {
		opts.Populate = append(opts.Populate, "Owner")
	}
	if reqData.PopulateEmployees {
		opts.Populate = append(opts.Populate, "Employees.User")
	}

	result, err := database.Paginate[models.Company](database.Database.Db.WithContext(c.Context()), nil, opts)
	if err != nil {
		log.Printf("Error listing companies: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch companies!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Companies fetched successfully.", result)
}

// UpdateCompany patches name, support email or default role
func UpdateCompany(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid company id!", nil)
	}

	reqData := new(struct {
		Name          string `json:"name"`
		SupportEmail  string `json:"support_email"`
		DefaultRoleID *uint  `json:"default_role_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	patch := map[string]interface{}{}
	if reqData.Name != "" {
		patch["name"] = reqData.Name
	}
	if reqData.SupportEmail != "" {
		patch["support_email"] = reqData.SupportEmail
	}
	if reqData.DefaultRoleID != nil {
		role, err := database.FindByID[models.Role](db, *reqData.DefaultRoleID)
		if err != nil {
			return err
		}
		if role == nil {
			return middleware.ErrNotFound("Role not found!")
		}
		patch["default_role_id"] = *reqData.DefaultRoleID
	}
	if len(patch) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	company, err := database.UpdateByID[models.Company](db, uint(id), patch)
	if err != nil {
		return err
	}
	if company == nil {
		return middleware.ErrNotFound("Company not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company updated successfully.", company)
}

// AddEmployee adds a user to a company's employees. Adding the same
// (company, user) pair again replaces the role set without duplicating the
// membership.
func AddEmployee(c *fiber.Ctx) error {
	companyID, err := strconv.Atoi(c.Params("id"))
	if err != nil || companyID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid company id!", nil)
	}

	reqData := new(struct {
		UserID  uint   `json:"user_id"`
		RoleIDs []uint `json:"role_ids"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.UserID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	company, err := database.FindByID[models.Company](db, uint(companyID))
	if err != nil {
		return err
	}
	if company == nil {
		return middleware.ErrNotFound("Company not found!")
	}

	// Every referent must resolve to a live row at creation time
	user, err := database.FindByID[models.User](db, reqData.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return middleware.ErrNotFound("User not found!")
	}

	for _, roleID := range reqData.RoleIDs {
		role, err := database.FindByID[models.Role](db, roleID)
		if err != nil {
			return err
		}
		if role == nil {
			return middleware.ErrNotFound("Role not found!")
		}
	}

	roleIDs := reqData.RoleIDs
	if len(roleIDs) == 0 && company.DefaultRoleID != nil {
		roleIDs = []uint{*company.DefaultRoleID}
	}

	var existing models.Employee
	err = db.Where("company_id = ? AND user_id = ?", company.ID, user.ID).First(&existing).Error
	switch {
	case err == nil:
		if err := db.Model(&existing).Updates(map[string]interface{}{
			"role_ids":  datatypes.NewJSONSlice(roleIDs),
			"is_active": true,
		}).Error; err != nil {
			log.Printf("Error updating employee: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add employee!", nil)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		employee := models.Employee{
			CompanyID: company.ID,
			UserID:    user.ID,
			RoleIDs:   datatypes.NewJSONSlice(roleIDs),
			IsActive:  true,
		}
		if err := db.Create(&employee).Error; err != nil {
			log.Printf("Error creating employee: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add employee!", nil)
		}
	default:
		return err
	}

	updated, err := database.FindByID[models.Company](db.Preload("Employees.User"), company.ID)
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Employee added successfully.", updated)
}

// UpdateEmployeeRoles replaces the role set of an existing membership
func UpdateEmployeeRoles(c *fiber.Ctx) error {
	companyID, err := strconv.Atoi(c.Params("id"))
	if err != nil || companyID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid company id!", nil)
	}
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil || userID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := new(struct {
		RoleIDs []uint `json:"role_ids"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	company, err := database.FindByID[models.Company](db, uint(companyID))
	if err != nil {
		return err
	}
	if company == nil {
		return middleware.ErrNotFound("Company not found!")
	}

	var employee models.Employee
	if err := db.Where("company_id = ? AND user_id = ?", companyID, userID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrNotFound("Employee not found!")
		}
		return err
	}

	if err := db.Model(&employee).Update("role_ids", datatypes.NewJSONSlice(reqData.RoleIDs)).Error; err != nil {
		log.Printf("Error updating employee roles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update roles!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Employee roles updated successfully.", employee)
}

// AddAvailableRole appends a role to the company's available set
func AddAvailableRole(c *fiber.Ctx) error {
	companyID, err := strconv.Atoi(c.Params("id"))
	if err != nil || companyID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid company id!", nil)
	}

	reqData := new(struct {
		RoleID uint `json:"role_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.RoleID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	company, err := database.FindByID[models.Company](db, uint(companyID))
	if err != nil {
		return err
	}
	if company == nil {
		return middleware.ErrNotFound("Company not found!")
	}

	role, err := database.FindByID[models.Role](db, reqData.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return middleware.ErrNotFound("Role not found!")
	}

	for _, id := range company.AvailableRoleIDs {
		if id == role.ID {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Role already available.", company)
		}
	}

	company.AvailableRoleIDs = append(company.AvailableRoleIDs, role.ID)
	if err := db.Model(company).Update("available_role_ids", company.AvailableRoleIDs).Error; err != nil {
		log.Printf("Error adding available role: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role added successfully.", company)
}

// DeleteCompany soft-deletes a company. Employees, courses and user links
// keep their references; readers tolerate the dangling ids.
func DeleteCompany(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid company id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	company, err := database.FindByID[models.Company](db, uint(id))
	if err != nil {
		return err
	}
	if company == nil {
		return middleware.ErrNotFound("Company not found or already deleted!")
	}

	if err := database.SoftDelete(db, company); err != nil {
		log.Printf("Error deleting company %d: %v", company.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company deleted successfully.", fiber.Map{"deleted": true})
}
