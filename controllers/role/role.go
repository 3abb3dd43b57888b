package roleController

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
)

// CreateRole creates a role, optionally scoped to companies
func CreateRole(c *fiber.Ctx) error {
	reqData := new(struct {
		Name       string `json:"name"`
		IsPublic   bool   `json:"is_public"`
		CompanyIDs []uint `json:"company_ids"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	role := models.Role{Name: reqData.Name, IsPublic: reqData.IsPublic}
	for _, companyID := range reqData.CompanyIDs {
		company, err := database.FindByID[models.Company](db, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return middleware.ErrNotFound("Company not found!")
		}
		role.AvailableTo = append(role.AvailableTo, *company)
	}

	if err := db.Create(&role).Error; err != nil {
		log.Printf("Error creating role: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Role created successfully.", role)
}

// GetRole fetches a role by id
func GetRole(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role id!", nil)
	}

	role, err := database.FindByID[models.Role](database.Database.Db.WithContext(c.Context()), uint(id))
	if err != nil {
		return err
	}
	if role == nil {
		return middleware.ErrNotFound("Role not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role fetched successfully.", role)
}

// ListRoles returns a page of roles
func ListRoles(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := database.Paginate[models.Role](database.Database.Db.WithContext(c.Context()), nil, database.PageOptions{Page: page, Limit: limit})
	if err != nil {
		log.Printf("Error listing roles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch roles!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roles fetched successfully.", result)
}

// DeleteRole soft-deletes a role
func DeleteRole(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	role, err := database.FindByID[models.Role](db, uint(id))
	if err != nil {
		return err
	}
	if role == nil {
		return middleware.ErrNotFound("Role not found or already deleted!")
	}

	if err := database.SoftDelete(db, role); err != nil {
		log.Printf("Error deleting role %d: %v", role.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role deleted successfully.", fiber.Map{"deleted": true})
}
