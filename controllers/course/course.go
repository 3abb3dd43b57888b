package courseController

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// CreateCourse creates a course under a company with a fresh invite link
func CreateCourse(c *fiber.Ctx) error {
	reqData := new(struct {
		Name      string `json:"name"`
		CompanyID uint   `json:"company_id"`
		IsPublic  bool   `json:"is_public"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Name == "" || reqData.CompanyID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	company, err := database.FindByID[models.Company](db, reqData.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return middleware.ErrNotFound("Company not found!")
	}

	course := courseModels.Course{
		Name:       reqData.Name,
		CompanyID:  company.ID,
		IsPublic:   reqData.IsPublic,
		InviteLink: utils.GenerateInviteLink(),
		Status:     courseModels.StatusActive,
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

// GetCourse fetches a course with its modules and groups
func GetCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	course, err := database.FindByID[courseModels.Course](db.Preload("Modules.Resources").Preload("Groups"), uint(id))
	if err != nil {
		return err
	}
	if course == nil {
		return middleware.ErrNotFound("Course not found!")
	}

	// The owning company may have been soft-deleted; that is an integrity
	// signal, not a failure.
	company, err := database.FindByID[models.Company](db, course.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		log.Printf("Warning: course %d references missing or deleted company %d", course.ID, course.CompanyID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully.", course)
}

// ListCourses returns a page of courses, optionally filtered by company
func ListCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	filter := map[string]interface{}{}
	if companyID := c.QueryInt("company_id", 0); companyID > 0 {
		filter["company_id"] = companyID
	}

	result, err := database.Paginate[courseModels.Course](database.Database.Db.WithContext(c.Context()), filter, database.PageOptions{Page: page, Limit: limit})
	if err != nil {
		log.Printf("Error listing courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", result)
}

// UpdateCourse patches name, status or visibility
func UpdateCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData := new(struct {
		Name     string `json:"name"`
		Status   string `json:"status"`
		IsPublic *bool  `json:"is_public"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	patch := map[string]interface{}{}
	if reqData.Name != "" {
		patch["name"] = reqData.Name
	}
	if reqData.Status != "" {
		if !courseModels.ValidStatus(reqData.Status) {
			return middleware.ErrValidation("Invalid course status!")
		}
		patch["status"] = reqData.Status
	}
	if reqData.IsPublic != nil {
		patch["is_public"] = *reqData.IsPublic
	}
	if len(patch) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	course, err := database.UpdateByID[courseModels.Course](database.Database.Db.WithContext(c.Context()), uint(id), patch)
	if err != nil {
		return err
	}
	if course == nil {
		return middleware.ErrNotFound("Course not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

// DeleteCourse soft-deletes a course without touching its enrollments
func DeleteCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	course, err := database.FindByID[courseModels.Course](db, uint(id))
	if err != nil {
		return err
	}
	if course == nil {
		return middleware.ErrNotFound("Course not found or already deleted!")
	}

	if err := database.SoftDelete(db, course); err != nil {
		log.Printf("Error deleting course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", fiber.Map{"deleted": true})
}

// CreateModule adds a module to a course
func CreateModule(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData := new(struct {
		Name string `json:"name"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	course, err := database.FindByID[courseModels.Course](db, uint(courseID))
	if err != nil {
		return err
	}
	if course == nil {
		return middleware.ErrNotFound("Course not found!")
	}

	module := courseModels.Module{Name: reqData.Name, CourseID: course.ID}
	if err := db.Create(&module).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully.", module)
}

// GetModule fetches a module with its ordered resources
func GetModule(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("moduleId"))
	if err != nil || moduleID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	module, err := database.FindByID[courseModels.Module](db.Preload("Resources.Resource"), uint(moduleID))
	if err != nil {
		return err
	}
	if module == nil {
		return middleware.ErrNotFound("Module not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully.", module)
}

// AttachResource places a resource into a module at an order position.
// Attaching the same resource again updates order and requirement in place.
func AttachResource(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("moduleId"))
	if err != nil || moduleID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	reqData := new(struct {
		ResourceID uint `json:"resource_id"`
		Order      int  `json:"order"`
		IsRequired bool `json:"is_required"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.ResourceID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	module, err := database.FindByID[courseModels.Module](db, uint(moduleID))
	if err != nil {
		return err
	}
	if module == nil {
		return middleware.ErrNotFound("Module not found!")
	}

	resource, err := database.FindByID[courseModels.Resource](db, reqData.ResourceID)
	if err != nil {
		return err
	}
	if resource == nil {
		return middleware.ErrNotFound("Resource not found!")
	}

	var existing courseModels.ModuleResource
	err = db.Where("module_id = ? AND resource_id = ?", module.ID, resource.ID).First(&existing).Error
	switch {
	case err == nil:
		if err := db.Model(&existing).Updates(map[string]interface{}{
			"order":       reqData.Order,
			"is_required": reqData.IsRequired,
		}).Error; err != nil {
			log.Printf("Error updating module resource: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach resource!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource attachment updated.", existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		link := courseModels.ModuleResource{
			ModuleID:   module.ID,
			ResourceID: resource.ID,
			Order:      reqData.Order,
			IsRequired: reqData.IsRequired,
		}
		if err := db.Create(&link).Error; err != nil {
			log.Printf("Error attaching resource: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach resource!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource attached successfully.", link)
	default:
		return err
	}
}
