package courseController

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
)

// CreateGroup adds a group to a course
func CreateGroup(c *fiber.Ctx) error {
	reqData := new(struct {
		Name     string `json:"name"`
		CourseID uint   `json:"course_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Name == "" || reqData.CourseID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	course, err := database.FindByID[courseModels.Course](db, reqData.CourseID)
	if err != nil {
		return err
	}
	if course == nil {
		return middleware.ErrNotFound("Course not found!")
	}

	group := courseModels.Group{Name: reqData.Name, CourseID: course.ID}
	if err := db.Create(&group).Error; err != nil {
		log.Printf("Error creating group: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create group!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Group created successfully.", group)
}

// GetGroup fetches a group with its participants
func GetGroup(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid group id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	group, err := database.FindByID[courseModels.Group](db.Preload("Participants"), uint(id))
	if err != nil {
		return err
	}
	if group == nil {
		return middleware.ErrNotFound("Group not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Group fetched successfully.", group)
}

// ListGroups returns a page of groups for a course
func ListGroups(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := database.Paginate[courseModels.Group](
		database.Database.Db.WithContext(c.Context()),
		map[string]interface{}{"course_id": courseID},
		database.PageOptions{Page: page, Limit: limit},
	)
	if err != nil {
		log.Printf("Error listing groups: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch groups!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Groups fetched successfully.", result)
}

// DeleteGroup soft-deletes a group; enrollments keep their group reference
func DeleteGroup(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid group id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	group, err := database.FindByID[courseModels.Group](db, uint(id))
	if err != nil {
		return err
	}
	if group == nil {
		return middleware.ErrNotFound("Group not found or already deleted!")
	}

	if err := database.SoftDelete(db, group); err != nil {
		log.Printf("Error deleting group %d: %v", group.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete group!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Group deleted successfully.", fiber.Map{"deleted": true})
}
