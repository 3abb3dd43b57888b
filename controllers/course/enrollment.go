package courseController

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
)

// Enroll enrolls the caller into a course through a group
func Enroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		CourseID uint `json:"course_id"`
		GroupID  uint `json:"group_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.CourseID == 0 || reqData.GroupID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	user, err := database.FindByID[models.User](db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return middleware.ErrNotFound("User not found!")
	}

	course, err := database.FindOne[courseModels.Course](db, map[string]interface{}{
		"id":     reqData.CourseID,
		"status": courseModels.StatusActive,
	})
	if err != nil {
		return err
	}
	if course == nil {
		return middleware.ErrNotFound("Course not found or not active!")
	}

	group, err := database.FindOne[courseModels.Group](db, map[string]interface{}{
		"id":        reqData.GroupID,
		"course_id": course.ID,
	})
	if err != nil {
		return err
	}
	if group == nil {
		return middleware.ErrNotFound("Group not found for this course!")
	}

	existing, err := database.FindOne[courseModels.Enrollment](db, map[string]interface{}{
		"user_id":   userID,
		"course_id": course.ID,
	})
	if err != nil {
		return err
	}
	if existing != nil {
		return middleware.ErrConflict("User already enrolled in this course!")
	}

	enrollment := courseModels.Enrollment{
		CourseID: course.ID,
		UserID:   userID,
		GroupID:  group.ID,
	}

	if err := db.Create(&enrollment).Error; err != nil {
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully.", enrollment)
}

// GetEnrollments lists the caller's enrollments, newest first
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := database.Paginate[courseModels.Enrollment](
		database.Database.Db.WithContext(c.Context()),
		map[string]interface{}{"user_id": userID},
		database.PageOptions{Page: page, Limit: limit},
	)
	if err != nil {
		log.Printf("Error listing enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully.", result)
}

// UpdateProgress moves the caller's enrollment progress. ApplyProgress is the
// only path that may flip IsCompleted, so completion without full progress is
// rejected here.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil || enrollmentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	reqData := new(struct {
		Progress int `json:"progress"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	enrollment, err := database.FindOne[courseModels.Enrollment](db, map[string]interface{}{
		"id":      enrollmentID,
		"user_id": userID,
	})
	if err != nil {
		return err
	}
	if enrollment == nil {
		return middleware.ErrNotFound("Enrollment not found!")
	}

	if err := enrollment.ApplyProgress(reqData.Progress); err != nil {
		return middleware.ErrValidation(err.Error())
	}

	if err := db.Model(enrollment).Updates(map[string]interface{}{
		"progress":     enrollment.Progress,
		"is_completed": enrollment.IsCompleted,
	}).Error; err != nil {
		log.Printf("Error updating enrollment %d: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully.", enrollment)
}

// CompleteResource marks a resource done within the caller's enrollment and
// recomputes progress over the course's required resources
func CompleteResource(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil || enrollmentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	reqData := new(struct {
		ResourceID uint `json:"resource_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.ResourceID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	enrollment, err := database.FindOne[courseModels.Enrollment](db, map[string]interface{}{
		"id":      enrollmentID,
		"user_id": userID,
	})
	if err != nil {
		return err
	}
	if enrollment == nil {
		return middleware.ErrNotFound("Enrollment not found!")
	}

	resource, err := database.FindOne[courseModels.Resource](db, map[string]interface{}{
		"id":        reqData.ResourceID,
		"course_id": enrollment.CourseID,
	})
	if err != nil {
		return err
	}
	if resource == nil {
		return middleware.ErrNotFound("Resource not found in this course!")
	}

	enrollment.MarkResourceCompleted(resource.ID)

	// Progress is the completed share of the course's resources
	var total int64
	if err := db.Model(&courseModels.Resource{}).Where("course_id = ?", enrollment.CourseID).Count(&total).Error; err != nil {
		return err
	}
	progress := 100
	if total > 0 {
		progress = int(int64(len(enrollment.CompletedResourceIDs)) * 100 / total)
	}
	if err := enrollment.ApplyProgress(progress); err != nil {
		return middleware.ErrValidation(err.Error())
	}

	if err := db.Model(enrollment).Updates(map[string]interface{}{
		"completed_resource_ids": enrollment.CompletedResourceIDs,
		"progress":               enrollment.Progress,
		"is_completed":           enrollment.IsCompleted,
	}).Error; err != nil {
		log.Printf("Error saving enrollment %d: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource marked completed.", enrollment)
}
