package courseController

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"
)

// CreateResource creates a typed learning resource. The variant schema is
// validated before the row is written; the discriminator is fixed from then on.
func CreateResource(c *fiber.Ctx) error {
	reqData := new(struct {
		Name     string `json:"name"`
		CourseID uint   `json:"course_id"`
		Type     string `json:"type"`

		QuestionIDs        []uint `json:"question_ids"`
		PassRate           int    `json:"pass_rate"`
		ShowCorrectAnswers bool   `json:"show_correct_answers"`

		Text  string                   `json:"text"`
		Media []courseModels.MediaItem `json:"media"`
		URL   string                   `json:"url"`
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

	resource := courseModels.Resource{
		Name:               reqData.Name,
		CourseID:           course.ID,
		Type:               reqData.Type,
		QuestionIDs:        datatypes.NewJSONSlice(reqData.QuestionIDs),
		PassRate:           reqData.PassRate,
		ShowCorrectAnswers: reqData.ShowCorrectAnswers,
		Text:               reqData.Text,
		Media:              datatypes.NewJSONSlice(reqData.Media),
		URL:                reqData.URL,
	}

	if err := resource.Validate(); err != nil {
		return middleware.ErrValidation(err.Error())
	}

	// Question references must resolve to live rows at creation time
	if resource.Type == courseModels.ResourceTest {
		var count int64
		if err := db.Model(&courseModels.Question{}).Where("id IN ?", reqData.QuestionIDs).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(reqData.QuestionIDs)) {
			return middleware.ErrNotFound("One or more questions not found!")
		}
	}

	// Reachability check on video urls is advisory only
	if resource.Type == courseModels.ResourceVideo && !utils.ProbeURL(resource.URL) {
		log.Printf("Warning: video url %q did not respond to probe", resource.URL)
	}

	if err := db.Create(&resource).Error; err != nil {
		log.Printf("Error creating resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource created successfully.", resource)
}

// GetResource loads a resource and returns the concrete variant shape.
// A TEST resource comes back with its question list, never coerced to the
// base shape.
func GetResource(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	resource, err := database.FindByID[courseModels.Resource](db, uint(id))
	if err != nil {
		return err
	}
	if resource == nil {
		return middleware.ErrNotFound("Resource not found!")
	}

	concrete, err := courseModels.Concrete(db, resource)
	if err != nil {
		log.Printf("Error resolving resource %d: %v", resource.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource fetched successfully.", concrete)
}

// ListResources returns a page of resources for a course, optionally
// narrowed to one variant. Pagination runs on the base table, so every
// variant obeys it identically.
func ListResources(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	filter := map[string]interface{}{"course_id": courseID}
	if t := c.Query("type"); t != "" {
		filter["type"] = t
	}

	result, err := database.Paginate[courseModels.Resource](database.Database.Db.WithContext(c.Context()), filter, database.PageOptions{Page: page, Limit: limit})
	if err != nil {
		log.Printf("Error listing resources: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resources fetched successfully.", result)
}

// DeleteResource soft-deletes a resource of any variant
func DeleteResource(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	resource, err := database.FindByID[courseModels.Resource](db, uint(id))
	if err != nil {
		return err
	}
	if resource == nil {
		return middleware.ErrNotFound("Resource not found or already deleted!")
	}

	if err := database.SoftDelete(db, resource); err != nil {
		log.Printf("Error deleting resource %d: %v", resource.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted successfully.", fiber.Map{"deleted": true})
}

// RestoreResource makes a soft-deleted resource visible again
func RestoreResource(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	resource, err := database.FindByID[courseModels.Resource](database.WithDeleted(db), uint(id))
	if err != nil {
		return err
	}
	if resource == nil {
		return middleware.ErrNotFound("Resource not found!")
	}

	if err := database.Restore(db, resource); err != nil {
		log.Printf("Error restoring resource %d: %v", resource.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to restore resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource restored successfully.", resource)
}

// CreateQuestion creates a standalone question for test resources
func CreateQuestion(c *fiber.Ctx) error {
	reqData := new(struct {
		Text           string                   `json:"text"`
		Media          []courseModels.MediaItem `json:"media"`
		Answers        []string                 `json:"answers"`
		CorrectAnswers []string                 `json:"correct_answers"`
		IsMultichoice  bool                     `json:"is_multichoice"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if len(reqData.Answers) == 0 || len(reqData.CorrectAnswers) == 0 {
		return middleware.ErrValidation("Answers and correct answers are required!")
	}

	answerSet := make(map[string]bool, len(reqData.Answers))
	for _, a := range reqData.Answers {
		answerSet[a] = true
	}
	for _, a := range reqData.CorrectAnswers {
		if !answerSet[a] {
			return middleware.ErrValidation("Correct answers must be among the answers!")
		}
	}
	if !reqData.IsMultichoice && len(reqData.CorrectAnswers) > 1 {
		return middleware.ErrValidation("Single-choice questions allow one correct answer!")
	}

	question := courseModels.Question{
		Text:           reqData.Text,
		Media:          datatypes.NewJSONSlice(reqData.Media),
		Answers:        datatypes.NewJSONSlice(reqData.Answers),
		CorrectAnswers: datatypes.NewJSONSlice(reqData.CorrectAnswers),
		IsMultichoice:  reqData.IsMultichoice,
	}

	db := database.Database.Db.WithContext(c.Context())
	if err := db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully.", question)
}

// GetQuestion fetches a question by id
func GetQuestion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	question, err := database.FindByID[courseModels.Question](database.Database.Db.WithContext(c.Context()), uint(id))
	if err != nil {
		return err
	}
	if question == nil {
		return middleware.ErrNotFound("Question not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question fetched successfully.", question)
}

// DeleteQuestion soft-deletes a question. Test resources referencing it keep
// the id; readers treat the gap as an integrity warning.
func DeleteQuestion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	question, err := database.FindByID[courseModels.Question](db, uint(id))
	if err != nil {
		return err
	}
	if question == nil {
		return middleware.ErrNotFound("Question not found or already deleted!")
	}

	if err := database.SoftDelete(db, question); err != nil {
		log.Printf("Error deleting question %d: %v", question.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully.", fiber.Map{"deleted": true})
}
