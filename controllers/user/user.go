package userController

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
)

// GetSelf returns the authenticated user's profile
func GetSelf(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	user, err := database.FindByID[models.User](database.Database.Db.WithContext(c.Context()), userID)
	if err != nil {
		return err
	}
	if user == nil {
		return middleware.ErrNotFound("User not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", user)
}

// GetByID returns any user's profile by id
func GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	user, err := database.FindByID[models.User](database.Database.Db.WithContext(c.Context()), uint(id))
	if err != nil {
		return err
	}
	if user == nil {
		return middleware.ErrNotFound("User not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", user)
}

// ListUsers returns a page of users with optional name/email search
func ListUsers(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserList").(*struct {
		Page              int    `query:"page"`
		Limit             int    `query:"limit"`
		Search            string `query:"search"`
		PopulateCompanies bool   `query:"populate_companies"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	query := database.Database.Db.WithContext(c.Context())
	if reqData.Search != "" {
		pattern := "%" + reqData.Search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	opts := database.PageOptions{Page: reqData.Page, Limit: reqData.Limit}
	if reqData.PopulateCompanies {
		opts.Populate = []string{"Companies"}
	}

	result, err := database.Paginate[models.User](query, nil, opts)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", result)
}

// UpdateSelf updates the caller's profile fields. Password is never touched
// here; it has its own path so hashing cannot be skipped or repeated.
func UpdateSelf(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	patch := map[string]interface{}{}
	if reqData.FirstName != "" {
		patch["first_name"] = reqData.FirstName
	}
	if reqData.LastName != "" {
		patch["last_name"] = reqData.LastName
	}
	if len(patch) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	user, err := database.UpdateByID[models.User](database.Database.Db.WithContext(c.Context()), userID, patch)
	if err != nil {
		return err
	}
	if user == nil {
		return middleware.ErrNotFound("User not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", user)
}

// ChangePassword re-hashes and stores a new password after checking the old one
func ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	})
	if err := c.BodyParser(reqData); err != nil {
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

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.OldPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Wrong password!", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	if err := db.Model(user).Update("password", string(hashed)).Error; err != nil {
		log.Printf("Error updating password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}

// AttachCompany links the caller to a company and registers the employee
// membership in one transaction. Either both writes commit or neither does.
func AttachCompany(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		CompanyID uint `json:"company_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.CompanyID == 0 {
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

	// The company reference must resolve to a live row at attach time
	company, err := database.FindByID[models.Company](db, reqData.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return middleware.ErrNotFound("Company not found!")
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Association("Companies").Append(company); err != nil {
			return err
		}

		var roleIDs []uint
		if company.DefaultRoleID != nil {
			roleIDs = append(roleIDs, *company.DefaultRoleID)
		}
		return upsertEmployee(tx, company.ID, user.ID, roleIDs)
	})
	if txErr != nil {
		log.Printf("Error attaching company %d to user %d: %v", company.ID, user.ID, txErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach company!", nil)
	}

	updated, err := database.FindByID[models.User](db.Preload("Companies"), userID)
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company attached successfully.", updated)
}

// DeleteUser soft-deletes a user by id
func DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	user, err := database.FindByID[models.User](db, uint(id))
	if err != nil {
		return err
	}
	if user == nil {
		return middleware.ErrNotFound("User not found or already deleted!")
	}

	if err := database.SoftDelete(db, user); err != nil {
		log.Printf("Error deleting user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", fiber.Map{"deleted": true})
}

// RestoreUser clears the deleted flag on a user
func RestoreUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	// The row is hidden from default reads, so opt into deleted rows here
	user, err := database.FindByID[models.User](database.WithDeleted(db), uint(id))
	if err != nil {
		return err
	}
	if user == nil {
		return middleware.ErrNotFound("User not found!")
	}

	if err := database.Restore(db, user); err != nil {
		log.Printf("Error restoring user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to restore user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User restored successfully.", user)
}

// upsertEmployee creates or refreshes the (company, user) membership row.
// Re-adding an existing pair replaces the role set instead of duplicating.
func upsertEmployee(tx *gorm.DB, companyID, userID uint, roleIDs []uint) error {
	var existing models.Employee
	err := tx.Where("company_id = ? AND user_id = ?", companyID, userID).First(&existing).Error
	if err == nil {
		return tx.Model(&existing).Updates(map[string]interface{}{
			"role_ids":  datatypes.NewJSONSlice(roleIDs),
			"is_active": true,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	employee := models.Employee{
		CompanyID: companyID,
		UserID:    userID,
		RoleIDs:   datatypes.NewJSONSlice(roleIDs),
		IsActive:  true,
	}
	return tx.Create(&employee).Error
}
