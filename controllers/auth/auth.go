package authController

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
)

// Signup registers a new user and hands back a token pair
func Signup(c *fiber.Ctx) error {
	reqData := new(struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())
	email := strings.ToLower(strings.TrimSpace(reqData.Email))

	// Check if email already exists
	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		return middleware.ErrConflict("Email is already registered!")
	}

	// Hash Password. Hashing happens here and in the password-change path
	// only, never as a side effect of a generic save.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Email:     email,
		Password:  string(hashedPassword),
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign up user!", nil)
	}

	tokens, err := middleware.GenerateTokenPair(newUser.ID, newUser.Email)
	if err != nil {
		log.Printf("Error generating tokens: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign up user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"user":   newUser,
		"tokens": tokens,
	})
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same response.
func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	db := database.Database.Db.WithContext(c.Context())

	var user models.User
	if err := db.Where("email = ?", strings.ToLower(reqData.Email)).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	tokens, err := middleware.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Printf("Error generating tokens: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log in!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully.", fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

// RefreshToken rotates a refresh token into a fresh pair
func RefreshToken(c *fiber.Ctx) error {
	reqData := new(struct {
		RefreshToken string `json:"refresh_token"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if reqData.RefreshToken == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Refresh token is required!", nil)
	}

	tokens, err := middleware.RefreshTokenPair(reqData.RefreshToken)
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token refreshed successfully.", tokens)
}
