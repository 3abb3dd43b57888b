package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// AppError is a typed failure carrying a status classification. Controllers
// and the token service return these; ErrorHandler is the single place they
// are translated into responses.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// ErrInvalidCredential covers every token failure: bad signature, expiry,
// malformed payload. Callers get one opaque 401 so credential state cannot
// be probed.
func ErrInvalidCredential() *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: "Invalid or expired token!"}
}

// ErrIdentityNotFound means a refresh token verified but its subject no
// longer resolves in the store
func ErrIdentityNotFound() *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: "User for this token not found!"}
}

// ErrMalformedHeader means the Authorization header is absent or not
// bearer-scheme
func ErrMalformedHeader() *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: "Missing or invalid Authorization header!"}
}

func ErrNotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

func ErrConflict(message string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Message: message}
}

func ErrValidation(message string) *AppError {
	return &AppError{Status: fiber.StatusUnprocessableEntity, Message: message}
}

// ErrorHandler is the fiber error handler mapping typed failures to the
// response envelope. Anything untyped is a 500 with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return JsonResponse(c, appErr.Status, false, appErr.Message, nil)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return JsonResponse(c, fiberErr.Code, false, fiberErr.Message, nil)
	}

	log.Printf("Unhandled error: %v", err)
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
