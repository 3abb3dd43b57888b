package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"lms/config"
	"lms/database"
	"lms/models"
)

// TokenPayload is the identity embedded in every token
type TokenPayload struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// TokenPair is an access/refresh credential pair. Access and refresh tokens
// are signed with distinct secrets and distinct expirations; validity is
// entirely a function of signature and expiry, no server-side state.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GenerateTokenPair issues a fresh access/refresh pair for the given identity
func GenerateTokenPair(userID uint, email string) (*TokenPair, error) {
	accessToken, err := signToken(userID, email, config.AppConfig.JWTAccessKey, config.AppConfig.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := signToken(userID, email, config.AppConfig.JWTRefreshKey, config.AppConfig.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func signToken(userID uint, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAccessToken validates an access token and returns its payload.
// Every failure mode collapses into ErrInvalidCredential.
func VerifyAccessToken(tokenString string) (*TokenPayload, error) {
	return verifyToken(tokenString, config.AppConfig.JWTAccessKey)
}

// VerifyRefreshToken validates a refresh token against the refresh secret
func VerifyRefreshToken(tokenString string) (*TokenPayload, error) {
	return verifyToken(tokenString, config.AppConfig.JWTRefreshKey)
}

func verifyToken(tokenString, secret string) (*TokenPayload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredential()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredential()
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, ErrInvalidCredential()
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrInvalidCredential()
	}

	return &TokenPayload{ID: uint(id), Email: email}, nil
}

// RefreshTokenPair rotates a refresh token into a new pair. The subject is
// re-resolved against the store so a user deleted or changed since issuance
// is reflected; a subject hidden by soft delete fails the rotation.
func RefreshTokenPair(refreshToken string) (*TokenPair, error) {
	payload, err := VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := database.FindByID[models.User](database.Database.Db, payload.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrIdentityNotFound()
	}

	return GenerateTokenPair(user.ID, user.Email)
}

// ExtractToken parses a bearer-scheme Authorization header value
func ExtractToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMalformedHeader()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrMalformedHeader()
	}

	return parts[1], nil
}

// JWTMiddleware guards protected routes. It extracts and verifies the access
// token, re-resolves the user, and stores the identity in request locals.
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString, err := ExtractToken(c.Get("Authorization"))
	if err != nil {
		return err
	}

	payload, err := VerifyAccessToken(tokenString)
	if err != nil {
		return err
	}

	user, err := database.FindByID[models.User](database.Database.Db.WithContext(c.Context()), payload.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredential()
	}

	c.Locals("userId", user.ID)
	c.Locals("email", user.Email)
	return c.Next()
}
