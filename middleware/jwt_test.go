package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
	"lms/database"
	"lms/models"
)

func setupTokenConfig() {
	config.AppConfig = &config.Config{
		JWTAccessKey:    "test_access_secret",
		JWTRefreshKey:   "test_refresh_secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		SaltRound:       4,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setupTokenConfig()

	pair, err := GenerateTokenPair(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	payload, err := VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), payload.ID)
	assert.Equal(t, "user@example.com", payload.Email)

	payload, err = VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), payload.ID)
}

func TestVerifyRejectsCrossTokenUse(t *testing.T) {
	setupTokenConfig()

	pair, err := GenerateTokenPair(1, "user@example.com")
	require.NoError(t, err)

	// An access token never verifies as a refresh token and vice versa,
	// the secrets are distinct
	_, err = VerifyRefreshToken(pair.AccessToken)
	assert.Error(t, err)

	_, err = VerifyAccessToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	setupTokenConfig()

	pair, err := GenerateTokenPair(1, "user@example.com")
	require.NoError(t, err)

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	_, err = VerifyAccessToken(tampered)
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrInvalidCredential().Message, appErr.Message)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	setupTokenConfig()

	expired, err := signToken(1, "user@example.com", config.AppConfig.JWTAccessKey, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyAccessToken(expired)
	require.Error(t, err)

	// Expiry is not distinguishable from a bad signature
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrInvalidCredential().Message, appErr.Message)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	setupTokenConfig()

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := VerifyAccessToken(token)
		assert.Error(t, err, "token %q must not verify", token)
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "missing token", header: "Bearer ", wantErr: true},
		{name: "bare token", header: "abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if tt.wantErr {
				require.Error(t, err)
				var appErr *AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, ErrMalformedHeader().Message, appErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefreshTokenPair(t *testing.T) {
	setupTokenConfig()
	db := database.ConnectTest()

	user := &models.User{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	pair, err := GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	// Rotation re-resolves the subject and issues a fresh pair
	rotated, err := RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)
	payload, err := VerifyAccessToken(rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, payload.ID)
	assert.Equal(t, user.Email, payload.Email)

	// An access token is not accepted in place of a refresh token
	_, err = RefreshTokenPair(pair.AccessToken)
	assert.Error(t, err)

	// A soft-deleted subject fails rotation even with a valid token
	require.NoError(t, database.SoftDelete(db, user))
	_, err = RefreshTokenPair(pair.RefreshToken)
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrIdentityNotFound().Message, appErr.Message)
}
