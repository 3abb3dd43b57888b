package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
	"lms/database"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		Port:            "5000",
		SaltRound:       4,
		JWTAccessKey:    "test_access_secret",
		JWTRefreshKey:   "test_refresh_secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	os.Exit(m.Run())
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type userPayload struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func signup(t *testing.T, app *fiber.App, firstName, email string) (userPayload, tokenPair) {
	t.Helper()

	code, env := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"first_name": firstName,
		"last_name":  "Tester",
		"email":      email,
		"password":   "supersecret",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	var data struct {
		User   userPayload `json:"user"`
		Tokens tokenPair   `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.User.ID)
	require.NotEmpty(t, data.Tokens.AccessToken)
	return data.User, data.Tokens
}

func TestAuthFlow(t *testing.T) {
	database.ConnectTest()
	app := SetupApp()

	user, tokens := signup(t, app, "Alice", "alice@example.com")
	assert.Equal(t, "alice@example.com", user.Email)

	// Duplicate email is rejected
	code, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"first_name": "Alice",
		"last_name":  "Tester",
		"email":      "Alice@Example.com",
		"password":   "supersecret",
	})
	assert.Equal(t, http.StatusConflict, code)

	// Wrong password and unknown email produce the same response
	code, env := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password!", env.Message)

	code, env2 := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": "nobody@example.com", "password": "supersecret",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, env.Message, env2.Message)

	code, env = doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, code)

	var loginData struct {
		Tokens tokenPair `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginData))

	// The access token resolves to the signed-up identity
	code, env = doRequest(t, app, http.MethodGet, "/user/me", loginData.Tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	var me userPayload
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, user.ID, me.ID)

	// Missing and malformed headers are rejected before any lookup
	code, _ = doRequest(t, app, http.MethodGet, "/user/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// Refresh rotates into a usable pair
	code, env = doRequest(t, app, http.MethodPost, "/auth/refresh", "", fiber.Map{
		"refresh_token": tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, code)
	var refreshed tokenPair
	require.NoError(t, json.Unmarshal(env.Data, &refreshed))
	code, _ = doRequest(t, app, http.MethodGet, "/user/me", refreshed.AccessToken, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestUserSoftDeleteFlow(t *testing.T) {
	database.ConnectTest()
	app := SetupApp()

	_, adminTokens := signup(t, app, "Admin", "admin@example.com")
	target, targetTokens := signup(t, app, "Target", "target@example.com")

	userPath := fmt.Sprintf("/user/%d", target.ID)

	code, _ := doRequest(t, app, http.MethodGet, userPath, adminTokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, app, http.MethodDelete, userPath, adminTokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	// The deleted user vanishes from lookups...
	code, _ = doRequest(t, app, http.MethodGet, userPath, adminTokens.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// ...and their still-valid token no longer resolves
	code, _ = doRequest(t, app, http.MethodGet, "/user/me", targetTokens.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// Restore brings the row back unchanged
	code, _ = doRequest(t, app, http.MethodPatch, userPath+"/restore", adminTokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, env := doRequest(t, app, http.MethodGet, userPath, adminTokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	var restored userPayload
	require.NoError(t, json.Unmarshal(env.Data, &restored))
	assert.Equal(t, "target@example.com", restored.Email)

	code, _ = doRequest(t, app, http.MethodGet, "/user/me", targetTokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCompanyEmployeeFlow(t *testing.T) {
	database.ConnectTest()
	app := SetupApp()

	_, ownerTokens := signup(t, app, "Owner", "owner@example.com")
	worker, workerTokens := signup(t, app, "Worker", "worker@example.com")

	code, env := doRequest(t, app, http.MethodPost, "/company/", ownerTokens.AccessToken, fiber.Map{
		"name": "Acme Learning",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	var company struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &company))
	require.NotZero(t, company.ID)

	employeePath := fmt.Sprintf("/company/%d/employee", company.ID)

	code, _ = doRequest(t, app, http.MethodPost, employeePath, ownerTokens.AccessToken, fiber.Map{
		"user_id": worker.ID,
	})
	require.Equal(t, http.StatusOK, code)

	// Adding the same pair again replaces the role set instead of
	// duplicating the membership
	code, env = doRequest(t, app, http.MethodPost, employeePath, ownerTokens.AccessToken, fiber.Map{
		"user_id": worker.ID,
	})
	require.Equal(t, http.StatusOK, code)

	var withEmployees struct {
		Employees []struct {
			UserID uint `json:"user_id"`
		} `json:"employees"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &withEmployees))
	require.Len(t, withEmployees.Employees, 1)
	assert.Equal(t, worker.ID, withEmployees.Employees[0].UserID)

	// The worker attaches the company from their side; both directions of
	// the relationship become visible
	code, env = doRequest(t, app, http.MethodPost, "/user/company/attach", workerTokens.AccessToken, fiber.Map{
		"company_id": company.ID,
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	var attached struct {
		Companies []struct {
			ID uint `json:"id"`
		} `json:"companies"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &attached))
	require.Len(t, attached.Companies, 1)
	assert.Equal(t, company.ID, attached.Companies[0].ID)

	companyPath := fmt.Sprintf("/company/%d?populate=true", company.ID)
	code, env = doRequest(t, app, http.MethodGet, companyPath, ownerTokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &withEmployees))
	require.Len(t, withEmployees.Employees, 1)

	// Adding an unknown user fails the referent check
	code, _ = doRequest(t, app, http.MethodPost, employeePath, ownerTokens.AccessToken, fiber.Map{
		"user_id": uint(9999),
	})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCourseResourceEnrollmentFlow(t *testing.T) {
	database.ConnectTest()
	app := SetupApp()

	_, tokens := signup(t, app, "Owner", "owner2@example.com")
	access := tokens.AccessToken

	code, env := doRequest(t, app, http.MethodPost, "/company/", access, fiber.Map{"name": "Acme Learning"})
	require.Equal(t, http.StatusCreated, code)
	var company struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &company))

	code, env = doRequest(t, app, http.MethodPost, "/course/", access, fiber.Map{
		"name": "Go Fundamentals", "company_id": company.ID,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var crs struct {
		ID         uint   `json:"id"`
		Status     string `json:"status"`
		InviteLink string `json:"invite_link"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &crs))
	assert.Equal(t, "Active", crs.Status)
	assert.NotEmpty(t, crs.InviteLink)

	// Lecture resource
	code, env = doRequest(t, app, http.MethodPost, "/resource/", access, fiber.Map{
		"name": "Intro", "course_id": crs.ID, "type": "LECTURE", "text": "welcome",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var lecture struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &lecture))

	// Video resource missing its url fails variant validation
	code, _ = doRequest(t, app, http.MethodPost, "/resource/", access, fiber.Map{
		"name": "Broken", "course_id": crs.ID, "type": "VIDEO",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// Test resource needs a live question
	code, env = doRequest(t, app, http.MethodPost, "/question/", access, fiber.Map{
		"text":            "2+2?",
		"answers":         []string{"3", "4"},
		"correct_answers": []string{"4"},
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var question struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &question))

	code, env = doRequest(t, app, http.MethodPost, "/resource/", access, fiber.Map{
		"name": "Exam", "course_id": crs.ID, "type": "TEST",
		"question_ids": []uint{question.ID}, "pass_rate": 70,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var exam struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &exam))

	// Fetching a TEST comes back with questions resolved
	code, env = doRequest(t, app, http.MethodGet, fmt.Sprintf("/resource/%d", exam.ID), access, nil)
	require.Equal(t, http.StatusOK, code)
	var fetched struct {
		Type      string `json:"type"`
		Questions []struct {
			ID uint `json:"id"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "TEST", fetched.Type)
	require.Len(t, fetched.Questions, 1)
	assert.Equal(t, question.ID, fetched.Questions[0].ID)

	// Group and enrollment
	code, env = doRequest(t, app, http.MethodPost, "/group/", access, fiber.Map{
		"name": "Cohort A", "course_id": crs.ID,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var group struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &group))

	code, env = doRequest(t, app, http.MethodPost, "/enrollment/", access, fiber.Map{
		"course_id": crs.ID, "group_id": group.ID,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var enrollment struct {
		ID          uint `json:"id"`
		Progress    int  `json:"progress"`
		IsCompleted bool `json:"is_completed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &enrollment))
	assert.Equal(t, 0, enrollment.Progress)

	// A duplicate enrollment for the same user and course is rejected
	code, _ = doRequest(t, app, http.MethodPost, "/enrollment/", access, fiber.Map{
		"course_id": crs.ID, "group_id": group.ID,
	})
	assert.Equal(t, http.StatusConflict, code)

	// Progress outside [0,100] is rejected, 100 flips completion
	progressPath := fmt.Sprintf("/enrollment/%d/progress", enrollment.ID)
	code, _ = doRequest(t, app, http.MethodPatch, progressPath, access, fiber.Map{"progress": 101})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, env = doRequest(t, app, http.MethodPatch, progressPath, access, fiber.Map{"progress": 100})
	require.Equal(t, http.StatusOK, code, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &enrollment))
	assert.Equal(t, 100, enrollment.Progress)
	assert.True(t, enrollment.IsCompleted)
}
