package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tasks-api/internal/dto"
)

func TestAuthHandler_Signup(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "New User", response.Name)
	assert.Equal(t, "new@example.com", response.Email)
	assert.Len(t, response.ID, 36)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_SignupConflictAndValidation(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "taken@example.com")

	w := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Other",
		"email":    "taken@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "CONFLICT", body["code"])
	assert.Contains(t, body["details"], "email")

	w = s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Short",
		"email":    "short@example.com",
		"password": "123",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = decodeError(t, w)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	assert.Contains(t, body["details"], "password")

	w = s.do(t, http.MethodPost, "/api/auth/signup", "{not json", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	s := newTestServer(t)
	cookies := s.login(t, "me@example.com")

	w := s.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "me@example.com", response.Email)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "wrong@example.com")

	w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "wrong@example.com",
		"password": "not-the-password",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, w)["code"])
}

func TestAuthHandler_MeRequiresSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	s := newTestServer(t)
	cookies := s.login(t, "bye@example.com")

	w := s.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeError(t, w)["status"])
}
