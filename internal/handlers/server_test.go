package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tasks-api/internal/config"
	"github.com/yukikurage/project-tasks-api/internal/constants"
	"github.com/yukikurage/project-tasks-api/internal/database"
	"github.com/yukikurage/project-tasks-api/internal/dto"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"github.com/yukikurage/project-tasks-api/internal/services"
	"github.com/yukikurage/project-tasks-api/internal/validation"
	"gorm.io/gorm"
)

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithAI(t, nil)
}

func newTestServerWithAI(t *testing.T, aiService *services.AIService) *testServer {
	t.Helper()

	db, err := database.Connect(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	resolver := services.NewResolver(userRepo, projectRepo, taskRepo)
	guard := services.NewOwnershipGuard(projectRepo, taskRepo)
	validator := validation.New()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	RegisterRoutes(r, Routes{
		Health:   NewHealthHandler(db),
		Auth:     NewAuthHandler(services.NewAuthService(userRepo, validator), logger),
		Projects: NewProjectHandler(services.NewProjectService(projectRepo, resolver, guard, validator, logger), logger),
		Tasks:    NewTaskHandler(services.NewTaskService(taskRepo, resolver, validator, aiService, logger), logger),
		Resolver: resolver,
		Guard:    guard,
	})

	return &testServer{db: db, router: r}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			payload, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(payload)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login signs up a fresh user and returns its session cookies
func (s *testServer) login(t *testing.T, email string) []*http.Cookie {
	t.Helper()

	creds := map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "supersecret",
	}
	w := s.do(t, http.MethodPost, "/api/auth/signup", creds, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth/login", creds, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func (s *testServer) createProject(t *testing.T, cookies []*http.Cookie, caption string) dto.ProjectDTO {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/projects", map[string]any{
		"caption":     caption,
		"description": "",
		"status":      "ACTIVE",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	return project
}

func taskPayload(caption string) map[string]any {
	return map[string]any{
		"caption":        caption,
		"description":    "details",
		"due_date":       "2030-05-01",
		"estimated_time": 45,
		"actual_time":    0,
		"progress":       0,
		"priority":       "HIGH",
	}
}

func (s *testServer) createTask(t *testing.T, cookies []*http.Cookie, path, caption string) dto.TaskDTO {
	t.Helper()

	w := s.do(t, http.MethodPost, path, taskPayload(caption), cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
