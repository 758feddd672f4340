package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	authmw "task_backend/internal/feature/auth/transport/middleware"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	useradapters "task_backend/internal/feature/users/adapters"
	userentity "task_backend/internal/feature/users/domain/entity"
	userhandler "task_backend/internal/feature/users/transport/handler"
	userusecase "task_backend/internal/feature/users/usecase"
	jwtauth "task_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestServer wires the full stack against an in-memory database.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&userentity.User{}, &taskentity.Task{}))

	tokens := jwtauth.NewService("integration-test-secret", 10*time.Minute)

	userRepo := useradapters.NewUserRepository(db)
	taskRepo := taskadapters.NewTaskRepository(db)

	userUC := userusecase.NewUserUsecase(userRepo)
	taskUC := taskusecase.NewTaskUsecase(taskRepo, userRepo)
	loginUC := authusecase.NewLoginUsecase(userRepo, tokens)

	authH := authhandler.NewAuthHandler(loginUC, true)
	userH := userhandler.NewUserHandler(userUC, true)
	taskH := taskhandler.NewTaskHandler(taskUC, true)
	gate := authmw.AuthRequired(tokens, userRepo)

	return NewRouter(authH, userH, taskH, gate)
}

func request(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// TestSignupLoginTaskFlow walks the whole lifecycle: signup, login, list
// (empty), create a task, read it back with the owner's username.
func TestSignupLoginTaskFlow(t *testing.T) {
	r := newTestServer(t)

	// Signup
	w := request(t, r, http.MethodPost, "/users", "", gin.H{
		"username": "al", "email": "a@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())
	userID := decode(t, w)["user_id"].(string)
	require.NotEmpty(t, userID)

	// Login
	w = request(t, r, http.MethodPost, "/login", "", gin.H{
		"email": "a@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "login failed: %s", w.Body.String())
	login := decode(t, w)
	token := login["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "Login successful", login["info"])

	// No tasks yet
	w = request(t, r, http.MethodGet, "/api/task", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())

	// Create a task
	w = request(t, r, http.MethodPost, "/api/task", token, gin.H{
		"title": "t1", "body": "b1", "user_id": userID,
	})
	require.Equal(t, http.StatusCreated, w.Code, "task creation failed: %s", w.Body.String())
	taskID := decode(t, w)["task_id"].(string)
	require.NotEmpty(t, taskID)

	// Read it back
	w = request(t, r, http.MethodGet, "/api/task/"+taskID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	task := decode(t, w)
	assert.Equal(t, "t1", task["Title"])
	assert.Equal(t, "b1", task["Body"])
	assert.Equal(t, "al", task["User"])

	// And see it in the listing, keyed by id
	w = request(t, r, http.MethodGet, "/api/task", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listing := decode(t, w)
	assert.Contains(t, listing, taskID)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/user/some-id"},
		{http.MethodPatch, "/user/some-id"},
		{http.MethodDelete, "/user/some-id"},
		{http.MethodGet, "/api/task"},
		{http.MethodPost, "/api/task"},
		{http.MethodGet, "/api/task/some-id"},
		{http.MethodPatch, "/api/task/some-id"},
		{http.MethodDelete, "/api/task/some-id"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := request(t, r, p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Missing authorization header"}`, w.Body.String())
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	r := newTestServer(t)

	w := request(t, r, http.MethodPost, "/users", "", gin.H{
		"username": "al", "email": "a@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := request(t, r, http.MethodPost, "/login", "", gin.H{
		"email": "a@example.com", "password": "wrong",
	})
	unknownEmail := request(t, r, http.MethodPost, "/login", "", gin.H{
		"email": "nobody@example.com", "password": "secret123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String(),
		"unknown email and wrong password must be indistinguishable")
}

func TestTaskCreationWithUnknownOwner(t *testing.T) {
	r := newTestServer(t)

	w := request(t, r, http.MethodPost, "/users", "", gin.H{
		"username": "al", "email": "a@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(t, r, http.MethodPost, "/login", "", gin.H{
		"email": "a@example.com", "password": "secret123",
	})
	token := decode(t, w)["token"].(string)

	w = request(t, r, http.MethodPost, "/api/task", token, gin.H{
		"title": "t1", "body": "b1", "user_id": "no-such-user",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Nothing may have been persisted.
	w = request(t, r, http.MethodGet, "/api/task", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

// TestUserPatchCannotChangePassword verifies the allow-list end to end:
// a PATCH smuggling a password field leaves the credential unchanged.
func TestUserPatchCannotChangePassword(t *testing.T) {
	r := newTestServer(t)

	w := request(t, r, http.MethodPost, "/users", "", gin.H{
		"username": "al", "email": "a@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := decode(t, w)["user_id"].(string)

	w = request(t, r, http.MethodPost, "/login", "", gin.H{
		"email": "a@example.com", "password": "secret123",
	})
	token := decode(t, w)["token"].(string)

	w = request(t, r, http.MethodPatch, "/user/"+userID, token, gin.H{
		"username": "albert",
		"password": "hijacked",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The original password still logs in; the smuggled one does not.
	w = request(t, r, http.MethodPost, "/login", "", gin.H{
		"email": "a@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code, "original password must still work")

	w = request(t, r, http.MethodPost, "/login", "", gin.H{
		"email": "a@example.com", "password": "hijacked",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "smuggled password must not work")

	// The allow-listed field was applied.
	w = request(t, r, http.MethodGet, "/user/"+userID, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "albert", decode(t, w)["Username"])
}

func TestDeletedUserTokenIsRejected(t *testing.T) {
	r := newTestServer(t)

	w := request(t, r, http.MethodPost, "/users", "", gin.H{
		"username": "al", "email": "a@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := decode(t, w)["user_id"].(string)

	w = request(t, r, http.MethodPost, "/login", "", gin.H{
		"email": "a@example.com", "password": "secret123",
	})
	token := decode(t, w)["token"].(string)

	w = request(t, r, http.MethodDelete, "/user/"+userID, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// The still-valid token no longer authorizes anything.
	w = request(t, r, http.MethodGet, "/api/task", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
