package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/auth"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Board{}, &model.Task{}))

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	jwtService := auth.NewJWTService("test-secret", 30*time.Minute)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	boardService := service.NewBoardService(boardRepo, taskRepo)
	taskService := service.NewTaskService(taskRepo, boardRepo)

	e := echo.New()
	Register(
		e,
		jwtService,
		authService,
		handler.NewAuthHandler(authService, 30*time.Minute),
		handler.NewUserHandler(userService),
		handler.NewBoardHandler(boardService),
		handler.NewTaskHandler(taskService),
	)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, e *echo.Echo, email, password string) {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     "Test User",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func login(t *testing.T, e *echo.Echo, email, password string) *http.Cookie {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == handler.SessionCookieName {
			require.NotEmpty(t, cookie.Value)
			return cookie
		}
	}
	t.Fatal("session cookie not set by login")
	return nil
}

func decodeID(t *testing.T, rec *httptest.ResponseRecorder) uint {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	id, ok := body["id"].(float64)
	require.True(t, ok, "response has no id: %s", rec.Body.String())
	return uint(id)
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestServer(t)

	register(t, e, "a@x.com", "pw1pw1")
	_ = login(t, e, "a@x.com", "pw1pw1")

	// Wrong password fails with 401.
	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "pw2pw2",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Re-registering the same email conflicts.
	rec = doJSON(t, e, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "a@x.com",
		"password": "pw3pw3",
		"name":     "Imposter",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSecuredRoutesRequireSession(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/api/boards", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/boards", nil, &http.Cookie{
		Name:  handler.SessionCookieName,
		Value: "not.a.token",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	e := newTestServer(t)
	register(t, e, "a@x.com", "pw1pw1")
	_ = login(t, e, "a@x.com", "pw1pw1")

	// A token whose remaining lifetime sits inside the safety margin counts as expired.
	shortLived := auth.NewJWTService("test-secret", 30*time.Second)
	token, err := shortLived.Issue(1)
	require.NoError(t, err)

	rec := doJSON(t, e, http.MethodGet, "/api/boards", nil, &http.Cookie{
		Name:  handler.SessionCookieName,
		Value: token,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOwnershipIsNeverLeaked(t *testing.T) {
	e := newTestServer(t)

	register(t, e, "a@x.com", "pw1pw1")
	register(t, e, "c@x.com", "pw2pw2")
	alice := login(t, e, "a@x.com", "pw1pw1")
	carol := login(t, e, "c@x.com", "pw2pw2")

	rec := doJSON(t, e, http.MethodPost, "/api/boards", map[string]string{"name": "B1"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	boardID := decodeID(t, rec)

	rec = doJSON(t, e, http.MethodPost, "/api/tasks", map[string]any{
		"board_id": boardID,
		"name":     "T1",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	taskID := decodeID(t, rec)

	// A different user sees 404, identical to a nonexistent id.
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), nil, carol)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/tasks/99999", nil, carol)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Carol cannot attach tasks to Alice's board either.
	rec = doJSON(t, e, http.MethodPost, "/api/tasks", map[string]any{
		"board_id": boardID,
		"name":     "intruder",
	}, carol)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The owner still sees the task.
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), nil, alice)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvalidStatusRejected(t *testing.T) {
	e := newTestServer(t)

	register(t, e, "a@x.com", "pw1pw1")
	alice := login(t, e, "a@x.com", "pw1pw1")

	rec := doJSON(t, e, http.MethodPost, "/api/boards", map[string]string{"name": "B1"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	boardID := decodeID(t, rec)

	rec = doJSON(t, e, http.MethodPost, "/api/tasks", map[string]any{
		"board_id": boardID,
		"name":     "T1",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	taskID := decodeID(t, rec)

	rec = doJSON(t, e, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", taskID), map[string]string{
		"status": "archived",
	}, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Status is unchanged.
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var task model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, model.StatusPlanned, task.Status)

	// A valid transition works.
	rec = doJSON(t, e, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", taskID), map[string]string{
		"status": "done",
	}, alice)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteBoardCascades(t *testing.T) {
	e := newTestServer(t)

	register(t, e, "a@x.com", "pw1pw1")
	alice := login(t, e, "a@x.com", "pw1pw1")

	rec := doJSON(t, e, http.MethodPost, "/api/boards", map[string]string{"name": "B1"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	boardID := decodeID(t, rec)

	rec = doJSON(t, e, http.MethodPost, "/api/tasks", map[string]any{
		"board_id": boardID,
		"name":     "T1",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	taskID := decodeID(t, rec)

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/boards/%d", boardID), nil, alice)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), nil, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBoardListIncludesTaskCounts(t *testing.T) {
	e := newTestServer(t)

	register(t, e, "a@x.com", "pw1pw1")
	alice := login(t, e, "a@x.com", "pw1pw1")

	rec := doJSON(t, e, http.MethodPost, "/api/boards", map[string]string{"name": "Busy"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	busyID := decodeID(t, rec)

	rec = doJSON(t, e, http.MethodPost, "/api/boards", map[string]string{"name": "Empty"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, name := range []string{"T1", "T2"} {
		rec = doJSON(t, e, http.MethodPost, "/api/tasks", map[string]any{
			"board_id": busyID,
			"name":     name,
		}, alice)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = doJSON(t, e, http.MethodGet, "/api/boards", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	var boards []model.BoardWithCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &boards))
	require.Len(t, boards, 2)

	counts := map[string]int64{}
	for _, b := range boards {
		counts[b.Name] = b.TasksCount
	}
	assert.Equal(t, int64(2), counts["Busy"])
	assert.Equal(t, int64(0), counts["Empty"])
}

func TestUpdateProfileChangesOnlyName(t *testing.T) {
	e := newTestServer(t)

	register(t, e, "a@x.com", "pw1pw1")
	alice := login(t, e, "a@x.com", "pw1pw1")

	rec := doJSON(t, e, http.MethodPatch, "/api/users/me", map[string]string{"name": "Renamed"}, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, "a@x.com", user.Email)

	// Login still works with the original password.
	_ = login(t, e, "a@x.com", "pw1pw1")
}

func TestPartialTaskUpdate(t *testing.T) {
	e := newTestServer(t)

	register(t, e, "a@x.com", "pw1pw1")
	alice := login(t, e, "a@x.com", "pw1pw1")

	rec := doJSON(t, e, http.MethodPost, "/api/boards", map[string]string{"name": "B1"}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	boardID := decodeID(t, rec)

	rec = doJSON(t, e, http.MethodPost, "/api/tasks", map[string]any{
		"board_id":    boardID,
		"name":        "T1",
		"description": "original description",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	taskID := decodeID(t, rec)

	// Renaming must not clear the description.
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), map[string]any{
		"name": "T1 renamed",
	}, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	var task model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, "T1 renamed", task.Name)
	require.NotNil(t, task.Description)
	assert.Equal(t, "original description", *task.Description)
}
