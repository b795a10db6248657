package handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskdeck/config"
	"taskdeck/internal/delivery/http/middleware"
	"taskdeck/internal/delivery/http/router"
	"taskdeck/internal/delivery/http/router/handler"
	"taskdeck/internal/delivery/http/validator"
	"taskdeck/internal/infra/auth"
	"taskdeck/internal/infra/persistence/postgres"
	"taskdeck/internal/usecase/impl"
)

// newTestApp wires the full stack against an in-memory database: real
// handlers, real services, real repositories, real token signing.
func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.SecretKey.Token = strings.Repeat("0123456789abcdef", 4)
	cfg.Tasks = &config.TasksConfig{ListTakeLimit: 100}

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, postgres.Migrate(db))

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	txManager := postgres.NewTransactionManager(db)

	hasher := auth.NewHMACHasher()
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userUsecase := impl.NewUserService(impl.UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})
	taskUsecase := impl.NewTaskService(impl.TaskServiceParams{
		TxManager: txManager,
		TaskRepo:  taskRepo,
		Logger:    logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := router.NewRouter(router.RouterParams{
		UserHandler:         handler.NewUserHandler(userUsecase, logger),
		TaskHandler:         handler.NewTaskHandler(taskUsecase, cfg, logger),
		AuthMiddleware:      middleware.NewAuthMiddleware(tokenService),
		RequestIDMiddleware: middleware.NewRequestIDMiddleware(logger),
	})
	r.RegisterRoutes(e)

	return e
}

func doJSON(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func TestAccountAndTaskLifecycle(t *testing.T) {
	e := newTestApp(t)

	// Register.
	rec := doJSON(e, http.MethodPost, "/api/users", "", map[string]any{
		"displayName": "Ann",
		"email":       "Ann@Example.com",
		"password":    "Password123!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Token string `json:"token"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	assert.Equal(t, "ann@example.com", registered.Email)
	assert.NotEmpty(t, registered.Token)
	// The password never appears in any response.
	assert.NotContains(t, rec.Body.String(), "Password123!")
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	// A second registration with the same email in different case conflicts.
	rec = doJSON(e, http.MethodPost, "/api/users", "", map[string]any{
		"displayName": "Imposter",
		"email":       "ANN@EXAMPLE.COM",
		"password":    "Password456!",
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Login with the right password.
	rec = doJSON(e, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "ann@example.com",
		"password": "Password123!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loggedIn struct {
		ID    int64  `json:"id"`
		Token string `json:"token"`
	}
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &loggedIn))
	token := loggedIn.Token
	require.NotEmpty(t, token)

	// Wrong password and unknown email produce the same status.
	rec = doJSON(e, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "ann@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(e, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "ghost@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Task routes refuse requests without a token.
	rec = doJSON(e, http.MethodPost, "/api/tasks", "", map[string]any{
		"title":  "Buy milk",
		"userId": loggedIn.ID,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Create a task.
	rec = doJSON(e, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":  "Buy milk",
		"userId": loggedIn.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.ID)

	// A same-title create for the same owner conflicts, ignoring case.
	rec = doJSON(e, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":  "BUY MILK",
		"userId": loggedIn.ID,
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// List the owner's tasks.
	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/tasks?userId=%d&skip=0&take=10", loggedIn.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var listed []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Buy milk", listed[0].Title)

	// An oversized take is rejected at the boundary.
	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/tasks?userId=%d&take=101", loggedIn.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Update the task.
	rec = doJSON(e, http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), token, map[string]any{
		"id":     created.ID,
		"title":  "Buy oat milk",
		"isDone": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// A route/body id mismatch is rejected before anything is written.
	rec = doJSON(e, http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), token, map[string]any{
		"id":    created.ID + 1,
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-positive ids are invalid input, not lookups.
	rec = doJSON(e, http.MethodGet, "/api/tasks/0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// Delete the account; its tasks go with it.
	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/users/%d", loggedIn.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	// The login no longer works.
	rec = doJSON(e, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "ann@example.com",
		"password": "Password123!",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func doRaw(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestEmptyBodyRejected(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/api/users", "", map[string]any{
		"displayName": "Ann",
		"email":       "ann@example.com",
		"password":    "Password123!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		ID    int64  `json:"id"`
		Token string `json:"token"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	token := registered.Token

	// Every body-carrying route answers 400 to a missing or null body,
	// never a 500 out of the recover middleware.
	cases := []struct {
		method string
		path   string
		token  string
	}{
		{http.MethodPost, "/api/users", ""},
		{http.MethodPost, "/api/users/login", ""},
		{http.MethodPatch, fmt.Sprintf("/api/users/%d", registered.ID), token},
		{http.MethodPost, "/api/tasks", token},
		{http.MethodPut, "/api/tasks/1", token},
	}
	for _, tc := range cases {
		rec := doRaw(e, tc.method, tc.path, tc.token, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code,
			"%s %s empty body: %s", tc.method, tc.path, rec.Body.String())

		rec = doRaw(e, tc.method, tc.path, tc.token, "null")
		assert.Equal(t, http.StatusBadRequest, rec.Code,
			"%s %s null body: %s", tc.method, tc.path, rec.Body.String())
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/api/users", "", map[string]any{
		"displayName": "Ann",
		"email":       "not-an-email",
		"password":    "Password123!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")

	rec = doJSON(e, http.MethodPost, "/api/users", "", map[string]any{
		"email":    "ann@example.com",
		"password": "Password123!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRequiresCredentials(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/api/users/login", "", map[string]any{
		"email": "ann@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/users/login", "", map[string]any{
		"password": "Password123!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTamperedTokenRejected(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/api/users", "", map[string]any{
		"displayName": "Ann",
		"email":       "ann@example.com",
		"password":    "Password123!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		ID    int64  `json:"id"`
		Token string `json:"token"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &registered))

	sig := registered.Token[len(registered.Token)-1]
	flipped := "A"
	if sig == 'A' {
		flipped = "B"
	}
	tampered := registered.Token[:len(registered.Token)-1] + flipped
	rec = doJSON(e, http.MethodGet, "/api/tasks?userId=1", tampered, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
