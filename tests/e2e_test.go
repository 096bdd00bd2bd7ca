package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taskcore/task-tracker-api/internal/handler"
	"github.com/taskcore/task-tracker-api/internal/model"
	"github.com/taskcore/task-tracker-api/internal/repo"
	"github.com/taskcore/task-tracker-api/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// setupE2EServer runs the full router over the in-memory store.
func setupE2EServer(t *testing.T) *httptest.Server {
	t.Helper()

	users := repo.NewMemoryUserRepo()
	logger := zap.NewNop()

	authService := service.NewAuthService(users, "e2e-secret", time.Hour)
	taskService := service.NewTaskService(repo.NewMemoryTaskRepo(), users)
	projectService := service.NewProjectService(repo.NewMemoryProjectRepo(), users)

	r := handler.NewRouter(
		handler.NewAuthHandler(authService, logger),
		handler.NewTaskHandler(taskService, logger),
		handler.NewProjectHandler(projectService, logger),
		authService,
		logger,
	)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token, body string) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		json.NewDecoder(resp.Body).Decode(&env)
	}
	return resp, env
}

// registerAndLogin provisions a user through the public API and returns a
// bearer token.
func registerAndLogin(t *testing.T, server *httptest.Server, username string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":"hunter22"}`, username)
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestE2E_TaskWorkflow(t *testing.T) {
	server := setupE2EServer(t)

	aliceToken := registerAndLogin(t, server, "alice")
	bobToken := registerAndLogin(t, server, "bob")

	// 1. Create task
	resp, env := doJSON(t, http.MethodPost, server.URL+"/api/tasks", aliceToken, `{"title":"Write spec"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/api/tasks/")

	var created model.Task
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Nil(t, created.Description)
	assert.Nil(t, created.DueDate)

	// 2. Update status
	resp, env = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/tasks/%s", server.URL, created.ID), aliceToken, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated model.Task
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, model.StatusCompleted, updated.Status)
	assert.Equal(t, "Write spec", updated.Title)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	// 3. Another user cannot read it
	resp, env = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/tasks/%s", server.URL, created.ID), bobToken, "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", env.Error.Code)

	// 4. List stays owner-scoped
	resp, env = doJSON(t, http.MethodGet, server.URL+"/api/tasks", bobToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", string(env.Data))

	// 5. Delete, then verify it is gone
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/tasks/%s", server.URL, created.ID), aliceToken, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, env = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/tasks/%s", server.URL, created.ID), aliceToken, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "TASK_NOT_FOUND", env.Error.Code)

	// 6. Deleting again is an error, not a silent no-op
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/tasks/%s", server.URL, created.ID), aliceToken, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestE2E_ValidationErrors(t *testing.T) {
	server := setupE2EServer(t)
	token := registerAndLogin(t, server, "alice")

	resp, env := doJSON(t, http.MethodPost, server.URL+"/api/tasks", token, `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	var details []map[string]string
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	require.Len(t, details, 1)
	assert.Equal(t, "title", details[0]["field"])
}

func TestE2E_ProjectWorkflow(t *testing.T) {
	server := setupE2EServer(t)

	aliceToken := registerAndLogin(t, server, "alice")
	bobToken := registerAndLogin(t, server, "bob")

	resp, env := doJSON(t, http.MethodPost, server.URL+"/api/projects", aliceToken, `{"name":"Roadmap","description":"H2 plans"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var project model.Project
	require.NoError(t, json.Unmarshal(env.Data, &project))
	assert.Equal(t, "Roadmap", project.Name)

	resp, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/projects/%s", server.URL, project.ID), bobToken, `{"name":"Hijack"}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/projects/%s", server.URL, project.ID), aliceToken, `{"description":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated model.Project
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Roadmap", updated.Name)
	assert.Equal(t, "", updated.Description)
}

func TestE2E_AuthFlow(t *testing.T) {
	server := setupE2EServer(t)

	t.Run("resource routes require a token", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/tasks", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		body := `{"username":"carol","password":"hunter22"}`
		resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, env := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", body)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "USERNAME_TAKEN", env.Error.Code)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", `{"username":"dave","password":"123"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "WEAK_PASSWORD", env.Error.Code)
	})

	t.Run("bad login rejected", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", `{"username":"carol","password":"wrong-pass"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	})
}

func TestE2E_HealthCheck(t *testing.T) {
	server := setupE2EServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	json.NewDecoder(resp.Body).Decode(&health)
	assert.Equal(t, "ok", health["status"])
}
