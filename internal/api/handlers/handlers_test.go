package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avertech/teamboard-backend/internal/api/middleware"
	"github.com/avertech/teamboard-backend/internal/config"
	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/service"
	"github.com/avertech/teamboard-backend/internal/types"
	"github.com/avertech/teamboard-backend/pkg/models"
)

type testAPI struct {
	router   *gin.Engine
	services *service.Services
	repos    *repository.Repositories
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     1,
		RefreshExpiry: 1,
	}
	repos := repository.NewRepositories()
	services := service.NewServices(&service.ServiceDeps{
		Config: cfg,
		Repos:  repos,
	})
	h := NewHandlers(services)

	r := gin.New()
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(services.Auth))

	adminOnly := middleware.RequireRole(types.AccountRoleAdmin)
	protected.GET("/members", h.Member.List)
	protected.POST("/members", adminOnly, h.Member.Create)
	protected.PUT("/members/:id", adminOnly, h.Member.Update)
	protected.DELETE("/members/:id", adminOnly, h.Member.Delete)

	protected.GET("/tasks", h.Task.List)
	protected.POST("/tasks", h.Task.Create)
	protected.PUT("/tasks/:id", h.Task.Update)
	protected.DELETE("/tasks/:id", h.Task.Delete)

	protected.GET("/project-tasks/:workspaceId", h.ProjectTask.List)
	protected.POST("/project-tasks/:workspaceId", h.ProjectTask.Create)
	protected.PUT("/project-tasks/:id", h.ProjectTask.Update)
	protected.DELETE("/project-tasks/:id", h.ProjectTask.Delete)

	protected.GET("/workgroups", h.Workgroup.List)
	protected.POST("/workgroups", h.Workgroup.Create)
	protected.GET("/workgroups/:id", h.Workgroup.Get)
	protected.PUT("/workgroups/:id", h.Workgroup.Update)
	protected.DELETE("/workgroups/:id", h.Workgroup.Delete)
	protected.GET("/workgroups/:id/workspaces", h.Workspace.List)
	protected.POST("/workgroups/:id/workspaces", h.Workspace.Create)
	protected.PUT("/workgroups/:id/workspaces/:wsId", h.Workspace.Update)
	protected.DELETE("/workgroups/:id/workspaces/:wsId", h.Workspace.Delete)

	protected.GET("/dashboard/stats", h.Dashboard.Stats)
	protected.GET("/dashboard/export", h.Dashboard.Export)

	return &testAPI{router: r, services: services, repos: repos}
}

func (a *testAPI) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) loginAs(t *testing.T, role string) string {
	t.Helper()
	ctx := context.Background()
	email := role + "@example.com"
	_, err := a.services.Auth.Signup(ctx, role, email, "secret123", role)
	require.NoError(t, err)
	_, token, _, err := a.services.Auth.Login(ctx, email, "secret123")
	require.NoError(t, err)
	return token
}

func TestAuthEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.request(t, http.MethodPost, "/api/auth/signup", "", models.SignupRequest{
		Username: "anita", Email: "anita@example.com", Password: "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = api.request(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email: "anita@example.com", Password: "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, types.AccountRoleUser, login.Role)

	w = api.request(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email: "anita@example.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/members", "/api/tasks", "/api/workgroups", "/api/dashboard/stats"} {
		w := api.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := api.request(t, http.MethodGet, "/api/members", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMemberRoutesAdminGate(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.loginAs(t, types.AccountRoleUser)
	adminToken := api.loginAs(t, types.AccountRoleAdmin)

	body := models.MemberRequest{Name: "Anita Rai", Email: "anita.m@example.com"}

	w := api.request(t, http.MethodPost, "/api/members", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.request(t, http.MethodPost, "/api/members", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.MemberResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	// Reads stay open to both roles and return a bare array.
	w = api.request(t, http.MethodGet, "/api/members", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.MemberResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = api.request(t, http.MethodDelete, "/api/members/"+created.ID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = api.request(t, http.MethodDelete, "/api/members/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = api.request(t, http.MethodDelete, "/api/members/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskEndpointsExposeMinutes(t *testing.T) {
	api := newTestAPI(t)
	token := api.loginAs(t, types.AccountRoleUser)

	w := api.request(t, http.MethodPost, "/api/tasks", token, models.TaskRequest{
		Name:       "Wire reporting endpoint",
		AssignedTo: "Anita Rai",
		Estimate:   "2:05",
		ActualTime: "90",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var task models.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, 125, task.EstimateMinutes)
	assert.Equal(t, 90, task.ActualMinutes)

	w = api.request(t, http.MethodPost, "/api/tasks", token, models.TaskRequest{
		Name: "No assignee",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectTaskStatusFilter(t *testing.T) {
	api := newTestAPI(t)
	token := api.loginAs(t, types.AccountRoleUser)
	ctx := context.Background()

	workgroup := &repository.Workgroup{Name: "Platform"}
	require.NoError(t, api.repos.WorkgroupRepo.Create(ctx, workgroup))
	workspace := &repository.Workspace{WorkgroupID: workgroup.ID, Name: "API"}
	require.NoError(t, api.repos.WorkspaceRepo.Create(ctx, workspace))

	for _, status := range []string{types.StatusNotStarted, types.StatusInProgress} {
		w := api.request(t, http.MethodPost, "/api/project-tasks/"+workspace.ID, token, models.ProjectTaskRequest{
			TaskName: "Task " + status,
			Status:   status,
			Estimate: "5h",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := api.request(t, http.MethodGet, "/api/project-tasks/"+workspace.ID+"?status=In+Progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []models.ProjectTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, types.StatusInProgress, list[0].Status)
	assert.Equal(t, "5 hours", list[0].Estimate)
}

func TestWorkgroupRoutes(t *testing.T) {
	api := newTestAPI(t)
	token := api.loginAs(t, types.AccountRoleUser)
	ctx := context.Background()

	member := &repository.Member{Name: "Anita Rai", Email: "anita@example.com", Role: types.RoleMember}
	require.NoError(t, api.repos.MemberRepo.Create(ctx, member))

	w := api.request(t, http.MethodPost, "/api/workgroups", token, models.WorkgroupRequest{
		Name:    "Platform",
		Members: []string{member.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.WorkgroupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.IsAdmin, "creator administers the workgroup")

	// Bulk roster update rides PUT /workgroups/members.
	w = api.request(t, http.MethodPut, "/api/workgroups/members", token, models.WorkgroupMembersRequest{
		ID:      created.ID,
		Members: []string{member.ID},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Nested workspace create enforces the roster subset.
	w = api.request(t, http.MethodPost, "/api/workgroups/"+created.ID+"/workspaces", token, models.WorkspaceRequest{
		Name:    "API",
		Members: []string{"not-in-roster"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.request(t, http.MethodPost, "/api/workgroups/"+created.ID+"/workspaces", token, models.WorkspaceRequest{
		Name:    "API",
		Members: []string{member.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Detail expands members and workspaces.
	w = api.request(t, http.MethodGet, "/api/workgroups/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail models.WorkgroupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Members, 1)
	assert.Equal(t, member.Name, detail.Members[0].Name)
	require.Len(t, detail.Workspaces, 1)
	assert.Equal(t, "API", detail.Workspaces[0].Name)
}

func TestDashboardEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := api.loginAs(t, types.AccountRoleUser)
	ctx := context.Background()

	member := &repository.Member{Name: "Anita Rai", Email: "anita@example.com", Role: types.RoleMember}
	require.NoError(t, api.repos.MemberRepo.Create(ctx, member))
	require.NoError(t, api.repos.TaskRepo.Create(ctx, &repository.Task{
		Name: "T1", AssignedTo: member.Name, Status: types.StatusInProgress, ActualMinutes: 120,
	}))

	w := api.request(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Members)
	assert.Equal(t, 1, stats.Tasks)
	require.Len(t, stats.MemberHours, 1)
	assert.Equal(t, "2", stats.MemberHours[0].Hours.String())

	w = api.request(t, http.MethodGet, "/api/dashboard/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
}
