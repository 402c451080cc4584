// Package client is a Go consumer of the teamboard HTTP API: one method
// per endpoint, bearer injection from a Session, and strict response
// decoding. Calls are single-attempt; callers decide what to do with a
// failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/avertech/teamboard-backend/pkg/models"
)

// APIError is a non-2xx response with the backend's message attached.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the teamboard backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session

	// Concurrent identical list fetches share one round trip.
	listGroup singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithSession(session *Session) Option {
	return func(c *Client) { c.session = session }
}

// New creates a client for the API at baseURL (without the /api suffix).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    NewSession(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the credential store, e.g. for Init at startup.
func (c *Client) Session() *Session {
	return c.session
}

// ============================================
// Auth
// ============================================

func (c *Client) Signup(ctx context.Context, req *models.SignupRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/signup", req, nil)
}

// Login authenticates and persists the session only when the backend
// actually returned a token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login",
		&models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}
	if err := c.session.Set(resp.Token, resp.RefreshToken, resp.Role); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh rotates the refresh token and updates the session.
func (c *Client) Refresh(ctx context.Context) error {
	refreshToken := c.session.CurrentRefreshToken()
	if refreshToken == "" {
		return fmt.Errorf("no refresh token in session")
	}

	var resp struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh",
		&models.RefreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		return err
	}
	return c.session.Set(resp.Token, resp.RefreshToken, c.session.CurrentRole())
}

// Logout revokes the refresh token server-side and clears the session
// either way.
func (c *Client) Logout(ctx context.Context) error {
	reqErr := c.doJSON(ctx, http.MethodPost, "/api/auth/logout",
		&models.LogoutRequest{RefreshToken: c.session.CurrentRefreshToken()}, nil)
	if err := c.session.Clear(); err != nil {
		return err
	}
	return reqErr
}

// ============================================
// Members
// ============================================

func (c *Client) ListMembers(ctx context.Context) ([]models.MemberResponse, error) {
	return listShared[models.MemberResponse](c, ctx, "members", "/api/members")
}

func (c *Client) CreateMember(ctx context.Context, req *models.MemberRequest) (*models.MemberResponse, error) {
	if err := validateMemberRequest(req); err != nil {
		return nil, err
	}
	var resp models.MemberResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/members", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateMember(ctx context.Context, id string, req *models.MemberRequest) (*models.MemberResponse, error) {
	if err := validateMemberRequest(req); err != nil {
		return nil, err
	}
	var resp models.MemberResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/members/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteMember(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/members/"+url.PathEscape(id), nil, nil)
}

// ============================================
// Tasks
// ============================================

func (c *Client) ListTasks(ctx context.Context) ([]models.TaskResponse, error) {
	return listShared[models.TaskResponse](c, ctx, "tasks", "/api/tasks")
}

func (c *Client) CreateTask(ctx context.Context, req *models.TaskRequest) (*models.TaskResponse, error) {
	if err := validateTaskRequest(req); err != nil {
		return nil, err
	}
	var resp models.TaskResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/tasks", normalizeTaskRequest(req), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, req *models.TaskRequest) (*models.TaskResponse, error) {
	if err := validateTaskRequest(req); err != nil {
		return nil, err
	}
	var resp models.TaskResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), normalizeTaskRequest(req), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

// ============================================
// Project Tasks
// ============================================

func (c *Client) ListProjectTasks(ctx context.Context, workspaceID, status string) ([]models.ProjectTaskResponse, error) {
	path := "/api/project-tasks/" + url.PathEscape(workspaceID)
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	return listShared[models.ProjectTaskResponse](c, ctx, "project-tasks:"+workspaceID+":"+status, path)
}

func (c *Client) CreateProjectTask(ctx context.Context, workspaceID string, req *models.ProjectTaskRequest) (*models.ProjectTaskResponse, error) {
	if err := validateProjectTaskRequest(req); err != nil {
		return nil, err
	}
	var resp models.ProjectTaskResponse
	path := "/api/project-tasks/" + url.PathEscape(workspaceID)
	if err := c.doJSON(ctx, http.MethodPost, path, normalizeProjectTaskRequest(req), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateProjectTask(ctx context.Context, id string, req *models.ProjectTaskRequest) (*models.ProjectTaskResponse, error) {
	if err := validateProjectTaskRequest(req); err != nil {
		return nil, err
	}
	var resp models.ProjectTaskResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/project-tasks/"+url.PathEscape(id), normalizeProjectTaskRequest(req), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteProjectTask(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/project-tasks/"+url.PathEscape(id), nil, nil)
}

// ============================================
// Workgroups / Workspaces
// ============================================

func (c *Client) ListWorkgroups(ctx context.Context) ([]models.WorkgroupResponse, error) {
	return listShared[models.WorkgroupResponse](c, ctx, "workgroups", "/api/workgroups")
}

func (c *Client) GetWorkgroup(ctx context.Context, id string) (*models.WorkgroupResponse, error) {
	var resp models.WorkgroupResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/workgroups/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateWorkgroup(ctx context.Context, req *models.WorkgroupRequest) (*models.WorkgroupResponse, error) {
	if err := validateWorkgroupRequest(req); err != nil {
		return nil, err
	}
	var resp models.WorkgroupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/workgroups", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateWorkgroup(ctx context.Context, id string, req *models.WorkgroupRequest) (*models.WorkgroupResponse, error) {
	if err := validateWorkgroupRequest(req); err != nil {
		return nil, err
	}
	var resp models.WorkgroupResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/workgroups/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateWorkgroupMembers replaces a workgroup's member roster in bulk.
func (c *Client) UpdateWorkgroupMembers(ctx context.Context, id string, memberIDs []string) (*models.WorkgroupResponse, error) {
	var resp models.WorkgroupResponse
	req := &models.WorkgroupMembersRequest{ID: id, Members: memberIDs}
	if err := c.doJSON(ctx, http.MethodPut, "/api/workgroups/members", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteWorkgroup(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/workgroups/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListWorkspaces(ctx context.Context, workgroupID string) ([]models.WorkspaceResponse, error) {
	path := "/api/workgroups/" + url.PathEscape(workgroupID) + "/workspaces"
	return listShared[models.WorkspaceResponse](c, ctx, "workspaces:"+workgroupID, path)
}

func (c *Client) CreateWorkspace(ctx context.Context, workgroupID string, req *models.WorkspaceRequest) (*models.WorkspaceResponse, error) {
	if err := validateWorkspaceRequest(req); err != nil {
		return nil, err
	}
	var resp models.WorkspaceResponse
	path := "/api/workgroups/" + url.PathEscape(workgroupID) + "/workspaces"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateWorkspace(ctx context.Context, workgroupID, workspaceID string, req *models.WorkspaceRequest) (*models.WorkspaceResponse, error) {
	if err := validateWorkspaceRequest(req); err != nil {
		return nil, err
	}
	var resp models.WorkspaceResponse
	path := "/api/workgroups/" + url.PathEscape(workgroupID) + "/workspaces/" + url.PathEscape(workspaceID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteWorkspace(ctx context.Context, workgroupID, workspaceID string) error {
	path := "/api/workgroups/" + url.PathEscape(workgroupID) + "/workspaces/" + url.PathEscape(workspaceID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// ============================================
// Dashboard
// ============================================

func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var resp models.DashboardStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/dashboard/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportWorkHours downloads the xlsx work-hours report into w.
func (c *Client) ExportWorkHours(ctx context.Context, w io.Writer) error {
	resp, err := c.do(ctx, http.MethodGet, "/api/dashboard/export", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

// ============================================
// Internals
// ============================================

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.BearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest interface{}) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := resp.Status
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(data, &payload) == nil {
		if payload.Error != "" {
			message = payload.Error
		} else if payload.Message != "" {
			message = payload.Message
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// listShared fetches a list endpoint through the singleflight group so
// concurrent identical calls share one round trip.
func listShared[T any](c *Client, ctx context.Context, key, path string) ([]T, error) {
	result, err, _ := c.listGroup.Do(key, func() (interface{}, error) {
		resp, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if err := checkStatus(resp); err != nil {
			return nil, err
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return decodeList[T](data)
	})
	if err != nil {
		return nil, err
	}
	return result.([]T), nil
}

// decodeList accepts a bare JSON array or an object wrapping the array
// under a conventional key. Anything else is an explicit error; a silent
// empty list would hide a broken backend.
func decodeList[T any](data []byte) ([]T, error) {
	var list []T
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("unexpected list payload: %s", snippet(data))
	}
	for _, key := range []string{"data", "items", "tasks", "results"} {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("unexpected %q payload: %w", key, err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("unexpected list payload: %s", snippet(data))
}

func snippet(data []byte) string {
	const max = 120
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
