package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avertech/teamboard-backend/internal/types"
	"github.com/avertech/teamboard-backend/pkg/models"
)

func TestLoginPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(models.LoginResponse{
			Token: "token-1", RefreshToken: "refresh-1", Role: "admin",
		})
	}))
	defer srv.Close()

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	c := New(srv.URL, WithSession(NewSession(sessionPath)))

	resp, err := c.Login(context.Background(), "a@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, "token-1", c.Session().BearerToken())

	// A second client picks the session up from disk.
	other := New(srv.URL, WithSession(NewSession(sessionPath)))
	require.NoError(t, other.Session().Init())
	assert.Equal(t, "token-1", other.Session().BearerToken())
	assert.Equal(t, "admin", other.Session().CurrentRole())
}

func TestLoginWithoutTokenDoesNotPersist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.LoginResponse{Role: "user"})
	}))
	defer srv.Close()

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	c := New(srv.URL, WithSession(NewSession(sessionPath)))

	_, err := c.Login(context.Background(), "a@example.com", "secret")
	require.Error(t, err)
	assert.Empty(t, c.Session().BearerToken())
	_, statErr := os.Stat(sessionPath)
	assert.True(t, os.IsNotExist(statErr), "no session file written")
}

func TestLogoutClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	session := NewSession(sessionPath)
	require.NoError(t, session.Set("token-1", "refresh-1", "user"))

	c := New(srv.URL, WithSession(session))
	require.NoError(t, c.Logout(context.Background()))

	assert.Empty(t, session.BearerToken())
	_, statErr := os.Stat(sessionPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	session := NewSession("")
	require.NoError(t, session.Set("token-1", "", "user"))
	c := New(srv.URL, WithSession(session))

	_, err := c.ListMembers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", gotAuth)
}

func TestListDecoding(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantLen int
		wantErr bool
	}{
		{name: "bare array", payload: `[{"id":"1","name":"A"},{"id":"2","name":"B"}]`, wantLen: 2},
		{name: "data wrapper", payload: `{"data":[{"id":"1","name":"A"}]}`, wantLen: 1},
		{name: "tasks wrapper", payload: `{"tasks":[{"id":"1","name":"A"}]}`, wantLen: 1},
		{name: "empty array", payload: `[]`, wantLen: 0},
		{name: "object without list", payload: `{"count":2}`, wantErr: true},
		{name: "scalar", payload: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			c := New(srv.URL)
			list, err := c.ListTasks(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, list, tt.wantLen)
		})
	}
}

func TestAPIErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid input"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateMember(context.Background(), &models.MemberRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid input", apiErr.Message)
}

func TestConcurrentListsShareOneRequest(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ListMembers(context.Background())
			assert.NoError(t, err)
		}()
	}

	// Let the goroutines pile onto the in-flight request.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestTaskRequestNormalizedBeforeSend(t *testing.T) {
	var got models.TaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.TaskResponse{ID: "1"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateTask(context.Background(), &models.TaskRequest{
		Name:       "Task",
		AssignedTo: "Anita",
		Status:     "Done",   // unknown, substituted
		Priority:   "Urgent", // unknown, substituted
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusNotStarted, got.Status)
	assert.Equal(t, types.PriorityMedium, got.Priority)
}

func TestProjectTaskEstimateNormalizedBeforeSend(t *testing.T) {
	var got models.ProjectTaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.ProjectTaskResponse{ID: "1"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateProjectTask(context.Background(), "ws-1", &models.ProjectTaskRequest{
		TaskName: "Task",
		Estimate: "5h",
	})
	require.NoError(t, err)
	assert.Equal(t, "5 hours", got.Estimate)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "2:05", FormatMinutes(125))
	assert.Equal(t, "0:00", FormatMinutes(0))
}

func TestRequiredFieldsCheckedLocally(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{
			name:  "member without name",
			call:  func() error { _, err := c.CreateMember(ctx, &models.MemberRequest{Email: "a@b.dev"}); return err },
			field: "name",
		},
		{
			name:  "member without email",
			call:  func() error { _, err := c.UpdateMember(ctx, "m1", &models.MemberRequest{Name: "Anita"}); return err },
			field: "email",
		},
		{
			name:  "task without name",
			call:  func() error { _, err := c.CreateTask(ctx, &models.TaskRequest{AssignedTo: "Anita"}); return err },
			field: "name",
		},
		{
			name:  "task without assignee",
			call:  func() error { _, err := c.UpdateTask(ctx, "t1", &models.TaskRequest{Name: "Ship it"}); return err },
			field: "assignedTo",
		},
		{
			name:  "project task without task name",
			call:  func() error { _, err := c.CreateProjectTask(ctx, "ws1", &models.ProjectTaskRequest{ProjectName: "API"}); return err },
			field: "taskName",
		},
		{
			name:  "workgroup without name",
			call:  func() error { _, err := c.CreateWorkgroup(ctx, &models.WorkgroupRequest{Description: "d"}); return err },
			field: "name",
		},
		{
			name:  "workspace without name",
			call:  func() error { _, err := c.CreateWorkspace(ctx, "wg1", &models.WorkspaceRequest{}); return err },
			field: "name",
		},
		{
			name:  "whitespace-only name",
			call:  func() error { _, err := c.UpdateWorkspace(ctx, "wg1", "ws1", &models.WorkspaceRequest{Name: "   "}); return err },
			field: "name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.EqualValues(t, 0, atomic.LoadInt32(&hits), "rejected submissions must not reach the network")
}
