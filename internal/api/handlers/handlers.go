package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/service"
	"github.com/avertech/teamboard-backend/internal/timeutil"
	"github.com/avertech/teamboard-backend/pkg/models"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth        *AuthHandler
	Member      *MemberHandler
	Task        *TaskHandler
	ProjectTask *ProjectTaskHandler
	Workgroup   *WorkgroupHandler
	Workspace   *WorkspaceHandler
	Dashboard   *DashboardHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:        &AuthHandler{authService: services.Auth},
		Member:      &MemberHandler{memberService: services.Member},
		Task:        &TaskHandler{taskService: services.Task},
		ProjectTask: &ProjectTaskHandler{projectTaskService: services.ProjectTask},
		Workgroup:   &WorkgroupHandler{workgroupService: services.Workgroup},
		Workspace:   &WorkspaceHandler{workspaceService: services.Workspace},
		Dashboard:   &DashboardHandler{dashboardService: services.Dashboard},
	}
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	case errors.Is(err, service.ErrMemberNotInGroup):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Member does not belong to the workgroup"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func logAPIError(c *gin.Context, action string, err error) {
	log.Printf(
		"[API_ERROR] action=%s method=%s path=%s userID=%v err=%v",
		action,
		c.Request.Method,
		c.FullPath(),
		c.GetString("userID"),
		err,
	)
}

// ============================================
// Response Mappers
// ============================================

func toMemberResponse(m *repository.Member) models.MemberResponse {
	resp := models.MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      m.Role,
		CreatedAt: m.CreatedAt.Format("2006-01-02"),
		UpdatedAt: m.UpdatedAt.Format("2006-01-02"),
	}
	if m.Phone != nil {
		resp.Phone = *m.Phone
	}
	if m.Designation != nil {
		resp.Designation = *m.Designation
	}
	return resp
}

func toTaskResponse(t *repository.Task) models.TaskResponse {
	resp := models.TaskResponse{
		ID:              t.ID,
		Name:            t.Name,
		Priority:        t.Priority,
		Status:          t.Status,
		AssignedTo:      t.AssignedTo,
		EstimateMinutes: t.EstimateMinutes,
		ActualMinutes:   t.ActualMinutes,
		CreatedAt:       t.CreatedAt.Format("2006-01-02"),
		UpdatedAt:       t.UpdatedAt.Format("2006-01-02"),
	}
	if t.StartDate != nil {
		resp.StartDate = t.StartDate.Format("2006-01-02")
	}
	if t.EndDate != nil {
		resp.EndDate = t.EndDate.Format("2006-01-02")
	}
	return resp
}

func toProjectTaskResponse(t *repository.ProjectTask) models.ProjectTaskResponse {
	resp := models.ProjectTaskResponse{
		ID:          t.ID,
		WorkspaceID: t.WorkspaceID,
		ProjectName: t.ProjectName,
		TaskName:    t.TaskName,
		Priority:    t.Priority,
		Status:      t.Status,
		CreatedBy:   t.CreatedBy,
		Estimate:    timeutil.NormalizeEstimate(t.Estimate),
		CreatedAt:   t.CreatedAt.Format("2006-01-02"),
		UpdatedAt:   t.UpdatedAt.Format("2006-01-02"),
	}
	if t.StartDate != nil {
		resp.StartDate = t.StartDate.Format("2006-01-02")
	}
	if t.EndDate != nil {
		resp.EndDate = t.EndDate.Format("2006-01-02")
	}
	if t.ActualHours != nil {
		resp.ActualHours = t.ActualHours.String()
	}
	return resp
}

func toWorkspaceResponse(w *repository.Workspace) models.WorkspaceResponse {
	resp := models.WorkspaceResponse{
		ID:          w.ID,
		WorkgroupID: w.WorkgroupID,
		Name:        w.Name,
		Members:     safeStringSlice(w.MemberIDs),
		CreatedAt:   w.CreatedAt.Format("2006-01-02"),
		UpdatedAt:   w.UpdatedAt.Format("2006-01-02"),
	}
	if w.Description != nil {
		resp.Description = *w.Description
	}
	return resp
}

func toWorkgroupResponse(detail *service.WorkgroupDetail) models.WorkgroupResponse {
	wg := detail.Workgroup
	resp := models.WorkgroupResponse{
		ID:         wg.ID,
		Name:       wg.Name,
		Members:    make([]models.MemberResponse, 0, len(detail.Members)),
		Workspaces: make([]models.WorkspaceResponse, 0, len(detail.Workspaces)),
		IsAdmin:    detail.IsAdmin,
		CreatedAt:  wg.CreatedAt.Format("2006-01-02"),
		UpdatedAt:  wg.UpdatedAt.Format("2006-01-02"),
	}
	if wg.Description != nil {
		resp.Description = *wg.Description
	}
	for _, m := range detail.Members {
		resp.Members = append(resp.Members, toMemberResponse(m))
	}
	for _, ws := range detail.Workspaces {
		resp.Workspaces = append(resp.Workspaces, toWorkspaceResponse(ws))
	}
	return resp
}

// Helper to ensure nil slices become empty slices
func safeStringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
