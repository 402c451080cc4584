package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avertech/teamboard-backend/internal/service"
	"github.com/avertech/teamboard-backend/pkg/models"
)

// ProjectTaskHandler handles workspace-scoped project tasks
type ProjectTaskHandler struct {
	projectTaskService service.ProjectTaskService
}

func projectTaskServiceRequest(req *models.ProjectTaskRequest) *service.ProjectTaskRequest {
	return &service.ProjectTaskRequest{
		ProjectName: req.ProjectName,
		TaskName:    req.TaskName,
		Priority:    req.Priority,
		Status:      req.Status,
		CreatedBy:   req.CreatedBy,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Estimate:    req.Estimate,
		ActualHours: req.ActualHours,
	}
}

func (h *ProjectTaskHandler) Create(c *gin.Context) {
	workspaceID := c.Param("workspaceId")

	var req models.ProjectTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.projectTaskService.Create(c.Request.Context(), workspaceID, projectTaskServiceRequest(&req))
	if err != nil {
		logAPIError(c, "ProjectTask.Create", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectTaskResponse(task))
}

func (h *ProjectTaskHandler) List(c *gin.Context) {
	workspaceID := c.Param("workspaceId")
	status := c.Query("status")

	tasks, err := h.projectTaskService.ListByWorkspace(c.Request.Context(), workspaceID, status)
	if err != nil {
		logAPIError(c, "ProjectTask.List", err)
		handleServiceError(c, err)
		return
	}

	resp := make([]models.ProjectTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toProjectTaskResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectTaskHandler) Update(c *gin.Context) {
	var req models.ProjectTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.projectTaskService.Update(c.Request.Context(), c.Param("id"), projectTaskServiceRequest(&req))
	if err != nil {
		logAPIError(c, "ProjectTask.Update", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectTaskResponse(task))
}

func (h *ProjectTaskHandler) Delete(c *gin.Context) {
	if err := h.projectTaskService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		logAPIError(c, "ProjectTask.Delete", err)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project task deleted"})
}
