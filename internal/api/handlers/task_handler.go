package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avertech/teamboard-backend/internal/service"
	"github.com/avertech/teamboard-backend/pkg/models"
)

// TaskHandler handles the personal task board
type TaskHandler struct {
	taskService service.TaskService
}

func taskServiceRequest(req *models.TaskRequest) *service.TaskRequest {
	return &service.TaskRequest{
		Name:       req.Name,
		Priority:   req.Priority,
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Estimate:   req.Estimate,
		ActualTime: req.ActualTime,
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), taskServiceRequest(&req))
	if err != nil {
		logAPIError(c, "Task.Create", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.List(c.Request.Context())
	if err != nil {
		logAPIError(c, "Task.List", err)
		handleServiceError(c, err)
		return
	}

	resp := make([]models.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), c.Param("id"), taskServiceRequest(&req))
	if err != nil {
		logAPIError(c, "Task.Update", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		logAPIError(c, "Task.Delete", err)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
