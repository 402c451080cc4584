package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avertech/teamboard-backend/internal/service"
	"github.com/avertech/teamboard-backend/pkg/models"
)

// WorkspaceHandler handles workspaces nested under workgroups
type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	workgroupID := c.Param("id")

	var req models.WorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workspace, err := h.workspaceService.Create(c.Request.Context(), workgroupID, &service.WorkspaceRequest{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.Members,
	})
	if err != nil {
		logAPIError(c, "Workspace.Create", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toWorkspaceResponse(workspace))
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := h.workspaceService.ListByWorkgroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		logAPIError(c, "Workspace.List", err)
		handleServiceError(c, err)
		return
	}

	resp := make([]models.WorkspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		resp = append(resp, toWorkspaceResponse(ws))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	var req models.WorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workspace, err := h.workspaceService.Update(c.Request.Context(), c.Param("wsId"), &service.WorkspaceRequest{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.Members,
	})
	if err != nil {
		logAPIError(c, "Workspace.Update", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	if err := h.workspaceService.Delete(c.Request.Context(), c.Param("wsId")); err != nil {
		logAPIError(c, "Workspace.Delete", err)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workspace deleted"})
}
