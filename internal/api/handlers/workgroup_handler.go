package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avertech/teamboard-backend/internal/api/middleware"
	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/service"
	"github.com/avertech/teamboard-backend/internal/types"
	"github.com/avertech/teamboard-backend/pkg/models"
)

// WorkgroupHandler handles workgroups and their membership roster
type WorkgroupHandler struct {
	workgroupService service.WorkgroupService
}

// toWorkgroupListItem maps a workgroup without expanding members or
// workspaces; the list view only needs names and admin flags.
func toWorkgroupListItem(wg *repository.Workgroup, userID, role string) models.WorkgroupResponse {
	resp := models.WorkgroupResponse{
		ID:         wg.ID,
		Name:       wg.Name,
		Members:    []models.MemberResponse{},
		Workspaces: []models.WorkspaceResponse{},
		IsAdmin: role == types.AccountRoleAdmin ||
			(wg.CreatedBy != nil && *wg.CreatedBy == userID),
		CreatedAt: wg.CreatedAt.Format("2006-01-02"),
		UpdatedAt: wg.UpdatedAt.Format("2006-01-02"),
	}
	if wg.Description != nil {
		resp.Description = *wg.Description
	}
	return resp
}

func (h *WorkgroupHandler) Create(c *gin.Context) {
	var req models.WorkgroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workgroup, err := h.workgroupService.Create(c.Request.Context(), middleware.GetUserID(c), &service.WorkgroupRequest{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.Members,
	})
	if err != nil {
		logAPIError(c, "Workgroup.Create", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toWorkgroupListItem(workgroup, middleware.GetUserID(c), middleware.GetRole(c)))
}

func (h *WorkgroupHandler) List(c *gin.Context) {
	workgroups, err := h.workgroupService.List(c.Request.Context())
	if err != nil {
		logAPIError(c, "Workgroup.List", err)
		handleServiceError(c, err)
		return
	}

	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)
	resp := make([]models.WorkgroupResponse, 0, len(workgroups))
	for _, wg := range workgroups {
		resp = append(resp, toWorkgroupListItem(wg, userID, role))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkgroupHandler) Get(c *gin.Context) {
	detail, err := h.workgroupService.Get(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		logAPIError(c, "Workgroup.Get", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWorkgroupResponse(detail))
}

// Update handles PUT /workgroups/:id. The bulk roster route PUT
// /workgroups/members shares the segment, so "members" dispatches there.
func (h *WorkgroupHandler) Update(c *gin.Context) {
	if c.Param("id") == "members" {
		h.UpdateMembers(c)
		return
	}

	var req models.WorkgroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workgroup, err := h.workgroupService.Update(c.Request.Context(), c.Param("id"), &service.WorkgroupRequest{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.Members,
	})
	if err != nil {
		logAPIError(c, "Workgroup.Update", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWorkgroupListItem(workgroup, middleware.GetUserID(c), middleware.GetRole(c)))
}

func (h *WorkgroupHandler) UpdateMembers(c *gin.Context) {
	var req models.WorkgroupMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workgroup, err := h.workgroupService.UpdateMembers(c.Request.Context(), req.ID, req.Members)
	if err != nil {
		logAPIError(c, "Workgroup.UpdateMembers", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWorkgroupListItem(workgroup, middleware.GetUserID(c), middleware.GetRole(c)))
}

func (h *WorkgroupHandler) Delete(c *gin.Context) {
	if err := h.workgroupService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		logAPIError(c, "Workgroup.Delete", err)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workgroup deleted"})
}
