package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avertech/teamboard-backend/internal/service"
	"github.com/avertech/teamboard-backend/pkg/models"
)

// MemberHandler handles the global member directory
type MemberHandler struct {
	memberService service.MemberService
}

func (h *MemberHandler) Create(c *gin.Context) {
	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), &service.MemberRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Designation: req.Designation,
		Role:        req.Role,
	})
	if err != nil {
		logAPIError(c, "Member.Create", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMemberResponse(member))
}

func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context())
	if err != nil {
		logAPIError(c, "Member.List", err)
		handleServiceError(c, err)
		return
	}

	resp := make([]models.MemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toMemberResponse(m))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MemberHandler) Update(c *gin.Context) {
	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), c.Param("id"), &service.MemberRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Designation: req.Designation,
		Role:        req.Role,
	})
	if err != nil {
		logAPIError(c, "Member.Update", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		logAPIError(c, "Member.Delete", err)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}
