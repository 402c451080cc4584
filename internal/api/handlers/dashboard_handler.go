package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avertech/teamboard-backend/internal/export"
	"github.com/avertech/teamboard-backend/internal/service"
)

// DashboardHandler serves the overview aggregates and the xlsx export
type DashboardHandler struct {
	dashboardService service.DashboardService
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		logAPIError(c, "Dashboard.Stats", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) Export(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		logAPIError(c, "Dashboard.Export", err)
		handleServiceError(c, err)
		return
	}

	workbook, err := export.WorkHoursWorkbook(stats)
	if err != nil {
		logAPIError(c, "Dashboard.Export", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("work-hours-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		logAPIError(c, "Dashboard.Export", err)
	}
}
