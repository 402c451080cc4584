package client

import (
	"github.com/avertech/teamboard-backend/internal/timeutil"
	"github.com/avertech/teamboard-backend/internal/types"
	"github.com/avertech/teamboard-backend/pkg/models"
)

// The forms are lenient where the server is strict: unknown enum values
// are substituted with defaults before the request leaves the client.

func normalizeTaskRequest(req *models.TaskRequest) *models.TaskRequest {
	out := *req
	out.Status = types.NormalizeStatus(out.Status)
	out.Priority = types.NormalizePriority(out.Priority)
	return &out
}

func normalizeProjectTaskRequest(req *models.ProjectTaskRequest) *models.ProjectTaskRequest {
	out := *req
	out.Status = types.NormalizeStatus(out.Status)
	out.Priority = types.NormalizePriority(out.Priority)
	out.Estimate = timeutil.NormalizeEstimate(out.Estimate)
	return &out
}

// FormatMinutes renders stored task minutes the way the edit forms show
// them, e.g. 125 -> "2:05".
func FormatMinutes(minutes int) string {
	return timeutil.MinutesToClock(minutes)
}
