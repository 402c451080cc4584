package client

import (
	"fmt"
	"strings"

	"github.com/avertech/teamboard-backend/pkg/models"
)

// ValidationError is a submission rejected locally. No request is sent
// for a payload the backend would refuse anyway.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field}
	}
	return nil
}

func validateMemberRequest(req *models.MemberRequest) error {
	if err := requireField("name", req.Name); err != nil {
		return err
	}
	return requireField("email", req.Email)
}

func validateTaskRequest(req *models.TaskRequest) error {
	if err := requireField("name", req.Name); err != nil {
		return err
	}
	return requireField("assignedTo", req.AssignedTo)
}

func validateProjectTaskRequest(req *models.ProjectTaskRequest) error {
	return requireField("taskName", req.TaskName)
}

func validateWorkgroupRequest(req *models.WorkgroupRequest) error {
	return requireField("name", req.Name)
}

func validateWorkspaceRequest(req *models.WorkspaceRequest) error {
	return requireField("name", req.Name)
}
