package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/socket"
	"github.com/avertech/teamboard-backend/internal/timeutil"
	"github.com/avertech/teamboard-backend/internal/types"
)

// ============================================
// Project Task Service
// ============================================

type ProjectTaskRequest struct {
	ProjectName string
	TaskName    string
	Priority    string
	Status      string
	CreatedBy   string
	StartDate   string
	EndDate     string
	Estimate    string // free text, normalized to "N hours" when numeric
	ActualHours string // decimal string, e.g. "2.5"
}

type ProjectTaskService interface {
	Create(ctx context.Context, workspaceID string, req *ProjectTaskRequest) (*repository.ProjectTask, error)
	ListByWorkspace(ctx context.Context, workspaceID, status string) ([]*repository.ProjectTask, error)
	Update(ctx context.Context, id string, req *ProjectTaskRequest) (*repository.ProjectTask, error)
	Delete(ctx context.Context, id string) error
}

type projectTaskService struct {
	projectTaskRepo repository.ProjectTaskRepository
	workspaceRepo   repository.WorkspaceRepository
	broadcaster     *socket.Broadcaster
}

func NewProjectTaskService(
	projectTaskRepo repository.ProjectTaskRepository,
	workspaceRepo repository.WorkspaceRepository,
	broadcaster *socket.Broadcaster,
) ProjectTaskService {
	return &projectTaskService{
		projectTaskRepo: projectTaskRepo,
		workspaceRepo:   workspaceRepo,
		broadcaster:     broadcaster,
	}
}

func (s *projectTaskService) Create(ctx context.Context, workspaceID string, req *ProjectTaskRequest) (*repository.ProjectTask, error) {
	workspace, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, fmt.Errorf("%w: workspace %s", ErrNotFound, workspaceID)
	}

	task, err := projectTaskFromRequest(req)
	if err != nil {
		return nil, err
	}
	task.WorkspaceID = workspaceID

	if err := s.projectTaskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create project task: %w", err)
	}

	s.broadcaster.ProjectTaskChanged("created", task.ID)
	return task, nil
}

func (s *projectTaskService) ListByWorkspace(ctx context.Context, workspaceID, status string) ([]*repository.ProjectTask, error) {
	if status != "" {
		parsed, err := types.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = parsed
	}
	return s.projectTaskRepo.FindByWorkspaceID(ctx, workspaceID, status)
}

func (s *projectTaskService) Update(ctx context.Context, id string, req *ProjectTaskRequest) (*repository.ProjectTask, error) {
	existing, err := s.projectTaskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	task, err := projectTaskFromRequest(req)
	if err != nil {
		return nil, err
	}
	task.ID = existing.ID
	task.WorkspaceID = existing.WorkspaceID
	task.CreatedAt = existing.CreatedAt

	if err := s.projectTaskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update project task: %w", err)
	}

	s.broadcaster.ProjectTaskChanged("updated", task.ID)
	return task, nil
}

func (s *projectTaskService) Delete(ctx context.Context, id string) error {
	existing, err := s.projectTaskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.projectTaskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project task: %w", err)
	}

	s.broadcaster.ProjectTaskChanged("deleted", id)
	return nil
}

func projectTaskFromRequest(req *ProjectTaskRequest) (*repository.ProjectTask, error) {
	taskName := strings.TrimSpace(req.TaskName)
	if taskName == "" {
		return nil, ErrInvalidInput
	}

	status := req.Status
	if status == "" {
		status = types.StatusNotStarted
	}
	status, err := types.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	priority := req.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	priority, err = types.ParsePriority(priority)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", ErrInvalidInput, req.StartDate)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date %q", ErrInvalidInput, req.EndDate)
	}

	var actualHours *decimal.Decimal
	if raw := strings.TrimSpace(req.ActualHours); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: bad actual hours %q", ErrInvalidInput, req.ActualHours)
		}
		actualHours = &d
	}

	return &repository.ProjectTask{
		ProjectName: strings.TrimSpace(req.ProjectName),
		TaskName:    taskName,
		Priority:    priority,
		Status:      status,
		CreatedBy:   strings.TrimSpace(req.CreatedBy),
		StartDate:   startDate,
		EndDate:     endDate,
		Estimate:    timeutil.NormalizeEstimate(req.Estimate),
		ActualHours: actualHours,
	}, nil
}
