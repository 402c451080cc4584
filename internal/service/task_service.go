package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/socket"
	"github.com/avertech/teamboard-backend/internal/timeutil"
	"github.com/avertech/teamboard-backend/internal/types"
)

// ============================================
// Task Service
// ============================================

type TaskRequest struct {
	Name       string
	Priority   string
	Status     string
	AssignedTo string
	StartDate  string // "YYYY-MM-DD"
	EndDate    string
	Estimate   string // "H:MM" or bare minutes
	ActualTime string
}

type TaskService interface {
	Create(ctx context.Context, req *TaskRequest) (*repository.Task, error)
	List(ctx context.Context) ([]*repository.Task, error)
	Update(ctx context.Context, id string, req *TaskRequest) (*repository.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskService struct {
	taskRepo    repository.TaskRepository
	broadcaster *socket.Broadcaster
}

func NewTaskService(taskRepo repository.TaskRepository, broadcaster *socket.Broadcaster) TaskService {
	return &taskService{taskRepo: taskRepo, broadcaster: broadcaster}
}

func (s *taskService) Create(ctx context.Context, req *TaskRequest) (*repository.Task, error) {
	task, err := taskFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.broadcaster.TaskChanged("created", task.ID)
	return task, nil
}

func (s *taskService) List(ctx context.Context) ([]*repository.Task, error) {
	return s.taskRepo.FindAll(ctx)
}

func (s *taskService) Update(ctx context.Context, id string, req *TaskRequest) (*repository.Task, error) {
	existing, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	task, err := taskFromRequest(req)
	if err != nil {
		return nil, err
	}
	task.ID = existing.ID
	task.CreatedAt = existing.CreatedAt

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.broadcaster.TaskChanged("updated", task.ID)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	existing, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.broadcaster.TaskChanged("deleted", id)
	return nil
}

func taskFromRequest(req *TaskRequest) (*repository.Task, error) {
	name := strings.TrimSpace(req.Name)
	assignedTo := strings.TrimSpace(req.AssignedTo)
	if name == "" || assignedTo == "" {
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

	estimate, err := timeutil.ClockToMinutes(req.Estimate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	actual, err := timeutil.ClockToMinutes(req.ActualTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &repository.Task{
		Name:            name,
		Priority:        priority,
		Status:          status,
		AssignedTo:      assignedTo,
		StartDate:       startDate,
		EndDate:         endDate,
		EstimateMinutes: estimate,
		ActualMinutes:   actual,
	}, nil
}
