package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/types"
)

func TestTaskCreateParsesTimes(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(repository.NewRepositories().TaskRepo, nil)

	task, err := svc.Create(ctx, &TaskRequest{
		Name:       "Wire reporting endpoint",
		AssignedTo: "Anita Rai",
		Status:     types.StatusInProgress,
		Priority:   types.PriorityHigh,
		StartDate:  "2026-08-24",
		Estimate:   "2:05",
		ActualTime: "90",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, 125, task.EstimateMinutes)
	assert.Equal(t, 90, task.ActualMinutes)
	require.NotNil(t, task.StartDate)
	assert.Equal(t, "2026-08-24", task.StartDate.Format("2006-01-02"))
	assert.Nil(t, task.EndDate)
}

func TestTaskCreateDefaultsEnums(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(repository.NewRepositories().TaskRepo, nil)

	task, err := svc.Create(ctx, &TaskRequest{Name: "Untriaged", AssignedTo: "Anita Rai"})
	require.NoError(t, err)
	assert.Equal(t, types.StatusNotStarted, task.Status)
	assert.Equal(t, types.PriorityMedium, task.Priority)
}

func TestTaskCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(repository.NewRepositories().TaskRepo, nil)

	tests := []struct {
		name string
		req  *TaskRequest
	}{
		{name: "missing name", req: &TaskRequest{AssignedTo: "Anita"}},
		{name: "missing assignee", req: &TaskRequest{Name: "Task"}},
		{name: "unknown status", req: &TaskRequest{Name: "Task", AssignedTo: "Anita", Status: "Done"}},
		{name: "unknown priority", req: &TaskRequest{Name: "Task", AssignedTo: "Anita", Priority: "Urgent"}},
		{name: "bad date", req: &TaskRequest{Name: "Task", AssignedTo: "Anita", StartDate: "24/08/2026"}},
		{name: "bad time", req: &TaskRequest{Name: "Task", AssignedTo: "Anita", Estimate: "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTaskUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(repository.NewRepositories().TaskRepo, nil)

	created, err := svc.Create(ctx, &TaskRequest{Name: "Task", AssignedTo: "Anita"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &TaskRequest{
		Name:       "Task",
		AssignedTo: "Anita",
		Status:     types.StatusClosed,
		ActualTime: "1:30",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, types.StatusClosed, updated.Status)
	assert.Equal(t, 90, updated.ActualMinutes)
}

func TestTaskUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(repository.NewRepositories().TaskRepo, nil)

	_, err := svc.Update(ctx, "missing", &TaskRequest{Name: "Task", AssignedTo: "Anita"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(repository.NewRepositories().TaskRepo, nil)

	created, err := svc.Create(ctx, &TaskRequest{Name: "Task", AssignedTo: "Anita"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
