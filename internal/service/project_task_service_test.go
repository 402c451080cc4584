package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/types"
)

func projectTaskFixture(t *testing.T) (ProjectTaskService, string) {
	t.Helper()
	ctx := context.Background()
	repos := repository.NewRepositories()

	workgroup := &repository.Workgroup{Name: "Platform"}
	require.NoError(t, repos.WorkgroupRepo.Create(ctx, workgroup))
	workspace := &repository.Workspace{WorkgroupID: workgroup.ID, Name: "API"}
	require.NoError(t, repos.WorkspaceRepo.Create(ctx, workspace))

	return NewProjectTaskService(repos.ProjectTaskRepo, repos.WorkspaceRepo, nil), workspace.ID
}

func TestProjectTaskCreateNormalizesEstimate(t *testing.T) {
	ctx := context.Background()
	svc, workspaceID := projectTaskFixture(t)

	tests := []struct {
		input string
		want  string
	}{
		{input: "5", want: "5 hours"},
		{input: "5h", want: "5 hours"},
		{input: "5 hrs", want: "5 hours"},
		{input: "5 days", want: "5 days"},
	}
	for _, tt := range tests {
		task, err := svc.Create(ctx, workspaceID, &ProjectTaskRequest{
			ProjectName: "Teamboard",
			TaskName:    "Estimate " + tt.input,
			Estimate:    tt.input,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, task.Estimate)
	}
}

func TestProjectTaskCreateParsesActualHours(t *testing.T) {
	ctx := context.Background()
	svc, workspaceID := projectTaskFixture(t)

	task, err := svc.Create(ctx, workspaceID, &ProjectTaskRequest{
		ProjectName: "Teamboard",
		TaskName:    "Review PR",
		ActualHours: "2.5",
	})
	require.NoError(t, err)
	require.NotNil(t, task.ActualHours)
	assert.Equal(t, "2.5", task.ActualHours.String())

	_, err = svc.Create(ctx, workspaceID, &ProjectTaskRequest{
		ProjectName: "Teamboard",
		TaskName:    "Bad hours",
		ActualHours: "a lot",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectTaskCreateUnknownWorkspace(t *testing.T) {
	ctx := context.Background()
	svc, _ := projectTaskFixture(t)

	_, err := svc.Create(ctx, "missing", &ProjectTaskRequest{TaskName: "Task"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectTaskListFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	svc, workspaceID := projectTaskFixture(t)

	for _, status := range []string{types.StatusNotStarted, types.StatusInProgress, types.StatusInProgress} {
		_, err := svc.Create(ctx, workspaceID, &ProjectTaskRequest{
			TaskName: "Task " + status,
			Status:   status,
		})
		require.NoError(t, err)
	}

	all, err := svc.ListByWorkspace(ctx, workspaceID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	inProgress, err := svc.ListByWorkspace(ctx, workspaceID, types.StatusInProgress)
	require.NoError(t, err)
	assert.Len(t, inProgress, 2)
	for _, task := range inProgress {
		assert.Equal(t, types.StatusInProgress, task.Status)
	}

	_, err = svc.ListByWorkspace(ctx, workspaceID, "Done")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectTaskUpdatePreservesWorkspace(t *testing.T) {
	ctx := context.Background()
	svc, workspaceID := projectTaskFixture(t)

	created, err := svc.Create(ctx, workspaceID, &ProjectTaskRequest{TaskName: "Task"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &ProjectTaskRequest{
		TaskName: "Task",
		Status:   types.StatusReview,
		Estimate: "8h",
	})
	require.NoError(t, err)
	assert.Equal(t, workspaceID, updated.WorkspaceID)
	assert.Equal(t, types.StatusReview, updated.Status)
	assert.Equal(t, "8 hours", updated.Estimate)
}

func TestProjectTaskDelete(t *testing.T) {
	ctx := context.Background()
	svc, workspaceID := projectTaskFixture(t)

	created, err := svc.Create(ctx, workspaceID, &ProjectTaskRequest{TaskName: "Task"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}
