package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avertech/teamboard-backend/internal/types"
)

func TestWorkspaceMembersMustBelongToWorkgroup(t *testing.T) {
	ctx := context.Background()
	f := newWorkgroupFixture(t)

	wg, err := f.workgroup.Create(ctx, "creator-1", &WorkgroupRequest{
		Name:      "Platform",
		MemberIDs: f.memberIDs[:2],
	})
	require.NoError(t, err)

	// Third member is not in the workgroup.
	_, err = f.workspace.Create(ctx, wg.ID, &WorkspaceRequest{
		Name:      "API",
		MemberIDs: []string{f.memberIDs[2]},
	})
	assert.ErrorIs(t, err, ErrMemberNotInGroup)

	ws, err := f.workspace.Create(ctx, wg.ID, &WorkspaceRequest{
		Name:      "API",
		MemberIDs: f.memberIDs[:2],
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, f.memberIDs[:2], ws.MemberIDs)
}

func TestWorkspaceCreateUnknownWorkgroup(t *testing.T) {
	ctx := context.Background()
	f := newWorkgroupFixture(t)

	_, err := f.workspace.Create(ctx, "missing", &WorkspaceRequest{Name: "API"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkspaceUpdateEnforcesSubset(t *testing.T) {
	ctx := context.Background()
	f := newWorkgroupFixture(t)

	wg, err := f.workgroup.Create(ctx, "creator-1", &WorkgroupRequest{
		Name:      "Platform",
		MemberIDs: f.memberIDs[:2],
	})
	require.NoError(t, err)

	ws, err := f.workspace.Create(ctx, wg.ID, &WorkspaceRequest{Name: "API"})
	require.NoError(t, err)

	_, err = f.workspace.Update(ctx, ws.ID, &WorkspaceRequest{
		Name:      "API",
		MemberIDs: []string{f.memberIDs[2]},
	})
	assert.ErrorIs(t, err, ErrMemberNotInGroup)

	updated, err := f.workspace.Update(ctx, ws.ID, &WorkspaceRequest{
		Name:      "API v2",
		MemberIDs: f.memberIDs[:1],
	})
	require.NoError(t, err)
	assert.Equal(t, "API v2", updated.Name)
	assert.Equal(t, wg.ID, updated.WorkgroupID)
}

func TestWorkspaceDeleteCascadesProjectTasks(t *testing.T) {
	ctx := context.Background()
	f := newWorkgroupFixture(t)

	wg, err := f.workgroup.Create(ctx, "creator-1", &WorkgroupRequest{
		Name:      "Platform",
		MemberIDs: f.memberIDs,
	})
	require.NoError(t, err)

	ws, err := f.workspace.Create(ctx, wg.ID, &WorkspaceRequest{Name: "API"})
	require.NoError(t, err)

	projectTasks := NewProjectTaskService(f.repos.ProjectTaskRepo, f.repos.WorkspaceRepo, nil)
	task, err := projectTasks.Create(ctx, ws.ID, &ProjectTaskRequest{
		TaskName: "Orphan check",
		Status:   types.StatusNotStarted,
	})
	require.NoError(t, err)

	require.NoError(t, f.workspace.Delete(ctx, ws.ID))

	gone, err := f.repos.ProjectTaskRepo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestWorkspaceListByWorkgroup(t *testing.T) {
	ctx := context.Background()
	f := newWorkgroupFixture(t)

	wg, err := f.workgroup.Create(ctx, "creator-1", &WorkgroupRequest{
		Name:      "Platform",
		MemberIDs: f.memberIDs,
	})
	require.NoError(t, err)

	for _, name := range []string{"API", "Mobile"} {
		_, err := f.workspace.Create(ctx, wg.ID, &WorkspaceRequest{Name: name})
		require.NoError(t, err)
	}

	workspaces, err := f.workspace.ListByWorkgroup(ctx, wg.ID)
	require.NoError(t, err)
	assert.Len(t, workspaces, 2)

	_, err = f.workspace.ListByWorkgroup(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
