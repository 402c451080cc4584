package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/socket"
)

// ============================================
// Workspace Service
// ============================================

type WorkspaceRequest struct {
	Name        string
	Description string
	MemberIDs   []string
}

type WorkspaceService interface {
	Create(ctx context.Context, workgroupID string, req *WorkspaceRequest) (*repository.Workspace, error)
	ListByWorkgroup(ctx context.Context, workgroupID string) ([]*repository.Workspace, error)
	Get(ctx context.Context, id string) (*repository.Workspace, error)
	Update(ctx context.Context, id string, req *WorkspaceRequest) (*repository.Workspace, error)
	Delete(ctx context.Context, id string) error
}

type workspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	workgroupRepo repository.WorkgroupRepository
	memberRepo    repository.MemberRepository
	broadcaster   *socket.Broadcaster
}

func NewWorkspaceService(
	workspaceRepo repository.WorkspaceRepository,
	workgroupRepo repository.WorkgroupRepository,
	memberRepo repository.MemberRepository,
	broadcaster *socket.Broadcaster,
) WorkspaceService {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		workgroupRepo: workgroupRepo,
		memberRepo:    memberRepo,
		broadcaster:   broadcaster,
	}
}

func (s *workspaceService) Create(ctx context.Context, workgroupID string, req *WorkspaceRequest) (*repository.Workspace, error) {
	workgroup, err := s.workgroupRepo.FindByID(ctx, workgroupID)
	if err != nil {
		return nil, err
	}
	if workgroup == nil {
		return nil, fmt.Errorf("%w: workgroup %s", ErrNotFound, workgroupID)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	memberIDs, err := subsetOfWorkgroup(req.MemberIDs, workgroup)
	if err != nil {
		return nil, err
	}

	workspace := &repository.Workspace{
		WorkgroupID: workgroupID,
		Name:        name,
		MemberIDs:   memberIDs,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		workspace.Description = &desc
	}

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.broadcaster.WorkspaceChanged("created", workspace.ID)
	return workspace, nil
}

func (s *workspaceService) ListByWorkgroup(ctx context.Context, workgroupID string) ([]*repository.Workspace, error) {
	workgroup, err := s.workgroupRepo.FindByID(ctx, workgroupID)
	if err != nil {
		return nil, err
	}
	if workgroup == nil {
		return nil, fmt.Errorf("%w: workgroup %s", ErrNotFound, workgroupID)
	}
	return s.workspaceRepo.FindByWorkgroupID(ctx, workgroupID)
}

func (s *workspaceService) Get(ctx context.Context, id string) (*repository.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrNotFound
	}
	return workspace, nil
}

func (s *workspaceService) Update(ctx context.Context, id string, req *WorkspaceRequest) (*repository.Workspace, error) {
	existing, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	workgroup, err := s.workgroupRepo.FindByID(ctx, existing.WorkgroupID)
	if err != nil {
		return nil, err
	}
	if workgroup == nil {
		return nil, fmt.Errorf("%w: workgroup %s", ErrNotFound, existing.WorkgroupID)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	memberIDs, err := subsetOfWorkgroup(req.MemberIDs, workgroup)
	if err != nil {
		return nil, err
	}

	workspace := &repository.Workspace{
		ID:          existing.ID,
		WorkgroupID: existing.WorkgroupID,
		Name:        name,
		MemberIDs:   memberIDs,
		CreatedAt:   existing.CreatedAt,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		workspace.Description = &desc
	}

	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	s.broadcaster.WorkspaceChanged("updated", workspace.ID)
	return workspace, nil
}

func (s *workspaceService) Delete(ctx context.Context, id string) error {
	existing, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.workspaceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	s.broadcaster.WorkspaceChanged("deleted", id)
	return nil
}

// subsetOfWorkgroup enforces that workspace members come from the parent
// workgroup's roster.
func subsetOfWorkgroup(memberIDs []string, workgroup *repository.Workgroup) ([]string, error) {
	roster := make(map[string]bool, len(workgroup.MemberIDs))
	for _, id := range workgroup.MemberIDs {
		roster[id] = true
	}

	seen := make(map[string]bool, len(memberIDs))
	out := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id == "" || seen[id] {
			continue
		}
		if !roster[id] {
			return nil, fmt.Errorf("%w: member %s", ErrMemberNotInGroup, id)
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}
