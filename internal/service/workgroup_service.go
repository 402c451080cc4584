package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/socket"
	"github.com/avertech/teamboard-backend/internal/types"
)

// ============================================
// Workgroup Service
// ============================================

type WorkgroupRequest struct {
	Name        string
	Description string
	MemberIDs   []string
}

// WorkgroupDetail is a workgroup expanded with its member records, its
// workspaces, and whether the requesting user administers it.
type WorkgroupDetail struct {
	Workgroup  *repository.Workgroup
	Members    []*repository.Member
	Workspaces []*repository.Workspace
	IsAdmin    bool
}

type WorkgroupService interface {
	Create(ctx context.Context, userID string, req *WorkgroupRequest) (*repository.Workgroup, error)
	List(ctx context.Context) ([]*repository.Workgroup, error)
	Get(ctx context.Context, id, userID, role string) (*WorkgroupDetail, error)
	Update(ctx context.Context, id string, req *WorkgroupRequest) (*repository.Workgroup, error)
	UpdateMembers(ctx context.Context, id string, memberIDs []string) (*repository.Workgroup, error)
	Delete(ctx context.Context, id string) error
}

type workgroupService struct {
	workgroupRepo repository.WorkgroupRepository
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.MemberRepository
	broadcaster   *socket.Broadcaster
}

func NewWorkgroupService(
	workgroupRepo repository.WorkgroupRepository,
	workspaceRepo repository.WorkspaceRepository,
	memberRepo repository.MemberRepository,
	broadcaster *socket.Broadcaster,
) WorkgroupService {
	return &workgroupService{
		workgroupRepo: workgroupRepo,
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		broadcaster:   broadcaster,
	}
}

func (s *workgroupService) Create(ctx context.Context, userID string, req *WorkgroupRequest) (*repository.Workgroup, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	memberIDs, err := s.checkMembersExist(ctx, req.MemberIDs)
	if err != nil {
		return nil, err
	}

	workgroup := &repository.Workgroup{
		Name:      name,
		MemberIDs: memberIDs,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		workgroup.Description = &desc
	}
	if userID != "" {
		workgroup.CreatedBy = &userID
	}

	if err := s.workgroupRepo.Create(ctx, workgroup); err != nil {
		return nil, fmt.Errorf("failed to create workgroup: %w", err)
	}

	s.broadcaster.WorkgroupChanged("created", workgroup.ID)
	return workgroup, nil
}

func (s *workgroupService) List(ctx context.Context) ([]*repository.Workgroup, error) {
	return s.workgroupRepo.FindAll(ctx)
}

func (s *workgroupService) Get(ctx context.Context, id, userID, role string) (*WorkgroupDetail, error) {
	workgroup, err := s.workgroupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workgroup == nil {
		return nil, ErrNotFound
	}

	members := make([]*repository.Member, 0, len(workgroup.MemberIDs))
	for _, memberID := range workgroup.MemberIDs {
		member, err := s.memberRepo.FindByID(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if member != nil {
			members = append(members, member)
		}
	}

	workspaces, err := s.workspaceRepo.FindByWorkgroupID(ctx, id)
	if err != nil {
		return nil, err
	}

	isAdmin := role == types.AccountRoleAdmin ||
		(workgroup.CreatedBy != nil && *workgroup.CreatedBy == userID)

	return &WorkgroupDetail{
		Workgroup:  workgroup,
		Members:    members,
		Workspaces: workspaces,
		IsAdmin:    isAdmin,
	}, nil
}

func (s *workgroupService) Update(ctx context.Context, id string, req *WorkgroupRequest) (*repository.Workgroup, error) {
	existing, err := s.workgroupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	memberIDs, err := s.checkMembersExist(ctx, req.MemberIDs)
	if err != nil {
		return nil, err
	}

	workgroup := &repository.Workgroup{
		ID:        existing.ID,
		Name:      name,
		CreatedBy: existing.CreatedBy,
		MemberIDs: memberIDs,
		CreatedAt: existing.CreatedAt,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		workgroup.Description = &desc
	}

	if err := s.workgroupRepo.Update(ctx, workgroup); err != nil {
		return nil, fmt.Errorf("failed to update workgroup: %w", err)
	}
	if err := s.workgroupRepo.UpdateMembers(ctx, id, memberIDs); err != nil {
		return nil, fmt.Errorf("failed to update workgroup members: %w", err)
	}

	s.broadcaster.WorkgroupChanged("updated", id)
	return workgroup, nil
}

func (s *workgroupService) UpdateMembers(ctx context.Context, id string, memberIDs []string) (*repository.Workgroup, error) {
	workgroup, err := s.workgroupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workgroup == nil {
		return nil, ErrNotFound
	}

	checked, err := s.checkMembersExist(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	if err := s.workgroupRepo.UpdateMembers(ctx, id, checked); err != nil {
		return nil, fmt.Errorf("failed to update workgroup members: %w", err)
	}
	workgroup.MemberIDs = checked

	s.broadcaster.WorkgroupChanged("updated", id)
	return workgroup, nil
}

func (s *workgroupService) Delete(ctx context.Context, id string) error {
	workgroup, err := s.workgroupRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if workgroup == nil {
		return ErrNotFound
	}

	if err := s.workgroupRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workgroup: %w", err)
	}

	s.broadcaster.WorkgroupChanged("deleted", id)
	return nil
}

// checkMembersExist verifies every id resolves to a member, dropping
// duplicates along the way.
func (s *workgroupService) checkMembersExist(ctx context.Context, memberIDs []string) ([]string, error) {
	seen := make(map[string]bool, len(memberIDs))
	out := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id == "" || seen[id] {
			continue
		}
		member, err := s.memberRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, fmt.Errorf("%w: member %s", ErrNotFound, id)
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}
