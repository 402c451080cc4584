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
// Member Service
// ============================================

type MemberRequest struct {
	Name        string
	Email       string
	Phone       string
	Designation string
	Role        string
}

type MemberService interface {
	Create(ctx context.Context, req *MemberRequest) (*repository.Member, error)
	List(ctx context.Context) ([]*repository.Member, error)
	Update(ctx context.Context, id string, req *MemberRequest) (*repository.Member, error)
	Delete(ctx context.Context, id string) error
}

type memberService struct {
	memberRepo  repository.MemberRepository
	broadcaster *socket.Broadcaster
}

func NewMemberService(memberRepo repository.MemberRepository, broadcaster *socket.Broadcaster) MemberService {
	return &memberService{memberRepo: memberRepo, broadcaster: broadcaster}
}

func (s *memberService) Create(ctx context.Context, req *MemberRequest) (*repository.Member, error) {
	member, err := memberFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	s.broadcaster.MemberChanged("created", member.ID)
	return member, nil
}

func (s *memberService) List(ctx context.Context) ([]*repository.Member, error) {
	return s.memberRepo.FindAll(ctx)
}

func (s *memberService) Update(ctx context.Context, id string, req *MemberRequest) (*repository.Member, error) {
	existing, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	member, err := memberFromRequest(req)
	if err != nil {
		return nil, err
	}
	member.ID = existing.ID
	member.CreatedAt = existing.CreatedAt

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	s.broadcaster.MemberChanged("updated", member.ID)
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id string) error {
	existing, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	s.broadcaster.MemberChanged("deleted", id)
	return nil
}

func memberFromRequest(req *MemberRequest) (*repository.Member, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, ErrInvalidInput
	}

	role := req.Role
	if role == "" {
		role = types.RoleMember
	}
	if !types.IsValidMemberRole(role) {
		return nil, fmt.Errorf("%w: %q is not a member role", ErrInvalidInput, req.Role)
	}

	member := &repository.Member{
		Name:  name,
		Email: email,
		Role:  role,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		member.Phone = &phone
	}
	if designation := strings.TrimSpace(req.Designation); designation != "" {
		member.Designation = &designation
	}
	return member, nil
}
