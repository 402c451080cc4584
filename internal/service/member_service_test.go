package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/types"
)

func TestMemberCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(repository.NewRepositories().MemberRepo, nil)

	member, err := svc.Create(ctx, &MemberRequest{
		Name:        "Anita Rai",
		Email:       "anita@example.com",
		Phone:       "9800000000",
		Designation: "Backend Engineer",
		Role:        types.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, member.ID)
	require.NotNil(t, member.Phone)
	assert.Equal(t, "9800000000", *member.Phone)
}

func TestMemberCreateDefaultsRole(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(repository.NewRepositories().MemberRepo, nil)

	member, err := svc.Create(ctx, &MemberRequest{Name: "Anita", Email: "anita@example.com"})
	require.NoError(t, err)
	assert.Equal(t, types.RoleMember, member.Role)
	assert.Nil(t, member.Phone)
	assert.Nil(t, member.Designation)
}

func TestMemberCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(repository.NewRepositories().MemberRepo, nil)

	_, err := svc.Create(ctx, &MemberRequest{Email: "anita@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &MemberRequest{Name: "Anita"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &MemberRequest{Name: "Anita", Email: "anita@example.com", Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMemberUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewMemberService(repository.NewRepositories().MemberRepo, nil)

	member, err := svc.Create(ctx, &MemberRequest{Name: "Anita", Email: "anita@example.com"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, member.ID, &MemberRequest{
		Name:  "Anita Rai",
		Email: "anita@example.com",
		Role:  types.RoleOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, member.ID, updated.ID)
	assert.Equal(t, "Anita Rai", updated.Name)
	assert.Equal(t, types.RoleOwner, updated.Role)

	require.NoError(t, svc.Delete(ctx, member.ID))
	assert.ErrorIs(t, svc.Delete(ctx, member.ID), ErrNotFound)
}
