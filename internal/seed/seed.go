// internal/seed/seed.go
package seed

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/types"
)

func strPtr(s string) *string { return &s }

func datePtr(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

// SeedData creates a working data set for development environments.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	if existing, _ := repos.UserRepo.FindByEmail(ctx, "admin@teamboard.dev"); existing != nil {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating initial data...")

	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	admin := &repository.User{
		Username: "admin",
		Email:    "admin@teamboard.dev",
		Password: string(password),
		Role:     types.AccountRoleAdmin,
	}
	repos.UserRepo.Create(ctx, admin)

	viewer := &repository.User{
		Username: "demo",
		Email:    "demo@teamboard.dev",
		Password: string(password),
		Role:     types.AccountRoleUser,
	}
	repos.UserRepo.Create(ctx, viewer)

	// ============================================
	// Members
	// ============================================
	anita := &repository.Member{
		Name:        "Anita Rai",
		Email:       "anita.rai@teamboard.dev",
		Designation: strPtr("Backend Engineer"),
		Role:        types.RoleAdmin,
	}
	repos.MemberRepo.Create(ctx, anita)

	suman := &repository.Member{
		Name:        "Suman Thapa",
		Email:       "suman.thapa@teamboard.dev",
		Designation: strPtr("Frontend Engineer"),
		Role:        types.RoleMember,
	}
	repos.MemberRepo.Create(ctx, suman)

	priya := &repository.Member{
		Name:        "Priya Shrestha",
		Email:       "priya.shrestha@teamboard.dev",
		Designation: strPtr("QA Engineer"),
		Role:        types.RoleMember,
	}
	repos.MemberRepo.Create(ctx, priya)

	// ============================================
	// Personal tasks
	// ============================================
	repos.TaskRepo.Create(ctx, &repository.Task{
		Name:            "Wire up the reporting endpoint",
		Priority:        types.PriorityHigh,
		Status:          types.StatusInProgress,
		AssignedTo:      anita.Name,
		StartDate:       datePtr("2026-08-24"),
		EndDate:         datePtr("2026-09-05"),
		EstimateMinutes: 480,
		ActualMinutes:   150,
	})
	repos.TaskRepo.Create(ctx, &repository.Task{
		Name:            "Dashboard chart polish",
		Priority:        types.PriorityMedium,
		Status:          types.StatusNotStarted,
		AssignedTo:      suman.Name,
		EstimateMinutes: 240,
	})

	// ============================================
	// Workgroup + workspace + project tasks
	// ============================================
	platform := &repository.Workgroup{
		Name:        "Platform",
		Description: strPtr("Core platform team"),
		CreatedBy:   &admin.ID,
		MemberIDs:   []string{anita.ID, suman.ID, priya.ID},
	}
	repos.WorkgroupRepo.Create(ctx, platform)

	apiWorkspace := &repository.Workspace{
		WorkgroupID: platform.ID,
		Name:        "API",
		Description: strPtr("Backend services"),
		MemberIDs:   []string{anita.ID, priya.ID},
	}
	repos.WorkspaceRepo.Create(ctx, apiWorkspace)

	repos.ProjectTaskRepo.Create(ctx, &repository.ProjectTask{
		WorkspaceID: apiWorkspace.ID,
		ProjectName: "Teamboard",
		TaskName:    "Token refresh rotation",
		Priority:    types.PriorityHigh,
		Status:      types.StatusReview,
		CreatedBy:   anita.Name,
		StartDate:   datePtr("2026-08-20"),
		Estimate:    "8 hours",
	})
	repos.ProjectTaskRepo.Create(ctx, &repository.ProjectTask{
		WorkspaceID: apiWorkspace.ID,
		ProjectName: "Teamboard",
		TaskName:    "Regression suite for exports",
		Priority:    types.PriorityLow,
		Status:      types.StatusNotStarted,
		CreatedBy:   priya.Name,
		Estimate:    "5 hours",
	})

	log.Println("[Seed] ✅ Seed data created")
	log.Println("[Seed] Login: admin@teamboard.dev / password123")
}
