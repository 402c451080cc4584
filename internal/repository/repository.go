// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ============================================
// Models / Entities
// ============================================

type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RefreshToken struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Member struct {
	ID          string
	Name        string
	Email       string
	Phone       *string
	Designation *string
	Role        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Task struct {
	ID              string
	Name            string
	Priority        string
	Status          string
	AssignedTo      string
	StartDate       *time.Time
	EndDate         *time.Time
	EstimateMinutes int
	ActualMinutes   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Workgroup struct {
	ID          string
	Name        string
	Description *string
	CreatedBy   *string
	MemberIDs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Workspace struct {
	ID          string
	WorkgroupID string
	Name        string
	Description *string
	MemberIDs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProjectTask struct {
	ID          string
	WorkspaceID string
	ProjectName string
	TaskName    string
	Priority    string
	Status      string
	CreatedBy   string
	StartDate   *time.Time
	EndDate     *time.Time
	Estimate    string
	ActualHours *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type StatusCount struct {
	Status string
	Count  int
}

type MemberHours struct {
	MemberID string
	Name     string
	Hours    decimal.Decimal
}

// ============================================
// Repository Interfaces
// ============================================

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, id string) (*Member, error)
	FindAll(ctx context.Context) ([]*Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id string) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindAll(ctx context.Context) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
}

type ProjectTaskRepository interface {
	Create(ctx context.Context, task *ProjectTask) error
	FindByID(ctx context.Context, id string) (*ProjectTask, error)
	// FindByWorkspaceID filters by status server-side when status is non-empty.
	FindByWorkspaceID(ctx context.Context, workspaceID, status string) ([]*ProjectTask, error)
	Update(ctx context.Context, task *ProjectTask) error
	Delete(ctx context.Context, id string) error
}

type WorkgroupRepository interface {
	Create(ctx context.Context, workgroup *Workgroup) error
	FindByID(ctx context.Context, id string) (*Workgroup, error)
	FindAll(ctx context.Context) ([]*Workgroup, error)
	Update(ctx context.Context, workgroup *Workgroup) error
	UpdateMembers(ctx context.Context, id string, memberIDs []string) error
	Delete(ctx context.Context, id string) error
}

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *Workspace) error
	FindByID(ctx context.Context, id string) (*Workspace, error)
	FindByWorkgroupID(ctx context.Context, workgroupID string) ([]*Workspace, error)
	Update(ctx context.Context, workspace *Workspace) error
	Delete(ctx context.Context, id string) error
}

type DashboardRepository interface {
	Counts(ctx context.Context) (members, tasks, workgroups, projectTasks int, err error)
	TaskStatusCounts(ctx context.Context) ([]StatusCount, error)
	ProjectTaskStatusCounts(ctx context.Context) ([]StatusCount, error)
	MemberHours(ctx context.Context) ([]MemberHours, error)
}

// ============================================
// Repositories Container
// ============================================

type Repositories struct {
	UserRepo        UserRepository
	MemberRepo      MemberRepository
	TaskRepo        TaskRepository
	ProjectTaskRepo ProjectTaskRepository
	WorkgroupRepo   WorkgroupRepository
	WorkspaceRepo   WorkspaceRepository
	DashboardRepo   DashboardRepository
}

// NewRepositories creates in-memory repositories (for testing/fallback)
func NewRepositories() *Repositories {
	store := newMemoryStore()
	return &Repositories{
		UserRepo:        &memUserRepository{store: store},
		MemberRepo:      &memMemberRepository{store: store},
		TaskRepo:        &memTaskRepository{store: store},
		ProjectTaskRepo: &memProjectTaskRepository{store: store},
		WorkgroupRepo:   &memWorkgroupRepository{store: store},
		WorkspaceRepo:   &memWorkspaceRepository{store: store},
		DashboardRepo:   &memDashboardRepository{store: store},
	}
}

// NewPgRepositories creates PostgreSQL-backed repositories
func NewPgRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepo:        &pgUserRepository{pool: pool},
		MemberRepo:      &pgMemberRepository{pool: pool},
		TaskRepo:        &pgTaskRepository{pool: pool},
		ProjectTaskRepo: &pgProjectTaskRepository{pool: pool},
		WorkgroupRepo:   &pgWorkgroupRepository{pool: pool},
		WorkspaceRepo:   &pgWorkspaceRepository{pool: pool},
		DashboardRepo:   &pgDashboardRepository{pool: pool},
	}
}
