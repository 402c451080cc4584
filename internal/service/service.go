package service

import (
	"errors"
	"time"

	"github.com/avertech/teamboard-backend/internal/config"
	"github.com/avertech/teamboard-backend/internal/db"
	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/socket"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrMemberNotInGroup   = errors.New("member does not belong to the parent workgroup")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth        AuthService
	Member      MemberService
	Task        TaskService
	ProjectTask ProjectTaskService
	Workgroup   WorkgroupService
	Workspace   WorkspaceService
	Dashboard   DashboardService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	Cache       *db.RedisDB
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	return &Services{
		Auth:   NewAuthService(deps.Config, deps.Repos.UserRepo),
		Member: NewMemberService(deps.Repos.MemberRepo, deps.Broadcaster),
		Task:   NewTaskService(deps.Repos.TaskRepo, deps.Broadcaster),
		ProjectTask: NewProjectTaskService(
			deps.Repos.ProjectTaskRepo,
			deps.Repos.WorkspaceRepo,
			deps.Broadcaster,
		),
		Workgroup: NewWorkgroupService(
			deps.Repos.WorkgroupRepo,
			deps.Repos.WorkspaceRepo,
			deps.Repos.MemberRepo,
			deps.Broadcaster,
		),
		Workspace: NewWorkspaceService(
			deps.Repos.WorkspaceRepo,
			deps.Repos.WorkgroupRepo,
			deps.Repos.MemberRepo,
			deps.Broadcaster,
		),
		Dashboard: NewDashboardService(deps.Repos.DashboardRepo, deps.Cache),
	}
}

// parseDate parses the "YYYY-MM-DD" strings the date inputs produce.
// Empty input is a nil date, not an error.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02")
}
