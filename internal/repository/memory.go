package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ============================================
// In-memory repositories (testing/fallback)
// ============================================

type memoryStore struct {
	mu            sync.RWMutex
	users         map[string]*User
	refreshTokens map[string]*RefreshToken
	members       map[string]*Member
	tasks         map[string]*Task
	projectTasks  map[string]*ProjectTask
	workgroups    map[string]*Workgroup
	workspaces    map[string]*Workspace
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:         make(map[string]*User),
		refreshTokens: make(map[string]*RefreshToken),
		members:       make(map[string]*Member),
		tasks:         make(map[string]*Task),
		projectTasks:  make(map[string]*ProjectTask),
		workgroups:    make(map[string]*Workgroup),
		workspaces:    make(map[string]*Workspace),
	}
}

// ============================================
// User
// ============================================

type memUserRepository struct {
	store *memoryStore
}

func (r *memUserRepository) Create(ctx context.Context, user *User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *memUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if u, ok := r.store.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepository) SaveRefreshToken(ctx context.Context, token *RefreshToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	token.ID = uuid.New().String()
	token.CreatedAt = time.Now()
	cp := *token
	r.store.refreshTokens[token.Token] = &cp
	return nil
}

func (r *memUserRepository) FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if rt, ok := r.store.refreshTokens[token]; ok {
		cp := *rt
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.refreshTokens, token)
	return nil
}

func (r *memUserRepository) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	deleted := 0
	for token, rt := range r.store.refreshTokens {
		if rt.ExpiresAt.Before(before) {
			delete(r.store.refreshTokens, token)
			deleted++
		}
	}
	return deleted, nil
}

// ============================================
// Member
// ============================================

type memMemberRepository struct {
	store *memoryStore
}

func (r *memMemberRepository) Create(ctx context.Context, member *Member) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	member.ID = uuid.New().String()
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	cp := *member
	r.store.members[member.ID] = &cp
	return nil
}

func (r *memMemberRepository) FindByID(ctx context.Context, id string) (*Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if m, ok := r.store.members[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *memMemberRepository) FindAll(ctx context.Context) ([]*Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	members := make([]*Member, 0, len(r.store.members))
	for _, m := range r.store.members {
		cp := *m
		members = append(members, &cp)
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].CreatedAt.After(members[j].CreatedAt)
	})
	return members, nil
}

func (r *memMemberRepository) Update(ctx context.Context, member *Member) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.members[member.ID]
	if !ok {
		return nil
	}
	member.CreatedAt = existing.CreatedAt
	member.UpdatedAt = time.Now()
	cp := *member
	r.store.members[member.ID] = &cp
	return nil
}

func (r *memMemberRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.members, id)
	return nil
}

// ============================================
// Task
// ============================================

type memTaskRepository struct {
	store *memoryStore
}

func (r *memTaskRepository) Create(ctx context.Context, task *Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	task.ID = uuid.New().String()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	r.store.tasks[task.ID] = &cp
	return nil
}

func (r *memTaskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if t, ok := r.store.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *memTaskRepository) FindAll(ctx context.Context) ([]*Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tasks := make([]*Task, 0, len(r.store.tasks))
	for _, t := range r.store.tasks {
		cp := *t
		tasks = append(tasks, &cp)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *memTaskRepository) Update(ctx context.Context, task *Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.tasks[task.ID]
	if !ok {
		return nil
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now()
	cp := *task
	r.store.tasks[task.ID] = &cp
	return nil
}

func (r *memTaskRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.tasks, id)
	return nil
}

// ============================================
// Project Task
// ============================================

type memProjectTaskRepository struct {
	store *memoryStore
}

func (r *memProjectTaskRepository) Create(ctx context.Context, task *ProjectTask) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	task.ID = uuid.New().String()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	r.store.projectTasks[task.ID] = &cp
	return nil
}

func (r *memProjectTaskRepository) FindByID(ctx context.Context, id string) (*ProjectTask, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if t, ok := r.store.projectTasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *memProjectTaskRepository) FindByWorkspaceID(ctx context.Context, workspaceID, status string) ([]*ProjectTask, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var tasks []*ProjectTask
	for _, t := range r.store.projectTasks {
		if t.WorkspaceID != workspaceID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		cp := *t
		tasks = append(tasks, &cp)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *memProjectTaskRepository) Update(ctx context.Context, task *ProjectTask) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.projectTasks[task.ID]
	if !ok {
		return nil
	}
	task.WorkspaceID = existing.WorkspaceID
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now()
	cp := *task
	r.store.projectTasks[task.ID] = &cp
	return nil
}

func (r *memProjectTaskRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.projectTasks, id)
	return nil
}

// ============================================
// Workgroup
// ============================================

type memWorkgroupRepository struct {
	store *memoryStore
}

func (r *memWorkgroupRepository) Create(ctx context.Context, workgroup *Workgroup) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	workgroup.ID = uuid.New().String()
	workgroup.CreatedAt = time.Now()
	workgroup.UpdatedAt = workgroup.CreatedAt
	cp := *workgroup
	cp.MemberIDs = append([]string(nil), workgroup.MemberIDs...)
	r.store.workgroups[workgroup.ID] = &cp
	return nil
}

func (r *memWorkgroupRepository) FindByID(ctx context.Context, id string) (*Workgroup, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if wg, ok := r.store.workgroups[id]; ok {
		cp := *wg
		cp.MemberIDs = append([]string(nil), wg.MemberIDs...)
		return &cp, nil
	}
	return nil, nil
}

func (r *memWorkgroupRepository) FindAll(ctx context.Context) ([]*Workgroup, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	workgroups := make([]*Workgroup, 0, len(r.store.workgroups))
	for _, wg := range r.store.workgroups {
		cp := *wg
		cp.MemberIDs = append([]string(nil), wg.MemberIDs...)
		workgroups = append(workgroups, &cp)
	}
	sort.Slice(workgroups, func(i, j int) bool {
		return workgroups[i].CreatedAt.After(workgroups[j].CreatedAt)
	})
	return workgroups, nil
}

func (r *memWorkgroupRepository) Update(ctx context.Context, workgroup *Workgroup) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.workgroups[workgroup.ID]
	if !ok {
		return nil
	}
	existing.Name = workgroup.Name
	existing.Description = workgroup.Description
	existing.UpdatedAt = time.Now()
	// Same contract as the pg implementation: only name and description
	// are persisted here, the roster goes through UpdateMembers.
	workgroup.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *memWorkgroupRepository) UpdateMembers(ctx context.Context, id string, memberIDs []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if wg, ok := r.store.workgroups[id]; ok {
		wg.MemberIDs = append([]string(nil), memberIDs...)
		wg.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memWorkgroupRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.workgroups, id)
	for wsID, ws := range r.store.workspaces {
		if ws.WorkgroupID == id {
			delete(r.store.workspaces, wsID)
		}
	}
	return nil
}

// ============================================
// Workspace
// ============================================

type memWorkspaceRepository struct {
	store *memoryStore
}

func (r *memWorkspaceRepository) Create(ctx context.Context, workspace *Workspace) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	workspace.ID = uuid.New().String()
	workspace.CreatedAt = time.Now()
	workspace.UpdatedAt = workspace.CreatedAt
	cp := *workspace
	cp.MemberIDs = append([]string(nil), workspace.MemberIDs...)
	r.store.workspaces[workspace.ID] = &cp
	return nil
}

func (r *memWorkspaceRepository) FindByID(ctx context.Context, id string) (*Workspace, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if ws, ok := r.store.workspaces[id]; ok {
		cp := *ws
		cp.MemberIDs = append([]string(nil), ws.MemberIDs...)
		return &cp, nil
	}
	return nil, nil
}

func (r *memWorkspaceRepository) FindByWorkgroupID(ctx context.Context, workgroupID string) ([]*Workspace, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var workspaces []*Workspace
	for _, ws := range r.store.workspaces {
		if ws.WorkgroupID != workgroupID {
			continue
		}
		cp := *ws
		cp.MemberIDs = append([]string(nil), ws.MemberIDs...)
		workspaces = append(workspaces, &cp)
	}
	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].CreatedAt.Before(workspaces[j].CreatedAt)
	})
	return workspaces, nil
}

func (r *memWorkspaceRepository) Update(ctx context.Context, workspace *Workspace) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.workspaces[workspace.ID]
	if !ok {
		return nil
	}
	existing.Name = workspace.Name
	existing.Description = workspace.Description
	existing.MemberIDs = append([]string(nil), workspace.MemberIDs...)
	existing.UpdatedAt = time.Now()
	workspace.WorkgroupID = existing.WorkgroupID
	workspace.CreatedAt = existing.CreatedAt
	workspace.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *memWorkspaceRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.workspaces, id)
	for ptID, pt := range r.store.projectTasks {
		if pt.WorkspaceID == id {
			delete(r.store.projectTasks, ptID)
		}
	}
	return nil
}

// ============================================
// Dashboard
// ============================================

type memDashboardRepository struct {
	store *memoryStore
}

func (r *memDashboardRepository) Counts(ctx context.Context) (members, tasks, workgroups, projectTasks int, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.members), len(r.store.tasks), len(r.store.workgroups), len(r.store.projectTasks), nil
}

func (r *memDashboardRepository) TaskStatusCounts(ctx context.Context) ([]StatusCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	buckets := make(map[string]int)
	for _, t := range r.store.tasks {
		buckets[t.Status]++
	}
	return sortedStatusCounts(buckets), nil
}

func (r *memDashboardRepository) ProjectTaskStatusCounts(ctx context.Context) ([]StatusCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	buckets := make(map[string]int)
	for _, t := range r.store.projectTasks {
		buckets[t.Status]++
	}
	return sortedStatusCounts(buckets), nil
}

func (r *memDashboardRepository) MemberHours(ctx context.Context) ([]MemberHours, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []MemberHours
	for _, m := range r.store.members {
		taskMinutes := 0
		for _, t := range r.store.tasks {
			if t.AssignedTo == m.Name {
				taskMinutes += t.ActualMinutes
			}
		}
		projectHours := decimal.Zero
		for _, pt := range r.store.projectTasks {
			if pt.CreatedBy == m.Name && pt.ActualHours != nil {
				projectHours = projectHours.Add(*pt.ActualHours)
			}
		}
		result = append(result, MemberHours{
			MemberID: m.ID,
			Name:     m.Name,
			Hours: decimal.NewFromInt(int64(taskMinutes)).
				Div(decimal.NewFromInt(60)).
				Add(projectHours).
				Round(2),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func sortedStatusCounts(buckets map[string]int) []StatusCount {
	counts := make([]StatusCount, 0, len(buckets))
	for status, count := range buckets {
		counts = append(counts, StatusCount{Status: status, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Status < counts[j].Status })
	return counts
}
