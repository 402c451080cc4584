package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/avertech/teamboard-backend/internal/db"
	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/pkg/models"
)

// ============================================
// Dashboard Service
// ============================================

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 60 * time.Second
)

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	// RefreshStats recomputes and re-caches, bypassing any cached copy.
	RefreshStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	cache         *db.RedisDB
}

func NewDashboardService(dashboardRepo repository.DashboardRepository, cache *db.RedisDB) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo, cache: cache}
}

func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache != nil {
		var cached models.DashboardStats
		if err := s.cache.GetCache(ctx, dashboardCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}
	return s.RefreshStats(ctx)
}

func (s *dashboardService) RefreshStats(ctx context.Context) (*models.DashboardStats, error) {
	members, tasks, workgroups, projectTasks, err := s.dashboardRepo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard counts: %w", err)
	}

	taskStatus, err := s.dashboardRepo.TaskStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load task status counts: %w", err)
	}

	projectTaskStatus, err := s.dashboardRepo.ProjectTaskStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load project task status counts: %w", err)
	}

	memberHours, err := s.dashboardRepo.MemberHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load member hours: %w", err)
	}

	stats := &models.DashboardStats{
		Members:           members,
		Tasks:             tasks,
		Workgroups:        workgroups,
		ProjectTasks:      projectTasks,
		TaskStatus:        toStatusCounts(taskStatus),
		ProjectTaskStatus: toStatusCounts(projectTaskStatus),
		MemberHours:       toMemberHoursRows(memberHours),
	}

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
			log.Printf("[Dashboard] ⚠️ Failed to cache stats: %v", err)
		}
	}

	return stats, nil
}

func toStatusCounts(counts []repository.StatusCount) []models.StatusCount {
	out := make([]models.StatusCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, models.StatusCount{Status: c.Status, Count: c.Count})
	}
	return out
}

func toMemberHoursRows(rows []repository.MemberHours) []models.MemberHoursRow {
	out := make([]models.MemberHoursRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.MemberHoursRow{MemberID: r.MemberID, Name: r.Name, Hours: r.Hours})
	}
	return out
}
