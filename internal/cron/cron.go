package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/service"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	services *service.Services
	userRepo repository.UserRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(services *service.Services, userRepo repository.UserRepository) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		services: services,
		userRepo: userRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every hour - keep the dashboard cache warm
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Refreshing dashboard stats...")
		s.refreshDashboardStats()
	})

	// Run every day at midnight - drop expired refresh tokens
	s.cron.AddFunc("0 0 * * *", func() {
		log.Println("[Cron] Running refresh token cleanup...")
		s.cleanupExpiredRefreshTokens()
	})

	s.cron.Start()
	log.Println("[Cron] ✅ Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) refreshDashboardStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.services.Dashboard.RefreshStats(ctx); err != nil {
		log.Printf("[Cron] ⚠️ Failed to refresh dashboard stats: %v", err)
	}
}

func (s *Scheduler) cleanupExpiredRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.userRepo.DeleteExpiredRefreshTokens(ctx, time.Now())
	if err != nil {
		log.Printf("[Cron] ⚠️ Failed to clean up refresh tokens: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cron] Deleted %d expired refresh tokens", deleted)
	}
}
