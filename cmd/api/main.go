// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/avertech/teamboard-backend/internal/api/handlers"
	"github.com/avertech/teamboard-backend/internal/api/middleware"
	"github.com/avertech/teamboard-backend/internal/config"
	"github.com/avertech/teamboard-backend/internal/cron"
	"github.com/avertech/teamboard-backend/internal/db"
	"github.com/avertech/teamboard-backend/internal/repository"
	"github.com/avertech/teamboard-backend/internal/seed"
	"github.com/avertech/teamboard-backend/internal/service"
	"github.com/avertech/teamboard-backend/internal/socket"
	"github.com/avertech/teamboard-backend/internal/types"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// ============================================
	// Initialize PostgreSQL
	// ============================================
	pg, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer pg.Close()

	repos := repository.NewPgRepositories(pg.Pool)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (continuing without cache)", err)
			redisDB = nil
		} else {
			defer redisDB.Close()
			log.Println("⚡ Redis cache enabled")
		}
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		seed.SeedData(repos)
	}

	// ============================================
	// Initialize Services + Handlers
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		Cache:       redisDB,
		Broadcaster: broadcaster,
	})
	h := handlers.NewHandlers(services)
	log.Println("✨ All services initialized")

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(services, repos.UserRepo)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"database":   "connected",
			"cache":      getCacheStatus(redisDB),
			"ws_clients": hub.GetConnectedClientsCount(),
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// WebSocket route
		api.GET("/ws", wsHandler.HandleWebSocket)

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			adminOnly := middleware.RequireRole(types.AccountRoleAdmin)

			members := protected.Group("/members")
			{
				members.GET("", h.Member.List)
				members.POST("", adminOnly, h.Member.Create)
				members.PUT("/:id", adminOnly, h.Member.Update)
				members.DELETE("/:id", adminOnly, h.Member.Delete)
			}

			tasks := protected.Group("/tasks")
			{
				tasks.GET("", h.Task.List)
				tasks.POST("", h.Task.Create)
				tasks.PUT("/:id", h.Task.Update)
				tasks.DELETE("/:id", h.Task.Delete)
			}

			// List/create are workspace-scoped, update/delete address the
			// task itself. Separate method trees keep the params apart.
			projectTasks := protected.Group("/project-tasks")
			{
				projectTasks.GET("/:workspaceId", h.ProjectTask.List)
				projectTasks.POST("/:workspaceId", h.ProjectTask.Create)
				projectTasks.PUT("/:id", h.ProjectTask.Update)
				projectTasks.DELETE("/:id", h.ProjectTask.Delete)
			}

			workgroups := protected.Group("/workgroups")
			{
				workgroups.GET("", h.Workgroup.List)
				workgroups.POST("", h.Workgroup.Create)
				workgroups.GET("/:id", h.Workgroup.Get)
				// PUT /workgroups/members (bulk roster) rides the same
				// route; the handler dispatches on the segment.
				workgroups.PUT("/:id", h.Workgroup.Update)
				workgroups.DELETE("/:id", h.Workgroup.Delete)

				workgroups.GET("/:id/workspaces", h.Workspace.List)
				workgroups.POST("/:id/workspaces", h.Workspace.Create)
				workgroups.PUT("/:id/workspaces/:wsId", h.Workspace.Update)
				workgroups.DELETE("/:id/workspaces/:wsId", h.Workspace.Delete)
			}

			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", h.Dashboard.Stats)
				dashboard.GET("/export", h.Dashboard.Export)
			}
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getCacheStatus(redisDB *db.RedisDB) string {
	if redisDB != nil {
		return "connected"
	}
	return "disabled"
}
