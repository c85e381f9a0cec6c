package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/megamounds/sitetrack-api/internal/cache"
	"github.com/megamounds/sitetrack-api/internal/config"
	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/events"
	"github.com/megamounds/sitetrack-api/internal/handlers"
	"github.com/megamounds/sitetrack-api/internal/logger"
	authmw "github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	var snapshots cache.SnapshotCache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			zlog.Warn("redis unavailable, snapshot cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			snapshots = cache.NewRedisCache(client, cfg.SnapshotTTL)
		}
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.MQ.URL != "" {
		p, err := events.NewAMQPPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			zlog.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	blobs, err := storage.NewDisk(cfg.Storage.Dir, cfg.Storage.PublicURL)
	if err != nil {
		zlog.Fatal("failed to prepare photo storage", zap.Error(err))
	}

	hooks := &services.Hooks{Cache: snapshots, Events: publisher, Log: zlog}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db, hooks, cfg.InviteExpiry)
	tokenService := services.NewTokenService(db)
	emailService := services.NewEmailService(cfg.SMTP)
	projectService := services.NewProjectService(db, hooks)
	taskService := services.NewTaskService(db, hooks)
	resourceService := services.NewResourceService(db, hooks)
	riskService := services.NewRiskService(db, hooks)
	memberService := services.NewMemberService(db, hooks)
	photoService := services.NewPhotoService(db, blobs)
	importService := services.NewImportService(taskService, resourceService, cfg.ImportBatchSize, hooks)
	dashboardService := services.NewDashboardService(projectService, taskService, resourceService, riskService,
		memberService, snapshots, zlog)

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService)
	adminHandler := handlers.NewAdminHandler(userService, emailService, cfg.BaseURL)
	projectHandler := handlers.NewProjectHandler(projectService, memberService)
	taskHandler := handlers.NewTaskHandler(taskService)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	riskHandler := handlers.NewRiskHandler(riskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	importHandler := handlers.NewImportHandler(importService)
	photoHandler := handlers.NewPhotoHandler(photoService, cfg.Storage.MaxBytes)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(authmw.Logger(zlog))
	app.Use(authmw.Metrics())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/sign-in", authHandler.SignIn)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/sign-out", authHandler.SignOut)
	auth.Post("/accept-invite", authHandler.AcceptInvite)

	api.Get("/templates/:kind", importHandler.Template)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/auth/session", authHandler.Session)
	protected.Post("/auth/sign-out-all", authHandler.SignOutAll)

	protected.Get("/projects", projectHandler.List)
	protected.Post("/projects", projectHandler.Create)
	protected.Get("/projects/:id", projectHandler.Get)
	protected.Patch("/projects/:id/rag", projectHandler.UpdateRAGStatus)
	protected.Get("/projects/:id/snapshot", dashboardHandler.Snapshot)

	protected.Get("/projects/:id/members", projectHandler.ListMembers)
	protected.Post("/projects/:id/members", projectHandler.AddMember)
	protected.Delete("/projects/:id/members/:userId", projectHandler.RemoveMember)

	protected.Get("/projects/:id/tasks", taskHandler.List)
	protected.Post("/projects/:id/tasks", taskHandler.Create)
	protected.Post("/projects/:id/tasks/import", importHandler.ImportTasks)
	protected.Patch("/tasks/:id/status", taskHandler.UpdateStatus)
	protected.Post("/tasks/:id/advance", taskHandler.Advance)
	protected.Patch("/tasks/:id/notes", taskHandler.UpdateNote)
	protected.Get("/tasks/:id/photos", photoHandler.List)
	protected.Post("/tasks/:id/photos", photoHandler.Upload)

	protected.Get("/projects/:id/resources", resourceHandler.List)
	protected.Post("/projects/:id/resources", resourceHandler.Create)
	protected.Post("/projects/:id/resources/import", importHandler.ImportResources)
	protected.Patch("/resources/:id/status", resourceHandler.UpdateStatus)

	protected.Get("/projects/:id/risks", riskHandler.List)
	protected.Post("/projects/:id/risks", riskHandler.Create)
	protected.Patch("/risks/:id", riskHandler.UpdateField)

	admin := api.Group("/admin")
	admin.Use(authmw.Auth(jwtService))
	admin.Use(authmw.RequireAdmin())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.Invite)
	admin.Patch("/users/:id/role", adminHandler.UpdateRole)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	metricsHandler := promhttp.Handler()
	app.Get("/metrics", func(c *drift.Context) {
		metricsHandler.ServeHTTP(c.Response, c.Request)
		c.Abort()
	})

	// Photos are public so the stored URLs can be used directly in <img>.
	// An absolute public URL means something else serves the directory.
	if strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		app.Get(strings.TrimRight(cfg.Storage.PublicURL, "/")+"/:taskId/:name", handlers.ServeFiles(blobs.Root()))
	}

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			n, err := tokenService.CleanupExpired(context.Background())
			if err != nil {
				zlog.Warn("refresh token cleanup failed", zap.Error(err))
				continue
			}
			zlog.Debug("expired refresh tokens removed", zap.Int64("count", n))
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		zlog.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := app.Run(addr); err != nil {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
}
