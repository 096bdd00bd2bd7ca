package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/taskcore/task-tracker-api/internal/config"
	"github.com/taskcore/task-tracker-api/internal/handler"
	"github.com/taskcore/task-tracker-api/internal/repo"
	"github.com/taskcore/task-tracker-api/internal/service"
	"github.com/taskcore/task-tracker-api/internal/worker"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		taskRepo    repo.TaskRepository
		projectRepo repo.ProjectRepository
		userRepo    repo.UserRepository
	)

	// Memory store unless a database is configured. Both back the same
	// repository ports, so nothing above this block cares which is live.
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to Database.")
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Fatal("Failed to ping the Database.")
		}
		logger.Info("Successfully connected to the Database!")

		taskRepo = repo.NewPostgresTaskRepo(pool)
		projectRepo = repo.NewPostgresProjectRepo(pool)
		userRepo = repo.NewPostgresUserRepo(pool)
	} else {
		logger.Info("No DATABASE_URL set, using in-memory store")
		taskRepo = repo.NewMemoryTaskRepo()
		projectRepo = repo.NewMemoryProjectRepo()
		userRepo = repo.NewMemoryUserRepo()
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	taskService := service.NewTaskService(taskRepo, userRepo)
	projectService := service.NewProjectService(projectRepo, userRepo)

	r := handler.NewRouter(
		handler.NewAuthHandler(authService, logger),
		handler.NewTaskHandler(taskService, logger),
		handler.NewProjectHandler(projectService, logger),
		authService,
		logger,
	)

	reminder := worker.NewReminder(taskRepo, logger, cfg.ReminderInterval)
	reminder.Start(context.Background())
	defer reminder.Stop()

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped successfully!")
}
