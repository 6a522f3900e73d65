package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/config"
	"github.com/yukikurage/project-tasks-api/internal/constants"
	"github.com/yukikurage/project-tasks-api/internal/database"
	"github.com/yukikurage/project-tasks-api/internal/handlers"
	"github.com/yukikurage/project-tasks-api/internal/logging"
	"github.com/yukikurage/project-tasks-api/internal/middleware"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"github.com/yukikurage/project-tasks-api/internal/services"
	"github.com/yukikurage/project-tasks-api/internal/validation"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := database.Migrate(cfg, db, logger); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Error("failed to create session store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories and shared services
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	resolver := services.NewResolver(userRepo, projectRepo, taskRepo)
	guard := services.NewOwnershipGuard(projectRepo, taskRepo)
	validator := validation.New()

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		logger.Info("OPENAI_API_KEY not set, subtask suggestions disabled")
	}

	authService := services.NewAuthService(userRepo, validator)
	projectService := services.NewProjectService(projectRepo, resolver, guard, validator, logger)
	taskService := services.NewTaskService(taskRepo, resolver, validator, aiService, logger)

	handlers.RegisterRoutes(r, handlers.Routes{
		Health:   handlers.NewHealthHandler(db),
		Auth:     handlers.NewAuthHandler(authService, logger),
		Projects: handlers.NewProjectHandler(projectService, logger),
		Tasks:    handlers.NewTaskHandler(taskService, logger),
		Resolver: resolver,
		Guard:    guard,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server stopped")
}

// newSessionStore builds the Redis-backed store, or a signed cookie store
// when SESSION_STORE=cookie.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.SessionStore == "cookie" {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	} else {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
