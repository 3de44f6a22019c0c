package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasktracker/pkg/translator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authadapter "tasktracker/internal/adapter/auth"
	cacheadapter "tasktracker/internal/adapter/cache"
	dbadapter "tasktracker/internal/adapter/db"
	httpadapter "tasktracker/internal/adapter/http"
	"tasktracker/internal/adapter/http/handlers"
	httpmiddleware "tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/adapter/mail"
	appservice "tasktracker/internal/app/service"
	"tasktracker/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	if err := translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	}); err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}
	validation.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	if cfg.DbAutoMigrate {
		if err := dbadapter.Migrate(ctx, db); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	store, err := cacheadapter.NewStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open cache", zap.Error(err))
	}
	taskCache := cacheadapter.NewTaskCache(store, cfg.CacheTTL)
	defer func() {
		if err := taskCache.Close(); err != nil {
			logger.Warn("failed to close cache", zap.Error(err))
		}
	}()

	sessions, err := authadapter.NewJWTIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		logger.Fatal("invalid jwt configuration", zap.Error(err))
	}

	userRepository := dbadapter.NewUserRepository(db)
	taskRepository := dbadapter.NewTaskRepository(db)
	workspaceRepository := dbadapter.NewWorkspaceRepository(db)

	taskService := appservice.NewTaskService(taskRepository, workspaceRepository, taskCache)
	workspaceService := appservice.NewWorkspaceService(workspaceRepository, taskCache)
	authService := appservice.NewAuthService(
		userRepository,
		authadapter.NewBcryptHasher(authadapter.DefaultBcryptCost),
		sessions,
		mail.New(cfg),
		workspaceService,
	)

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer limiter.Stop()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		httpmiddleware.GinZapMiddleware(logger, "/metrics", "/api/health"),
		httpmiddleware.PrometheusMiddleware(),
		httpadapter.CORSMiddleware(cfg.FrontendURL),
	)
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:    handlers.NewHealthHandler(db, handlers.PingerFunc(taskCache.Ping), cfg.CacheDriver),
		Auth:      handlers.NewAuthHandler(authService),
		Task:      handlers.NewTaskHandler(taskService),
		Workspace: handlers.NewWorkspaceHandler(workspaceService),
	}, sessions, limiter)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("cache_driver", cfg.CacheDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
