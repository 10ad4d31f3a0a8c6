package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"bloghub/database"
	"bloghub/internal/config"
	"bloghub/internal/microservices/http-api/handler"
	"bloghub/internal/microservices/http-api/repository"
	"bloghub/internal/microservices/http-api/server"
	"bloghub/internal/microservices/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Setup structured logging
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database (runs pending migrations first)
	gdb, sqlDB, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Repositories
	userRepo := repository.NewUserRepository(gdb)
	postRepo := repository.NewPostRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)
	taxonomyRepo := repository.NewTaxonomyRepository(gdb)
	siteRepo := repository.NewSiteRepository(gdb)

	healthChecks := map[string]handler.Pinger{
		"postgres": handler.PingFunc(sqlDB.PingContext),
	}

	// Optional Redis counter buffer
	var (
		buffer  service.CounterBuffer
		flusher *service.CounterFlusher
		rdb     *redis.Client
	)
	if cfg.RedisEnabled() {
		rdb, err = repository.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			logger.Error("redis_connect_failed", "error", err)
			os.Exit(1)
		}
		counterBuffer := repository.NewCounterBuffer(rdb)
		buffer = counterBuffer
		healthChecks["redis"] = counterBuffer

		flusher = service.NewCounterFlusher(counterBuffer, postRepo, cfg.CounterFlushInterval, logger)
		flusher.Start()
		logger.Info("counter_buffer_enabled", "flush_interval", cfg.CounterFlushInterval.String())
	}

	// Services
	tokens, err := service.NewTokenService(cfg)
	if err != nil {
		logger.Error("token_service_failed", "error", err)
		os.Exit(1)
	}

	deps := server.Deps{
		Logger:         logger,
		Auth:           service.NewAuthService(userRepo, tokens),
		Posts:          service.NewPostService(postRepo, taxonomyRepo),
		Comments:       service.NewCommentService(commentRepo, postRepo),
		Taxonomy:       service.NewTaxonomyService(taxonomyRepo),
		Site:           service.NewSiteService(siteRepo),
		Interactions:   service.NewInteractionService(postRepo, buffer, logger),
		HealthChecks:   healthChecks,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           server.NewHandler(deps),
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("http_server_starting", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("http_server_error", "error", err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_failed", "error", err)
		exitCode = 1
	}

	// drain buffered counters after the last request finished
	if flusher != nil {
		flusher.Stop()
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("redis_close_failed", "error", err)
		}
	}

	logger.Info("server_stopped_gracefully")
	if exitCode != 0 {
		sqlDB.Close()
		os.Exit(exitCode)
	}
}
