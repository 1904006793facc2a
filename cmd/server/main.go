package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoPolymarket/polyproxy/internal/config"
	"github.com/GoPolymarket/polyproxy/internal/handler"
	"github.com/GoPolymarket/polyproxy/internal/middleware"
	"github.com/GoPolymarket/polyproxy/internal/pkg/logger"
	"github.com/GoPolymarket/polyproxy/internal/repository"
	"github.com/GoPolymarket/polyproxy/internal/service"
	"github.com/GoPolymarket/polyproxy/internal/signer"
	"github.com/GoPolymarket/polyproxy/internal/upstream"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Log.Level, cfg.Server.Env)
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Rate limit store (Redis > Memory)
	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		redisClient, err := repository.NewRedisClient(cfg)
		if err == nil {
			logger.Info("connected to redis, using shared rate limit windows")
			limiter = middleware.NewRedisLimiter(redisClient, cfg.RateLimit)
		} else {
			logger.Warn("redis unavailable, falling back to in-process rate limiting", "error", err)
		}
	}
	if limiter == nil {
		limiter = middleware.NewMemoryLimiter(cfg.RateLimit)
	}

	// Audit persistence (Postgres > file-only)
	var auditRepo service.AuditRepo
	var auditCleaner service.AuditCleaner
	if cfg.Database.DSN != "" {
		db, err := repository.NewDB(cfg)
		if err == nil {
			logger.Info("connected to postgres, audit entries will be persisted")
			pgRepo := repository.NewPostgresAuditRepo(db)
			auditRepo = pgRepo
			auditCleaner = pgRepo
		} else {
			logger.Warn("database unavailable, audit entries will be file-only", "error", err)
		}
	}
	auditSvc, err := service.NewAuditService("./logs", auditRepo)
	if err != nil {
		log.Fatalf("Failed to initialize audit service: %v", err)
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if auditCleaner != nil && cfg.Database.AuditRetentionDays > 0 {
		retention := time.Duration(cfg.Database.AuditRetentionDays) * 24 * time.Hour
		go service.RetentionSweep(sweepCtx, auditCleaner, retention, time.Hour)
	}

	// Builder attribution credentials (optional)
	var builderCreds *signer.BuilderCredentials
	if cfg.Builder.Enabled() {
		builderCreds = &signer.BuilderCredentials{
			ApiKey:     cfg.Builder.ApiKey,
			Secret:     cfg.Builder.ApiSecret,
			Passphrase: cfg.Builder.ApiPassphrase,
		}
	}

	router := handler.NewRouter(handler.Deps{
		Config:   cfg,
		Auth:     upstream.NewAuthProviderClient(cfg.Auth.BaseURL, cfg.Auth.AnonKey),
		Gamma:    upstream.NewGammaClient(cfg.Gamma.BaseURL),
		Clob:     upstream.NewClobClient(cfg.Clob.BaseURL, builderCreds),
		Comments: upstream.NewCommentsClient(cfg.Comments.BaseURL),
		Signing:  service.NewSigningService(builderCreds),
		Audit:    auditSvc,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("polyproxy started", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}
	auditSvc.Close()

	logger.Info("server exiting")
}
