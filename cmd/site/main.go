package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentic-landing-site/config"
	_ "agentic-landing-site/docs" // Important for Swagger
	v1 "agentic-landing-site/internal/delivery/http/v1"
	"agentic-landing-site/internal/delivery/http/middleware"
	"agentic-landing-site/internal/repository/contactapi"
	"agentic-landing-site/internal/usecase"
	"agentic-landing-site/pkg/audit"
	"agentic-landing-site/pkg/logger"
	"agentic-landing-site/pkg/redis"
	"agentic-landing-site/pkg/validation"
)

// @title           Agentic Landing Site API
// @version         1.0
// @description     Landing page content and contact form sessions.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init()
	logger.Log.Info("Starting landing site", "port", cfg.Port, "env", cfg.Environment)

	var auditLog *audit.Logger
	if cfg.AuditLogEnabled {
		auditLog = audit.New(cfg.ServiceName, cfg.Environment)
		defer auditLog.Sync()
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Rate Limit Store (optional)
	var rateCounter middleware.Counter
	var redisPing usecase.Pinger
	redisClient, err := redis.Connect(rootCtx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	if err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting in memory", "error", err)
	} else {
		defer redisClient.Close()
		rateCounter = middleware.NewRedisCounter(redisClient)
		redisPing = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
	}

	// 4. Setup Contact Gateway
	contactGateway := contactapi.NewGateway(cfg.ContactAPIBaseURL, nil)

	// 5. Setup UseCases
	validate := validation.New()
	contentUC := usecase.NewContentUsecase()
	formUC := usecase.NewFormSessionUsecase(contactGateway, validate, logger.Log, auditLog, usecase.FormSessionConfig{
		TTL:      cfg.FormSessionTTL(),
		MaxForms: cfg.FormSessionMax,
	})
	healthUC := usecase.NewHealthUsecase(cfg.ContactAPIBaseURL, redisPing)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContentUC:   contentUC,
		FormUC:      formUC,
		HealthUC:    healthUC,
		RateCounter: rateCounter,
		Audit:       auditLog,
		Config:      cfg,
	})

	// 7. Start Server
	srv := newHTTPServer(cfg.Port, router, rootCtx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-rootCtx.Done():
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		// Submits still running end as transport failures
		logger.Log.Error("Server forced to shutdown", "error", err)
		stop()
	}

	logger.Log.Info("Server exiting")
}

// newHTTPServer derives every request context from base, so cancelling base
// aborts contact submits that are still running
func newHTTPServer(port string, handler http.Handler, base context.Context) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
}
