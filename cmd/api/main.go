package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/premiereye/salesops/config"
	"github.com/premiereye/salesops/pkg/api/handlers"
	"github.com/premiereye/salesops/pkg/auth"
	"github.com/premiereye/salesops/pkg/cache"
	"github.com/premiereye/salesops/pkg/export"
	"github.com/premiereye/salesops/pkg/feeds"
	"github.com/premiereye/salesops/pkg/jobs"
	"github.com/premiereye/salesops/pkg/logger"
	"github.com/premiereye/salesops/pkg/metrics"
	custommiddleware "github.com/premiereye/salesops/pkg/middleware"
	"github.com/premiereye/salesops/pkg/store"
	syncpkg "github.com/premiereye/salesops/pkg/sync"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Initialize Redis cache. The engine works without it; a missing cache
	// only disables the last known-good timeout fallback.
	var redisClient *cache.Client
	if rc, err := cache.NewClient(cfg.RedisURL); err != nil {
		log.Printf("⚠️  Redis unavailable, stale-feed fallback disabled: %v", err)
	} else {
		redisClient = rc
		defer redisClient.Close()
		log.Printf("✅ Redis connected")
	}

	// Initialize Prometheus metrics
	prometheusMetrics := metrics.New()
	log.Printf("✅ Prometheus metrics initialized")

	// Upstream client and the three feed ingestors
	tokenProvider := auth.NewProvider(cfg.UpstreamToken, appLogger)
	upstream := feeds.NewClient(feeds.ClientOptions{
		BaseURL:       cfg.UpstreamBaseURL,
		TokenProvider: tokenProvider,
	})
	ingestors := []feeds.Ingestor{
		feeds.NewAlertsFeed(upstream, cfg.DefaultPhoneRegion),
		feeds.NewRecentActivityFeed(upstream, cfg.DefaultPhoneRegion),
		feeds.NewPipelineFeed(upstream, cfg.DefaultPhoneRegion),
	}

	// Initialize services
	leadStore := store.New()
	coordinator := syncpkg.New(syncpkg.Options{
		Store:       leadStore,
		Ingestors:   ingestors,
		Writer:      upstream,
		Cache:       redisClient,
		Logger:      appLogger,
		Metrics:     prometheusMetrics,
		FeedTimeout: time.Duration(cfg.FeedTimeoutSeconds) * time.Second,
	})
	exportService := export.NewService(cfg.StorageLocalPath)

	// Initialize cron manager for the background refresh
	cronManager := jobs.NewCronManager(coordinator, appLogger)
	if err := cronManager.SetupJobs(cfg.RefreshIntervalMinutes); err != nil {
		log.Fatalf("❌ Failed to setup cron jobs: %v", err)
	}
	cronManager.Start()
	log.Printf("✅ Cron jobs started successfully")

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[%s] %s - Status: %d", c.Request().Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(prometheusMetrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())
	e.Use(globalRateLimiter.RateLimitMiddleware())

	// Health check endpoints (public)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "PremierEye SalesOps API",
			"version":     "0.1.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		cacheStatus := "disabled"
		if redisClient != nil {
			cacheStatus = "up"
			if _, err := redisClient.Exists(c.Request().Context(), "health_check"); err != nil {
				cacheStatus = "down"
			}
		}
		return c.JSON(http.StatusOK, map[string]any{
			"status": "healthy",
			"cache":  cacheStatus,
			"leads":  leadStore.Len(),
		})
	})

	// Prometheus metrics endpoint (public)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(coordinator, leadStore, upstream, exportService)

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.POST("/feeds/refresh", dashboardHandler.Refresh)
		v1.GET("/feeds/status", dashboardHandler.FeedStatus)
		v1.GET("/leads", dashboardHandler.ListLeads)
		v1.GET("/leads/:id", dashboardHandler.GetLead)
		v1.PATCH("/leads/:id/status", dashboardHandler.UpdateStatus)
		v1.POST("/leads/:id/appointment", dashboardHandler.BookAppointment)
		v1.GET("/dashboard/metrics", dashboardHandler.Metrics)
		v1.POST("/exports", dashboardHandler.Export)
		v1.POST("/session/reset", dashboardHandler.Reset)
	}

	// Warm the store before serving traffic
	coordinator.RefreshAll(context.Background())
	log.Printf("🔄 Initial feed refresh triggered")

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 PremierEye SalesOps API starting on %s", address)
	log.Printf("📝 Log level: %s, Log format: %s", cfg.LogLevel, cfg.LogFormat)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d)", cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	log.Printf("⏰ Feed refresh: every %dm, feed timeout: %ds", cfg.RefreshIntervalMinutes, cfg.FeedTimeoutSeconds)

	// Graceful shutdown
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	cronManager.Stop()
	log.Println("✅ Cron jobs stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	// Let pending pipeline writes settle before exiting
	coordinator.Wait()

	log.Println("✅ Server gracefully stopped")
}
