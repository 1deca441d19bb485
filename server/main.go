package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kinderadmin/api/routes"
	"kinderadmin/internal/errorlogs"
	"kinderadmin/internal/migrations"
	"kinderadmin/internal/shared/config"
	"kinderadmin/internal/shared/database"
	"kinderadmin/internal/shared/middleware"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/pkg/logger"
	"kinderadmin/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Rebuild after gin mode is known so the handler format matches.
	appLogger = logger.New()
	logger.SetDefault(appLogger)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	migrationService := migrations.NewService(migrations.NewRepository(db.PostgreSQL), migrations.Registry())
	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	result, err := migrationService.RunPending(migrateCtx)
	migrateCancel()
	if err != nil {
		appLogger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	appLogger.Info("Schema up to date", slog.Any("applied", result.Applied))

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			UploadRequests:  cfg.RateLimit.UploadRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			ReportRequests:  cfg.RateLimit.ReportRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Bool("distributed", db.Redis != nil),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())
	defer backgroundCancel()

	// Error log pipeline: Kafka when enabled, direct writes otherwise.
	errorLogRepo := errorlogs.NewRepository(db.PostgreSQL)
	var publisher errorlogs.Publisher
	var consumer *errorlogs.Consumer
	if cfg.Kafka.Enabled {
		producer, err := errorlogs.NewKafkaPublisher(errorlogs.DefaultProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.ErrorLogTopic))
		if err != nil {
			appLogger.Warn("Kafka producer unavailable, error logs are written directly", slog.Any("error", err))
		} else {
			publisher = producer
			defer producer.Close()

			consumer, err = errorlogs.NewConsumer(
				errorlogs.DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ErrorLogTopic),
				errorLogRepo,
			)
			if err != nil {
				appLogger.Error("Failed to create error log consumer", slog.Any("error", err))
			} else {
				consumer.Start(backgroundCtx, cfg.Kafka.Workers)
			}
		}
	}
	errorLogService := errorlogs.NewService(errorLogRepo, publisher)

	sink := errorlogs.NewServerSink(appLogger, errorLogService, 256)
	sink.Start(backgroundCtx)
	res := response.NewResponder(sink)

	router := setupRouter(cfg, db, res, errorLogService, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", Version),
			slog.String("git_commit", GitCommit),
			slog.String("build_time", BuildTime),
			slog.Bool("redis_cache", db.Redis != nil),
			slog.Bool("kafka_error_logs", publisher != nil),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	sink.Close()
	if consumer != nil {
		if err := consumer.Stop(); err != nil {
			appLogger.Error("Error stopping error log consumer", slog.Any("error", err))
		}
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, res *response.Responder, errorLogService errorlogs.Service, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.MaxMultipartMemory = cfg.Upload.MaxSize + 1<<20
	engine.Use(RequestLoggerMiddleware(appLogger), middleware.Recovery(res))

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter, res))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter := routes.NewRouter(cfg, db, res, errorLogService)
	appRouter.SetupRoutes(engine)

	return engine
}

// RequestLoggerMiddleware tags each request with an X-Request-ID and logs
// it once the handler chain has finished.
func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		reqLogger := l.WithRequestID(requestID)
		if user := middleware.CurrentUser(c); user != nil {
			reqLogger = reqLogger.WithUserID(user.ID)
		}
		reqLogger.LogHTTPRequest(c, time.Since(start))
	}
}
