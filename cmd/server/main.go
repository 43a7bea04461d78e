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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/clubhub/clubhub/application/audit"
	"github.com/clubhub/clubhub/application/usecase"
	"github.com/clubhub/clubhub/infrastructure/config"
	"github.com/clubhub/clubhub/infrastructure/http/handler"
	"github.com/clubhub/clubhub/infrastructure/http/middleware"
	"github.com/clubhub/clubhub/infrastructure/persistence/mongodb"
	"github.com/clubhub/clubhub/infrastructure/service/jwt"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
	"github.com/clubhub/clubhub/infrastructure/service/mail"
	"github.com/clubhub/clubhub/infrastructure/service/password"
	"github.com/clubhub/clubhub/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "clubhub",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	store, err := mongodb.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to connect to MongoDB", err, map[string]interface{}{
			"database": cfg.MongoDatabase,
		})
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close()
	structuredLogger.Info(ctx, "MongoDB connection established", map[string]interface{}{
		"database": cfg.MongoDatabase,
	})

	// Repositories
	adminRepo := mongodb.NewAdminRepository(store)
	userRepo := mongodb.NewUserRepository(store)
	clubRepo := mongodb.NewClubRepository(store)
	eventRepo := mongodb.NewEventRepository(store)
	logRepo := mongodb.NewLogRepository(store)

	// Services
	tokenService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(10)
	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, structuredLogger)

	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.Config{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
	}, logrus.New())
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limit service", err, map[string]interface{}{
			"redis_url": cfg.RedisURL,
		})
		log.Fatalf("Failed to initialize rate limit service: %v", err)
	}

	// Audit
	recorder := audit.NewRecorder(logRepo, structuredLogger)
	resolver := audit.NewResolver(adminRepo, userRepo, clubRepo, eventRepo, structuredLogger)

	// Use cases
	authUseCase := usecase.NewAuthUseCase(adminRepo, userRepo, clubRepo, tokenService, passwordService, rateLimitService, recorder, structuredLogger)
	clubUseCase := usecase.NewClubUseCase(clubRepo, userRepo, adminRepo, eventRepo, passwordService, mailer, recorder, structuredLogger)
	eventUseCase := usecase.NewEventUseCase(eventRepo, clubRepo, mailer, recorder, structuredLogger)
	userUseCase := usecase.NewUserManagementUseCase(userRepo, adminRepo, clubRepo, passwordService, mailer, recorder, structuredLogger)
	logUseCase := usecase.NewLogUseCase(logRepo, adminRepo, userRepo, clubRepo, resolver, recorder, structuredLogger)
	resetUseCase := usecase.NewPasswordResetUseCase(adminRepo, userRepo, clubRepo, passwordService, mailer, recorder, structuredLogger, cfg.FrontendURL)
	adminUseCase := usecase.NewAdminUseCase(clubRepo, userRepo, eventRepo, structuredLogger)

	// HTTP
	authMW := middleware.NewAuthMiddleware(tokenService, authUseCase, structuredLogger)
	rateLimitMW := middleware.NewRateLimitMiddleware(rateLimitService, structuredLogger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsMW := middleware.NewMetricsMiddleware(registry)

	router := handler.NewRouter(handler.RouterConfig{
		Auth:          handler.NewAuthHandler(authUseCase, structuredLogger),
		Clubs:         handler.NewClubHandler(clubUseCase, structuredLogger),
		Events:        handler.NewEventHandler(eventUseCase, structuredLogger),
		Users:         handler.NewUserHandler(userUseCase, structuredLogger),
		Logs:          handler.NewLogHandler(logUseCase, structuredLogger),
		PasswordReset: handler.NewPasswordResetHandler(resetUseCase, structuredLogger),
		Dashboard:     handler.NewDashboardHandler(adminUseCase, structuredLogger),

		AuthMW:    authMW,
		RateLimit: rateLimitMW,
		Metrics:   metricsMW,

		CORSEnabled:          cfg.CORSEnabled,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		CORSAllowCredentials: cfg.CORSAllowCredentials,

		MetricsEnabled: cfg.MetricsEnabled,
		PromGatherer:   registry,
	})

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		structuredLogger.Info(ctx, "HTTP server listening", map[string]interface{}{"addr": addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "HTTP server failed", err, nil)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	structuredLogger.Info(ctx, "Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Shutdown failed", err, nil)
	}
}
