package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/examcell/exam-portal-server/internal/auth"
	"github.com/examcell/exam-portal-server/internal/config"
	"github.com/examcell/exam-portal-server/internal/database"
	"github.com/examcell/exam-portal-server/internal/handler"
	"github.com/examcell/exam-portal-server/internal/httputil"
	"github.com/examcell/exam-portal-server/internal/metrics"
	"github.com/examcell/exam-portal-server/internal/middleware"
	"github.com/examcell/exam-portal-server/internal/redis"
	"github.com/examcell/exam-portal-server/internal/repository"
	"github.com/examcell/exam-portal-server/internal/service"
	"github.com/examcell/exam-portal-server/internal/validation"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := cfg.IsProduction()
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}
		log.Info().Msg("schema applied")
	}
	cancel()
	log.Info().Msg("database connected")

	ctx, cancel = context.WithTimeout(context.Background(), config.DBPingTimeout)
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	adminRepo := repository.NewAdminRepository(db.DB)
	cityRepo := repository.NewCityRepository(db.DB)
	collegeRepo := repository.NewCollegeRepository(db.DB)
	announcementRepo := repository.NewAnnouncementRepository(db.DB)
	examConfigRepo := repository.NewExamConfigRepository(db.DB)
	studentRepo := repository.NewStudentRepository(db.DB)

	appMetrics := metrics.New()
	tokens := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL())
	validator := validation.New()

	adminService := service.NewAdminService(adminRepo, tokens, config.BcryptCost)
	catalogService := service.NewCatalogService(cityRepo, collegeRepo)
	announcementService := service.NewAnnouncementService(announcementRepo)
	examConfigService := service.NewExamConfigService(examConfigRepo)
	hallTicketService := service.NewHallTicketService(studentRepo)

	loginLimiter := service.NewRateLimiter(redisClient, "login", cfg.LoginRateLimitPerMin, config.LoginRateLimitWindow)
	lookupLimiter := service.NewRateLimiter(redisClient, "hallticket", cfg.HallTicketRateLimitPerMin, config.HallTicketRateLimitWindow)

	authMiddleware := middleware.NewAuthMiddleware(tokens, adminRepo, appMetrics)
	resourceChecks := middleware.NewResourceCheckMiddleware(validator, cityRepo, collegeRepo)
	loginRateLimit := middleware.NewIPRateLimitMiddleware(loginLimiter, appMetrics)
	lookupRateLimit := middleware.NewIPRateLimitMiddleware(lookupLimiter, appMetrics)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	adminHandler := handler.NewAdminHandler(adminService, authMiddleware, loginRateLimit.Handler, validator)
	catalogHandler := handler.NewCatalogHandler(catalogService, authMiddleware, resourceChecks)
	announcementHandler := handler.NewAnnouncementHandler(announcementService, authMiddleware, validator)
	examConfigHandler := handler.NewExamConfigHandler(examConfigService, authMiddleware, validator)
	studentHandler := handler.NewStudentHandler(hallTicketService, authMiddleware, lookupRateLimit.Handler, validator, appMetrics)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), config.DBPingTimeout)
		defer cancel()

		checks := map[string]string{"database": "ok", "redis": "ok"}
		status := http.StatusOK
		if err := db.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health: database ping failed")
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if err := redisClient.Healthy(ctx); err != nil {
			log.Warn().Err(err).Msg("health: redis ping failed")
			checks["redis"] = "unavailable"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status":    overall,
			"checks":    checks,
			"timestamp": time.Now().UnixMilli(),
		})
	})
	r.Handle("/metrics", appMetrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Mount("/admin", adminHandler.Routes())
		r.Mount("/cities", catalogHandler.CityRoutes())
		r.Mount("/colleges", catalogHandler.CollegeRoutes())
		r.Mount("/announcements", announcementHandler.Routes())
		r.Mount("/exam-config", examConfigHandler.Routes())
		r.Mount("/students", studentHandler.AdminRoutes())
	})
	r.Mount("/student", studentHandler.PublicRoutes())

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.AppEnv).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
