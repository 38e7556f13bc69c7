package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/cadenceapp/cadence/internal/adapters/cache"
	adapterHTTP "github.com/cadenceapp/cadence/internal/adapters/handler/http"
	"github.com/cadenceapp/cadence/internal/adapters/repository"
	"github.com/cadenceapp/cadence/internal/config"
	"github.com/cadenceapp/cadence/internal/core/domain"
	"github.com/cadenceapp/cadence/internal/core/services"
	"github.com/cadenceapp/cadence/internal/core/workers"
)

func main() {
	startTime := time.Now()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "cadence-api").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration error")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	logger.Info().Msg("connecting to database")

	db, err := sqlx.Connect("pgx", cfg.DatabaseDSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info().Msg("database connected")

	redisClient, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		// The API degrades gracefully: no cache, no rate limiting.
		logger.Warn().Err(err).Msg("redis unavailable, running without cache")
		redisClient = nil
	}

	userRepo := repository.NewPostgresUserRepository(db)
	categoryRepo := repository.NewPostgresCategoryRepository(db)
	metricRepo := repository.NewPostgresMetricRepository(db)
	entryRepo := repository.NewPostgresEntryRepository(db)
	goalRepo := repository.NewPostgresGoalRepository(db)
	groupRepo := repository.NewPostgresGroupRepository(db)

	var activityRepo domain.ActivityRepository = repository.NewPostgresActivityRepository(db)
	if redisClient != nil {
		activityRepo = repository.NewCachedActivityRepository(activityRepo, redisClient, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	streakWorker := workers.NewStreakWorker(activityRepo, entryRepo, userRepo, logger)
	streakWorker.Start(ctx)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenDuration, userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	activityService := services.NewActivityService(activityRepo, categoryRepo, metricRepo)
	entryService := services.NewEntryService(entryRepo, activityRepo, streakWorker)
	goalService := services.NewGoalService(goalRepo, activityRepo, entryRepo, userRepo)
	groupService := services.NewGroupService(groupRepo)
	statsService := services.NewStatsService(activityRepo, entryRepo, userRepo, groupRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		CategoryHandler: adapterHTTP.NewCategoryHandler(categoryService),
		ActivityHandler: adapterHTTP.NewActivityHandler(activityService),
		EntryHandler:    adapterHTTP.NewEntryHandler(entryService),
		GoalHandler:     adapterHTTP.NewGoalHandler(goalService),
		GroupHandler:    adapterHTTP.NewGroupHandler(groupService),
		StatsHandler:    adapterHTTP.NewStatsHandler(statsService),
		TokenService:    tokenService,
		Logger:          logger,
		DB:              db,
		Redis:           redisClient,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("cadence API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	logger.Info().Msg("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server stopped gracefully")
}
