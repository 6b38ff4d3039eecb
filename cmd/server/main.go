package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"taskboard/internal/api"
	"taskboard/internal/app/events"
	"taskboard/internal/app/service"
	"taskboard/internal/app/worker"
	"taskboard/internal/common/security"
	"taskboard/internal/domain/repository"
	"taskboard/internal/platform/config"
	"taskboard/internal/platform/database"
	"taskboard/internal/platform/logger"
	"taskboard/internal/platform/queue"
)

func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// 1. Load Configuration
	cfg, dotenv, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log, err := logger.New(cfg)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to initialize logger")
	}
	if !dotenv {
		log.Info().Msg("no .env file found, relying on environment variables")
	}
	if len(cfg.Credentials) == 0 {
		log.Warn().Msg("BASIC_AUTH_CREDENTIALS is empty, every API request will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Database
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to open database")
	}
	defer db.Close()
	log.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	// 3. Initialize activity queue (optional)
	var publisher events.Publisher = events.NopPublisher{}
	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()
	workerDone := make(chan struct{})

	if cfg.Redis.Enabled() {
		rdb, err := queue.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

		publisher = events.NewRedisPublisher(rdb, cfg.Redis.QueueName)
		activityWorker := worker.NewActivityWorker(rdb, cfg.Redis.QueueName, log)
		go func() {
			defer close(workerDone)
			activityWorker.Start(workerCtx)
		}()
	} else {
		close(workerDone)
		log.Info().Msg("REDIS_ADDR not set, task activity queue disabled")
	}

	// 4. Initialize Repositories & Services
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := service.NewAuthService(security.Credentials(cfg.Credentials), userRepo, log)
	taskService := service.NewTaskService(taskRepo, publisher, log)

	// 5. Initialize Router & HTTP Server
	router := api.NewRouter(authService, taskService, log)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.APIPort).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("port", cfg.APIPort).Msg("could not listen")
		}
	}()

	// 6. Graceful Shutdown
	<-ctx.Done()
	log.Info().Msg("shutting down server")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	<-workerDone

	log.Info().Msg("server and worker stopped gracefully")
}
