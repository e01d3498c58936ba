package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ravikant-m/voicebank/internal/adapter/assistant"
	httpAdapter "github.com/ravikant-m/voicebank/internal/adapter/http"
	"github.com/ravikant-m/voicebank/internal/adapter/http/handler"
	"github.com/ravikant-m/voicebank/internal/adapter/http/middleware"
	postgresRepo "github.com/ravikant-m/voicebank/internal/adapter/repository/postgres"
	redisRepo "github.com/ravikant-m/voicebank/internal/adapter/repository/redis"
	"github.com/ravikant-m/voicebank/internal/infrastructure/auth"
	"github.com/ravikant-m/voicebank/internal/infrastructure/config"
	"github.com/ravikant-m/voicebank/internal/infrastructure/logger"
	"github.com/ravikant-m/voicebank/internal/infrastructure/postgres"
	"github.com/ravikant-m/voicebank/internal/infrastructure/redis"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories and stores
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	retrier := postgresRepo.NewRetrier(log.Logger)
	idGen := postgresRepo.NewULIDGenerator()
	otpStore := redisRepo.NewOTPStore(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	assistantClient := assistant.NewClient(assistant.Config{
		BaseURL: cfg.AssistantBaseURL,
		APIKey:  cfg.AssistantAPIKey,
		Model:   cfg.AssistantModel,
	}, log.Logger)

	// Use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, entryRepo)
	transferUC := usecase.NewTransferUseCase(txManager, retrier, accountRepo, entryRepo, idGen)
	authUC := usecase.NewAuthUseCase(otpStore, accountRepo, entryRepo, txManager, idGen, jwtManager, cfg.OTPTTL)
	assistantUC := usecase.NewAssistantUseCase(assistantClient, accountRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// Rate limiter for the auth surface; flushed hourly so the per-IP
	// map stays bounded.
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			authLimiter.CleanupLimiters()
		}
	}()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      handler.NewAuthHandler(authUC, cfg.ExposeOTP),
		AccountHandler:   handler.NewAccountHandler(accountUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		ChatHandler:      handler.NewChatHandler(assistantUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		JWTManager:       jwtManager,
		AuthRateLimiter:  authLimiter,
		Logger:           log.Logger,
		RequireAuth:      cfg.AuthEnabled && cfg.JWTSecret != "",
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
