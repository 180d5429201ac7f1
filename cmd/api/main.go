package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/dinhviettung/citizen-registry/internal/api/http"
	"github.com/dinhviettung/citizen-registry/internal/api/http/handlers"
	"github.com/dinhviettung/citizen-registry/internal/auth"
	"github.com/dinhviettung/citizen-registry/internal/config"
	"github.com/dinhviettung/citizen-registry/internal/events"
	"github.com/dinhviettung/citizen-registry/internal/i18n"
	"github.com/dinhviettung/citizen-registry/internal/observability"
	"github.com/dinhviettung/citizen-registry/internal/persistence"
	"github.com/dinhviettung/citizen-registry/internal/repository"
	"github.com/dinhviettung/citizen-registry/internal/service"
	"github.com/dinhviettung/citizen-registry/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var throttle auth.LoginThrottle = auth.NoopThrottle{}
	if redis != nil && cfg.Login.MaxFailures > 0 {
		throttle = auth.NewRedisThrottle(redis.Client, cfg.Login.MaxFailures, cfg.Login.FailureWindow())
	}

	if cfg.Auth.PasswordMode == config.PasswordModePlain {
		logger.Warn("AUTH_PASSWORD_MODE=plain compares stored passwords as plaintext; migrate to bcrypt")
	}

	passwords, err := auth.NewPasswordVerifier(cfg.Auth.PasswordMode, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("invalid password mode", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	messages := i18n.NewTranslator(cfg.App.Lang)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	db := pg.DB()
	authService := service.NewAuthService(service.AuthDependencies{
		Credentials: repository.NewCredentialRepository(db),
		Tokens:      tokens,
		Passwords:   passwords,
		Throttle:    throttle,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	citizenService := service.NewCitizenService(repository.NewCitizenRepository(db), dispatcher, logger)

	dependencies := map[string]handlers.Pinger{"postgres": pg}
	if redis != nil {
		dependencies["redis"] = redis
	}

	app := httptransport.NewServer(cfg.App.Name, httptransport.MiddlewareConfig{
		Logger:           logger,
		Metrics:          metrics,
		Messages:         messages,
		RequestTimeout:   cfg.App.RequestTimeout(),
		CORSAllowOrigins: cfg.App.CORSAllowOrigins,
	}, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, messages, dependencies),
		Auth:         handlers.NewAuthHandler(authService, messages),
		Citizens:     handlers.NewCitizensHandler(citizenService, messages),
		Gate:         auth.NewGate(tokens, logger),
		LoginLimiter: httptransport.RateLimit(cfg.Login.RatePerSecond, cfg.Login.RateBurst),
		Metrics:      metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.Stringer("lang", messages.Language()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
