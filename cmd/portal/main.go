package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	portalhttp "campusportal/internal/portal/adapters/http"
	"campusportal/internal/portal/adapters/http/middleware"
	"campusportal/internal/portal/adapters/http/views"
	"campusportal/internal/portal/adapters/postgres"
	"campusportal/internal/portal/adapters/services"
	"campusportal/internal/portal/adapters/store"
	"campusportal/internal/portal/app"
	"campusportal/internal/portal/config"
	"campusportal/internal/portal/db"
	"campusportal/internal/portal/domain/validation"
	"campusportal/internal/portal/resilience"
	"campusportal/pkg/db/redis"
	"campusportal/pkg/logger"
	"campusportal/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "PORTAL_LOGGER_MODE"
	EnvLoggerLevel = "PORTAL_LOGGER_LEVEL"
	EnvConfigPath  = "PORTAL_CONFIG_PATH"

	defaultConfigPath = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrInitRenderer         = "failed to initialize page renderer"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "portal service started"
	LogServiceShutdownDone = "portal service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitSessionStore    = "initializing session store"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		configPath := os.Getenv(EnvConfigPath)
		if configPath == "" {
			configPath = defaultConfigPath
		}

		cfg, err := config.Load(ctx, configPath)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitSessionStore)
		redisClient, err := redis.NewClient(ctx, cfg.Redis.ToClientConfig())
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		renderer, err := views.NewRenderer()
		if err != nil {
			log.Error(ctx, ErrInitRenderer, zap.Error(err))
			database.Close(ctx)
			_ = redisClient.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		serviceFactory := services.NewServiceFactory(cfg.Security.BcryptCost)
		validator := validation.New()

		guard := resilience.NewDefaultGuard("sessions", store.IsTransient)
		sessionUseCase := app.NewSessionUseCase(store.NewSessionStore(redisClient.RawClient(), cfg.Session.TTL, guard))
		feedbackUseCase := app.NewFeedbackUseCase(store.NewFeedbackStore(redisClient.RawClient(), cfg.Session.FeedbackTTL))
		authUseCase := app.NewAuthUseCase(repoFactory.UserRepository(), serviceFactory.PasswordService(), validator)
		accountUseCase := app.NewAccountUseCase(repoFactory.UserRepository(), sessionUseCase, validator)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
		})

		portalhttp.SetupRouter(fiberApp, log, portalhttp.Dependencies{
			Auth:     authUseCase,
			Accounts: accountUseCase,
			Sessions: sessionUseCase,
			Feedback: feedbackUseCase,
			Renderer: renderer,
			Cookie: &middleware.SessionCookie{
				Name:     cfg.Session.CookieName,
				TTL:      cfg.Session.TTL,
				Secure:   cfg.Session.Secure,
				SameSite: cfg.Session.GetSameSite(),
			},
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.ShutdownWithContext(ctx)
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				return redisClient.Close(ctx)
			},
			// Закрытие пула PostgreSQL.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
