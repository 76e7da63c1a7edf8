package di

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/GoArmGo/CommunityApp/internal/adapter/storage/s3storage"
	"github.com/GoArmGo/CommunityApp/internal/app"
	"github.com/GoArmGo/CommunityApp/internal/auth"
	"github.com/GoArmGo/CommunityApp/internal/config"
	"github.com/GoArmGo/CommunityApp/internal/database/client"
	"github.com/GoArmGo/CommunityApp/internal/database/storage"
	"github.com/GoArmGo/CommunityApp/internal/handler"
	"github.com/GoArmGo/CommunityApp/internal/logger"
	"github.com/GoArmGo/CommunityApp/internal/metrics"
	"github.com/GoArmGo/CommunityApp/internal/rabbitmq"
	"github.com/GoArmGo/CommunityApp/internal/ratelimit"
	"github.com/GoArmGo/CommunityApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "communityapp",
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var closers []func()
	fail := func(err error) (*app.App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		return nil, err
	}

	// 2. PostgreSQL и миграции
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, func() { _ = dbClient.Close() })

	// 3. Хранилища
	userStorage := storage.NewUserStorage(dbClient.Gorm, dbClient.DB, slogger)
	boardStorage := storage.NewBoardStorage(dbClient.Gorm, slogger)
	commentStorage := storage.NewCommentStorage(dbClient.Gorm, dbClient.DB, slogger)

	// 4. S3 / MinIO
	fileStorage, err := s3storage.NewClient(ctx, cfg, slogger)
	if err != nil {
		return fail(err)
	}

	// 5. RabbitMQ: сервер публикует задачи очистки, воркер их потребляет
	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, rabbitMQClient.Close)

	// 6. Авторизация
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)

	// 7. Бизнес-логика
	profileUseCase := usecase.NewProfileUseCase(userStorage, hasher, tokens, slogger)
	boardUseCase := usecase.NewBoardUseCase(boardStorage, userStorage, slogger)
	commentUseCase := usecase.NewCommentUseCase(commentStorage, boardStorage, userStorage, slogger)
	fileUseCase := usecase.NewFileUseCase(fileStorage, userStorage, hasher, rabbitMQClient, usecase.FileOptions{
		KeyPrefix:  cfg.S3.KeyPrefix,
		PresignTTL: cfg.S3.PresignTTL,
	}, slogger)

	// 8. Rate limit и метрики
	limiter := newLimiter(ctx, cfg, slogger)
	closers = append(closers, limiter.Close)

	router := handler.NewRouter(handler.RouterDeps{
		Profile:        profileUseCase,
		Boards:         boardUseCase,
		Comments:       commentUseCase,
		Files:          fileUseCase,
		Tokens:         tokens,
		Resolver:       auth.NewResolver(),
		Limiter:        limiter,
		Metrics:        metrics.New(),
		RequestTimeout: cfg.RequestTimeout,
		Logger:         slogger,
	})

	// 9. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, router, fileUseCase, rabbitMQClient, closers...)

	slogger.Info("all dependencies initialized")
	return application, nil
}

// newLimiter использует Redis, если задан REDIS_ADDR и он отвечает, иначе лимитер в памяти
func newLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) ratelimit.Limiter {
	if cfg.Redis.Addr != "" {
		l, err := ratelimit.NewRedisLimiter(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.RateLimitPerMinute, logger)
		if err == nil {
			logger.Info("using redis rate limiter", "addr", cfg.Redis.Addr, "per_minute", cfg.RateLimitPerMinute)
			return l
		}
		logger.Warn("redis unavailable, falling back to in-memory rate limiter", "addr", cfg.Redis.Addr, "error", err)
	}
	logger.Info("using in-memory rate limiter", "per_minute", cfg.RateLimitPerMinute)
	return ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute)
}
