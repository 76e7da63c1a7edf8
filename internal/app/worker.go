package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CommunityApp/internal/core/ports"
	"github.com/GoArmGo/CommunityApp/internal/messaging/payloads"
	"github.com/GoArmGo/CommunityApp/internal/usecase"
)

// cleanupHandler удаляет из S3 аватар, который заменил пользователь
func cleanupHandler(files usecase.FileUseCase, logger *slog.Logger) func(context.Context, payloads.ImageCleanupPayload) error {
	return func(ctx context.Context, payload payloads.ImageCleanupPayload) error {
		logger.Info("processing image cleanup", "key", payload.Key, "user_id", payload.UserID, "requested_at", payload.RequestedAt)
		return files.DeleteObject(ctx, payload.Key)
	}
}

// runWorker потребляет задачи очистки из RabbitMQ до отмены ctx
func runWorker(ctx context.Context, files usecase.FileUseCase, consumer ports.ImageCleanupConsumer, logger *slog.Logger) error {
	if consumer == nil {
		return fmt.Errorf("worker: потребитель RabbitMQ не настроен")
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := consumer.StartConsumingImageCleanup(workerCtx, cleanupHandler(files, logger)); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}
	logger.Info("worker started, waiting for image cleanup messages")

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping worker")
	return nil
}
