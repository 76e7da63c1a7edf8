package ports

import (
	"context"

	"github.com/GoArmGo/CommunityApp/internal/messaging/payloads"
)

// ImageCleanupPublisher публикует задачи на удаление заменённых файлов из S3.
// Используется юзкейсом загрузки аватара.
type ImageCleanupPublisher interface {
	PublishImageCleanup(ctx context.Context, payload payloads.ImageCleanupPayload) error
}

// ImageCleanupConsumer используется воркером для получения задач из очереди
type ImageCleanupConsumer interface {
	// StartConsumingImageCleanup начинает прослушивание очереди,
	// handler вызывается для каждого полученного сообщения
	StartConsumingImageCleanup(ctx context.Context, handler func(context.Context, payloads.ImageCleanupPayload) error) error
}
