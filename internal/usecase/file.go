package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/CommunityApp/internal/domain"
	"github.com/GoArmGo/CommunityApp/internal/dto"
)

// FileUseCase определяет работу с файлами в S3
type FileUseCase interface {
	// PresignUpload генерирует ключ объекта под префиксом пользователя
	// и URL для загрузки файла клиентом напрямую в S3
	PresignUpload(ctx context.Context, userID int64, fileName, contentType string) (dto.S3URLResponse, error)

	// PresignDownload возвращает временный URL для скачивания объекта
	PresignDownload(ctx context.Context, key string) (dto.S3URLResponse, error)

	// UploadProfileImage загружает аватар через сервер и записывает его в профиль.
	// Предыдущий файл ставится в очередь на удаление, только если он лежит под префиксом этого пользователя.
	UploadProfileImage(ctx context.Context, userID int64, fileName, contentType string, body io.Reader) (*domain.User, error)

	// DeleteObject удаляет объект из S3, вызывается воркером очистки
	DeleteObject(ctx context.Context, key string) error
}
