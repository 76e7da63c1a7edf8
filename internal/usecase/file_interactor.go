package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GoArmGo/CommunityApp/internal/core/ports"
	"github.com/GoArmGo/CommunityApp/internal/domain"
	"github.com/GoArmGo/CommunityApp/internal/dto"
	"github.com/GoArmGo/CommunityApp/internal/messaging/payloads"
)

// FileOptions задаёт параметры presigned URL и ключей объектов
type FileOptions struct {
	KeyPrefix  string
	PresignTTL time.Duration
}

type fileUseCase struct {
	fileStorage ports.FileStorage
	userStorage ports.UserStorage
	hasher      PasswordHasher
	cleanup     ports.ImageCleanupPublisher
	opts        FileOptions
	newID       func() string
	logger      *slog.Logger
}

// NewFileUseCase создает новый экземпляр FileUseCase
func NewFileUseCase(
	fileStorage ports.FileStorage,
	userStorage ports.UserStorage,
	hasher PasswordHasher,
	cleanup ports.ImageCleanupPublisher,
	opts FileOptions,
	logger *slog.Logger,
) FileUseCase {
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = 10 * time.Minute
	}
	return &fileUseCase{
		fileStorage: fileStorage,
		userStorage: userStorage,
		hasher:      hasher,
		cleanup:     cleanup,
		opts:        opts,
		newID:       func() string { return uuid.NewString() },
		logger:      logger,
	}
}

func (uc *fileUseCase) PresignUpload(ctx context.Context, userID int64, fileName, contentType string) (dto.S3URLResponse, error) {
	key, err := uc.objectKey(userID, fileName)
	if err != nil {
		return dto.S3URLResponse{}, err
	}

	url, err := uc.fileStorage.PresignPut(ctx, key, contentType, uc.opts.PresignTTL)
	if err != nil {
		return dto.S3URLResponse{}, fmt.Errorf("usecase: presigned URL для загрузки %s: %w", key, err)
	}
	return dto.S3URLResponse{URL: url, Key: key}, nil
}

func (uc *fileUseCase) PresignDownload(ctx context.Context, key string) (dto.S3URLResponse, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return dto.S3URLResponse{}, fmt.Errorf("%w: invalid object key", domain.ErrValidation)
	}

	url, err := uc.fileStorage.PresignGet(ctx, key, uc.opts.PresignTTL)
	if err != nil {
		return dto.S3URLResponse{}, fmt.Errorf("usecase: presigned URL для скачивания %s: %w", key, err)
	}
	return dto.S3URLResponse{URL: url, Key: key}, nil
}

func (uc *fileUseCase) UploadProfileImage(ctx context.Context, userID int64, fileName, contentType string, body io.Reader) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: загрузка аватара %d: %w", userID, err)
	}

	key, err := uc.objectKey(userID, fileName)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := uc.fileStorage.UploadFile(ctx, key, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("usecase: загрузка файла %s в S3: %w", key, err)
	}

	previous := user.ImgName
	merged, err := MergeProfile(*user, dto.UserProfileUpdate{ImgName: &key, ImgURL: &url}, uc.hasher)
	if err != nil {
		return nil, err
	}
	if err := uc.userStorage.SaveUser(ctx, &merged); err != nil {
		// загруженный объект ни на что не ссылается
		uc.scheduleCleanup(ctx, userID, key)
		return nil, fmt.Errorf("usecase: сохранение аватара %d: %w", userID, err)
	}

	if previous != key && uc.ownsKey(userID, previous) {
		uc.scheduleCleanup(ctx, userID, previous)
	} else if previous != "" && previous != key {
		uc.logger.Warn("previous image is outside user prefix, cleanup skipped", "user_id", userID, "key", previous)
	}
	return &merged, nil
}

func (uc *fileUseCase) DeleteObject(ctx context.Context, key string) error {
	if err := uc.fileStorage.DeleteFile(ctx, key); err != nil {
		return fmt.Errorf("usecase: удаление объекта %s: %w", key, err)
	}
	uc.logger.Info("object deleted", "key", key)
	return nil
}

// scheduleCleanup только логирует ошибку публикации
func (uc *fileUseCase) scheduleCleanup(ctx context.Context, userID int64, key string) {
	if uc.cleanup == nil {
		return
	}
	err := uc.cleanup.PublishImageCleanup(ctx, payloads.ImageCleanupPayload{
		Key:         key,
		UserID:      userID,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		uc.logger.Error("failed to schedule image cleanup", "user_id", userID, "key", key, "error", err)
	}
}

// userPrefix возвращает <prefix>/<userID>/, под которым лежат файлы пользователя
func (uc *fileUseCase) userPrefix(userID int64) string {
	p := strconv.FormatInt(userID, 10) + "/"
	if prefix := strings.Trim(uc.opts.KeyPrefix, "/"); prefix != "" {
		p = prefix + "/" + p
	}
	return p
}

// ownsKey сообщает, выдан ли ключ этому пользователю.
// img_name редактируется через профиль, поэтому доверять ему нельзя.
func (uc *fileUseCase) ownsKey(userID int64, key string) bool {
	if key == "" || strings.Contains(key, "..") {
		return false
	}
	rest, ok := strings.CutPrefix(key, uc.userPrefix(userID))
	return ok && rest != "" && !strings.Contains(rest, "/")
}

// objectKey строит ключ вида <prefix>/<userID>/<uuid>_<имя файла>
func (uc *fileUseCase) objectKey(userID int64, fileName string) (string, error) {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("%w: file name is required", domain.ErrValidation)
	}
	if userID <= 0 {
		return "", fmt.Errorf("%w: owner is required", domain.ErrValidation)
	}
	return uc.userPrefix(userID) + uc.newID() + "_" + name, nil
}
