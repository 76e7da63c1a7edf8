package ports

import (
	"context"
	"io"
	"time"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
// Отсутствующая запись возвращается как ошибка domain.ErrNotFound.
type UserStorage interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// SaveUser перезаписывает все поля записи по её id
	SaveUser(ctx context.Context, user *domain.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
}

// BoardStorage определяет методы для работы со статьями
type BoardStorage interface {
	CreateBoard(ctx context.Context, board *domain.Board) error
	GetBoardByID(ctx context.Context, id int64) (*domain.Board, error)
	SaveBoard(ctx context.Context, board *domain.Board) error
	// ListBoards возвращает статьи с указанным флагом is_saved, новые первыми
	ListBoards(ctx context.Context, isSaved bool) ([]domain.Board, error)
	ListBoardsByUser(ctx context.Context, userID int64, isSaved bool) ([]domain.Board, error)
}

// CommentStorage определяет методы для работы с комментариями
type CommentStorage interface {
	CreateComment(ctx context.Context, comment *domain.Comment) error
	ListCommentsByBoardID(ctx context.Context, boardID int64) ([]domain.Comment, error)
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
type FileStorage interface {
	// PresignPut возвращает URL, по которому клиент сам загружает файл методом PUT
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	// PresignGet возвращает временный URL для скачивания
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// UploadFile загружает файл в хранилище и возвращает его публичный URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
