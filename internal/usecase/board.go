package usecase

import (
	"context"

	"github.com/GoArmGo/CommunityApp/internal/dto"
)

// BoardUseCase определяет бизнес-логику статей
type BoardUseCase interface {
	// Create создаёт статью от имени пользователя userID
	Create(ctx context.Context, userID int64, req dto.BoardRequest) (dto.BoardResponse, error)

	// Get возвращает статью по id
	Get(ctx context.Context, boardID int64) (dto.BoardResponse, error)

	// List возвращает опубликованные статьи (is_saved = false), новые первыми
	List(ctx context.Context) ([]dto.BoardResponse, error)

	// ListSaved возвращает черновики пользователя
	ListSaved(ctx context.Context, userID int64) ([]dto.BoardResponse, error)

	// Update редактирует статью. Менять её может только автор.
	Update(ctx context.Context, userID, boardID int64, req dto.BoardRequest) (dto.BoardResponse, error)
}

// CommentUseCase определяет бизнес-логику комментариев
type CommentUseCase interface {
	// FindByBoardID возвращает все комментарии статьи. Пустой список не ошибка.
	FindByBoardID(ctx context.Context, boardID int64) ([]dto.CommentResponse, error)

	// Save создаёт комментарий и возвращает только его id
	Save(ctx context.Context, userID, boardID int64, req dto.CommentRequest) (dto.SavedIDResponse, error)
}
