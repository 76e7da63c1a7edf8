package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CommunityApp/internal/core/ports"
	"github.com/GoArmGo/CommunityApp/internal/dto"
)

type commentUseCase struct {
	commentStorage ports.CommentStorage
	boardStorage   ports.BoardStorage
	userStorage    ports.UserStorage
	logger         *slog.Logger
}

// NewCommentUseCase создает новый экземпляр CommentUseCase
func NewCommentUseCase(
	commentStorage ports.CommentStorage,
	boardStorage ports.BoardStorage,
	userStorage ports.UserStorage,
	logger *slog.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentStorage: commentStorage,
		boardStorage:   boardStorage,
		userStorage:    userStorage,
		logger:         logger,
	}
}

func (uc *commentUseCase) FindByBoardID(ctx context.Context, boardID int64) ([]dto.CommentResponse, error) {
	comments, err := uc.commentStorage.ListCommentsByBoardID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("usecase: комментарии статьи %d: %w", boardID, err)
	}
	return dto.NewCommentResponses(comments), nil
}

func (uc *commentUseCase) Save(ctx context.Context, userID, boardID int64, req dto.CommentRequest) (dto.SavedIDResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.SavedIDResponse{}, err
	}

	author, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return dto.SavedIDResponse{}, fmt.Errorf("usecase: автор комментария %d: %w", userID, err)
	}
	if _, err := uc.boardStorage.GetBoardByID(ctx, boardID); err != nil {
		return dto.SavedIDResponse{}, fmt.Errorf("usecase: статья %d для комментария: %w", boardID, err)
	}

	comment := dto.CommentToEntity(req, boardID, *author)
	if err := uc.commentStorage.CreateComment(ctx, &comment); err != nil {
		return dto.SavedIDResponse{}, fmt.Errorf("usecase: сохранение комментария: %w", err)
	}

	uc.logger.Info("comment saved", "comment_id", comment.ID, "board_id", boardID, "user_id", userID)
	return dto.SavedIDResponse{SavedID: comment.ID}, nil
}
