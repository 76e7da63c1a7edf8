package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CommunityApp/internal/core/ports"
	"github.com/GoArmGo/CommunityApp/internal/domain"
	"github.com/GoArmGo/CommunityApp/internal/dto"
)

type boardUseCase struct {
	boardStorage ports.BoardStorage
	userStorage  ports.UserStorage
	logger       *slog.Logger
}

// NewBoardUseCase создает новый экземпляр BoardUseCase
func NewBoardUseCase(boardStorage ports.BoardStorage, userStorage ports.UserStorage, logger *slog.Logger) BoardUseCase {
	return &boardUseCase{
		boardStorage: boardStorage,
		userStorage:  userStorage,
		logger:       logger,
	}
}

func (uc *boardUseCase) Create(ctx context.Context, userID int64, req dto.BoardRequest) (dto.BoardResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.BoardResponse{}, err
	}

	owner, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return dto.BoardResponse{}, fmt.Errorf("usecase: автор статьи %d: %w", userID, err)
	}

	board := dto.BoardToEntity(req, *owner)
	if err := uc.boardStorage.CreateBoard(ctx, &board); err != nil {
		return dto.BoardResponse{}, fmt.Errorf("usecase: создание статьи: %w", err)
	}
	return dto.NewBoardResponse(board), nil
}

func (uc *boardUseCase) Get(ctx context.Context, boardID int64) (dto.BoardResponse, error) {
	board, err := uc.boardStorage.GetBoardByID(ctx, boardID)
	if err != nil {
		return dto.BoardResponse{}, fmt.Errorf("usecase: получение статьи %d: %w", boardID, err)
	}
	return dto.NewBoardResponse(*board), nil
}

func (uc *boardUseCase) List(ctx context.Context) ([]dto.BoardResponse, error) {
	boards, err := uc.boardStorage.ListBoards(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("usecase: список статей: %w", err)
	}
	return dto.NewBoardResponses(boards), nil
}

func (uc *boardUseCase) ListSaved(ctx context.Context, userID int64) ([]dto.BoardResponse, error) {
	boards, err := uc.boardStorage.ListBoardsByUser(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("usecase: черновики пользователя %d: %w", userID, err)
	}
	return dto.NewBoardResponses(boards), nil
}

func (uc *boardUseCase) Update(ctx context.Context, userID, boardID int64, req dto.BoardRequest) (dto.BoardResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.BoardResponse{}, err
	}

	board, err := uc.boardStorage.GetBoardByID(ctx, boardID)
	if err != nil {
		return dto.BoardResponse{}, fmt.Errorf("usecase: обновление статьи %d: %w", boardID, err)
	}
	if board.UserID != userID {
		return dto.BoardResponse{}, fmt.Errorf("%w: board %d belongs to another user", domain.ErrUnauthorized, boardID)
	}

	updated := dto.ApplyBoardRequest(*board, req)
	if err := uc.boardStorage.SaveBoard(ctx, &updated); err != nil {
		return dto.BoardResponse{}, fmt.Errorf("usecase: сохранение статьи %d: %w", boardID, err)
	}

	if board.IsSaved != updated.IsSaved {
		uc.logger.Info("board saved flag toggled", "board_id", boardID, "is_saved", updated.IsSaved)
	}
	return dto.NewBoardResponse(updated), nil
}
