package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

type BoardStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewBoardStorage(db *gorm.DB, logger *slog.Logger) *BoardStorage {
	return &BoardStorage{db: db, logger: logger}
}

// CreateBoard сохраняет статью в базе данных
func (s *BoardStorage) CreateBoard(ctx context.Context, board *domain.Board) error {
	start := time.Now()

	if err := s.db.WithContext(ctx).Create(board).Error; err != nil {
		s.logger.Error("failed to save board", "user_id", board.UserID, "error", err)
		return fmt.Errorf("ошибка при сохранении статьи: %w", err)
	}

	s.logger.Info("board saved successfully",
		"board_id", board.ID,
		"user_id", board.UserID,
		"is_saved", board.IsSaved,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetBoardByID получает статью по ID
func (s *BoardStorage) GetBoardByID(ctx context.Context, id int64) (*domain.Board, error) {
	var board domain.Board
	err := s.db.WithContext(ctx).First(&board, "board_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("board not found by id", "board_id", id)
		return nil, fmt.Errorf("статья %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		s.logger.Error("failed to get board by id", "board_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении статьи по ID: %w", err)
	}
	return &board, nil
}

// SaveBoard перезаписывает статью целиком
func (s *BoardStorage) SaveBoard(ctx context.Context, board *domain.Board) error {
	start := time.Now()

	if err := s.db.WithContext(ctx).Save(board).Error; err != nil {
		s.logger.Error("failed to update board", "board_id", board.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении статьи %d: %w", board.ID, err)
	}

	s.logger.Info("board updated",
		"board_id", board.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListBoards получает все статьи с указанным флагом is_saved
func (s *BoardStorage) ListBoards(ctx context.Context, isSaved bool) ([]domain.Board, error) {
	start := time.Now()

	var boards []domain.Board
	err := s.db.WithContext(ctx).
		Where("is_saved = ?", isSaved).
		Order("board_id DESC").
		Find(&boards).Error
	if err != nil {
		s.logger.Error("failed to list boards", "is_saved", isSaved, "error", err)
		return nil, fmt.Errorf("ошибка при получении списка статей: %w", err)
	}

	s.logger.Info("listed boards successfully",
		"is_saved", isSaved,
		"count", len(boards),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return boards, nil
}

// ListBoardsByUser получает статьи пользователя
func (s *BoardStorage) ListBoardsByUser(ctx context.Context, userID int64, isSaved bool) ([]domain.Board, error) {
	var boards []domain.Board
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_saved = ?", userID, isSaved).
		Order("board_id DESC").
		Find(&boards).Error
	if err != nil {
		s.logger.Error("failed to list user boards", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении статей пользователя %d: %w", userID, err)
	}
	return boards, nil
}
