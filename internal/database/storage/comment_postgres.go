package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

type CommentStorage struct {
	db     *gorm.DB
	sqlx   *sqlx.DB
	logger *slog.Logger
}

func NewCommentStorage(db *gorm.DB, sqlxDB *sqlx.DB, logger *slog.Logger) *CommentStorage {
	return &CommentStorage{db: db, sqlx: sqlxDB, logger: logger}
}

// CreateComment сохраняет комментарий, ID заполняется базой
func (s *CommentStorage) CreateComment(ctx context.Context, comment *domain.Comment) error {
	start := time.Now()

	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		s.logger.Error("failed to save comment", "board_id", comment.BoardID, "error", err)
		return fmt.Errorf("ошибка при сохранении комментария: %w", err)
	}

	s.logger.Info("comment saved",
		"comment_id", comment.ID,
		"board_id", comment.BoardID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListCommentsByBoardID возвращает все комментарии статьи в порядке создания
func (s *CommentStorage) ListCommentsByBoardID(ctx context.Context, boardID int64) ([]domain.Comment, error) {
	start := time.Now()

	comments := []domain.Comment{}
	query := s.sqlx.Rebind(`
		SELECT comment_id, board_id, user_id, content, created_at
		FROM comments
		WHERE board_id = ?
		ORDER BY comment_id ASC`)
	if err := s.sqlx.SelectContext(ctx, &comments, query, boardID); err != nil {
		s.logger.Error("failed to list comments", "board_id", boardID, "error", err)
		return nil, fmt.Errorf("ошибка при получении комментариев статьи %d: %w", boardID, err)
	}

	s.logger.Debug("comments listed",
		"board_id", boardID,
		"count", len(comments),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return comments, nil
}
