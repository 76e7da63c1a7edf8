package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

const userColumns = `id, username, password, email, nickname, phone, address, bio, img_name, img_url, role, created_at, updated_at`

// UserStorage реализует интерфейс ports.UserStorage.
// Запись идёт через GORM, чтение через sqlx по тегам db.
type UserStorage struct {
	db     *gorm.DB
	sqlx   *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage.
// Оба клиента должны смотреть в один и тот же пул соединений.
func NewUserStorage(db *gorm.DB, sqlxDB *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, sqlx: sqlxDB, logger: logger}
}

// CreateUser сохраняет нового пользователя, ID заполняется базой
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		s.logger.Error("failed to insert user", "username", user.Username, "error", err)
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByID получает пользователя по ID
func (s *UserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.first(ctx, "id", id)
}

func (s *UserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.first(ctx, "username", username)
}

func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.first(ctx, "email", email)
}

// SaveUser записывает все поля пользователя по первичному ключу.
// Это полная перезапись записи, а не patch по колонкам.
func (s *UserStorage) SaveUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		s.logger.Error("failed to save user", "user_id", user.ID, "error", err)
		return fmt.Errorf("ошибка при сохранении пользователя %d: %w", user.ID, err)
	}

	s.logger.Info("user saved",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *UserStorage) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username", username)
}

func (s *UserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email", email)
}

func (s *UserStorage) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return s.exists(ctx, "nickname", nickname)
}

// first выбирает одного пользователя по значению колонки column.
// column всегда одна из констант выше и не приходит из запроса.
func (s *UserStorage) first(ctx context.Context, column string, arg any) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	query := s.sqlx.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)
	err := s.sqlx.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("user not found", "column", column, "value", arg)
		return nil, fmt.Errorf("пользователь (%s = %v): %w", column, arg, domain.ErrNotFound)
	}
	if err != nil {
		s.logger.Error("failed to select user", "column", column, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	s.logger.Debug("user retrieved",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}

func (s *UserStorage) exists(ctx context.Context, column string, arg any) (bool, error) {
	var n int64
	query := s.sqlx.Rebind(`SELECT COUNT(1) FROM users WHERE ` + column + ` = ?`)
	if err := s.sqlx.GetContext(ctx, &n, query, arg); err != nil {
		s.logger.Error("failed to count users", "column", column, "error", err)
		return false, fmt.Errorf("ошибка при проверке пользователя: %w", err)
	}
	return n > 0, nil
}
