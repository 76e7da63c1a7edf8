package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoArmGo/CommunityApp/internal/domain"
	"github.com/GoArmGo/CommunityApp/internal/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// у каждого соединения :memory: своя база
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Board{}, &domain.Comment{}))
	return db, sqlx.NewDb(sqlDB, "sqlite3")
}

func newTestUserStorage(t *testing.T) *UserStorage {
	t.Helper()
	db, sdb := newTestDB(t)
	return NewUserStorage(db, sdb, logger.Discard())
}

func seedUser(t *testing.T, s *UserStorage, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username: username,
		Password: "hash",
		Email:    username + "@example.com",
		Nickname: username + "-nick",
		Role:     domain.RoleUser,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}

func TestUserStorageLookups(t *testing.T) {
	ctx := context.Background()
	s := newTestUserStorage(t)
	u := seedUser(t, s, "kim")

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "kim", got.Username)

	got, err = s.GetUserByUsername(ctx, "kim")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = s.GetUserByEmail(ctx, "kim@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.GetUserByID(ctx, u.ID+100)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	ok, err := s.ExistsByUsername(ctx, "kim")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.ExistsByEmail(ctx, "lee@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.ExistsByNickname(ctx, "kim-nick")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserStorageUniqueConstraints(t *testing.T) {
	s := newTestUserStorage(t)
	seedUser(t, s, "kim")

	dup := &domain.User{Username: "kim", Password: "x", Email: "other@example.com", Nickname: "other"}
	assert.Error(t, s.CreateUser(context.Background(), dup))
}

func TestUserStorageReadsMapDBColumns(t *testing.T) {
	ctx := context.Background()
	db, sdb := newTestDB(t)
	s := NewUserStorage(db, sdb, logger.Discard())

	_, err := sdb.ExecContext(ctx, sdb.Rebind(`
		INSERT INTO users (username, password, email, nickname, phone, address, bio, img_name, img_url, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		"raw", "hash", "raw@example.com", "raw-nick", "010", "Busan", "bio", "images/1/a.png", "https://s3/a.png", domain.RoleShelter,
		time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)

	got, err := s.GetUserByUsername(ctx, "raw")
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "raw@example.com", got.Email)
	assert.Equal(t, "raw-nick", got.Nickname)
	assert.Equal(t, "Busan", got.Address)
	assert.Equal(t, "images/1/a.png", got.ImgName)
	assert.Equal(t, domain.RoleShelter, got.Role)
	assert.False(t, got.CreatedAt.IsZero())

	byEmail, err := s.GetUserByEmail(ctx, "raw@example.com")
	require.NoError(t, err)
	assert.Equal(t, got.ID, byEmail.ID)

	ok, err := s.ExistsByNickname(ctx, "raw-nick")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserStorageSaveReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestUserStorage(t)
	u := seedUser(t, s, "kim")

	u.Bio = "hello"
	u.Phone = ""
	u.Address = "Seoul"
	require.NoError(t, s.SaveUser(ctx, u))

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Bio)
	assert.Equal(t, "Seoul", got.Address)
	assert.Equal(t, "kim", got.Username)
	assert.Equal(t, "hash", got.Password)
}

func TestBoardStorage(t *testing.T) {
	ctx := context.Background()
	db, sdb := newTestDB(t)
	users := NewUserStorage(db, sdb, logger.Discard())
	boards := NewBoardStorage(db, logger.Discard())
	u := seedUser(t, users, "kim")

	published := &domain.Board{UserID: u.ID, Title: "first", Content: "body"}
	draft := &domain.Board{UserID: u.ID, Title: "draft", IsSaved: true}
	require.NoError(t, boards.CreateBoard(ctx, published))
	require.NoError(t, boards.CreateBoard(ctx, draft))

	got, err := boards.GetBoardByID(ctx, published.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
	assert.False(t, got.IsSaved)

	list, err := boards.ListBoards(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, published.ID, list[0].ID)

	mine, err := boards.ListBoardsByUser(ctx, u.ID, true)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, draft.ID, mine[0].ID)

	draft.IsSaved = false
	require.NoError(t, boards.SaveBoard(ctx, draft))
	list, err = boards.ListBoards(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = boards.GetBoardByID(ctx, 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCommentStorage(t *testing.T) {
	ctx := context.Background()
	db, sdb := newTestDB(t)
	users := NewUserStorage(db, sdb, logger.Discard())
	boards := NewBoardStorage(db, logger.Discard())
	comments := NewCommentStorage(db, sdb, logger.Discard())

	u := seedUser(t, users, "kim")
	b := &domain.Board{UserID: u.ID, Title: "t"}
	require.NoError(t, boards.CreateBoard(ctx, b))

	empty, err := comments.ListCommentsByBoardID(ctx, b.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, text := range []string{"one", "two"} {
		c := &domain.Comment{BoardID: b.ID, UserID: u.ID, Content: text}
		require.NoError(t, comments.CreateComment(ctx, c))
		assert.NotZero(t, c.ID)
	}

	list, err := comments.ListCommentsByBoardID(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Content)
	assert.Equal(t, "two", list[1].Content)
}
