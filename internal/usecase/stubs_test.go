package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/GoArmGo/CommunityApp/internal/domain"
	"github.com/GoArmGo/CommunityApp/internal/messaging/payloads"
)

type stubUserStorage struct {
	users   map[int64]domain.User
	nextID  int64
	saves   int
	saveErr error
}

func newStubUserStorage(users ...domain.User) *stubUserStorage {
	s := &stubUserStorage{users: make(map[int64]domain.User), nextID: 1}
	for _, u := range users {
		s.users[u.ID] = u
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s
}

func (s *stubUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

func (s *stubUserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}

func (s *stubUserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserStorage) SaveUser(ctx context.Context, user *domain.User) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.users[user.ID] = *user
	return nil
}

func (s *stubUserStorage) ExistsByUsername(ctx context.Context, v string) (bool, error) {
	return s.any(func(u domain.User) bool { return u.Username == v }), nil
}

func (s *stubUserStorage) ExistsByEmail(ctx context.Context, v string) (bool, error) {
	return s.any(func(u domain.User) bool { return u.Email == v }), nil
}

func (s *stubUserStorage) ExistsByNickname(ctx context.Context, v string) (bool, error) {
	return s.any(func(u domain.User) bool { return u.Nickname == v }), nil
}

func (s *stubUserStorage) any(match func(domain.User) bool) bool {
	for _, u := range s.users {
		if match(u) {
			return true
		}
	}
	return false
}

type stubBoardStorage struct {
	boards map[int64]domain.Board
	nextID int64
}

func newStubBoardStorage(boards ...domain.Board) *stubBoardStorage {
	s := &stubBoardStorage{boards: make(map[int64]domain.Board), nextID: 1}
	for _, b := range boards {
		s.boards[b.ID] = b
		if b.ID >= s.nextID {
			s.nextID = b.ID + 1
		}
	}
	return s
}

func (s *stubBoardStorage) CreateBoard(ctx context.Context, board *domain.Board) error {
	board.ID = s.nextID
	s.nextID++
	board.CreatedAt = time.Now()
	s.boards[board.ID] = *board
	return nil
}

func (s *stubBoardStorage) GetBoardByID(ctx context.Context, id int64) (*domain.Board, error) {
	if b, ok := s.boards[id]; ok {
		return &b, nil
	}
	return nil, fmt.Errorf("board %d: %w", id, domain.ErrNotFound)
}

func (s *stubBoardStorage) SaveBoard(ctx context.Context, board *domain.Board) error {
	s.boards[board.ID] = *board
	return nil
}

func (s *stubBoardStorage) ListBoards(ctx context.Context, isSaved bool) ([]domain.Board, error) {
	var out []domain.Board
	for id := s.nextID - 1; id > 0; id-- {
		if b, ok := s.boards[id]; ok && b.IsSaved == isSaved {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBoardStorage) ListBoardsByUser(ctx context.Context, userID int64, isSaved bool) ([]domain.Board, error) {
	all, _ := s.ListBoards(ctx, isSaved)
	var out []domain.Board
	for _, b := range all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type stubCommentStorage struct {
	comments []domain.Comment
}

func (s *stubCommentStorage) CreateComment(ctx context.Context, comment *domain.Comment) error {
	comment.ID = int64(len(s.comments) + 1)
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *stubCommentStorage) ListCommentsByBoardID(ctx context.Context, boardID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range s.comments {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	return out, nil
}

// plainHasher предсказуемо "хэширует" пароль, чтобы не тратить время на bcrypt
type plainHasher struct {
	err error
}

func (h plainHasher) Hash(plain string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plain, nil
}

func (h plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("%w: mismatch", domain.ErrUnauthorized)
	}
	return nil
}

type stubTokens struct{}

func (stubTokens) Issue(user domain.User) (string, error) {
	return fmt.Sprintf("token-%d", user.ID), nil
}

type stubFileStorage struct {
	uploaded map[string]string
	deleted  []string
	failPut  bool
}

func (s *stubFileStorage) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if s.failPut {
		return "", errors.New("presign failed")
	}
	return fmt.Sprintf("https://s3.local/bucket/%s?X-Amz-Expires=%d&method=PUT", key, int(ttl.Seconds())), nil
}

func (s *stubFileStorage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://s3.local/bucket/%s?X-Amz-Expires=%d", key, int(ttl.Seconds())), nil
}

func (s *stubFileStorage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if s.uploaded == nil {
		s.uploaded = make(map[string]string)
	}
	s.uploaded[key] = string(body)
	return "https://s3.local/bucket/" + key, nil
}

func (s *stubFileStorage) DeleteFile(ctx context.Context, key string) error {
	if strings.Contains(key, "missing") {
		return errors.New("no such key")
	}
	s.deleted = append(s.deleted, key)
	return nil
}

type stubPublisher struct {
	mu       sync.Mutex
	payloads []payloads.ImageCleanupPayload
	err      error
}

func (p *stubPublisher) PublishImageCleanup(ctx context.Context, payload payloads.ImageCleanupPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}
