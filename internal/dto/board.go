package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

// BoardRequest тело создания и редактирования статьи
type BoardRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	IsSaved bool   `json:"isSaved"`
}

func (r BoardRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	return nil
}

type BoardResponse struct {
	BoardID   int64     `json:"boardId"`
	AuthorID  int64     `json:"authorId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsSaved   bool      `json:"isSaved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BoardToEntity создаёт новую статью, принадлежащую пользователю owner
func BoardToEntity(r BoardRequest, owner domain.User) domain.Board {
	return domain.Board{
		UserID:  owner.ID,
		Title:   r.Title,
		Content: r.Content,
		IsSaved: r.IsSaved,
	}
}

// ApplyBoardRequest переносит поля запроса на существующую статью.
// Флаг IsSaved выставляется в запрошенное значение, так черновик публикуется и наоборот.
func ApplyBoardRequest(b domain.Board, r BoardRequest) domain.Board {
	b.Title = r.Title
	b.Content = r.Content
	b.IsSaved = r.IsSaved
	return b
}

func NewBoardResponse(b domain.Board) BoardResponse {
	return BoardResponse{
		BoardID:   b.ID,
		AuthorID:  b.UserID,
		Title:     b.Title,
		Content:   b.Content,
		IsSaved:   b.IsSaved,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// NewBoardResponses никогда не возвращает nil, чтобы в JSON был [] а не null
func NewBoardResponses(boards []domain.Board) []BoardResponse {
	out := make([]BoardResponse, 0, len(boards))
	for _, b := range boards {
		out = append(out, NewBoardResponse(b))
	}
	return out
}
