package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

type CommentRequest struct {
	Content string `json:"content"`
}

func (r CommentRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	return nil
}

type CommentResponse struct {
	CommentID int64     `json:"commentId"`
	BoardID   int64     `json:"boardId"`
	AuthorID  int64     `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentToEntity собирает комментарий автора author к статье boardID.
// Content сохраняется ровно в том виде, в каком пришёл.
func CommentToEntity(r CommentRequest, boardID int64, author domain.User) domain.Comment {
	return domain.Comment{
		BoardID: boardID,
		UserID:  author.ID,
		Content: r.Content,
	}
}

func NewCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID: c.ID,
		BoardID:   c.BoardID,
		AuthorID:  c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func NewCommentResponses(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}
