package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

func TestUserProfileUpdateDecodesSparseBody(t *testing.T) {
	var upd UserProfileUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"nickname":"dog","bio":"","imgUrl":null}`), &upd))

	require.NotNil(t, upd.Nickname)
	assert.Equal(t, "dog", *upd.Nickname)
	require.NotNil(t, upd.Bio, "empty string means clear, not unset")
	assert.Equal(t, "", *upd.Bio)
	assert.Nil(t, upd.ImgURL, "null is treated as absent")
	assert.Nil(t, upd.Username)
	assert.Nil(t, upd.Password)
	assert.False(t, upd.IsEmpty())
}

func TestUserProfileUpdateIsEmpty(t *testing.T) {
	assert.True(t, UserProfileUpdate{}.IsEmpty())
	role := domain.RoleAdmin
	assert.False(t, UserProfileUpdate{Role: &role}.IsEmpty())
}

func TestUserProfileResponseHidesPassword(t *testing.T) {
	u := domain.User{ID: 3, Username: "kim", Password: "$2a$10$hash", Email: "kim@example.com", Role: domain.RoleUser}

	raw, err := json.Marshal(NewUserProfileResponse(u))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.Contains(t, string(raw), `"username":"kim"`)
}

func TestJoinRequestValidate(t *testing.T) {
	err := JoinRequest{Username: "kim", Email: "kim@example.com"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "password, nickname")

	assert.NoError(t, JoinRequest{Username: "kim", Password: "pw", Email: "e", Nickname: "n"}.Validate())
}

func TestJoinToEntityDefaultsRole(t *testing.T) {
	u := JoinToEntity(JoinRequest{Username: "kim"}, "hashed")
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, "hashed", u.Password)
}

func TestBoardMapping(t *testing.T) {
	owner := domain.User{ID: 9}
	b := BoardToEntity(BoardRequest{Title: "t", Content: "c", IsSaved: true}, owner)
	assert.Equal(t, int64(9), b.UserID)
	assert.True(t, b.IsSaved)

	b.ID = 4
	b = ApplyBoardRequest(b, BoardRequest{Title: "t2", Content: "c2", IsSaved: false})
	assert.Equal(t, int64(4), b.ID)
	assert.Equal(t, int64(9), b.UserID)
	assert.Equal(t, "t2", b.Title)
	assert.False(t, b.IsSaved)

	resp := NewBoardResponse(b)
	assert.Equal(t, int64(4), resp.BoardID)
	assert.Equal(t, int64(9), resp.AuthorID)

	assert.NotNil(t, NewBoardResponses(nil))
	assert.True(t, errors.Is(BoardRequest{Title: "  "}.Validate(), domain.ErrValidation))
}

func TestCommentMapping(t *testing.T) {
	c := CommentToEntity(CommentRequest{Content: " hi "}, 5, domain.User{ID: 2})
	assert.Equal(t, " hi ", c.Content)
	assert.Equal(t, int64(5), c.BoardID)
	assert.Equal(t, int64(2), c.UserID)

	c.ID = 11
	c.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	list := NewCommentResponses([]domain.Comment{c})
	require.Len(t, list, 1)
	assert.Equal(t, int64(11), list[0].CommentID)
	assert.Equal(t, int64(2), list[0].AuthorID)

	raw, err := json.Marshal(NewCommentResponses(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	assert.True(t, errors.Is(CommentRequest{}.Validate(), domain.ErrValidation))
}
