package dto

import (
	"fmt"
	"strings"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

// UserProfileUpdate разреженное обновление профиля.
// nil означает "не менять", любое значение (в том числе пустая строка) означает "заменить".
// JSON null трактуется так же, как отсутствующее поле.
type UserProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"` // открытый текст, хэшируется перед сохранением
	Email    *string `json:"email,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	ImgName  *string `json:"imgName,omitempty"`
	ImgURL   *string `json:"imgUrl,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// IsEmpty сообщает, что в обновлении нет ни одного поля
func (u UserProfileUpdate) IsEmpty() bool {
	return u.Username == nil && u.Password == nil && u.Email == nil && u.Nickname == nil &&
		u.Address == nil && u.Phone == nil && u.Bio == nil && u.ImgName == nil &&
		u.ImgURL == nil && u.Role == nil
}

// UserProfileResponse профиль пользователя для ответа API. Хэш пароля сюда не попадает.
type UserProfileResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	ImgName  string `json:"imgName"`
	ImgURL   string `json:"imgUrl"`
	Role     string `json:"role"`
}

// NewUserProfileResponse маппит domain.User в UserProfileResponse
func NewUserProfileResponse(u domain.User) UserProfileResponse {
	return UserProfileResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Nickname: u.Nickname,
		Address:  u.Address,
		Phone:    u.Phone,
		Bio:      u.Bio,
		ImgName:  u.ImgName,
		ImgURL:   u.ImgURL,
		Role:     u.Role,
	}
}

// JoinRequest данные регистрации
type JoinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// Validate проверяет обязательные поля регистрации
func (r JoinRequest) Validate() error {
	fields := []struct{ name, value string }{
		{"username", r.Username},
		{"password", r.Password},
		{"email", r.Email},
		{"nickname", r.Nickname},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// JoinToEntity собирает нового пользователя. passwordHash должен быть уже посчитан.
func JoinToEntity(r JoinRequest, passwordHash string) domain.User {
	role := r.Role
	if role == "" {
		role = domain.RoleUser
	}
	return domain.User{
		Username: r.Username,
		Password: passwordHash,
		Email:    r.Email,
		Nickname: r.Nickname,
		Phone:    r.Phone,
		Address:  r.Address,
		Role:     role,
	}
}

// LoginRequest принимает username или email, username в приоритете
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// SavedIDResponse возвращается операциями создания, которые отдают только id
type SavedIDResponse struct {
	SavedID int64 `json:"savedId"`
}
