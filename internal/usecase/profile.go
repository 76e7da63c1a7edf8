package usecase

import (
	"context"

	"github.com/GoArmGo/CommunityApp/internal/domain"
	"github.com/GoArmGo/CommunityApp/internal/dto"
)

// PasswordHasher односторонний адаптивный хэш паролей (bcrypt)
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare возвращает ошибку, если пароль не подходит к хэшу
	Compare(hash, plain string) error
}

// TokenIssuer выпускает токен доступа для пользователя
type TokenIssuer interface {
	Issue(user domain.User) (string, error)
}

// ProfileUseCase определяет бизнес-логику профиля пользователя
type ProfileUseCase interface {
	// GetProfile возвращает профиль по id, domain.ErrNotFound если его нет
	GetProfile(ctx context.Context, userID int64) (dto.UserProfileResponse, error)

	// UpdateProfile применяет разреженное обновление и сохраняет запись целиком.
	// Если пользователя нет, ничего не пишет и возвращает domain.ErrNotFound.
	UpdateProfile(ctx context.Context, userID int64, upd dto.UserProfileUpdate) (*domain.User, error)

	// Join регистрирует пользователя и возвращает его id
	Join(ctx context.Context, req dto.JoinRequest) (dto.SavedIDResponse, error)

	// Login ищет пользователя по username или email, проверяет пароль и выпускает токен
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
}
