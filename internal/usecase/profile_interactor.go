package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/CommunityApp/internal/core/ports"
	"github.com/GoArmGo/CommunityApp/internal/domain"
	"github.com/GoArmGo/CommunityApp/internal/dto"
)

// profileUseCase implements ProfileUseCase
type profileUseCase struct {
	userStorage ports.UserStorage
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      *slog.Logger
}

// NewProfileUseCase создает новый экземпляр ProfileUseCase
func NewProfileUseCase(
	userStorage ports.UserStorage,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger *slog.Logger,
) ProfileUseCase {
	return &profileUseCase{
		userStorage: userStorage,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
	}
}

func (uc *profileUseCase) GetProfile(ctx context.Context, userID int64) (dto.UserProfileResponse, error) {
	user, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return dto.UserProfileResponse{}, fmt.Errorf("usecase: получение профиля %d: %w", userID, err)
	}
	return dto.NewUserProfileResponse(*user), nil
}

func (uc *profileUseCase) UpdateProfile(ctx context.Context, userID int64, upd dto.UserProfileUpdate) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: обновление профиля %d: %w", userID, err)
	}

	if err := uc.ensureUnique(ctx, *user, upd); err != nil {
		return nil, err
	}

	merged, err := MergeProfile(*user, upd, uc.hasher)
	if err != nil {
		return nil, err
	}

	if err := uc.userStorage.SaveUser(ctx, &merged); err != nil {
		return nil, fmt.Errorf("usecase: сохранение профиля %d: %w", userID, err)
	}

	uc.logger.Info("profile updated",
		"user_id", userID,
		"password_changed", upd.Password != nil,
	)
	return &merged, nil
}

// ensureUnique не даёт сменить username, email или nickname на уже занятые.
// Проверка не транзакционная, последним рубежом остаются UNIQUE-индексы в бд.
func (uc *profileUseCase) ensureUnique(ctx context.Context, current domain.User, upd dto.UserProfileUpdate) error {
	checks := []struct {
		field   string
		current string
		next    *string
		exists  func(context.Context, string) (bool, error)
	}{
		{"username", current.Username, upd.Username, uc.userStorage.ExistsByUsername},
		{"email", current.Email, upd.Email, uc.userStorage.ExistsByEmail},
		{"nickname", current.Nickname, upd.Nickname, uc.userStorage.ExistsByNickname},
	}

	for _, c := range checks {
		if c.next == nil || *c.next == c.current {
			continue
		}
		taken, err := c.exists(ctx, *c.next)
		if err != nil {
			return fmt.Errorf("usecase: проверка %s: %w", c.field, err)
		}
		if taken {
			return fmt.Errorf("%w: %s %q is already taken", domain.ErrValidation, c.field, *c.next)
		}
	}
	return nil
}

func (uc *profileUseCase) Join(ctx context.Context, req dto.JoinRequest) (dto.SavedIDResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.SavedIDResponse{}, err
	}

	checks := []struct {
		field  string
		value  string
		exists func(context.Context, string) (bool, error)
	}{
		{"username", req.Username, uc.userStorage.ExistsByUsername},
		{"email", req.Email, uc.userStorage.ExistsByEmail},
		{"nickname", req.Nickname, uc.userStorage.ExistsByNickname},
	}
	for _, c := range checks {
		taken, err := c.exists(ctx, c.value)
		if err != nil {
			return dto.SavedIDResponse{}, fmt.Errorf("usecase: проверка %s: %w", c.field, err)
		}
		if taken {
			return dto.SavedIDResponse{}, fmt.Errorf("%w: %s %q is already taken", domain.ErrValidation, c.field, c.value)
		}
	}

	hashed, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return dto.SavedIDResponse{}, fmt.Errorf("usecase: не удалось захэшировать пароль: %w", err)
	}

	user := dto.JoinToEntity(req, hashed)
	if err := uc.userStorage.CreateUser(ctx, &user); err != nil {
		return dto.SavedIDResponse{}, fmt.Errorf("usecase: регистрация пользователя: %w", err)
	}

	uc.logger.Info("user joined", "user_id", user.ID, "username", user.Username)
	return dto.SavedIDResponse{SavedID: user.ID}, nil
}

func (uc *profileUseCase) Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error) {
	var (
		user *domain.User
		err  error
	)
	switch {
	case strings.TrimSpace(req.Username) != "":
		user, err = uc.userStorage.GetUserByUsername(ctx, req.Username)
	case strings.TrimSpace(req.Email) != "":
		user, err = uc.userStorage.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	default:
		return dto.TokenResponse{}, fmt.Errorf("%w: username or email is required", domain.ErrValidation)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return dto.TokenResponse{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("usecase: вход пользователя: %w", err)
	}

	if err := uc.hasher.Compare(user.Password, req.Password); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return dto.TokenResponse{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return dto.TokenResponse{}, fmt.Errorf("usecase: проверка пароля: %w", err)
	}

	token, err := uc.tokens.Issue(*user)
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("usecase: выпуск токена: %w", err)
	}
	return dto.TokenResponse{Token: token}, nil
}
