package usecase

import (
	"fmt"

	"github.com/GoArmGo/CommunityApp/internal/domain"
	"github.com/GoArmGo/CommunityApp/internal/dto"
)

// MergeProfile применяет разреженное обновление к записи пользователя.
// Поле с nil остаётся прежним, поле со значением заменяется.
// Пароль никогда не сохраняется открытым текстом: он проходит через hasher.
// Исходная запись не изменяется, результат возвращается копией.
func MergeProfile(user domain.User, upd dto.UserProfileUpdate, hasher PasswordHasher) (domain.User, error) {
	merged := user

	if upd.Password != nil {
		hashed, err := hasher.Hash(*upd.Password)
		if err != nil {
			return user, fmt.Errorf("usecase: не удалось захэшировать пароль: %w", err)
		}
		merged.Password = hashed
	}

	setIfPresent(&merged.Username, upd.Username)
	setIfPresent(&merged.Email, upd.Email)
	setIfPresent(&merged.Nickname, upd.Nickname)
	setIfPresent(&merged.Address, upd.Address)
	setIfPresent(&merged.Phone, upd.Phone)
	setIfPresent(&merged.Bio, upd.Bio)
	setIfPresent(&merged.ImgName, upd.ImgName)
	setIfPresent(&merged.ImgURL, upd.ImgURL)
	// роль только отображается в профиле, доступ по ней не проверяется
	setIfPresent(&merged.Role, upd.Role)

	return merged, nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
