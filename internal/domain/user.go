// internal/domain/user.go
package domain

import "time"

// Роли пользователей
const (
	RoleUser    = "ROLE_USER"
	RoleShelter = "ROLE_SHELTER"
	RoleAdmin   = "ROLE_ADMIN"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// Username, Email и Nickname уникальны среди всех пользователей.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" db:"id"`
	Username  string    `gorm:"column:username;uniqueIndex;not null" db:"username"`
	Password  string    `gorm:"column:password;not null" db:"password"` // bcrypt-хэш, не пароль
	Email     string    `gorm:"column:email;uniqueIndex;not null" db:"email"`
	Nickname  string    `gorm:"column:nickname;uniqueIndex;not null" db:"nickname"`
	Phone     string    `gorm:"column:phone" db:"phone"`
	Address   string    `gorm:"column:address" db:"address"`
	Bio       string    `gorm:"column:bio" db:"bio"`
	ImgName   string    `gorm:"column:img_name" db:"img_name"`
	ImgURL    string    `gorm:"column:img_url" db:"img_url"`
	Role      string    `gorm:"column:role;not null;default:ROLE_USER" db:"role"`
	CreatedAt time.Time `gorm:"column:created_at" db:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
