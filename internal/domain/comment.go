package domain

import "time"

// Comment представляет комментарий к статье,
// соответствует таблице comments в бд
type Comment struct {
	ID        int64     `gorm:"column:comment_id;primaryKey;autoIncrement" db:"comment_id"`
	BoardID   int64     `gorm:"column:board_id;not null;index" db:"board_id"`
	UserID    int64     `gorm:"column:user_id;not null" db:"user_id"`
	Content   string    `gorm:"column:content;type:text;not null" db:"content"`
	CreatedAt time.Time `gorm:"column:created_at" db:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
