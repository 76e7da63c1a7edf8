package domain

import "time"

// Board представляет статью на доске,
// соответствует таблице boards в бд.
// IsSaved = true означает черновик (временное сохранение) автора,
// в общий список попадают только статьи с IsSaved = false
type Board struct {
	ID        int64     `gorm:"column:board_id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Title     string    `gorm:"column:title;not null"`
	Content   string    `gorm:"column:content;type:text"`
	IsSaved   bool      `gorm:"column:is_saved;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Board) TableName() string {
	return "boards"
}
