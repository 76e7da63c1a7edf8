package payloads

import "time"

// ImageCleanupPayload задача удалить объект из S3 после того,
// как пользователь заменил изображение профиля
type ImageCleanupPayload struct {
	Key         string    `json:"key"`
	UserID      int64     `json:"user_id"`
	RequestedAt time.Time `json:"requested_at"`
}
