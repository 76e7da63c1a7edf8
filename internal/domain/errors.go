package domain

import "errors"

// Виды ошибок, которые хендлеры переводят в HTTP-статусы.
// Слои ниже оборачивают их через %w, проверка через errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)
