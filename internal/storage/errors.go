package storage

import "errors"

var (
	// ErrNotFound возвращается, если запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists возвращается при нарушении уникальности (например, email)
	ErrAlreadyExists = errors.New("record already exists")
)
