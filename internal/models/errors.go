package models

import "errors"

var (
	ErrNotFound     = errors.New("secret not found")
	ErrUnauthorized = errors.New("viewer is not allowed to unlock")
)
