package group

import "errors"

var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrNameRequired   = errors.New("group name is required")
	ErrEmailRequired  = errors.New("email is required")
	ErrUserIDRequired = errors.New("user id is required")
)
