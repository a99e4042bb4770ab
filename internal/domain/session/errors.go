package session

import "errors"

var (
	ErrMissingSecret = errors.New("session signing secret is empty")
	ErrInvalidToken  = errors.New("invalid session token")
	ErrExpiredToken  = errors.New("session token expired")
)
