package access

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("not authorized for this group")
	ErrLastAdmin       = errors.New("cannot remove the last admin of a group")
)
