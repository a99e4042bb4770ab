package user

import (
	"context"

	"mealplanner/internal/domain/session"
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	// ListGroupRefs returns the user's current groups ordered by join time.
	ListGroupRefs(ctx context.Context, userID string) ([]session.GroupRef, error)
}
