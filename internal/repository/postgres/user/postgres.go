package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"mealplanner/internal/domain/session"
	userdomain "mealplanner/internal/domain/user"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *userdomain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return userdomain.ErrDuplicateEmail
	}
	return fmt.Errorf("create user: %w", err)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID string) (*userdomain.User, error) {
	return r.first(ctx, "uuid = ?", userID)
}

func (r *PostgresRepository) ListGroupRefs(ctx context.Context, userID string) ([]session.GroupRef, error) {
	var refs []session.GroupRef
	if err := r.db.WithContext(ctx).
		Table("memberships").
		Select("groups.uuid AS uuid, groups.name AS name").
		Joins("join groups on groups.uuid = memberships.group_uuid").
		Where("memberships.user_uuid = ?", userID).
		Order("memberships.joined_at asc").
		Scan(&refs).Error; err != nil {
		return nil, fmt.Errorf("list group refs: %w", err)
	}
	return refs, nil
}

func (r *PostgresRepository) first(ctx context.Context, query string, arg string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
