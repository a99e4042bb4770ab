package group

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mealplanner/internal/domain/access"
	groupdomain "mealplanner/internal/domain/group"
)

// orphanQueries delete shared resources that lost their last group link.
var orphanQueries = []string{
	`DELETE FROM ingredients i WHERE NOT EXISTS (SELECT 1 FROM ingredient_groups l WHERE l.ingredient_id = i.id)`,
	`DELETE FROM ingredient_tags t WHERE NOT EXISTS (SELECT 1 FROM ingredient_tag_groups l WHERE l.ingredient_tag_id = t.id)`,
	`DELETE FROM meals m WHERE NOT EXISTS (SELECT 1 FROM meal_groups l WHERE l.meal_id = m.id)`,
	`DELETE FROM meal_tags t WHERE NOT EXISTS (SELECT 1 FROM meal_tag_groups l WHERE l.meal_tag_id = t.id)`,
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(groupdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetRole(ctx context.Context, groupID, userID string) (access.Role, bool, error) {
	var memberships []groupdomain.Membership
	if err := r.db.WithContext(ctx).
		Where("group_uuid = ? AND user_uuid = ?", groupID, userID).
		Limit(1).
		Find(&memberships).Error; err != nil {
		return "", false, fmt.Errorf("get role: %w", err)
	}
	if len(memberships) == 0 {
		return "", false, nil
	}
	return memberships[0].Role, true, nil
}

func (r *PostgresRepository) CountAdmins(ctx context.Context, groupID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&groupdomain.Membership{}).
		Where("group_uuid = ? AND role = ?", groupID, access.RoleAdmin).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) CreateGroup(ctx context.Context, group *groupdomain.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *PostgresRepository) GetGroup(ctx context.Context, groupID string) (*groupdomain.Group, error) {
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("uuid = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) UpdateGroupName(ctx context.Context, groupID, name string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&groupdomain.Group{}).
		Where("uuid = ?", groupID).
		Update("name", name)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) DeleteGroup(ctx context.Context, groupID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&groupdomain.Group{}, "uuid = ?", groupID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) PruneOrphanedResources(ctx context.Context) error {
	for _, query := range orphanQueries {
		if err := r.db.WithContext(ctx).Exec(query).Error; err != nil {
			return fmt.Errorf("prune orphans: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, membership *groupdomain.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *PostgresRepository) ListMembers(ctx context.Context, groupID string) ([]groupdomain.Member, error) {
	var members []groupdomain.Member
	if err := r.db.WithContext(ctx).
		Table("memberships").
		Select("memberships.user_uuid, users.email, memberships.role").
		Joins("join users on users.uuid = memberships.user_uuid").
		Where("memberships.group_uuid = ?", groupID).
		Order("memberships.joined_at asc").
		Scan(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, groupID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&groupdomain.Membership{}, "group_uuid = ? AND user_uuid = ?", groupID, userID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) FindUserIDByEmail(ctx context.Context, email string) (string, bool, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Table("users").
		Where("email = ?", email).
		Limit(1).
		Pluck("uuid", &ids).Error; err != nil {
		return "", false, err
	}
	if len(ids) == 0 {
		return "", false, nil
	}
	return ids[0], true, nil
}
