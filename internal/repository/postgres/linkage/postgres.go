// Package linkage stores resource-to-group association rows. One Links value
// serves one resource table and its association table.
package linkage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	groupdomain "mealplanner/internal/domain/group"
)

const foreignKeyViolation = "23503"

// Table names a resource table and the association table pointing at it.
// Values are fixed in code and never come from input.
type Table struct {
	Resource string
	Links    string
	Column   string
}

var (
	Ingredients    = Table{Resource: "ingredients", Links: "ingredient_groups", Column: "ingredient_id"}
	IngredientTags = Table{Resource: "ingredient_tags", Links: "ingredient_tag_groups", Column: "ingredient_tag_id"}
	Meals          = Table{Resource: "meals", Links: "meal_groups", Column: "meal_id"}
	MealTags       = Table{Resource: "meal_tags", Links: "meal_tag_groups", Column: "meal_tag_id"}
)

type PostgresLinks struct {
	db    *gorm.DB
	table Table
}

func NewPostgres(db *gorm.DB, table Table) *PostgresLinks {
	return &PostgresLinks{db: db, table: table}
}

func (l *PostgresLinks) Link(ctx context.Context, resourceID int64, groupID string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, group_uuid) VALUES (?, ?) ON CONFLICT DO NOTHING", l.table.Links, l.table.Column)
	err := l.db.WithContext(ctx).Exec(query, resourceID, groupID).Error
	if err == nil {
		return nil
	}
	// The resource row is written in the same transaction, so a foreign key
	// failure here means the group is gone.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return groupdomain.ErrGroupNotFound
	}
	return fmt.Errorf("link %s: %w", l.table.Resource, err)
}

func (l *PostgresLinks) Unlink(ctx context.Context, resourceID int64, groupID string) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND group_uuid = ?", l.table.Links, l.table.Column)
	result := l.db.WithContext(ctx).Exec(query, resourceID, groupID)
	if result.Error != nil {
		return false, fmt.Errorf("unlink %s: %w", l.table.Resource, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (l *PostgresLinks) CountLinks(ctx context.Context, resourceID int64) (int64, error) {
	var count int64
	if err := l.db.WithContext(ctx).
		Table(l.table.Links).
		Where(l.table.Column+" = ?", resourceID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s links: %w", l.table.Resource, err)
	}
	return count, nil
}

func (l *PostgresLinks) DeleteResource(ctx context.Context, resourceID int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", l.table.Resource)
	if err := l.db.WithContext(ctx).Exec(query, resourceID).Error; err != nil {
		return fmt.Errorf("delete %s: %w", l.table.Resource, err)
	}
	return nil
}

func (l *PostgresLinks) Groups(ctx context.Context, resourceID int64) ([]string, error) {
	var groups []string
	if err := l.db.WithContext(ctx).
		Table(l.table.Links).
		Where(l.table.Column+" = ?", resourceID).
		Order("group_uuid").
		Pluck("group_uuid", &groups).Error; err != nil {
		return nil, fmt.Errorf("list %s groups: %w", l.table.Resource, err)
	}
	return groups, nil
}

// CountInGroups counts how many of ids are linked to at least one of groupIDs.
func (l *PostgresLinks) CountInGroups(ctx context.Context, groupIDs []string, ids []int64) (int64, error) {
	if len(ids) == 0 || len(groupIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := l.db.WithContext(ctx).
		Table(l.table.Links).
		Where(l.table.Column+" IN ? AND group_uuid IN ?", ids, groupIDs).
		Distinct(l.table.Column).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s in groups: %w", l.table.Resource, err)
	}
	return count, nil
}
