package ingredients

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	ingredientsdomain "mealplanner/internal/domain/ingredients"
	domainlinkage "mealplanner/internal/domain/linkage"
	"mealplanner/internal/repository/postgres/linkage"
)

type PostgresRepository struct {
	db          *gorm.DB
	ingredients *linkage.PostgresLinks
	tags        *linkage.PostgresLinks
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{
		db:          db,
		ingredients: linkage.NewPostgres(db, linkage.Ingredients),
		tags:        linkage.NewPostgres(db, linkage.IngredientTags),
	}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(ingredientsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgres(tx))
	})
}

func (r *PostgresRepository) CreateIngredient(ctx context.Context, ingredient *ingredientsdomain.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *PostgresRepository) LinkIngredient(ctx context.Context, ingredientID int64, groupID string) error {
	return r.ingredients.Link(ctx, ingredientID, groupID)
}

func (r *PostgresRepository) ListIngredientGroups(ctx context.Context, ingredientID int64) ([]string, error) {
	return r.ingredients.Groups(ctx, ingredientID)
}

func (r *PostgresRepository) UpdateIngredient(ctx context.Context, ingredientID int64, name, defaultUnit *string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE ingredients SET name = COALESCE(?, name), default_unit = COALESCE(?, default_unit) WHERE id = ?`,
		name, defaultUnit, ingredientID,
	)
	if result.Error != nil {
		return false, fmt.Errorf("update ingredient: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ReplaceIngredientTags(ctx context.Context, ingredientID int64, tagIDs []int64) error {
	if err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Delete(&ingredientsdomain.TagAssignment{}).Error; err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]ingredientsdomain.TagAssignment, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, ingredientsdomain.TagAssignment{IngredientID: ingredientID, IngredientTagID: tagID})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

type ingredientRow struct {
	ID          int64
	Name        string
	DefaultUnit *string
	TagID       *int64
	TagName     *string
}

func (r *PostgresRepository) ListIngredients(ctx context.Context, groupID string) ([]ingredientsdomain.Ingredient, error) {
	var rows []ingredientRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT i.id, i.name, i.default_unit, t.id AS tag_id, t.name AS tag_name
		FROM ingredients i
		JOIN ingredient_groups g ON g.ingredient_id = i.id
		LEFT JOIN ingredient_tag_assignments a ON a.ingredient_id = i.id
		LEFT JOIN ingredient_tags t ON t.id = a.ingredient_tag_id
		WHERE g.group_uuid = ?
		ORDER BY i.id, t.id
	`, groupID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	result := make([]ingredientsdomain.Ingredient, 0)
	index := make(map[int64]int)
	for _, row := range rows {
		pos, ok := index[row.ID]
		if !ok {
			pos = len(result)
			index[row.ID] = pos
			result = append(result, ingredientsdomain.Ingredient{
				ID:          row.ID,
				Name:        row.Name,
				DefaultUnit: row.DefaultUnit,
				Tags:        []ingredientsdomain.Tag{},
			})
		}
		if row.TagID != nil && row.TagName != nil {
			result[pos].Tags = append(result[pos].Tags, ingredientsdomain.Tag{ID: *row.TagID, Name: *row.TagName})
		}
	}
	return result, nil
}

func (r *PostgresRepository) CreateTag(ctx context.Context, tag *ingredientsdomain.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *PostgresRepository) LinkTag(ctx context.Context, tagID int64, groupID string) error {
	return r.tags.Link(ctx, tagID, groupID)
}

func (r *PostgresRepository) ListTagGroups(ctx context.Context, tagID int64) ([]string, error) {
	return r.tags.Groups(ctx, tagID)
}

func (r *PostgresRepository) UpdateTagName(ctx context.Context, tagID int64, name string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ingredientsdomain.Tag{}).
		Where("id = ?", tagID).
		Update("name", name)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListTags(ctx context.Context, groupID string) ([]ingredientsdomain.Tag, error) {
	var tags []ingredientsdomain.Tag
	if err := r.db.WithContext(ctx).
		Joins("join ingredient_tag_groups on ingredient_tag_groups.ingredient_tag_id = ingredient_tags.id").
		Where("ingredient_tag_groups.group_uuid = ?", groupID).
		Order("ingredient_tags.name asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PostgresRepository) CountTagsInGroups(ctx context.Context, groupIDs []string, tagIDs []int64) (int64, error) {
	return r.tags.CountInGroups(ctx, groupIDs, tagIDs)
}

func (r *PostgresRepository) IngredientLinks() domainlinkage.Links {
	return r.ingredients
}

func (r *PostgresRepository) TagLinks() domainlinkage.Links {
	return r.tags
}
