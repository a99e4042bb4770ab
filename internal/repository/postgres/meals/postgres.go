package meals

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	ingredientsdomain "mealplanner/internal/domain/ingredients"
	domainlinkage "mealplanner/internal/domain/linkage"
	mealsdomain "mealplanner/internal/domain/meals"
	"mealplanner/internal/repository/postgres/linkage"
)

type PostgresRepository struct {
	db          *gorm.DB
	meals       *linkage.PostgresLinks
	tags        *linkage.PostgresLinks
	ingredients *linkage.PostgresLinks
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{
		db:          db,
		meals:       linkage.NewPostgres(db, linkage.Meals),
		tags:        linkage.NewPostgres(db, linkage.MealTags),
		ingredients: linkage.NewPostgres(db, linkage.Ingredients),
	}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(mealsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgres(tx))
	})
}

func (r *PostgresRepository) CreateMeal(ctx context.Context, meal *mealsdomain.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *PostgresRepository) LinkMeal(ctx context.Context, mealID int64, groupID string) error {
	return r.meals.Link(ctx, mealID, groupID)
}

func (r *PostgresRepository) ListMealGroups(ctx context.Context, mealID int64) ([]string, error) {
	return r.meals.Groups(ctx, mealID)
}

func (r *PostgresRepository) UpdateMeal(ctx context.Context, mealID int64, name, description, guide *string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE meals
		SET name = COALESCE(?, name),
		    description = COALESCE(?, description),
		    guide = COALESCE(?, guide)
		WHERE id = ?
	`, name, description, guide, mealID)
	if result.Error != nil {
		return false, fmt.Errorf("update meal: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ReplaceMealIngredients(ctx context.Context, mealID int64, lines []mealsdomain.IngredientLine) error {
	if err := r.db.WithContext(ctx).
		Where("meal_id = ?", mealID).
		Delete(&mealsdomain.IngredientLine{}).Error; err != nil {
		return err
	}

	if len(lines) == 0 {
		return nil
	}

	rows := make([]mealsdomain.IngredientLine, 0, len(lines))
	for _, line := range lines {
		line.MealID = mealID
		rows = append(rows, line)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *PostgresRepository) ReplaceMealTags(ctx context.Context, mealID int64, tagIDs []int64) error {
	if err := r.db.WithContext(ctx).
		Where("meal_id = ?", mealID).
		Delete(&mealsdomain.TagAssignment{}).Error; err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]mealsdomain.TagAssignment, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, mealsdomain.TagAssignment{MealID: mealID, MealTagID: tagID})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

type lineRow struct {
	MealID         int64
	Count          float64
	Unit           *string
	IngredientID   int64
	IngredientName string
	DefaultUnit    *string
	TagID          *int64
	TagName        *string
}

type mealTagRow struct {
	MealID int64
	ID     int64
	Name   string
}

// ListMeals loads the group's meals, then their ingredient lines and tags in
// two batched queries.
func (r *PostgresRepository) ListMeals(ctx context.Context, groupID string) ([]mealsdomain.Meal, error) {
	var meals []mealsdomain.Meal
	if err := r.db.WithContext(ctx).
		Joins("join meal_groups on meal_groups.meal_id = meals.id").
		Where("meal_groups.group_uuid = ?", groupID).
		Order("meals.id asc").
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	if len(meals) == 0 {
		return []mealsdomain.Meal{}, nil
	}

	ids := make([]int64, 0, len(meals))
	index := make(map[int64]int, len(meals))
	for i := range meals {
		meals[i].Ingredients = []mealsdomain.MealIngredient{}
		meals[i].Tags = []mealsdomain.Tag{}
		ids = append(ids, meals[i].ID)
		index[meals[i].ID] = i
	}

	var lines []lineRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT mi.meal_id, mi.count, mi.unit,
		       i.id AS ingredient_id, i.name AS ingredient_name, i.default_unit,
		       t.id AS tag_id, t.name AS tag_name
		FROM meal_ingredients mi
		JOIN ingredients i ON i.id = mi.ingredient_id
		LEFT JOIN ingredient_tag_assignments a ON a.ingredient_id = i.id
		LEFT JOIN ingredient_tags t ON t.id = a.ingredient_tag_id
		WHERE mi.meal_id IN ?
		ORDER BY mi.meal_id, i.id, t.id
	`, ids).Scan(&lines).Error; err != nil {
		return nil, fmt.Errorf("list meal ingredients: %w", err)
	}

	for _, row := range lines {
		meal := &meals[index[row.MealID]]
		last := len(meal.Ingredients) - 1
		if last < 0 || meal.Ingredients[last].Ingredient.ID != row.IngredientID {
			meal.Ingredients = append(meal.Ingredients, mealsdomain.MealIngredient{
				Ingredient: ingredientsdomain.Ingredient{
					ID:          row.IngredientID,
					Name:        row.IngredientName,
					DefaultUnit: row.DefaultUnit,
					Tags:        []ingredientsdomain.Tag{},
				},
				Count: row.Count,
				Unit:  row.Unit,
			})
			last++
		}
		if row.TagID != nil && row.TagName != nil {
			ingredient := &meal.Ingredients[last].Ingredient
			ingredient.Tags = append(ingredient.Tags, ingredientsdomain.Tag{ID: *row.TagID, Name: *row.TagName})
		}
	}

	var tags []mealTagRow
	if err := r.db.WithContext(ctx).
		Table("meal_tag_assignments").
		Select("meal_tag_assignments.meal_id, meal_tags.id, meal_tags.name").
		Joins("join meal_tags on meal_tags.id = meal_tag_assignments.meal_tag_id").
		Where("meal_tag_assignments.meal_id IN ?", ids).
		Order("meal_tags.name asc").
		Scan(&tags).Error; err != nil {
		return nil, fmt.Errorf("list meal tags: %w", err)
	}
	for _, row := range tags {
		meal := &meals[index[row.MealID]]
		meal.Tags = append(meal.Tags, mealsdomain.Tag{ID: row.ID, Name: row.Name})
	}

	return meals, nil
}

func (r *PostgresRepository) CountIngredientsInGroups(ctx context.Context, groupIDs []string, ingredientIDs []int64) (int64, error) {
	return r.ingredients.CountInGroups(ctx, groupIDs, ingredientIDs)
}

func (r *PostgresRepository) CreateTag(ctx context.Context, tag *mealsdomain.Tag) error {
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
		Model(&mealsdomain.Tag{}).
		Where("id = ?", tagID).
		Update("name", name)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListTags(ctx context.Context, groupID string) ([]mealsdomain.Tag, error) {
	var tags []mealsdomain.Tag
	if err := r.db.WithContext(ctx).
		Joins("join meal_tag_groups on meal_tag_groups.meal_tag_id = meal_tags.id").
		Where("meal_tag_groups.group_uuid = ?", groupID).
		Order("meal_tags.name asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PostgresRepository) CountTagsInGroups(ctx context.Context, groupIDs []string, tagIDs []int64) (int64, error) {
	return r.tags.CountInGroups(ctx, groupIDs, tagIDs)
}

func (r *PostgresRepository) MealLinks() domainlinkage.Links {
	return r.meals
}

func (r *PostgresRepository) TagLinks() domainlinkage.Links {
	return r.tags
}
