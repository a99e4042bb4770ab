package meals

import (
	"context"

	"mealplanner/internal/domain/linkage"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateMeal(ctx context.Context, meal *Meal) error
	LinkMeal(ctx context.Context, mealID int64, groupID string) error
	ListMealGroups(ctx context.Context, mealID int64) ([]string, error)
	UpdateMeal(ctx context.Context, mealID int64, name, description, guide *string) (bool, error)
	ReplaceMealIngredients(ctx context.Context, mealID int64, lines []IngredientLine) error
	ReplaceMealTags(ctx context.Context, mealID int64, tagIDs []int64) error
	ListMeals(ctx context.Context, groupID string) ([]Meal, error)
	// CountIngredientsInGroups counts how many of ingredientIDs are linked to
	// at least one of groupIDs.
	CountIngredientsInGroups(ctx context.Context, groupIDs []string, ingredientIDs []int64) (int64, error)

	CreateTag(ctx context.Context, tag *Tag) error
	LinkTag(ctx context.Context, tagID int64, groupID string) error
	ListTagGroups(ctx context.Context, tagID int64) ([]string, error)
	UpdateTagName(ctx context.Context, tagID int64, name string) (bool, error)
	ListTags(ctx context.Context, groupID string) ([]Tag, error)
	CountTagsInGroups(ctx context.Context, groupIDs []string, tagIDs []int64) (int64, error)

	MealLinks() linkage.Links
	TagLinks() linkage.Links
}
