package ingredients

import (
	"context"

	"mealplanner/internal/domain/linkage"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateIngredient(ctx context.Context, ingredient *Ingredient) error
	LinkIngredient(ctx context.Context, ingredientID int64, groupID string) error
	ListIngredientGroups(ctx context.Context, ingredientID int64) ([]string, error)
	UpdateIngredient(ctx context.Context, ingredientID int64, name, defaultUnit *string) (bool, error)
	ReplaceIngredientTags(ctx context.Context, ingredientID int64, tagIDs []int64) error
	ListIngredients(ctx context.Context, groupID string) ([]Ingredient, error)

	CreateTag(ctx context.Context, tag *Tag) error
	LinkTag(ctx context.Context, tagID int64, groupID string) error
	ListTagGroups(ctx context.Context, tagID int64) ([]string, error)
	UpdateTagName(ctx context.Context, tagID int64, name string) (bool, error)
	ListTags(ctx context.Context, groupID string) ([]Tag, error)
	// CountTagsInGroups counts how many of tagIDs are linked to at least one
	// of groupIDs.
	CountTagsInGroups(ctx context.Context, groupIDs []string, tagIDs []int64) (int64, error)

	IngredientLinks() linkage.Links
	TagLinks() linkage.Links
}
