package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"mealplanner/internal/domain/ingredients"
)

type groupArgs struct {
	GroupUUID graphql.ID
}

func (r *Resolver) Ingredients(ctx context.Context, args groupArgs) ([]*ingredientResolver, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return nil, r.fail(ctx, "ingredients.list", err)
	}
	list, err := r.ingredients.List(ctx, identityFrom(ctx), groupID)
	if err != nil {
		return nil, r.fail(ctx, "ingredients.list", err)
	}

	result := make([]*ingredientResolver, 0, len(list))
	for _, item := range list {
		result = append(result, &ingredientResolver{ingredient: item})
	}
	return result, nil
}

func (r *Resolver) IngredientTags(ctx context.Context, args groupArgs) ([]*ingredientTagResolver, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return nil, r.fail(ctx, "ingredients.list_tags", err)
	}
	tags, err := r.ingredients.ListTags(ctx, identityFrom(ctx), groupID)
	if err != nil {
		return nil, r.fail(ctx, "ingredients.list_tags", err)
	}
	return ingredientTags(tags), nil
}

func (r *Resolver) CreateIngredient(ctx context.Context, args struct {
	Name        string
	DefaultUnit *string
	TagIDs      []int32
	GroupUUID   graphql.ID
}) (bool, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return false, r.fail(ctx, "ingredients.create", err)
	}
	_, err = r.ingredients.Create(ctx, identityFrom(ctx), ingredients.CreateInput{
		Name:        args.Name,
		DefaultUnit: args.DefaultUnit,
		TagIDs:      toInt64s(args.TagIDs),
		GroupUUID:   groupID,
	})
	if err != nil {
		return false, r.fail(ctx, "ingredients.create", err)
	}
	return true, nil
}

func (r *Resolver) UpdateIngredient(ctx context.Context, args struct {
	ID          int32
	Name        *string
	DefaultUnit *string
	TagIDs      []int32
}) (bool, error) {
	err := r.ingredients.Update(ctx, identityFrom(ctx), ingredients.UpdateInput{
		ID:          int64(args.ID),
		Name:        args.Name,
		DefaultUnit: args.DefaultUnit,
		TagIDs:      toInt64s(args.TagIDs),
	})
	if err != nil {
		return false, r.fail(ctx, "ingredients.update", err)
	}
	return true, nil
}

type resourceArgs struct {
	ID        int32
	GroupUUID graphql.ID
}

func (r *Resolver) DeleteIngredient(ctx context.Context, args resourceArgs) (bool, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return false, r.fail(ctx, "ingredients.delete", err)
	}
	removed, err := r.ingredients.Delete(ctx, identityFrom(ctx), int64(args.ID), groupID)
	if err != nil {
		return false, r.fail(ctx, "ingredients.delete", err)
	}
	return removed, nil
}

type tagArgs struct {
	Name      string
	GroupUUID graphql.ID
}

func (r *Resolver) CreateIngredientTag(ctx context.Context, args tagArgs) (bool, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return false, r.fail(ctx, "ingredients.create_tag", err)
	}
	if _, err := r.ingredients.CreateTag(ctx, identityFrom(ctx), args.Name, groupID); err != nil {
		return false, r.fail(ctx, "ingredients.create_tag", err)
	}
	return true, nil
}

type renameArgs struct {
	ID   int32
	Name string
}

func (r *Resolver) UpdateIngredientTag(ctx context.Context, args renameArgs) (bool, error) {
	updated, err := r.ingredients.UpdateTag(ctx, identityFrom(ctx), int64(args.ID), args.Name)
	if err != nil {
		return false, r.fail(ctx, "ingredients.update_tag", err)
	}
	return updated, nil
}

func (r *Resolver) DeleteIngredientTag(ctx context.Context, args resourceArgs) (bool, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return false, r.fail(ctx, "ingredients.delete_tag", err)
	}
	removed, err := r.ingredients.DeleteTag(ctx, identityFrom(ctx), int64(args.ID), groupID)
	if err != nil {
		return false, r.fail(ctx, "ingredients.delete_tag", err)
	}
	return removed, nil
}

type ingredientResolver struct {
	ingredient ingredients.Ingredient
}

func (i *ingredientResolver) ID() int32 {
	return int32(i.ingredient.ID)
}

func (i *ingredientResolver) Name() string {
	return i.ingredient.Name
}

func (i *ingredientResolver) DefaultUnit() *string {
	return i.ingredient.DefaultUnit
}

func (i *ingredientResolver) Tags() []*ingredientTagResolver {
	return ingredientTags(i.ingredient.Tags)
}

type ingredientTagResolver struct {
	tag ingredients.Tag
}

func (t *ingredientTagResolver) ID() int32 {
	return int32(t.tag.ID)
}

func (t *ingredientTagResolver) Name() string {
	return t.tag.Name
}

func ingredientTags(tags []ingredients.Tag) []*ingredientTagResolver {
	result := make([]*ingredientTagResolver, 0, len(tags))
	for _, tag := range tags {
		result = append(result, &ingredientTagResolver{tag: tag})
	}
	return result
}
