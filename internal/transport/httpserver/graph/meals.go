package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"mealplanner/internal/domain/meals"
)

type mealIngredientInput struct {
	IngredientID int32
	Count        float64
	Unit         *string
}

func toLines(inputs []mealIngredientInput) []meals.IngredientLine {
	lines := make([]meals.IngredientLine, 0, len(inputs))
	for _, input := range inputs {
		lines = append(lines, meals.IngredientLine{
			IngredientID: int64(input.IngredientID),
			Count:        input.Count,
			Unit:         input.Unit,
		})
	}
	return lines
}

func (r *Resolver) Meals(ctx context.Context, args groupArgs) ([]*mealResolver, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return nil, r.fail(ctx, "meals.list", err)
	}
	list, err := r.meals.List(ctx, identityFrom(ctx), groupID)
	if err != nil {
		return nil, r.fail(ctx, "meals.list", err)
	}

	result := make([]*mealResolver, 0, len(list))
	for _, meal := range list {
		result = append(result, &mealResolver{meal: meal})
	}
	return result, nil
}

func (r *Resolver) MealTags(ctx context.Context, args groupArgs) ([]*mealTagResolver, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return nil, r.fail(ctx, "meals.list_tags", err)
	}
	tags, err := r.meals.ListTags(ctx, identityFrom(ctx), groupID)
	if err != nil {
		return nil, r.fail(ctx, "meals.list_tags", err)
	}
	return mealTags(tags), nil
}

func (r *Resolver) CreateMeal(ctx context.Context, args struct {
	Name        string
	Description *string
	Guide       *string
	Ingredients []mealIngredientInput
	TagIDs      []int32
	GroupUUID   graphql.ID
}) (bool, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return false, r.fail(ctx, "meals.create", err)
	}
	_, err = r.meals.Create(ctx, identityFrom(ctx), meals.CreateInput{
		Name:        args.Name,
		Description: args.Description,
		Guide:       args.Guide,
		Ingredients: toLines(args.Ingredients),
		TagIDs:      toInt64s(args.TagIDs),
		GroupUUID:   groupID,
	})
	if err != nil {
		return false, r.fail(ctx, "meals.create", err)
	}
	return true, nil
}

func (r *Resolver) UpdateMeal(ctx context.Context, args struct {
	ID          int32
	Name        *string
	Description *string
	Guide       *string
	Ingredients []mealIngredientInput
	TagIDs      []int32
}) (bool, error) {
	err := r.meals.Update(ctx, identityFrom(ctx), meals.UpdateInput{
		ID:          int64(args.ID),
		Name:        args.Name,
		Description: args.Description,
		Guide:       args.Guide,
		Ingredients: toLines(args.Ingredients),
		TagIDs:      toInt64s(args.TagIDs),
	})
	if err != nil {
		return false, r.fail(ctx, "meals.update", err)
	}
	return true, nil
}

func (r *Resolver) DeleteMeal(ctx context.Context, args resourceArgs) (bool, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return false, r.fail(ctx, "meals.delete", err)
	}
	removed, err := r.meals.Delete(ctx, identityFrom(ctx), int64(args.ID), groupID)
	if err != nil {
		return false, r.fail(ctx, "meals.delete", err)
	}
	return removed, nil
}

func (r *Resolver) CreateMealTag(ctx context.Context, args tagArgs) (bool, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return false, r.fail(ctx, "meals.create_tag", err)
	}
	if _, err := r.meals.CreateTag(ctx, identityFrom(ctx), args.Name, groupID); err != nil {
		return false, r.fail(ctx, "meals.create_tag", err)
	}
	return true, nil
}

func (r *Resolver) UpdateMealTag(ctx context.Context, args renameArgs) (bool, error) {
	updated, err := r.meals.UpdateTag(ctx, identityFrom(ctx), int64(args.ID), args.Name)
	if err != nil {
		return false, r.fail(ctx, "meals.update_tag", err)
	}
	return updated, nil
}

func (r *Resolver) DeleteMealTag(ctx context.Context, args resourceArgs) (bool, error) {
	groupID, err := parseUUID(args.GroupUUID)
	if err != nil {
		return false, r.fail(ctx, "meals.delete_tag", err)
	}
	removed, err := r.meals.DeleteTag(ctx, identityFrom(ctx), int64(args.ID), groupID)
	if err != nil {
		return false, r.fail(ctx, "meals.delete_tag", err)
	}
	return removed, nil
}

type mealResolver struct {
	meal meals.Meal
}

func (m *mealResolver) ID() int32 {
	return int32(m.meal.ID)
}

func (m *mealResolver) Name() string {
	return m.meal.Name
}

func (m *mealResolver) Description() *string {
	return m.meal.Description
}

func (m *mealResolver) Guide() *string {
	return m.meal.Guide
}

func (m *mealResolver) Ingredients() []*mealIngredientResolver {
	result := make([]*mealIngredientResolver, 0, len(m.meal.Ingredients))
	for _, line := range m.meal.Ingredients {
		result = append(result, &mealIngredientResolver{line: line})
	}
	return result
}

func (m *mealResolver) Tags() []*mealTagResolver {
	return mealTags(m.meal.Tags)
}

type mealIngredientResolver struct {
	line meals.MealIngredient
}

func (l *mealIngredientResolver) Ingredient() *ingredientResolver {
	return &ingredientResolver{ingredient: l.line.Ingredient}
}

func (l *mealIngredientResolver) Count() float64 {
	return l.line.Count
}

func (l *mealIngredientResolver) Unit() *string {
	return l.line.Unit
}

type mealTagResolver struct {
	tag meals.Tag
}

func (t *mealTagResolver) ID() int32 {
	return int32(t.tag.ID)
}

func (t *mealTagResolver) Name() string {
	return t.tag.Name
}

func mealTags(tags []meals.Tag) []*mealTagResolver {
	result := make([]*mealTagResolver, 0, len(tags))
	for _, tag := range tags {
		result = append(result, &mealTagResolver{tag: tag})
	}
	return result
}
