package meals

import (
	"context"
	"errors"
	"strings"

	"mealplanner/internal/domain/access"
	"mealplanner/internal/domain/linkage"
	"mealplanner/internal/domain/session"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, identity *session.Identity, input CreateInput) (int64, error) {
	if err := access.RequireMember(identity, input.GroupUUID); err != nil {
		return 0, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return 0, ErrNameRequired
	}
	lines, err := normalizeLines(input.Ingredients)
	if err != nil {
		return 0, err
	}
	tagIDs := linkage.UniqueIDs(input.TagIDs)

	meal := Meal{
		Name:        name,
		Description: optional(input.Description),
		Guide:       optional(input.Guide),
	}
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		groups := []string{input.GroupUUID}
		if err := requireLinked(ctx, tx, groups, lines, tagIDs); err != nil {
			return err
		}
		if err := tx.CreateMeal(ctx, &meal); err != nil {
			return err
		}
		if err := tx.LinkMeal(ctx, meal.ID, input.GroupUUID); err != nil {
			return err
		}
		if err := tx.ReplaceMealIngredients(ctx, meal.ID, lines); err != nil {
			return err
		}
		return tx.ReplaceMealTags(ctx, meal.ID, tagIDs)
	})
	if err != nil {
		return 0, err
	}
	return meal.ID, nil
}

func (s *Service) Update(ctx context.Context, identity *session.Identity, input UpdateInput) error {
	if err := access.RequireIdentity(identity); err != nil {
		return err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return ErrNameRequired
	}
	lines, err := normalizeLines(input.Ingredients)
	if err != nil {
		return err
	}
	tagIDs := linkage.UniqueIDs(input.TagIDs)

	return s.repo.Transaction(ctx, func(tx Repository) error {
		groups, err := tx.ListMealGroups(ctx, input.ID)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			return ErrMealNotFound
		}
		if err := access.RequireAnyGroup(identity, groups); err != nil {
			return err
		}
		if err := requireLinked(ctx, tx, groups, lines, tagIDs); err != nil {
			return err
		}

		updated, err := tx.UpdateMeal(ctx, input.ID, optional(input.Name), optional(input.Description), optional(input.Guide))
		if err != nil {
			return err
		}
		if !updated {
			return ErrMealNotFound
		}
		if err := tx.ReplaceMealIngredients(ctx, input.ID, lines); err != nil {
			return err
		}
		return tx.ReplaceMealTags(ctx, input.ID, tagIDs)
	})
}

func (s *Service) Delete(ctx context.Context, identity *session.Identity, mealID int64, groupID string) (bool, error) {
	if err := access.RequireMember(identity, groupID); err != nil {
		return false, err
	}
	return release(ctx, s.repo, mealID, groupID, Repository.MealLinks)
}

func (s *Service) List(ctx context.Context, identity *session.Identity, groupID string) ([]Meal, error) {
	if err := access.RequireMember(identity, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListMeals(ctx, groupID)
}

func (s *Service) CreateTag(ctx context.Context, identity *session.Identity, name, groupID string) (int64, error) {
	if err := access.RequireMember(identity, groupID); err != nil {
		return 0, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNameRequired
	}

	tag := Tag{Name: name}
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateTag(ctx, &tag); err != nil {
			return err
		}
		return tx.LinkTag(ctx, tag.ID, groupID)
	})
	if err != nil {
		return 0, err
	}
	return tag.ID, nil
}

func (s *Service) UpdateTag(ctx context.Context, identity *session.Identity, tagID int64, name string) (bool, error) {
	if err := access.RequireIdentity(identity); err != nil {
		return false, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrNameRequired
	}

	var updated bool
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		groups, err := tx.ListTagGroups(ctx, tagID)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			return ErrTagNotFound
		}
		if err := access.RequireAnyGroup(identity, groups); err != nil {
			return err
		}
		updated, err = tx.UpdateTagName(ctx, tagID, name)
		return err
	})
	return updated, err
}

// DeleteTag removes the tag from groupID. Meals of other groups keep the
// assignment while the tag still exists.
func (s *Service) DeleteTag(ctx context.Context, identity *session.Identity, tagID int64, groupID string) (bool, error) {
	if err := access.RequireMember(identity, groupID); err != nil {
		return false, err
	}
	return release(ctx, s.repo, tagID, groupID, Repository.TagLinks)
}

func (s *Service) ListTags(ctx context.Context, identity *session.Identity, groupID string) ([]Tag, error) {
	if err := access.RequireMember(identity, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListTags(ctx, groupID)
}

func release(ctx context.Context, repo Repository, id int64, groupID string, links func(Repository) linkage.Links) (bool, error) {
	err := repo.Transaction(ctx, func(tx Repository) error {
		_, err := linkage.Release(ctx, links(tx), id, groupID)
		return err
	})
	if errors.Is(err, linkage.ErrLinkNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func requireLinked(ctx context.Context, repo Repository, groupIDs []string, lines []IngredientLine, tagIDs []int64) error {
	if len(lines) > 0 {
		ids := make([]int64, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.IngredientID)
		}
		count, err := repo.CountIngredientsInGroups(ctx, groupIDs, ids)
		if err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return ErrIngredientNotFound
		}
	}

	if len(tagIDs) > 0 {
		count, err := repo.CountTagsInGroups(ctx, groupIDs, tagIDs)
		if err != nil {
			return err
		}
		if count != int64(len(tagIDs)) {
			return ErrTagNotFound
		}
	}
	return nil
}

func normalizeLines(lines []IngredientLine) ([]IngredientLine, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	seen := make(map[int64]struct{}, len(lines))
	result := make([]IngredientLine, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.IngredientID]; ok {
			return nil, ErrDuplicateIngredient
		}
		if line.Count < 0 {
			return nil, ErrInvalidCount
		}
		seen[line.IngredientID] = struct{}{}
		result = append(result, IngredientLine{
			IngredientID: line.IngredientID,
			Count:        line.Count,
			Unit:         optional(line.Unit),
		})
	}
	return result, nil
}

func optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
