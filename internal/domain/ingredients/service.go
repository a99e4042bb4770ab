package ingredients

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
	tagIDs := linkage.UniqueIDs(input.TagIDs)

	ingredient := Ingredient{Name: name, DefaultUnit: optional(input.DefaultUnit)}
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := requireTags(ctx, tx, []string{input.GroupUUID}, tagIDs); err != nil {
			return err
		}
		if err := tx.CreateIngredient(ctx, &ingredient); err != nil {
			return err
		}
		if err := tx.LinkIngredient(ctx, ingredient.ID, input.GroupUUID); err != nil {
			return err
		}
		return tx.ReplaceIngredientTags(ctx, ingredient.ID, tagIDs)
	})
	if err != nil {
		return 0, err
	}
	return ingredient.ID, nil
}

// Update is allowed when the caller shares at least one group with the
// ingredient.
func (s *Service) Update(ctx context.Context, identity *session.Identity, input UpdateInput) error {
	if err := access.RequireIdentity(identity); err != nil {
		return err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return ErrNameRequired
	}
	tagIDs := linkage.UniqueIDs(input.TagIDs)

	return s.repo.Transaction(ctx, func(tx Repository) error {
		groups, err := tx.ListIngredientGroups(ctx, input.ID)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			return ErrIngredientNotFound
		}
		if err := access.RequireAnyGroup(identity, groups); err != nil {
			return err
		}
		if err := requireTags(ctx, tx, groups, tagIDs); err != nil {
			return err
		}

		updated, err := tx.UpdateIngredient(ctx, input.ID, optional(input.Name), optional(input.DefaultUnit))
		if err != nil {
			return err
		}
		if !updated {
			return ErrIngredientNotFound
		}
		return tx.ReplaceIngredientTags(ctx, input.ID, tagIDs)
	})
}

// Delete removes the ingredient from groupID. It reports false when the
// ingredient was not linked to that group.
func (s *Service) Delete(ctx context.Context, identity *session.Identity, ingredientID int64, groupID string) (bool, error) {
	if err := access.RequireMember(identity, groupID); err != nil {
		return false, err
	}
	return release(ctx, s.repo, ingredientID, groupID, Repository.IngredientLinks)
}

func (s *Service) List(ctx context.Context, identity *session.Identity, groupID string) ([]Ingredient, error) {
	if err := access.RequireMember(identity, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListIngredients(ctx, groupID)
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

// DeleteTag removes the tag from groupID. Ingredients in other groups keep
// their assignment until the tag itself is gone.
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

func requireTags(ctx context.Context, repo Repository, groupIDs []string, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	count, err := repo.CountTagsInGroups(ctx, groupIDs, tagIDs)
	if err != nil {
		return err
	}
	if count != int64(len(tagIDs)) {
		return ErrTagNotFound
	}
	return nil
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
