package graph

import (
	"context"
	"errors"

	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"

	"mealplanner/internal/domain/group"
	"mealplanner/internal/domain/ingredients"
	"mealplanner/internal/domain/meals"
	"mealplanner/internal/domain/session"
	"mealplanner/internal/transport/httpserver/middleware"
	"mealplanner/pkg/logger"
)

var errInvalidID = errors.New("invalid id")

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)
	Refresh(ctx context.Context, userID string) (string, error)
}

type GroupService interface {
	Create(ctx context.Context, identity *session.Identity, name string) (string, error)
	Rename(ctx context.Context, identity *session.Identity, groupID, name string) (bool, error)
	Delete(ctx context.Context, identity *session.Identity, groupID string) (bool, error)
	Invite(ctx context.Context, identity *session.Identity, groupID, email string) (group.InviteResult, error)
	Revoke(ctx context.Context, identity *session.Identity, groupID, userID string) (bool, error)
	Get(ctx context.Context, identity *session.Identity, groupID string) (*group.Detail, error)
}

type IngredientService interface {
	Create(ctx context.Context, identity *session.Identity, input ingredients.CreateInput) (int64, error)
	Update(ctx context.Context, identity *session.Identity, input ingredients.UpdateInput) error
	Delete(ctx context.Context, identity *session.Identity, ingredientID int64, groupID string) (bool, error)
	List(ctx context.Context, identity *session.Identity, groupID string) ([]ingredients.Ingredient, error)
	CreateTag(ctx context.Context, identity *session.Identity, name, groupID string) (int64, error)
	UpdateTag(ctx context.Context, identity *session.Identity, tagID int64, name string) (bool, error)
	DeleteTag(ctx context.Context, identity *session.Identity, tagID int64, groupID string) (bool, error)
	ListTags(ctx context.Context, identity *session.Identity, groupID string) ([]ingredients.Tag, error)
}

type MealService interface {
	Create(ctx context.Context, identity *session.Identity, input meals.CreateInput) (int64, error)
	Update(ctx context.Context, identity *session.Identity, input meals.UpdateInput) error
	Delete(ctx context.Context, identity *session.Identity, mealID int64, groupID string) (bool, error)
	List(ctx context.Context, identity *session.Identity, groupID string) ([]meals.Meal, error)
	CreateTag(ctx context.Context, identity *session.Identity, name, groupID string) (int64, error)
	UpdateTag(ctx context.Context, identity *session.Identity, tagID int64, name string) (bool, error)
	DeleteTag(ctx context.Context, identity *session.Identity, tagID int64, groupID string) (bool, error)
	ListTags(ctx context.Context, identity *session.Identity, groupID string) ([]meals.Tag, error)
}

type Services struct {
	Auth        AuthService
	Groups      GroupService
	Ingredients IngredientService
	Meals       MealService
}

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	auth        AuthService
	groups      GroupService
	ingredients IngredientService
	meals       MealService
	log         logger.Logger
}

func NewResolver(services Services, log logger.Logger) *Resolver {
	return &Resolver{
		auth:        services.Auth,
		groups:      services.Groups,
		ingredients: services.Ingredients,
		meals:       services.Meals,
		log:         log.With("component", "graphql"),
	}
}

func identityFrom(ctx context.Context) *session.Identity {
	return middleware.IdentityFromContext(ctx)
}

// parseUUID canonicalizes a client supplied id so it compares equal to the
// values stored in tokens and the database.
func parseUUID(id graphql.ID) (string, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return "", errInvalidID
	}
	return parsed.String(), nil
}

func toInt64s(values []int32) []int64 {
	if len(values) == 0 {
		return nil
	}
	result := make([]int64, 0, len(values))
	for _, value := range values {
		result = append(result, int64(value))
	}
	return result
}

func stringPtr(value string) *string {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}
