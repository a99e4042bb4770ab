package graph

import (
	"context"
	"errors"

	"mealplanner/internal/domain/access"
	"mealplanner/internal/domain/group"
	"mealplanner/internal/domain/ingredients"
	"mealplanner/internal/domain/meals"
	"mealplanner/internal/domain/session"
	"mealplanner/internal/domain/user"
	"mealplanner/pkg/logger"
)

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInternal        = "INTERNAL"
)

const internalMessage = "internal error"

// Error is returned from resolvers; graphql-go copies Extensions into the
// response so clients can branch on extensions.code.
type Error struct {
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var errorCodes = []struct {
	code string
	errs []error
}{
	{CodeUnauthenticated, []error{
		access.ErrUnauthenticated,
		session.ErrInvalidToken,
		session.ErrExpiredToken,
		user.ErrInvalidCredentials,
		user.ErrUserNotFound,
	}},
	{CodeUnauthorized, []error{access.ErrUnauthorized}},
	{CodeNotFound, []error{
		group.ErrGroupNotFound,
		ingredients.ErrIngredientNotFound,
		ingredients.ErrTagNotFound,
		meals.ErrMealNotFound,
		meals.ErrTagNotFound,
		meals.ErrIngredientNotFound,
	}},
	{CodeConflict, []error{user.ErrDuplicateEmail, access.ErrLastAdmin}},
	{CodeValidation, []error{
		user.ErrEmailRequired,
		user.ErrPasswordRequired,
		user.ErrPasswordTooLong,
		group.ErrNameRequired,
		group.ErrEmailRequired,
		group.ErrUserIDRequired,
		ingredients.ErrNameRequired,
		meals.ErrNameRequired,
		meals.ErrDuplicateIngredient,
		meals.ErrInvalidCount,
		errInvalidID,
	}},
}

// classify returns the code for err along with the sentinel it matched, whose
// message is what the client sees.
func classify(err error) (string, error) {
	for _, entry := range errorCodes {
		for _, target := range entry.errs {
			if errors.Is(err, target) {
				return entry.code, target
			}
		}
	}
	return CodeInternal, nil
}

// fail logs err and converts it to the client-facing error. Internal
// failures never leak their message.
func (r *Resolver) fail(ctx context.Context, op string, err error) error {
	code, sentinel := classify(err)
	requestID := logger.RequestID(ctx)

	if code == CodeInternal {
		r.log.InternalError(op+": failed", err, requestID)
		return &Error{Code: code, Message: internalMessage, cause: err}
	}

	r.log.BusinessError(op+": rejected", err, "code", code, requestID)
	return &Error{Code: code, Message: sentinel.Error(), cause: err}
}
