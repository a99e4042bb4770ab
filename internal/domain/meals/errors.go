package meals

import "errors"

var (
	ErrMealNotFound        = errors.New("meal not found")
	ErrTagNotFound         = errors.New("meal tag not found")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrNameRequired        = errors.New("name is required")
	ErrDuplicateIngredient = errors.New("ingredient listed more than once")
	ErrInvalidCount        = errors.New("ingredient count must not be negative")
)
